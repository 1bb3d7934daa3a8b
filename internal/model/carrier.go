package model

// Carrier represents an insurance carrier.
//
// RiskAppetite is schemaless; keys conventionally present are "industries"
// ([]string of acceptable industries) and "company_size" (object with a
// numeric "max"). An absent key means no restriction.
type Carrier struct {
	ID            uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string     `json:"name" gorm:"size:255;not null"`
	ContactEmail  string     `json:"contactEmail" gorm:"size:128"`
	ContactPhone  string     `json:"contactPhone" gorm:"size:32"`
	Website       string     `json:"website" gorm:"size:255"`
	Specialties   StringList `json:"specialties" gorm:"type:jsonb"`
	RiskAppetite  JSONMap    `json:"riskAppetite" gorm:"type:jsonb"`
	MinPremium    int64      `json:"minPremium"`
	MaxPremium    int64      `json:"maxPremium"`
	Regions       StringList `json:"regions" gorm:"type:jsonb"`
	BusinessTypes StringList `json:"businessTypes" gorm:"type:jsonb"`
	CreatedAt     int64      `json:"createdAt" gorm:"autoCreateTime:milli"`
}

// TableName returns the table name for GORM.
func (c *Carrier) TableName() string {
	return "carriers"
}

// AcceptedIndustries returns the declared acceptable industries, or nil when
// the carrier declares none (meaning no restriction).
func (c *Carrier) AcceptedIndustries() []string {
	raw, ok := c.RiskAppetite["industries"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// MaxCompanySize returns the declared maximum acceptable company size and
// whether one is declared.
func (c *Carrier) MaxCompanySize() (int, bool) {
	raw, ok := c.RiskAppetite["company_size"]
	if !ok {
		return 0, false
	}
	sizeObj, ok := raw.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := sizeObj["max"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}
