package model

// Policy represents an insurance policy. ClientID and CarrierID are plain
// references without enforced integrity; orphaned references are tolerated.
type Policy struct {
	ID             uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ClientID       uint64  `json:"clientId" gorm:"index:idx_policy_client"`
	CarrierID      uint64  `json:"carrierId" gorm:"index:idx_policy_carrier"`
	PolicyType     string  `json:"policyType" gorm:"size:128"`
	StartDate      string  `json:"startDate" gorm:"size:32"`
	EndDate        string  `json:"endDate" gorm:"size:32"`
	Premium        float64 `json:"premium"`
	Status         string  `json:"status" gorm:"size:32"`
	CoverageLimits JSONMap `json:"coverageLimits" gorm:"type:jsonb"`
	CreatedAt      int64   `json:"createdAt" gorm:"autoCreateTime:milli"`
}

// TableName returns the table name for GORM.
func (p *Policy) TableName() string {
	return "policies"
}
