package model

// RecordType is a controlled vocabulary entry for client records, e.g.
// "Property", "Revenue", "CGL", "Employees".
type RecordType struct {
	ID          uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:128;not null"`
	Description string `json:"description" gorm:"size:255"`
}

// TableName returns the table name for GORM.
func (t *RecordType) TableName() string {
	return "record_types"
}

// ClientRecord is one line item on a client profile. Type conventionally
// matches a RecordType name but is free text. Value stays a string even when
// it represents money or counts; the source never typed it.
type ClientRecord struct {
	ID          uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	ClientID    uint64 `json:"clientId" gorm:"index:idx_record_client"`
	Type        string `json:"type" gorm:"size:128"`
	Description string `json:"description" gorm:"size:255"`
	Value       string `json:"value" gorm:"size:255"`
	Date        string `json:"date" gorm:"size:32"`
	CreatedAt   int64  `json:"createdAt" gorm:"autoCreateTime:milli"`
}

// TableName returns the table name for GORM.
func (r *ClientRecord) TableName() string {
	return "client_records"
}
