// Package model defines the database models for BrokerGPT.
package model

// Client represents an insurance client.
//
// RiskProfile is schemaless; keys conventionally present are "industry"
// (string), "hazards" ([]string), "safetyMeasures" ([]string). Nothing
// validates this shape.
type Client struct {
	ID            uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string  `json:"name" gorm:"size:255;not null;index:idx_client_name"`
	Address       string  `json:"address" gorm:"size:255"`
	City          string  `json:"city" gorm:"size:128"`
	Province      string  `json:"province" gorm:"size:64"`
	PostalCode    string  `json:"postalCode" gorm:"size:16"`
	Phone         string  `json:"phone" gorm:"size:32"`
	Email         string  `json:"email" gorm:"size:128"`
	BusinessType  string  `json:"businessType" gorm:"size:128"`
	AnnualRevenue int64   `json:"annualRevenue"`
	Employees     int     `json:"employees"`
	RiskProfile   JSONMap `json:"riskProfile" gorm:"type:jsonb"`
	CreatedAt     int64   `json:"createdAt" gorm:"autoCreateTime:milli"`
}

// TableName returns the table name for GORM.
func (c *Client) TableName() string {
	return "clients"
}
