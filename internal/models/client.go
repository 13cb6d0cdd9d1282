package models

import "time"

// Customer is a business account. Its ID is the tenant id every other
// record is scoped by.
type Customer struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:text;not null" json:"name"`
	Email           string    `gorm:"type:text" json:"email"`
	Phone           string    `gorm:"type:text" json:"phone"`
	BusinessName    string    `gorm:"type:text" json:"business_name"`
	BusinessType    string    `gorm:"type:text" json:"business_type"`
	BusinessAddress string    `gorm:"type:text" json:"business_address"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}

// Log is one append-only activity entry. CustomerID is nil for tenant-less
// entries.
type Log struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Timestamp  time.Time `gorm:"not null;index" json:"timestamp"`
	Action     string    `gorm:"type:text;not null" json:"action"`
	Details    string    `gorm:"type:text" json:"details"`
}

// TableName specifies the table name
func (Log) TableName() string {
	return "logs"
}
