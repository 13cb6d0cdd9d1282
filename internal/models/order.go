package models

import "gorm.io/datatypes"

// Invoice statuses
const (
	InvoicePaid   = "paid"
	InvoiceUnpaid = "unpaid"
)

// Appointment is a booked slot. Date is YYYY-MM-DD, Time is HH:MM.
type Appointment struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CustomerID uint   `gorm:"not null;index" json:"customer_id"`
	ServiceID  uint   `json:"service_id"`
	Date       string `gorm:"type:text;not null;index" json:"date"`
	Time       string `gorm:"type:text;not null" json:"time"`
	Status     string `gorm:"type:text;not null;default:'scheduled'" json:"status"`
	Notes      string `gorm:"type:text" json:"notes"`
}

// TableName specifies the table name
func (Appointment) TableName() string {
	return "appointments"
}

// Invoice dates are ISO YYYY-MM-DD strings so range filters compare
// lexically on every dialect.
type Invoice struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CustomerID    uint           `gorm:"not null;index" json:"customer_id"`
	AppointmentID uint           `json:"appointment_id"`
	TotalAmount   float64        `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	Status        string         `gorm:"type:text;not null;default:'unpaid'" json:"status"`
	CreatedDate   string         `gorm:"type:text;not null;index" json:"created_date"`
	DueDate       string         `gorm:"type:text" json:"due_date"`
	Items         datatypes.JSON `json:"items" swaggertype:"object"`
}

// TableName specifies the table name
func (Invoice) TableName() string {
	return "invoices"
}

// BusinessHours is one weekday entry. DayOfWeek is 0 for Monday through 6
// for Sunday; (customer_id, day_of_week) is the upsert key.
type BusinessHours struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CustomerID uint   `gorm:"not null;index:idx_hours_day" json:"customer_id"`
	DayOfWeek  int    `gorm:"not null;index:idx_hours_day" json:"day_of_week"`
	OpenTime   string `gorm:"type:text" json:"open_time"`
	CloseTime  string `gorm:"type:text" json:"close_time"`
	IsClosed   bool   `gorm:"not null;default:false" json:"is_closed"`
}

// TableName specifies the table name
func (BusinessHours) TableName() string {
	return "business_hours"
}

// All returns every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&BusinessFact{},
		&BusinessService{},
		&InventoryItem{},
		&Appointment{},
		&Invoice{},
		&BusinessHours{},
		&UnansweredQuestion{},
		&Log{},
	}
}
