package models

import "time"

// Fact categories used by the built-in tools.
const (
	CategoryGeneral  = "general"
	CategoryLocation = "location"
	CategoryContact  = "contact"
	CategoryStaff    = "staff"
)

// BusinessFact is one piece of tenant knowledge ("Address", "Staff: X").
// (customer_id, category, title) is the logical upsert key.
type BusinessFact struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index:idx_fact_key" json:"customer_id"`
	Title      string    `gorm:"type:text;not null;index:idx_fact_key" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Category   string    `gorm:"type:text;not null;default:'general';index:idx_fact_key" json:"category"`
	IsPublic   bool      `gorm:"not null" json:"is_public"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (BusinessFact) TableName() string {
	return "business_facts"
}

// Unanswered question statuses
const (
	QuestionPending  = "pending"
	QuestionAnswered = "answered"
	QuestionIgnored  = "ignored"
)

// UnansweredQuestion is recorded when neither a tool nor a fact can answer
// a customer. The owner answers or ignores it later.
type UnansweredQuestion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Question   string    `gorm:"type:text;not null" json:"question"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
	Status     string    `gorm:"type:text;not null;default:'pending'" json:"status"`
	Response   *string   `gorm:"type:text" json:"response,omitempty"`
}

// TableName specifies the table name
func (UnansweredQuestion) TableName() string {
	return "unanswered_questions"
}
