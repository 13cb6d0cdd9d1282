package models

// BusinessService is a sellable item or service. Name is the lookup key for
// price and availability updates but is not unique.
type BusinessService struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	CustomerID  uint     `gorm:"not null;index" json:"customer_id"`
	Name        string   `gorm:"type:text;not null" json:"name"`
	Category    string   `gorm:"type:text" json:"category"`
	Description *string  `gorm:"type:text" json:"description,omitempty"`
	Price       *float64 `gorm:"type:decimal(12,2)" json:"price,omitempty"`
	Duration    *int     `json:"duration,omitempty"` // minutes
	IsAvailable bool     `gorm:"not null" json:"is_available"`
}

// TableName specifies the table name
func (BusinessService) TableName() string {
	return "business_services"
}

// InventoryItem is a stocked product.
type InventoryItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	CustomerID uint    `gorm:"not null;index" json:"customer_id"`
	Name       string  `gorm:"type:text;not null" json:"name"`
	Quantity   int     `gorm:"not null;default:0" json:"quantity"`
	Price      float64 `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Category   string  `gorm:"type:text" json:"category"`
}

// TableName specifies the table name
func (InventoryItem) TableName() string {
	return "inventory_items"
}
