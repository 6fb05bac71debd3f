// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	BaseModel
	CustomerEmail   string          `json:"customer_email" gorm:"size:255;not null;index"`
	CustomerName    string          `json:"customer_name" gorm:"size:255;not null"`
	CustomerPhone   string          `json:"customer_phone" gorm:"size:50"`
	ShippingAddress string          `json:"shipping_address" gorm:"type:text;not null"`
	Total           decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';not null;index"`

	// Relationships
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is immutable after creation. ProductName and UnitPrice are
// snapshots taken at order time so later catalog edits never alter
// historical orders.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;index"`
	ProductName string          `json:"product_name" gorm:"size:255;not null"`
	Size        string          `json:"size" gorm:"size:20;not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
}
