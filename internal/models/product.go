// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	CategoryID  uuid.UUID       `json:"category_id" gorm:"type:uuid;not null;index"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Slug        string          `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Color       string          `json:"color" gorm:"size:50;index"`
	IsActive    bool            `json:"is_active" gorm:"default:true;index"`

	// Relationships
	Category Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Images   []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Sizes    []ProductSize  `json:"sizes,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	Alt       string    `json:"alt" gorm:"size:255"`
	SortOrder int       `json:"sort_order" gorm:"default:0;not null"`
}

// ProductSize is the per-product, per-size inventory counter. Every cart
// line references exactly one row via (product_id, size); checkout is the
// only writer that decrements Stock, and Stock never goes below zero.
type ProductSize struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_product_sizes_product_size"`
	Size      string    `json:"size" gorm:"size:20;not null;uniqueIndex:idx_product_sizes_product_size"`
	Stock     int       `json:"stock" gorm:"default:0;not null"`
}
