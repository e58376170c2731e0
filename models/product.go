package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             string              `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name           string              `gorm:"not null" json:"name"`
	Slug           string              `gorm:"uniqueIndex;not null" json:"slug"`
	Description    string              `json:"description"`
	Price          decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"price"`
	CompareAtPrice decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"compare_at_price"` // market price shown struck through
	Images         []string            `gorm:"serializer:json" json:"images"`
	CategoryID     string              `gorm:"type:varchar(36);index" json:"category_id"`
	Category       *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsFeatured     bool                `json:"is_featured"` // "trending" on the storefront
	StockQuantity  int                 `json:"stock_quantity"`
	IsActive       bool                `gorm:"index" json:"is_active"`
	CreatedAt      time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// PrimaryImage is the first image URL, or "" when the product has none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Category struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
