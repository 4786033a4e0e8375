package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields serialize as JSON numbers, matching the rest of
	// the API payloads.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category groups products and is addressed by its slug in filter
// queries. Categories are seeded or admin-created and immutable after
// that.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Slug        string `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	ImageURL    string `json:"imageUrl"`
}

// Specification is one (label, value) row of a product's spec sheet.
type Specification struct {
	ID        string `json:"-" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"-" gorm:"index;type:varchar(36)"`
	Label     string `json:"label"`
	Value     string `json:"value"`
}

// Product is a catalog entry. Price is a currency-agnostic decimal;
// InStock/IsNew/IsFeatured are display flags used by the catalog
// filters.
type Product struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name            string          `json:"name" validate:"required,min=3,max=200"`
	Description     string          `json:"description" validate:"required,max=500"`
	LongDescription string          `json:"longDescription" validate:"omitempty,max=5000"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	ImageURL        string          `json:"imageUrl" validate:"required"`
	CategoryID      string          `json:"categoryId" gorm:"index;type:varchar(36)"`
	InStock         bool            `json:"inStock"`
	IsNew           bool            `json:"isNew"`
	IsFeatured      bool            `json:"isFeatured"`
	Specifications  []Specification `json:"specifications" gorm:"foreignKey:ProductID"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ProductVariant is a named sub-option of a product (size, color) with
// its own stock flag. A product with no variants is orderable directly.
type ProductVariant struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID string `json:"productId" gorm:"index;type:varchar(36)" validate:"required"`
	Name      string `json:"name" validate:"required,min=1,max=100"`
	InStock   bool   `json:"inStock"`
}
