package repositories

import (
	"storefront/internal/catalog"
	"storefront/internal/models"
)

// ProductRepository defines the interface for product and variant data
// access.
type ProductRepository interface {
	GetAll(filter catalog.Filter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	GetVariants(productID string) ([]models.ProductVariant, error)
	CreateVariant(variant *models.ProductVariant) error
}

// CategoryRepository defines the interface for category data access.
// Categories are immutable after creation.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
}
