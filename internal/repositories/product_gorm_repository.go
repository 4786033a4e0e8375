package repositories

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// GetAll resolves the filter into a query: constraints compose with
// AND, sorting runs before the limit. An unknown category slug matches
// nothing.
func (r *GORMProductRepository) GetAll(filter catalog.Filter) ([]models.Product, error) {
	q := r.db.Model(&models.Product{})

	if filter.HasCategory() {
		var category models.Category
		if err := r.db.First(&category, "slug = ?", filter.Category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []models.Product{}, nil
			}
			return nil, fmt.Errorf("failed to resolve category slug %s: %w", filter.Category, err)
		}
		q = q.Where("category_id = ?", category.ID)
	}

	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("lower(name) LIKE ? OR lower(description) LIKE ?", needle, needle)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.InStock != nil {
		q = q.Where("in_stock = ?", *filter.InStock)
	}
	if filter.Featured != nil {
		q = q.Where("is_featured = ?", *filter.Featured)
	}
	if filter.IsNew != nil {
		q = q.Where("is_new = ?", *filter.IsNew)
	}

	switch filter.SortBy {
	case catalog.SortPriceAsc:
		q = q.Order("price asc")
	case catalog.SortPriceDesc:
		q = q.Order("price desc")
	case catalog.SortNameAsc:
		q = q.Order("name asc")
	case catalog.SortNameDesc:
		q = q.Order("name desc")
	case catalog.SortNewest:
		q = q.Order("created_at desc")
	case catalog.SortPopularity:
		// No popularity signal is stored; keep persisted order.
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var products []models.Product
	if err := q.Preload("Specifications").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its specifications.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Specifications").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Specifications {
		if product.Specifications[i].ID == "" {
			product.Specifications[i].ID = uuid.New().String()
		}
		product.Specifications[i].ProductID = product.ID
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves all fields of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Omit("Specifications").Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetVariants retrieves the variants of a product.
func (r *GORMProductRepository) GetVariants(productID string) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.db.Find(&variants, "product_id = ?", productID).Error; err != nil {
		return nil, fmt.Errorf("failed to get variants for product %s: %w", productID, err)
	}
	return variants, nil
}

// CreateVariant creates a new product variant.
func (r *GORMProductRepository) CreateVariant(variant *models.ProductVariant) error {
	if variant.ID == "" {
		variant.ID = uuid.New().String()
	}
	if err := r.db.Create(variant).Error; err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}
	return nil
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// GetAll retrieves all categories.
func (r *GORMCategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetBySlug retrieves a category by its unique slug.
func (r *GORMCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category %s: %w", slug, err)
	}
	return &category, nil
}

// Create creates a new category.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}
