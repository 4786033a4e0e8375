package repositories

import (
	"fmt"
	"sync"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/models"

	"github.com/google/uuid"
)

// MemoryCategoryRepository is an in-memory implementation of
// CategoryRepository, used as the disposable local-development store.
type MemoryCategoryRepository struct {
	categories []models.Category
	mu         sync.RWMutex
}

// NewMemoryCategoryRepository creates a new instance of MemoryCategoryRepository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{}
}

// GetAll returns all categories.
func (r *MemoryCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

// GetBySlug returns the category with the given slug.
func (r *MemoryCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Slug == slug {
			category := c
			return &category, nil
		}
	}
	return nil, fmt.Errorf("category %s: %w", slug, ErrNotFound)
}

// Create adds a new category.
func (r *MemoryCategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	for _, c := range r.categories {
		if c.Slug == category.Slug {
			return fmt.Errorf("category slug %s already exists", category.Slug)
		}
	}
	r.categories = append(r.categories, *category)
	return nil
}

// MemoryProductRepository is an in-memory implementation of
// ProductRepository. Filtering delegates to the catalog engine; slug
// resolution goes through the category repository.
type MemoryProductRepository struct {
	products   []models.Product
	variants   map[string][]models.ProductVariant
	categories *MemoryCategoryRepository
	mu         sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository(categories *MemoryCategoryRepository) *MemoryProductRepository {
	return &MemoryProductRepository{
		variants:   make(map[string][]models.ProductVariant),
		categories: categories,
	}
}

// GetAll applies the filter over the in-memory product set.
func (r *MemoryProductRepository) GetAll(filter catalog.Filter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resolve := func(slug string) (string, bool) {
		category, err := r.categories.GetBySlug(slug)
		if err != nil {
			return "", false
		}
		return category.ID, true
	}
	return catalog.Apply(r.products, filter, resolve), nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	product.UpdatedAt = time.Now()
	r.products = append(r.products, *product)
	return nil
}

// Update modifies an existing product.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			product.UpdatedAt = time.Now()
			r.products[i] = *product
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			delete(r.variants, id)
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// GetVariants returns the variants of a product.
func (r *MemoryProductRepository) GetVariants(productID string) ([]models.ProductVariant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	variants := r.variants[productID]
	out := make([]models.ProductVariant, len(variants))
	copy(out, variants)
	return out, nil
}

// CreateVariant adds a variant to a product.
func (r *MemoryProductRepository) CreateVariant(variant *models.ProductVariant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if variant.ID == "" {
		variant.ID = uuid.New().String()
	}
	r.variants[variant.ProductID] = append(r.variants[variant.ProductID], *variant)
	return nil
}
