package services

import (
	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// relatedProductLimit caps the "related products" list on a product
// detail page.
const relatedProductLimit = 4

// ProductWithVariants is a catalog listing entry.
type ProductWithVariants struct {
	models.Product
	Variants []models.ProductVariant `json:"variants"`
}

// ProductDetail is the full product page payload.
type ProductDetail struct {
	models.Product
	Variants        []models.ProductVariant   `json:"variants"`
	Reviews         []models.ReviewWithAuthor `json:"reviews"`
	AverageRating   *float64                  `json:"averageRating"`
	RelatedProducts []models.Product          `json:"relatedProducts"`
}

// CatalogService resolves filter queries over the product collection
// and assembles product detail pages.
type CatalogService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	reviewRepo   repositories.ReviewRepository
	reviews      *ReviewService
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, reviewRepo repositories.ReviewRepository, reviews *ReviewService) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		reviews:      reviews,
	}
}

// ListCategories retrieves all categories.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// ListProducts resolves the filter and attaches each product's
// variants. The per-product variant fetch is an N+1 that is acceptable
// at catalog size; batch it before scaling up.
func (s *CatalogService) ListProducts(filter catalog.Filter) ([]ProductWithVariants, error) {
	products, err := s.productRepo.GetAll(filter)
	if err != nil {
		return nil, err
	}

	out := make([]ProductWithVariants, 0, len(products))
	for _, p := range products {
		variants, err := s.productRepo.GetVariants(p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, ProductWithVariants{Product: p, Variants: variants})
	}
	return out, nil
}

// GetProductDetail assembles the product page: variants, annotated
// reviews newest-first, the read-time average rating, and up to four
// related products from the same category.
func (s *CatalogService) GetProductDetail(id string) (*ProductDetail, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	variants, err := s.productRepo.GetVariants(id)
	if err != nil {
		return nil, err
	}

	annotated, err := s.reviews.ListForProduct(id)
	if err != nil {
		return nil, err
	}
	plain, err := s.reviewRepo.GetByProduct(id)
	if err != nil {
		return nil, err
	}

	related, err := s.relatedProducts(product)
	if err != nil {
		return nil, err
	}

	return &ProductDetail{
		Product:         *product,
		Variants:        variants,
		Reviews:         annotated,
		AverageRating:   AverageRating(plain),
		RelatedProducts: related,
	}, nil
}

// relatedProducts returns other products sharing the category,
// excluding the product itself, in persisted order.
func (s *CatalogService) relatedProducts(product *models.Product) ([]models.Product, error) {
	if product.CategoryID == "" {
		return []models.Product{}, nil
	}

	slug, ok, err := s.slugForCategoryID(product.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Product{}, nil
	}

	// Fetch one extra so excluding the product itself still fills the
	// list.
	candidates, err := s.productRepo.GetAll(catalog.Filter{
		Category: slug,
		Limit:    relatedProductLimit + 1,
	})
	if err != nil {
		return nil, err
	}

	related := make([]models.Product, 0, relatedProductLimit)
	for _, p := range candidates {
		if p.ID == product.ID {
			continue
		}
		related = append(related, p)
		if len(related) == relatedProductLimit {
			break
		}
	}
	return related, nil
}

func (s *CatalogService) slugForCategoryID(categoryID string) (string, bool, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return "", false, err
	}
	for _, c := range categories {
		if c.ID == categoryID {
			return c.Slug, true, nil
		}
	}
	return "", false, nil
}

// CreateProduct creates a new catalog entry (admin).
func (s *CatalogService) CreateProduct(product *models.Product) error {
	return s.productRepo.Create(product)
}

// UpdateProduct updates an existing catalog entry (admin).
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	return s.productRepo.Update(product)
}

// DeleteProduct removes a catalog entry (admin).
func (s *CatalogService) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}

// CreateCategory creates a new category (admin).
func (s *CatalogService) CreateCategory(category *models.Category) error {
	return s.categoryRepo.Create(category)
}

// CreateVariant adds a variant to a product (admin).
func (s *CatalogService) CreateVariant(variant *models.ProductVariant) error {
	if _, err := s.productRepo.GetByID(variant.ProductID); err != nil {
		return err
	}
	return s.productRepo.CreateVariant(variant)
}
