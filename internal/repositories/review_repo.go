package repositories

import "storefront/internal/models"

// ReviewRepository defines the interface for review data access.
// Reviews are append-only and read newest-first.
type ReviewRepository interface {
	GetByProduct(productID string) ([]models.Review, error)
	Create(review *models.Review) error
}
