package repositories

import "storefront/internal/models"

// OrderRepository defines the interface for order data access. Create
// persists the order and all of its items as one unit: either
// everything is written or nothing is.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) error
	SetPaymentReference(id string, paymentID string) error
}
