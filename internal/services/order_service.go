package services

import (
	"encoding/json"
	"fmt"
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// EventPublisher publishes order lifecycle events to the message
// broker. Publishing is best-effort: a broker failure never fails the
// business operation.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// OrderService converts priced cart payloads into durable orders and
// drives their status lifecycle.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
}

// NewOrderService creates a new OrderService. events may be nil when
// no broker is configured.
func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
	}
}

// CreateOrder validates the payload and persists the order with its
// items atomically. Any invalid line rejects the whole order; nothing
// is silently dropped.
func (s *OrderService) CreateOrder(order models.Order) (*models.Order, error) {
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("%w: an order needs at least one item", ErrValidation)
	}
	if !order.Total.IsPositive() {
		return nil, fmt.Errorf("%w: order total must be positive", ErrValidation)
	}
	for i, item := range order.Items {
		if item.ProductID == "" || item.Name == "" {
			return nil, fmt.Errorf("%w: item %d is missing its product reference", ErrValidation, i)
		}
		if !item.Price.IsPositive() {
			return nil, fmt.Errorf("%w: item %d has a non-positive price", ErrValidation, i)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d has a non-positive quantity", ErrValidation, i)
		}
	}
	switch order.Payment.Kind {
	case models.PaymentKindCard:
	case models.PaymentKindBankLink:
		if order.Payment.ProviderToken == "" {
			return nil, fmt.Errorf("%w: bank_link payment requires a provider token", ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, order.Payment.Kind)
	}

	order.Status = models.StatusPending
	if err := s.orderRepo.Create(&order); err != nil {
		return nil, err
	}

	s.publish("order.created", map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.Total,
	})
	return &order, nil
}

// UpdateOrderStatus moves an order through its lifecycle. Transitions
// outside the state machine are rejected; delivered and cancelled are
// terminal.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: cannot transition order from %s to %s", ErrValidation, order.Status, status)
	}
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.publish("order.status_updated", map[string]interface{}{
		"orderID": order.ID,
		"status":  status,
	})
	return order, nil
}

// ListOrders returns the user's orders newest-first with their items.
func (s *OrderService) ListOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrder returns a single order with its items. Ownership is
// enforced at the routing boundary.
func (s *OrderService) GetOrder(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// MarkPaymentInitiated records the external payment reference and
// moves the order to processing.
func (s *OrderService) MarkPaymentInitiated(orderID, paymentID string) (*models.Order, error) {
	if err := s.orderRepo.SetPaymentReference(orderID, paymentID); err != nil {
		return nil, err
	}
	return s.UpdateOrderStatus(orderID, models.StatusProcessing)
}

// publish serializes and sends an event, logging failures instead of
// propagating them.
func (s *OrderService) publish(eventType string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := s.events.Publish(eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
