package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// legalTransitions enumerates the permitted status moves. Delivered
// and cancelled are terminal.
var legalTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("invalid order status: %s", s)
}

// CanTransition reports whether an order may move from its current
// status to the given one.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range legalTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Payment method kinds. BankLink carries the provider token issued by
// the payment-link provider; Card does not.
const (
	PaymentKindCard     = "card"
	PaymentKindBankLink = "bank_link"
)

// PaymentMethod is a tagged variant: Kind selects the method and
// ProviderToken is only meaningful for bank_link.
type PaymentMethod struct {
	Kind          string `json:"kind" validate:"required,oneof=card bank_link"`
	ProviderToken string `json:"providerToken,omitempty" validate:"required_if=Kind bank_link"`
}

// OrderItem snapshots name, price and quantity at order time. The
// snapshot is authoritative: it is never re-derived from the live
// product.
type OrderItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `json:"orderId" gorm:"index;type:varchar(36)"`
	ProductID string          `json:"productId" gorm:"type:varchar(36)" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Variant   string          `json:"variant,omitempty"`
}

// Order owns its items; an order is created atomically with at least
// one item and its total is fixed at checkout time.
type Order struct {
	ID                 string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID             string          `json:"userId" gorm:"index;type:varchar(36)"`
	Total              decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	Status             OrderStatus     `json:"status" gorm:"type:varchar(20)"`
	ShippingAddress    string          `json:"shippingAddress"`
	ShippingCity       string          `json:"shippingCity"`
	ShippingState      string          `json:"shippingState"`
	ShippingPostalCode string          `json:"shippingPostalCode"`
	ShippingCountry    string          `json:"shippingCountry"`
	Payment            PaymentMethod   `json:"payment" gorm:"embedded;embeddedPrefix:payment_"`
	PaymentID          string          `json:"paymentId,omitempty"`
	Items              []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}
