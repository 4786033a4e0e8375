package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/paymentlink"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// PaymentHandler exposes the payment-link flow. All routes require a
// session; the provider does the actual bank work.
type PaymentHandler struct {
	provider paymentlink.Provider
	orders   *services.OrderService
	auth     *services.AuthService
	validate *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(provider paymentlink.Provider, orders *services.OrderService, auth *services.AuthService) *PaymentHandler {
	return &PaymentHandler{
		provider: provider,
		orders:   orders,
		auth:     auth,
		validate: validator.New(),
	}
}

// RegisterSessionRoutes registers the payment-link routes behind the
// session.
func (h *PaymentHandler) RegisterSessionRoutes(authed fiber.Router) {
	plaid := authed.Group("/plaid")
	plaid.Post("/create-link-token", h.HandleCreateLinkToken)
	plaid.Post("/exchange-token", h.HandleExchangeToken)
	plaid.Post("/payment", h.HandleCreatePayment)
	plaid.Get("/payment/:paymentId", h.HandleGetPaymentStatus)
}

// HandleCreateLinkToken issues a short-lived token the client uses to
// open the bank-linking widget.
func (h *PaymentHandler) HandleCreateLinkToken(c *fiber.Ctx) error {
	token, err := h.provider.CreateLinkToken(middleware.UserID(c))
	if err != nil {
		log.Printf("Error creating link token: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Payment provider unavailable",
		})
	}
	return c.JSON(token)
}

// ExchangeTokenRequest carries the public token handed back by the
// linking widget.
type ExchangeTokenRequest struct {
	PublicToken string `json:"publicToken" validate:"required"`
}

// HandleExchangeToken swaps a public token for a persistent access
// token.
func (h *PaymentHandler) HandleExchangeToken(c *fiber.Ctx) error {
	var req ExchangeTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "publicToken is required")
	}

	result, err := h.provider.ExchangePublicToken(req.PublicToken)
	if err != nil {
		log.Printf("Error exchanging public token: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Payment provider unavailable",
		})
	}
	return c.JSON(result)
}

// CreatePaymentRequest initiates a payment for an order through a
// linked account.
type CreatePaymentRequest struct {
	OrderID     string          `json:"orderId" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	AccessToken string          `json:"accessToken" validate:"required"`
	AccountID   string          `json:"accountId" validate:"required"`
}

// HandleCreatePayment creates a provider payment and records the
// reference on the order. The order moves to processing once the
// payment is initiated.
func (h *PaymentHandler) HandleCreatePayment(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid input",
			"errors":  validationMessages(err),
		})
	}
	if !req.Amount.IsPositive() {
		return badRequest(c, "Amount must be positive")
	}

	order, err := h.orders.GetOrder(req.OrderID)
	if err != nil {
		return serviceError(c, err)
	}
	if order.UserID != middleware.UserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden",
		})
	}
	// Refuse before touching the provider: a paid order must not
	// trigger a second bank payment.
	if !order.Status.CanTransition(models.StatusProcessing) {
		return badRequest(c, fmt.Sprintf("Order is not payable in status %s", order.Status))
	}

	name := "Customer"
	if user, err := h.auth.GetUser(middleware.UserID(c)); err == nil && user.Name != "" {
		name = user.Name
	}

	amount, _ := req.Amount.Round(2).Float64()
	payment, err := h.provider.CreatePayment(req.AccessToken, amount, req.AccountID, name, paymentReference(order.ID))
	if err != nil {
		log.Printf("Error creating payment for order %s: %v", order.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Payment provider unavailable",
		})
	}

	updated, err := h.orders.MarkPaymentInitiated(order.ID, payment.PaymentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment": payment,
		"order":   updated,
	})
}

// HandleGetPaymentStatus reads the current provider-side status of a
// payment.
func (h *PaymentHandler) HandleGetPaymentStatus(c *fiber.Ctx) error {
	payment, err := h.provider.GetPaymentStatus(c.Params("paymentId"))
	if err != nil {
		log.Printf("Error fetching payment status: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Payment provider unavailable",
		})
	}
	return c.JSON(payment)
}

// paymentReference builds a bank-statement reference for an order.
func paymentReference(orderID string) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Sprintf("ORDER-%s", orderID)
	}
	return fmt.Sprintf("ORDER-%s-%s", orderID, hex.EncodeToString(suffix))
}
