package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterSessionRoutes registers order routes behind the session.
func (h *OrderHandler) RegisterSessionRoutes(authed fiber.Router) {
	orderRoutes := authed.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// RegisterAdminRoutes registers the status transition behind the admin
// gate.
func (h *OrderHandler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetOrders lists the caller's orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(middleware.UserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID returns one order. Non-admin callers may only
// read orders they own, even with a guessed id.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	if order.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden",
		})
	}
	return c.JSON(order)
}

// CreateOrderRequest is the checkout payload: the priced cart plus
// shipping and payment details. Item snapshots come from the cart, not
// from a live product read.
type CreateOrderRequest struct {
	Total              decimal.Decimal      `json:"total"`
	ShippingAddress    string               `json:"shippingAddress" validate:"required"`
	ShippingCity       string               `json:"shippingCity" validate:"required"`
	ShippingState      string               `json:"shippingState"`
	ShippingPostalCode string               `json:"shippingPostalCode" validate:"required"`
	ShippingCountry    string               `json:"shippingCountry" validate:"required"`
	Payment            models.PaymentMethod `json:"payment"`
	Items              []models.OrderItem   `json:"items" validate:"required,min=1,dive"`
}

// HandleCreateOrder creates an order for the authenticated user.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid input",
			"errors":  validationMessages(err),
		})
	}

	order := models.Order{
		UserID:             middleware.UserID(c),
		Total:              req.Total,
		ShippingAddress:    req.ShippingAddress,
		ShippingCity:       req.ShippingCity,
		ShippingState:      req.ShippingState,
		ShippingPostalCode: req.ShippingPostalCode,
		ShippingCountry:    req.ShippingCountry,
		Payment:            req.Payment,
		Items:              req.Items,
	}

	created, err := h.service.CreateOrder(order)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateOrderStatusRequest carries the target status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order through its lifecycle
// (admin). Illegal transitions are rejected.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Status is required")
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		return badRequest(c, err.Error())
	}

	order, err := h.service.UpdateOrderStatus(c.Params("id"), status)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(order)
}
