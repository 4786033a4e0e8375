package handlers

import (
	"log"

	"storefront/internal/cart"
	"storefront/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CartHandler prices a submitted cart server-side so clients do not
// have to reimplement the totals arithmetic.
type CartHandler struct {
	taxRate  decimal.Decimal
	shipping decimal.Decimal
}

// NewCartHandler creates a new CartHandler with the configured tax
// rate and flat shipping cost.
func NewCartHandler(taxRate, shipping decimal.Decimal) *CartHandler {
	return &CartHandler{taxRate: taxRate, shipping: shipping}
}

// RegisterPublicRoutes registers the quote route. Pricing a cart needs
// no session.
func (h *CartHandler) RegisterPublicRoutes(public fiber.Router) {
	public.Post("/cart/quote", h.HandleQuote)
}

// QuoteLine is one submitted cart line.
type QuoteLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Variant   string          `json:"variant,omitempty"`
}

// QuoteRequest is the cart to price.
type QuoteRequest struct {
	Items []QuoteLine `json:"items"`
}

// QuoteResponse carries the derived totals plus the order-ready item
// snapshots for POST /orders.
type QuoteResponse struct {
	Lines      []cart.Line        `json:"lines"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Tax        decimal.Decimal    `json:"tax"`
	Shipping   decimal.Decimal    `json:"shipping"`
	GrandTotal decimal.Decimal    `json:"grandTotal"`
	OrderItems []models.OrderItem `json:"orderItems"`
}

// HandleQuote runs the submitted lines through the cart engine and
// returns the totals. Lines sharing a (product, variant) key merge;
// quantities below one are floored to one.
func (h *CartHandler) HandleQuote(c *fiber.Ctx) error {
	var req QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart quote body: %v", err)
		return badRequest(c, "Invalid request body")
	}

	engine := cart.New(nil, cart.WithTaxRate(h.taxRate), cart.WithShippingCost(h.shipping))
	for _, line := range req.Items {
		if line.ProductID == "" || !line.Price.IsPositive() {
			return badRequest(c, "every item needs a product id and a positive price")
		}
		engine.AddItem(cart.Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
		}, line.Quantity, line.Variant)
	}

	return c.JSON(QuoteResponse{
		Lines:      engine.Lines(),
		Subtotal:   engine.Subtotal(),
		Tax:        engine.Tax(),
		Shipping:   engine.ShippingCost(),
		GrandTotal: engine.GrandTotal(),
		OrderItems: engine.ToOrderItems(),
	})
}
