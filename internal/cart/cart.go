package cart

import (
	"log"

	"github.com/shopspring/decimal"
)

// Item is the product snapshot carried by a cart line. Price is
// captured when the item is added and is not refreshed from the
// catalog afterwards.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
	InStock   bool            `json:"inStock"`
}

// Line is one (product, variant, quantity) entry. Lines are unique by
// (ProductID, Variant) and Quantity is always >= 1.
type Line struct {
	Item
	Quantity int    `json:"quantity"`
	Variant  string `json:"variant,omitempty"`
}

// Cart maintains the line items for a browsing session and derives
// monetary totals from them. It is not safe for concurrent use; each
// session owns its cart.
type Cart struct {
	lines    []Line
	taxRate  decimal.Decimal
	shipping decimal.Decimal
	store    Store
}

// Option configures a Cart.
type Option func(*Cart)

// WithTaxRate overrides the default 10% tax rate.
func WithTaxRate(rate decimal.Decimal) Option {
	return func(c *Cart) { c.taxRate = rate }
}

// WithShippingCost overrides the default flat shipping cost.
func WithShippingCost(cost decimal.Decimal) Option {
	return func(c *Cart) { c.shipping = cost }
}

// New creates a cart backed by the given store. Previously persisted
// lines are restored; a load failure starts the cart empty.
func New(store Store, opts ...Option) *Cart {
	c := &Cart{
		taxRate:  decimal.NewFromFloat(0.1),
		shipping: decimal.NewFromFloat(9.99),
		store:    store,
	}
	for _, opt := range opts {
		opt(c)
	}
	if store != nil {
		lines, err := store.Load()
		if err != nil {
			log.Printf("cart: failed to restore lines: %v", err)
		} else {
			c.lines = lines
		}
	}
	return c
}

// find returns the index of the line matching (productID, variant),
// or -1.
func (c *Cart) find(productID, variant string) int {
	for i, l := range c.lines {
		if l.ProductID == productID && l.Variant == variant {
			return i
		}
	}
	return -1
}

// AddItem adds quantity of the item to the cart. If a line with the
// same (product, variant) key exists its quantity is incremented,
// otherwise a new line is appended.
func (c *Cart) AddItem(item Item, quantity int, variant string) {
	if quantity < 1 {
		quantity = 1
	}
	if i := c.find(item.ProductID, variant); i >= 0 {
		c.lines[i].Quantity += quantity
	} else {
		c.lines = append(c.lines, Line{Item: item, Quantity: quantity, Variant: variant})
	}
	c.persist()
}

// RemoveItem deletes the matching line. Removing an absent line is a
// no-op.
func (c *Cart) RemoveItem(productID, variant string) {
	i := c.find(productID, variant)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.persist()
}

// Increase bumps the matching line's quantity by one.
func (c *Cart) Increase(productID, variant string) {
	if i := c.find(productID, variant); i >= 0 {
		c.lines[i].Quantity++
		c.persist()
	}
}

// Decrease lowers the matching line's quantity by one. Quantity never
// drops below 1; removing a line requires RemoveItem.
func (c *Cart) Decrease(productID, variant string) {
	if i := c.find(productID, variant); i >= 0 && c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
		c.persist()
	}
}

// Clear empties the cart, typically after a successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
	c.persist()
}

// Lines returns a copy of the current line items.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal is the sum of price x quantity over all lines, using the
// price snapshot stored in each line.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Tax is the subtotal times the configured rate, rounded to cents.
func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(c.taxRate).Round(2)
}

// ShippingCost is the configured flat shipping value.
func (c *Cart) ShippingCost() decimal.Decimal {
	return c.shipping
}

// GrandTotal is subtotal + tax + shipping.
func (c *Cart) GrandTotal() decimal.Decimal {
	return c.Subtotal().Add(c.Tax()).Add(c.ShippingCost())
}

// persist writes the current lines to the backing store. Persistence
// is a fire-and-forget side effect: failures are logged, never
// surfaced to the caller.
func (c *Cart) persist() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(c.lines); err != nil {
		log.Printf("cart: failed to persist lines: %v", err)
	}
}
