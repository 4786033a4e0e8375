package cart

import "storefront/internal/models"

// ToOrderItems snapshots the cart lines into order item records. The
// caller submits them with GrandTotal as an order and clears the cart
// once the order is accepted.
func (c *Cart) ToOrderItems() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Variant:   l.Variant,
		})
	}
	return items
}
