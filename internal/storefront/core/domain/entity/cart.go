package entity

import "github.com/shopspring/decimal"

// LineItem is one product's presence in the cart. Name and Price are
// snapshotted when the product is first added and are not re-synced if
// the catalog changes afterwards.
type LineItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// Subtotal is price times quantity for this line.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds at most one LineItem per product, in insertion order.
// Quantity on a stored line is always >= 1: any mutation that would drop
// it to zero or below removes the line instead.
type Cart struct {
	items []LineItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts the product in the cart. If a line for the same product already
// exists its quantity is incremented by one; otherwise a new line is
// appended with quantity 1, copying name and price from the product.
func (c *Cart) Add(p Product) {
	for idx := range c.items {
		if c.items[idx].ProductID == p.ID {
			c.items[idx].Quantity++
			return
		}
	}
	c.items = append(c.items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op, not an error.
func (c *Cart) Remove(productID string) {
	for idx := range c.items {
		if c.items[idx].ProductID == productID {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			return
		}
	}
}

// SetQuantity overwrites the quantity on the line for productID.
// A quantity of zero or below removes the line. Unknown productID is a no-op.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for idx := range c.items {
		if c.items[idx].ProductID == productID {
			c.items[idx].Quantity = quantity
			return
		}
	}
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalPrice sums price*quantity across all lines and formats the result
// with exactly two decimal digits. It is recomputed on every call.
func (c *Cart) TotalPrice() string {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total.StringFixed(2)
}

// OrderPayload builds the request body for order creation. Only product IDs
// and quantities are included; the backend is the price authority, so name
// and price are deliberately left out.
func (c *Cart) OrderPayload(customerEmail string) OrderPayload {
	items := make([]OrderItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return OrderPayload{
		Items:         items,
		CustomerEmail: customerEmail,
	}
}
