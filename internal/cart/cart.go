// Package cart holds the per-customer order in progress. Carts live only in
// memory: they are scoped to the active session, cleared on logout and never
// persisted. Line items carry a product snapshot taken at add time; stock is
// a display hint and is not re-validated between add and checkout.
package cart

import (
	"sync"

	"matita-shop/internal/domain"
)

// Line is one (product snapshot, chosen variant, quantity) entry
type Line struct {
	Product  domain.Product `json:"product"`
	Variant  string         `json:"variant"`
	Quantity int            `json:"quantity"`
}

// Cart is an ordered list of lines with derived totals. Each cart has a
// single owner, but handlers run concurrently, so mutations are serialized.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// New returns an empty cart
func New() *Cart {
	return &Cart{lines: []Line{}}
}

// AddLine appends a line item. The chosen variant must exist on the product;
// quantity defaults to 1 when non-positive. Stock is not checked here, the
// caller gates on availability at selection time.
func (c *Cart) AddLine(product domain.Product, variant string, quantity int) error {
	if _, err := product.StockOf(variant); err != nil {
		return err
	}
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, Line{Product: product, Variant: variant, Quantity: quantity})
	return nil
}

// RemoveLine drops the line at the given position. Out-of-range indexes are
// a no-op.
func (c *Cart) RemoveLine(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.lines) {
		return
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
}

// Clear empties the cart. Called on logout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = c.lines[:0]
}

// Len returns the number of lines
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Lines returns a copy of the current line items
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal recomputes the price total from current lines on every call
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sum float64
	for _, l := range c.lines {
		sum += l.Product.Price * float64(l.Quantity)
	}
	return sum
}

// PointsEarned recomputes the loyalty points the cart will credit
func (c *Cart) PointsEarned() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sum int
	for _, l := range c.lines {
		sum += l.Product.Points * l.Quantity
	}
	return sum
}
