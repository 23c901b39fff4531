package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/kasir/internal/catalog"
	"github.com/noah-isme/kasir/internal/shipping"
)

// ErrInvalidQuantity is returned when adding a non-positive quantity.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// InsufficientStockError is returned by Add when the requested quantity
// exceeds the product's availability at add time. This is a convenience
// pre-check only; the checkout engine re-validates stock authoritatively.
type InsufficientStockError struct {
	Item string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s", e.Item)
}

// Line pairs a shared product reference with the requested quantity.
type Line struct {
	Product *catalog.Product
	Qty     int
}

// Cart is an ordered sequence of lines. The cart owns its lines; the
// referenced products stay shared with the catalog so the engine can mutate
// stock through them. The same product may appear in multiple lines, which
// are treated independently. A cart is meant for a single checkout: after a
// successful one the backing quantities have changed, so re-using it may
// legitimately fail re-validation.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add appends a line after checking current availability.
func (c *Cart) Add(p *catalog.Product, qty int) error {
	if p == nil {
		return errors.New("nil product")
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > p.Available() {
		return &InsufficientStockError{Item: p.Name()}
	}
	c.lines = append(c.lines, Line{Product: p, Qty: qty})
	return nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns the line sequence in insertion order. Callers must not
// modify the returned slice.
func (c *Cart) Lines() []Line {
	return c.lines
}

// Subtotal sums unit price times quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.Product.UnitPrice().Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	return subtotal
}

// ShippableUnits flattens shippable lines into one unit reference per
// physical piece, preserving line order, then intra-line repetition.
func (c *Cart) ShippableUnits() []shipping.Unit {
	var units []shipping.Unit
	for _, line := range c.lines {
		if !line.Product.Shippable() {
			continue
		}
		for i := 0; i < line.Qty; i++ {
			units = append(units, line.Product)
		}
	}
	return units
}

// TotalShippableWeight sums weight times quantity over shippable lines. The
// value only decides whether the flat shipping fee applies; it never scales
// the fee.
func (c *Cart) TotalShippableWeight() float64 {
	var total float64
	for _, line := range c.lines {
		if !line.Product.Shippable() {
			continue
		}
		total += line.Product.UnitWeight() * float64(line.Qty)
	}
	return total
}
