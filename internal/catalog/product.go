package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyName is returned when a product is created without a name.
	ErrEmptyName = errors.New("product name is required")
	// ErrNegativePrice is returned for a negative unit price.
	ErrNegativePrice = errors.New("unit price must not be negative")
	// ErrNegativeQuantity is returned for a negative starting quantity.
	ErrNegativeQuantity = errors.New("available quantity must not be negative")
	// ErrNegativeWeight is returned for a negative unit weight.
	ErrNegativeWeight = errors.New("unit weight must not be negative")
)

// Product is a catalog entry. The name acts as the identity key. Perishable
// and shippable are orthogonal capabilities attached at construction, not
// subtypes: an entry may carry neither, either, or both.
//
// Available quantity only decreases within this system; there is no
// replenishment path.
type Product struct {
	name       string
	unitPrice  decimal.Decimal
	available  int
	expiresAt  *time.Time
	unitWeight *float64
}

// Option attaches an optional capability to a product under construction.
type Option func(*Product)

// WithExpiry marks the product perishable with the given expiry date.
func WithExpiry(expiresAt time.Time) Option {
	return func(p *Product) {
		t := expiresAt
		p.expiresAt = &t
	}
}

// WithWeight marks the product shippable with a per-unit weight in grams.
func WithWeight(grams float64) Option {
	return func(p *Product) {
		w := grams
		p.unitWeight = &w
	}
}

// New validates inputs and constructs a product.
func New(name string, unitPrice decimal.Decimal, available int, opts ...Option) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if unitPrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	if available < 0 {
		return nil, ErrNegativeQuantity
	}
	p := &Product{name: name, unitPrice: unitPrice, available: available}
	for _, opt := range opts {
		opt(p)
	}
	if p.unitWeight != nil && *p.unitWeight < 0 {
		return nil, ErrNegativeWeight
	}
	return p, nil
}

// Name returns the identity key of the entry.
func (p *Product) Name() string { return p.name }

// UnitPrice returns the price of a single unit.
func (p *Product) UnitPrice() decimal.Decimal { return p.unitPrice }

// Available returns the current stock level.
func (p *Product) Available() int { return p.available }

// Perishable reports whether the entry carries an expiry date.
func (p *Product) Perishable() bool { return p.expiresAt != nil }

// ExpiresAt returns the expiry date; ok is false for non-perishable entries.
func (p *Product) ExpiresAt() (time.Time, bool) {
	if p.expiresAt == nil {
		return time.Time{}, false
	}
	return *p.expiresAt, true
}

// Expired reports whether the entry is past its expiry at the given instant.
// The instant is strictly compared: a product expiring today is still good.
// Non-perishable entries never expire.
func (p *Product) Expired(now time.Time) bool {
	if p.expiresAt == nil {
		return false
	}
	return now.After(*p.expiresAt)
}

// Shippable reports whether the entry has physical weight to ship.
func (p *Product) Shippable() bool { return p.unitWeight != nil }

// UnitWeight returns the per-unit weight in grams, or 0 for non-shippable
// entries.
func (p *Product) UnitWeight() float64 {
	if p.unitWeight == nil {
		return 0
	}
	return *p.unitWeight
}

// Reduce decreases the available quantity. Unlike a bare counter it refuses
// to go negative; the checkout engine's own stock validation is what prevents
// this in normal operation, so hitting the guard indicates a caller bug.
func (p *Product) Reduce(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("reduce %s: amount must be positive, got %d", p.name, amount)
	}
	if amount > p.available {
		return fmt.Errorf("reduce %s: amount %d exceeds available %d", p.name, amount, p.available)
	}
	p.available -= amount
	return nil
}
