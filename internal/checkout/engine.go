package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/kasir/internal/cart"
	"github.com/noah-isme/kasir/internal/customer"
	"github.com/noah-isme/kasir/internal/obs"
	"github.com/noah-isme/kasir/internal/shipping"
)

// Result is the externally observed outcome of a successful checkout.
type Result struct {
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Total       decimal.Decimal
	Balance     decimal.Decimal
	Shipped     []shipping.Unit
}

// Config tunes an engine.
type Config struct {
	// FlatShippingFee is charged whenever the cart carries any shippable
	// weight; weight never scales it. Zero means the default of 30.
	FlatShippingFee decimal.Decimal
	// Now overrides the clock, mainly for tests.
	Now    func() time.Time
	Logger zerolog.Logger
}

// Engine runs the checkout transaction: ordered validation, pricing, then a
// single commit that debits the customer and reduces stock. Validation is
// pure reads, so a failed checkout leaves stock and balance untouched with no
// rollback machinery. A mutex serializes calls; within one call the
// validations therefore observe a consistent snapshot.
type Engine struct {
	mu  sync.Mutex
	fee decimal.Decimal
	now func() time.Time
	log zerolog.Logger
}

// NewEngine constructs an engine from the config, applying defaults.
func NewEngine(cfg Config) *Engine {
	fee := cfg.FlatShippingFee
	if fee.IsZero() {
		fee = decimal.NewFromInt(30)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{fee: fee, now: now, log: cfg.Logger}
}

// Checkout validates the cart against current stock, expiry, and balance, in
// that order, then commits. The first violated check in cart order determines
// the reported error; within a line the stock check precedes the expiry
// check. No mutation happens before every check has passed.
func (e *Engine) Checkout(ctx context.Context, cust *customer.Account, crt *cart.Cart, notifier shipping.Notifier) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if crt == nil || crt.Empty() {
		obs.ObserveCheckout(obs.CheckoutResultEmptyCart)
		return Result{}, ErrEmptyCart
	}

	now := e.now()
	for _, line := range crt.Lines() {
		if line.Qty > line.Product.Available() {
			obs.ObserveCheckout(obs.CheckoutResultOutOfStock)
			return Result{}, &OutOfStockError{Item: line.Product.Name()}
		}
		// Expiry is date-relative; evaluate exactly once per line so the
		// whole checkout sees one snapshot.
		if line.Product.Expired(now) {
			obs.ObserveCheckout(obs.CheckoutResultExpired)
			return Result{}, &ExpiredProductError{Item: line.Product.Name()}
		}
	}

	subtotal := crt.Subtotal()
	shippingFee := decimal.Zero
	if crt.TotalShippableWeight() > 0 {
		shippingFee = e.fee
	}
	total := subtotal.Add(shippingFee)

	if !cust.CanAfford(total) {
		obs.ObserveCheckout(obs.CheckoutResultInsufficientBalance)
		return Result{}, ErrInsufficientBalance
	}

	// Flatten before mutating so the notifier sees pre-mutation counts.
	units := crt.ShippableUnits()

	// Commit. Debit is unconditional after CanAfford; Reduce cannot fail
	// after the stock validation above.
	cust.Debit(total)
	for _, line := range crt.Lines() {
		if err := line.Product.Reduce(line.Qty); err != nil {
			return Result{}, fmt.Errorf("reduce stock after validation: %w", err)
		}
	}

	if len(units) > 0 && notifier != nil {
		if err := notifier.Ship(ctx, units); err != nil {
			// The transaction already committed; the notifier is a
			// side-effecting report whose result the engine does not consume.
			e.log.Warn().Err(err).Msg("shipping notifier failed")
		}
		obs.ObserveShippedUnits(len(units))
	}

	res := Result{
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Total:       total,
		Balance:     cust.Balance(),
		Shipped:     units,
	}
	obs.ObserveCheckout(obs.CheckoutResultOK)
	e.log.Info().
		Str("customer", cust.Name()).
		Str("subtotal", subtotal.String()).
		Str("shipping_fee", shippingFee.String()).
		Str("total", total.String()).
		Str("balance", res.Balance.String()).
		Int("shipped_units", len(units)).
		Msg("checkout_completed")
	return res, nil
}
