package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kasir/internal/cart"
	"github.com/noah-isme/kasir/internal/catalog"
	"github.com/noah-isme/kasir/internal/checkout"
	"github.com/noah-isme/kasir/internal/customer"
	"github.com/noah-isme/kasir/internal/shipping"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	calls [][]shipping.Unit
}

func (n *recordingNotifier) Ship(_ context.Context, units []shipping.Unit) error {
	n.calls = append(n.calls, units)
	return nil
}

func newEngine(t *testing.T) *checkout.Engine {
	t.Helper()
	return checkout.NewEngine(checkout.Config{
		Now:    func() time.Time { return testNow },
		Logger: zerolog.Nop(),
	})
}

func mustProduct(t *testing.T, name string, price int64, qty int, opts ...catalog.Option) *catalog.Product {
	t.Helper()
	p, err := catalog.New(name, decimal.NewFromInt(price), qty, opts...)
	require.NoError(t, err)
	return p
}

func mustCustomer(t *testing.T, balance int64) *customer.Account {
	t.Helper()
	a, err := customer.New("Ali", decimal.NewFromInt(balance))
	require.NoError(t, err)
	return a
}

func freshCheese(t *testing.T) *catalog.Product {
	return mustProduct(t, "Cheese", 100, 5,
		catalog.WithExpiry(testNow.AddDate(0, 0, 5)), catalog.WithWeight(200))
}

func TestCheckoutReferenceScenario(t *testing.T) {
	cheese := freshCheese(t)
	ali := mustCustomer(t, 1000)
	notifier := &recordingNotifier{}

	crt := cart.New()
	require.NoError(t, crt.Add(cheese, 2))

	res, err := newEngine(t).Checkout(context.Background(), ali, crt, notifier)
	require.NoError(t, err)

	require.True(t, res.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal %s", res.Subtotal)
	require.True(t, res.ShippingFee.Equal(decimal.NewFromInt(30)), "fee %s", res.ShippingFee)
	require.True(t, res.Total.Equal(decimal.NewFromInt(230)), "total %s", res.Total)
	require.True(t, res.Balance.Equal(decimal.NewFromInt(770)), "balance %s", res.Balance)
	require.True(t, ali.Balance().Equal(decimal.NewFromInt(770)))
	require.Equal(t, 3, cheese.Available())

	require.Len(t, notifier.calls, 1)
	units := notifier.calls[0]
	require.Len(t, units, 2)
	var totalWeight float64
	for _, u := range units {
		require.Equal(t, "Cheese", u.Name())
		totalWeight += u.UnitWeight()
	}
	require.InEpsilon(t, 400.0, totalWeight, 1e-9)
}

func TestCheckoutTotalIsSubtotalPlusFee(t *testing.T) {
	cheese := freshCheese(t)
	scratch := mustProduct(t, "ScratchCard", 50, 100)
	ali := mustCustomer(t, 10_000)

	crt := cart.New()
	require.NoError(t, crt.Add(cheese, 1))
	require.NoError(t, crt.Add(scratch, 3))

	res, err := newEngine(t).Checkout(context.Background(), ali, crt, &recordingNotifier{})
	require.NoError(t, err)
	require.True(t, res.Total.Equal(res.Subtotal.Add(res.ShippingFee)))
	require.True(t, res.ShippingFee.Equal(decimal.NewFromInt(30)))
}

func TestCheckoutEmptyCart(t *testing.T) {
	ali := mustCustomer(t, 1000)
	notifier := &recordingNotifier{}

	_, err := newEngine(t).Checkout(context.Background(), ali, cart.New(), notifier)
	require.ErrorIs(t, err, checkout.ErrEmptyCart)
	require.True(t, ali.Balance().Equal(decimal.NewFromInt(1000)))
	require.Empty(t, notifier.calls)
}

func TestCheckoutInsufficientBalanceLeavesStateUntouched(t *testing.T) {
	cheese := freshCheese(t)
	ali := mustCustomer(t, 10)
	notifier := &recordingNotifier{}

	crt := cart.New()
	require.NoError(t, crt.Add(cheese, 2))

	_, err := newEngine(t).Checkout(context.Background(), ali, crt, notifier)
	require.ErrorIs(t, err, checkout.ErrInsufficientBalance)
	require.True(t, ali.Balance().Equal(decimal.NewFromInt(10)))
	require.Equal(t, 5, cheese.Available())
	require.Empty(t, notifier.calls)
}

func TestCheckoutOutOfStockRecheckedAtCheckoutTime(t *testing.T) {
	cheese := freshCheese(t)
	ali := mustCustomer(t, 1000)

	crt := cart.New()
	require.NoError(t, crt.Add(cheese, 3))

	// Stock drops between add and checkout; the add-time pre-check no
	// longer holds and the engine must notice.
	require.NoError(t, cheese.Reduce(4))

	_, err := newEngine(t).Checkout(context.Background(), ali, crt, &recordingNotifier{})
	var stockErr *checkout.OutOfStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, "Cheese", stockErr.Item)
	require.True(t, ali.Balance().Equal(decimal.NewFromInt(1000)))
	require.Equal(t, 1, cheese.Available())
}

func TestCheckoutExpiredProduct(t *testing.T) {
	oldCheese := mustProduct(t, "Cheese", 100, 5,
		catalog.WithExpiry(testNow.AddDate(0, 0, -1)), catalog.WithWeight(200))
	ali := mustCustomer(t, 1000)

	crt := cart.New()
	require.NoError(t, crt.Add(oldCheese, 1))

	_, err := newEngine(t).Checkout(context.Background(), ali, crt, &recordingNotifier{})
	var expiredErr *checkout.ExpiredProductError
	require.ErrorAs(t, err, &expiredErr)
	require.Equal(t, "Cheese", expiredErr.Item)
	require.Equal(t, 5, oldCheese.Available())
}

func TestCheckoutFirstFailingLineWins(t *testing.T) {
	// Line 1 is expired, line 2 is out of stock. Validation walks lines in
	// cart order and stops at the first violation, so the expiry on line 1
	// is what the caller sees.
	oldCheese := mustProduct(t, "Cheese", 100, 5,
		catalog.WithExpiry(testNow.AddDate(0, 0, -1)), catalog.WithWeight(200))
	biscuits := mustProduct(t, "Biscuits", 150, 2,
		catalog.WithExpiry(testNow.AddDate(0, 0, 2)), catalog.WithWeight(700))
	ali := mustCustomer(t, 1000)

	crt := cart.New()
	require.NoError(t, crt.Add(oldCheese, 1))
	require.NoError(t, crt.Add(biscuits, 2))
	require.NoError(t, biscuits.Reduce(1))

	_, err := newEngine(t).Checkout(context.Background(), ali, crt, &recordingNotifier{})
	var expiredErr *checkout.ExpiredProductError
	require.ErrorAs(t, err, &expiredErr)
	require.Equal(t, "Cheese", expiredErr.Item)
}

func TestCheckoutStockCheckPrecedesExpiryPerLine(t *testing.T) {
	// One line violating both: the quantity check runs before the expiry
	// check within a line.
	oldCheese := mustProduct(t, "Cheese", 100, 5,
		catalog.WithExpiry(testNow.AddDate(0, 0, -1)), catalog.WithWeight(200))
	ali := mustCustomer(t, 1000)

	crt := cart.New()
	require.NoError(t, crt.Add(oldCheese, 5))
	require.NoError(t, oldCheese.Reduce(1))

	_, err := newEngine(t).Checkout(context.Background(), ali, crt, &recordingNotifier{})
	var stockErr *checkout.OutOfStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, "Cheese", stockErr.Item)
}

func TestCheckoutNoFeeWithoutShippables(t *testing.T) {
	scratch := mustProduct(t, "ScratchCard", 50, 100)
	ali := mustCustomer(t, 1000)
	notifier := &recordingNotifier{}

	crt := cart.New()
	require.NoError(t, crt.Add(scratch, 2))

	res, err := newEngine(t).Checkout(context.Background(), ali, crt, notifier)
	require.NoError(t, err)
	require.True(t, res.ShippingFee.IsZero())
	require.True(t, res.Total.Equal(decimal.NewFromInt(100)))
	require.Empty(t, notifier.calls, "no shippable units, no notifier call")
}

func TestCheckoutFlatFeeIgnoresWeightMagnitude(t *testing.T) {
	feather := mustProduct(t, "Feather", 10, 10, catalog.WithWeight(1))
	ali := mustCustomer(t, 1000)

	crt := cart.New()
	require.NoError(t, crt.Add(feather, 1))

	res, err := newEngine(t).Checkout(context.Background(), ali, crt, &recordingNotifier{})
	require.NoError(t, err)
	require.True(t, res.ShippingFee.Equal(decimal.NewFromInt(30)))
}

func TestCheckoutSecondRunRevalidates(t *testing.T) {
	cheese := freshCheese(t)
	ali := mustCustomer(t, 10_000)
	engine := newEngine(t)

	crt := cart.New()
	require.NoError(t, crt.Add(cheese, 3))

	_, err := engine.Checkout(context.Background(), ali, crt, &recordingNotifier{})
	require.NoError(t, err)
	require.Equal(t, 2, cheese.Available())

	// Same cart object again: stock has dropped below the requested
	// quantity, so re-validation rejects it. Expected, not a bug.
	_, err = engine.Checkout(context.Background(), ali, crt, &recordingNotifier{})
	var stockErr *checkout.OutOfStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, "Cheese", stockErr.Item)
	require.Equal(t, 2, cheese.Available())
}

func TestCheckoutCustomFlatFee(t *testing.T) {
	cheese := freshCheese(t)
	ali := mustCustomer(t, 1000)
	engine := checkout.NewEngine(checkout.Config{
		FlatShippingFee: decimal.NewFromInt(45),
		Now:             func() time.Time { return testNow },
		Logger:          zerolog.Nop(),
	})

	crt := cart.New()
	require.NoError(t, crt.Add(cheese, 1))

	res, err := engine.Checkout(context.Background(), ali, crt, &recordingNotifier{})
	require.NoError(t, err)
	require.True(t, res.ShippingFee.Equal(decimal.NewFromInt(45)))
}
