// Command demo seeds the reference catalog, runs a checkout for the sample
// customer, and prints the shipment notice and receipt to stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/kasir/internal/cart"
	"github.com/noah-isme/kasir/internal/catalog"
	"github.com/noah-isme/kasir/internal/checkout"
	"github.com/noah-isme/kasir/internal/customer"
	"github.com/noah-isme/kasir/internal/obs"
	"github.com/noah-isme/kasir/internal/receipt"
	"github.com/noah-isme/kasir/internal/shipping"
)

func main() {
	logger := obs.NewLogger("console", "warn")
	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger zerolog.Logger) error {
	store, err := seedCatalog(time.Now())
	if err != nil {
		return err
	}

	ali, err := customer.New("Ali", decimal.NewFromInt(1000))
	if err != nil {
		return err
	}

	crt := cart.New()
	for _, item := range []struct {
		name string
		qty  int
	}{
		{"Cheese", 2},
		{"Biscuits", 1},
		{"ScratchCard", 1},
	} {
		product, err := store.Get(item.name)
		if err != nil {
			return err
		}
		if err := crt.Add(product, item.qty); err != nil {
			return err
		}
	}

	engine := checkout.NewEngine(checkout.Config{Logger: logger})
	notifier := shipping.NewConsoleNotifier(os.Stdout, logger)

	res, err := engine.Checkout(context.Background(), ali, crt, notifier)
	if err != nil {
		return err
	}
	return receipt.Render(os.Stdout, crt.Lines(), res)
}

// seedCatalog registers the five sample products relative to the given date.
func seedCatalog(now time.Time) (*catalog.Store, error) {
	store := catalog.NewStore()
	seeds := []struct {
		name  string
		price int64
		qty   int
		opts  []catalog.Option
	}{
		{"Cheese", 100, 5, []catalog.Option{catalog.WithExpiry(now.AddDate(0, 0, 5)), catalog.WithWeight(200)}},
		{"Biscuits", 150, 2, []catalog.Option{catalog.WithExpiry(now.AddDate(0, 0, 2)), catalog.WithWeight(700)}},
		{"TV", 5000, 3, []catalog.Option{catalog.WithWeight(8000)}},
		{"Mobile", 3000, 10, nil},
		{"ScratchCard", 50, 100, nil},
	}
	for _, seed := range seeds {
		product, err := catalog.New(seed.name, decimal.NewFromInt(seed.price), seed.qty, seed.opts...)
		if err != nil {
			return nil, err
		}
		if err := store.Put(product); err != nil {
			return nil, err
		}
	}
	return store, nil
}
