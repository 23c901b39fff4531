package receipt_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kasir/internal/cart"
	"github.com/noah-isme/kasir/internal/catalog"
	"github.com/noah-isme/kasir/internal/checkout"
	"github.com/noah-isme/kasir/internal/receipt"
)

func TestRender(t *testing.T) {
	cheese, err := catalog.New("Cheese", decimal.NewFromInt(100), 5, catalog.WithWeight(200))
	require.NoError(t, err)
	scratch, err := catalog.New("ScratchCard", decimal.NewFromInt(50), 100)
	require.NoError(t, err)

	crt := cart.New()
	require.NoError(t, crt.Add(cheese, 2))
	require.NoError(t, crt.Add(scratch, 1))

	res := checkout.Result{
		Subtotal:    decimal.NewFromInt(250),
		ShippingFee: decimal.NewFromInt(30),
		Total:       decimal.NewFromInt(280),
		Balance:     decimal.NewFromInt(720),
	}

	var buf bytes.Buffer
	require.NoError(t, receipt.Render(&buf, crt.Lines(), res))

	want := "** Checkout receipt **\n" +
		"2x Cheese 200\n" +
		"1x ScratchCard 50\n" +
		"----------------------\n" +
		"Subtotal 250\n" +
		"Shipping 30\n" +
		"Amount 280\n" +
		"Customer balance 720\n"
	require.Equal(t, want, buf.String())
}
