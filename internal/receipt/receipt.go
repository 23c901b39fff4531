// Package receipt renders the console receipt for a completed checkout. It
// is a presentation collaborator: it formats a checkout result and never
// feeds back into the engine.
package receipt

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/kasir/internal/cart"
	"github.com/noah-isme/kasir/internal/checkout"
)

// Render writes the line-by-line receipt for the cart and result.
func Render(w io.Writer, lines []cart.Line, res checkout.Result) error {
	if _, err := fmt.Fprintln(w, "** Checkout receipt **"); err != nil {
		return err
	}
	for _, line := range lines {
		lineTotal := line.Product.UnitPrice().Mul(decimal.NewFromInt(int64(line.Qty)))
		if _, err := fmt.Fprintf(w, "%dx %s %s\n", line.Qty, line.Product.Name(), lineTotal); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "----------------------"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Subtotal %s\n", res.Subtotal); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Shipping %s\n", res.ShippingFee); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Amount %s\n", res.Total); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Customer balance %s\n", res.Balance)
	return err
}
