package shipping

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Unit is one physical item to ship. The cart flattens each shippable line
// into one Unit per requested piece, so a quantity of 3 yields the same
// reference three times.
type Unit interface {
	Name() string
	UnitWeight() float64
}

// Notifier receives the flattened unit sequence of a committed checkout.
// Implementations may hand off to any fulfillment backend; the engine only
// depends on this call.
type Notifier interface {
	Ship(ctx context.Context, units []Unit) error
}

// ConsoleNotifier writes a human-readable shipment notice. Units are grouped
// by name in first-seen order with a count per name and the summed package
// weight.
type ConsoleNotifier struct {
	out io.Writer
	log zerolog.Logger
}

// NewConsoleNotifier builds a notifier writing the notice to out.
func NewConsoleNotifier(out io.Writer, log zerolog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{out: out, log: log}
}

// Ship prints the shipment notice. An empty unit sequence is a strict no-op:
// nothing is written and nothing is logged.
func (n *ConsoleNotifier) Ship(_ context.Context, units []Unit) error {
	if len(units) == 0 {
		return nil
	}

	var order []string
	counts := make(map[string]int)
	unitWeights := make(map[string]float64)
	var totalWeight float64
	for _, u := range units {
		name := u.Name()
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
		unitWeights[name] = u.UnitWeight()
		totalWeight += u.UnitWeight()
	}

	if _, err := fmt.Fprintln(n.out, "** Shipment notice **"); err != nil {
		return fmt.Errorf("write shipment notice: %w", err)
	}
	for _, name := range order {
		if _, err := fmt.Fprintf(n.out, "%dx %s %.0fg\n", counts[name], name, unitWeights[name]); err != nil {
			return fmt.Errorf("write shipment notice: %w", err)
		}
	}
	if _, err := fmt.Fprintf(n.out, "Total package weight %.1fkg\n", totalWeight/1000.0); err != nil {
		return fmt.Errorf("write shipment notice: %w", err)
	}

	n.log.Info().
		Int("units", len(units)).
		Int("distinct", len(order)).
		Float64("total_weight_g", totalWeight).
		Msg("shipment_notice")
	return nil
}
