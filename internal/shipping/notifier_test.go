package shipping_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kasir/internal/shipping"
)

type fakeUnit struct {
	name   string
	weight float64
}

func (u fakeUnit) Name() string        { return u.name }
func (u fakeUnit) UnitWeight() float64 { return u.weight }

func TestShipGroupsByFirstSeenOrder(t *testing.T) {
	var buf bytes.Buffer
	notifier := shipping.NewConsoleNotifier(&buf, zerolog.Nop())

	units := []shipping.Unit{
		fakeUnit{"Cheese", 200},
		fakeUnit{"Cheese", 200},
		fakeUnit{"Biscuits", 700},
	}
	require.NoError(t, notifier.Ship(context.Background(), units))

	want := "** Shipment notice **\n" +
		"2x Cheese 200g\n" +
		"1x Biscuits 700g\n" +
		"Total package weight 1.1kg\n"
	require.Equal(t, want, buf.String())
}

func TestShipEmptyIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	notifier := shipping.NewConsoleNotifier(&buf, zerolog.Nop())
	require.NoError(t, notifier.Ship(context.Background(), nil))
	require.Empty(t, buf.String())
}

func TestShipSingleKind(t *testing.T) {
	var buf bytes.Buffer
	notifier := shipping.NewConsoleNotifier(&buf, zerolog.Nop())
	units := []shipping.Unit{
		fakeUnit{"Cheese", 200},
		fakeUnit{"Cheese", 200},
	}
	require.NoError(t, notifier.Ship(context.Background(), units))
	want := "** Shipment notice **\n" +
		"2x Cheese 200g\n" +
		"Total package weight 0.4kg\n"
	require.Equal(t, want, buf.String())
}
