package customer

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewValidation(t *testing.T) {
	if _, err := New("", decimal.NewFromInt(10)); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := New("Ali", decimal.NewFromInt(-1)); !errors.Is(err, ErrNegativeBalance) {
		t.Fatalf("expected ErrNegativeBalance, got %v", err)
	}
}

func TestCanAffordBoundary(t *testing.T) {
	ali, err := New("Ali", decimal.NewFromInt(230))
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	if !ali.CanAfford(decimal.NewFromInt(230)) {
		t.Fatalf("an exact balance must be affordable")
	}
	if ali.CanAfford(decimal.NewFromFloat(230.01)) {
		t.Fatalf("amount above balance must not be affordable")
	}
}

func TestDebit(t *testing.T) {
	ali, err := New("Ali", decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	ali.Debit(decimal.NewFromInt(230))
	if !ali.Balance().Equal(decimal.NewFromInt(770)) {
		t.Fatalf("expected balance 770, got %s", ali.Balance())
	}
}

func TestFractionalBalance(t *testing.T) {
	ali, err := New("Ali", decimal.NewFromFloat(100.50))
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	ali.Debit(decimal.NewFromFloat(0.25))
	if !ali.Balance().Equal(decimal.NewFromFloat(100.25)) {
		t.Fatalf("expected balance 100.25, got %s", ali.Balance())
	}
}
