package customer

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyName is returned when an account is created without a name.
	ErrEmptyName = errors.New("customer name is required")
	// ErrNegativeBalance is returned for a negative starting balance.
	ErrNegativeBalance = errors.New("balance must not be negative")
)

// Account holds a customer's spendable balance. The balance may be
// fractional and must stay non-negative after any successful checkout; the
// engine guarantees that by calling CanAfford before Debit.
type Account struct {
	name    string
	balance decimal.Decimal
}

// New validates inputs and constructs an account.
func New(name string, balance decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if balance.IsNegative() {
		return nil, ErrNegativeBalance
	}
	return &Account{name: name, balance: balance}, nil
}

// Name returns the customer's name.
func (a *Account) Name() string { return a.name }

// Balance returns the current spendable balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// CanAfford reports whether the balance covers the amount.
func (a *Account) CanAfford(amount decimal.Decimal) bool {
	return !a.balance.LessThan(amount)
}

// Debit subtracts the amount unconditionally. It is the commit step of a
// checkout; callers check CanAfford first.
func (a *Account) Debit(amount decimal.Decimal) {
	a.balance = a.balance.Sub(amount)
}
