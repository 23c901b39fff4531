package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart rejects a checkout with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientBalance rejects a checkout the customer cannot afford.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// OutOfStockError rejects a line whose requested quantity exceeds the
// product's availability at checkout time.
type OutOfStockError struct {
	Item string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s is out of stock", e.Item)
}

// ExpiredProductError rejects a perishable line past its expiry date.
type ExpiredProductError struct {
	Item string
}

func (e *ExpiredProductError) Error() string {
	return fmt.Sprintf("%s is expired", e.Item)
}
