package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kasir/internal/cart"
	"github.com/noah-isme/kasir/internal/common"
	"github.com/noah-isme/kasir/internal/customer"
	"github.com/noah-isme/kasir/internal/shipping"
)

// Handler wires the checkout engine to HTTP.
type Handler struct {
	Engine    *Engine
	Carts     *cart.Store
	Customers *customer.Store
	Notifier  shipping.Notifier
	Validate  *validator.Validate
	Logger    zerolog.Logger
}

type checkoutRequest struct {
	CartID     string `json:"cartId" validate:"required,uuid"`
	CustomerID string `json:"customerId" validate:"required,uuid"`
}

// ResultView is the JSON shape of a checkout result.
type ResultView struct {
	Subtotal     string `json:"subtotal"`
	ShippingFee  string `json:"shippingFee"`
	Total        string `json:"total"`
	Balance      string `json:"balance"`
	ShippedUnits int    `json:"shippedUnits"`
}

// Create runs the checkout transaction for a cart and customer.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Engine == nil || h.Carts == nil || h.Customers == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout not configured", nil)
		return
	}
	var payload checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid checkout payload", err.Error())
			return
		}
	}
	cartID, err := uuid.Parse(payload.CartID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid cart id", nil)
		return
	}
	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid customer id", nil)
		return
	}
	crt, err := h.Carts.Get(cartID)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart not found", nil)
		return
	}
	cust, err := h.Customers.Get(customerID)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "customer not found", nil)
		return
	}

	res, err := h.Engine.Checkout(r.Context(), cust, crt, h.Notifier)
	if err != nil {
		common.JSONAppError(w, asAppError(err))
		return
	}

	// The cart is consumed by exactly one checkout; drop it so a replay
	// cannot race the already-reduced stock.
	h.Carts.Delete(cartID)

	common.JSONData(w, http.StatusOK, ResultView{
		Subtotal:     res.Subtotal.String(),
		ShippingFee:  res.ShippingFee.String(),
		Total:        res.Total.String(),
		Balance:      res.Balance.String(),
		ShippedUnits: len(res.Shipped),
	})
}

// asAppError maps engine errors onto the API error envelope.
func asAppError(err error) error {
	var outOfStock *OutOfStockError
	var expired *ExpiredProductError
	switch {
	case errors.Is(err, ErrEmptyCart):
		return common.NewAppError("EMPTY_CART", err.Error(), http.StatusUnprocessableEntity, err)
	case errors.As(err, &outOfStock):
		return common.NewAppError("OUT_OF_STOCK", err.Error(), http.StatusConflict, err).WithDetails(outOfStock.Item)
	case errors.As(err, &expired):
		return common.NewAppError("PRODUCT_EXPIRED", err.Error(), http.StatusConflict, err).WithDetails(expired.Item)
	case errors.Is(err, ErrInsufficientBalance):
		return common.NewAppError("INSUFFICIENT_BALANCE", err.Error(), http.StatusPaymentRequired, err)
	default:
		return common.NewAppError("INTERNAL", "checkout failed", http.StatusInternalServerError, err)
	}
}
