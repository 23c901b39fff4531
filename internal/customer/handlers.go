package customer

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/kasir/internal/common"
)

// Handler wires customer accounts to HTTP.
type Handler struct {
	Store    *Store
	Validate *validator.Validate
	Logger   zerolog.Logger
}

type createCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Balance string `json:"balance" validate:"required"`
}

// Create registers a customer account.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "customer store not configured", nil)
		return
	}
	var payload createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid customer payload", err.Error())
			return
		}
	}
	balance, err := decimal.NewFromString(payload.Balance)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "balance is not a decimal", nil)
		return
	}
	account, err := New(payload.Name, balance)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	id := h.Store.Put(account)
	h.Logger.Info().Str("customer_id", id.String()).Str("name", account.Name()).Msg("customer_created")
	common.JSONData(w, http.StatusCreated, map[string]any{
		"customerId": id.String(),
		"name":       account.Name(),
		"balance":    account.Balance().String(),
	})
}

// Get returns a customer's name and current balance.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "customer store not configured", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid customer id", nil)
		return
	}
	account, err := h.Store.Get(id)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "customer not found", nil)
		return
	}
	common.JSONData(w, http.StatusOK, map[string]any{
		"customerId": id.String(),
		"name":       account.Name(),
		"balance":    account.Balance().String(),
	})
}
