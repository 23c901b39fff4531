package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/kasir/internal/common"
)

// Handler wires the catalog store to HTTP.
type Handler struct {
	Store    *Store
	Validate *validator.Validate
	Logger   zerolog.Logger
}

type createProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	UnitPrice   string   `json:"unitPrice" validate:"required"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	ExpiresAt   *string  `json:"expiresAt,omitempty" validate:"omitempty,datetime=2006-01-02"`
	WeightGrams *float64 `json:"weightGrams,omitempty" validate:"omitempty,gte=0"`
}

// ProductView is the JSON shape of a catalog entry.
type ProductView struct {
	Name        string   `json:"name"`
	UnitPrice   string   `json:"unitPrice"`
	Quantity    int      `json:"quantity"`
	Perishable  bool     `json:"perishable"`
	ExpiresAt   *string  `json:"expiresAt,omitempty"`
	Shippable   bool     `json:"shippable"`
	WeightGrams *float64 `json:"weightGrams,omitempty"`
}

// View renders a product for API responses.
func View(p *Product) ProductView {
	v := ProductView{
		Name:       p.Name(),
		UnitPrice:  p.UnitPrice().String(),
		Quantity:   p.Available(),
		Perishable: p.Perishable(),
		Shippable:  p.Shippable(),
	}
	if expiry, ok := p.ExpiresAt(); ok {
		formatted := expiry.Format("2006-01-02")
		v.ExpiresAt = &formatted
	}
	if p.Shippable() {
		w := p.UnitWeight()
		v.WeightGrams = &w
	}
	return v
}

// Create registers a new catalog entry.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog store not configured", nil)
		return
	}
	var payload createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid product payload", err.Error())
			return
		}
	}
	price, err := decimal.NewFromString(payload.UnitPrice)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "unitPrice is not a decimal", nil)
		return
	}
	var opts []Option
	if payload.ExpiresAt != nil {
		expiry, err := time.Parse("2006-01-02", *payload.ExpiresAt)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "expiresAt must be YYYY-MM-DD", nil)
			return
		}
		opts = append(opts, WithExpiry(expiry))
	}
	if payload.WeightGrams != nil {
		opts = append(opts, WithWeight(*payload.WeightGrams))
	}
	product, err := New(payload.Name, price, payload.Quantity, opts...)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	if err := h.Store.Put(product); err != nil {
		if errors.Is(err, ErrDuplicateProduct) {
			common.JSONError(w, http.StatusConflict, "DUPLICATE", "product already exists", payload.Name)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to store product", nil)
		return
	}
	h.Logger.Info().Str("product", product.Name()).Int("quantity", product.Available()).Msg("product_created")
	common.JSONData(w, http.StatusCreated, View(product))
}

// List returns all catalog entries.
func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog store not configured", nil)
		return
	}
	products := h.Store.List()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, View(p))
	}
	common.JSONData(w, http.StatusOK, views)
}

// Get returns a single catalog entry by name.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog store not configured", nil)
		return
	}
	name := chi.URLParam(r, "name")
	product, err := h.Store.Get(name)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", name)
		return
	}
	common.JSONData(w, http.StatusOK, View(product))
}
