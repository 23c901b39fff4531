package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/kasir/internal/catalog"
	"github.com/noah-isme/kasir/internal/common"
)

// Handler wires cart operations to HTTP.
type Handler struct {
	Store    *Store
	Catalog  *catalog.Store
	Validate *validator.Validate
	Logger   zerolog.Logger
}

type addItemRequest struct {
	Product string `json:"product" validate:"required"`
	Qty     int    `json:"qty" validate:"required,gt=0"`
}

// LineView is the JSON shape of a cart line.
type LineView struct {
	Product  string `json:"product"`
	Qty      int    `json:"qty"`
	Subtotal string `json:"subtotal"`
}

// Create registers an empty cart and returns its identifier.
func (h *Handler) Create(w http.ResponseWriter, _ *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart store not configured", nil)
		return
	}
	id, _ := h.Store.Create()
	h.Logger.Debug().Str("cart_id", id.String()).Msg("cart_created")
	common.JSONData(w, http.StatusCreated, map[string]any{"cartId": id.String()})
}

// Get returns cart contents and the running subtotal.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cartFromRequest(w, r)
	if !ok {
		return
	}
	lines := c.Lines()
	views := make([]LineView, 0, len(lines))
	for _, line := range lines {
		lineTotal := line.Product.UnitPrice().Mul(intToDecimal(line.Qty))
		views = append(views, LineView{
			Product:  line.Product.Name(),
			Qty:      line.Qty,
			Subtotal: lineTotal.String(),
		})
	}
	common.JSONData(w, http.StatusOK, map[string]any{
		"items":    views,
		"subtotal": c.Subtotal().String(),
	})
}

// AddItem appends a product line to the cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.cartFromRequest(w, r)
	if !ok {
		return
	}
	if h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog store not configured", nil)
		return
	}
	var payload addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid item payload", err.Error())
			return
		}
	}
	product, err := h.Catalog.Get(payload.Product)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", payload.Product)
		return
	}
	if err := c.Add(product, payload.Qty); err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			common.JSONError(w, http.StatusConflict, "INSUFFICIENT_STOCK", stockErr.Error(), stockErr.Item)
			return
		}
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	h.Logger.Debug().Str("product", product.Name()).Int("qty", payload.Qty).Msg("cart_item_added")
	common.JSONData(w, http.StatusOK, map[string]any{
		"subtotal": c.Subtotal().String(),
	})
}

func (h *Handler) cartFromRequest(w http.ResponseWriter, r *http.Request) (*Cart, bool) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart store not configured", nil)
		return nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid cart id", nil)
		return nil, false
	}
	c, err := h.Store.Get(id)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart not found", nil)
		return nil, false
	}
	return c, true
}

func intToDecimal(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}
