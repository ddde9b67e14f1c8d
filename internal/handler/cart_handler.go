package handler

import (
	"encoding/json"
	"net/http"

	"shopkart/internal/cart"
	"shopkart/internal/catalog"
	"shopkart/internal/checkout"
	"shopkart/internal/model"

	"github.com/rs/zerolog"
)

// CartHandler handles cart and coupon HTTP requests.
type CartHandler struct {
	store        *cart.Store
	catalog      catalog.Service
	orchestrator *checkout.Orchestrator
	logger       zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(
	store *cart.Store,
	catalogService catalog.Service,
	orchestrator *checkout.Orchestrator,
	logger zerolog.Logger,
) *CartHandler {
	return &CartHandler{
		store:        store,
		catalog:      catalogService,
		orchestrator: orchestrator,
		logger:       logger.With().Str("handler", "cart").Logger(),
	}
}

// cartResponse is the cart view returned by every cart mutation: the
// current lines plus the freshly recomputed summary.
type cartResponse struct {
	Items   []model.CartLine   `json:"items"`
	Summary model.PriceSummary `json:"summary"`
	Coupon  *model.Coupon      `json:"coupon,omitempty"`
}

func (h *CartHandler) cartView() cartResponse {
	return cartResponse{
		Items:   h.store.Snapshot(),
		Summary: h.orchestrator.Summary(),
		Coupon:  h.orchestrator.AppliedCoupon(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.cartView())
}

// addItemRequest is the body for POST /api/cart/items.
type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItem handles POST /api/cart/items requests. The unit price is
// snapshotted from the catalogue at add time.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeProductNotFound, "product ID is required", h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetByID(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve product", h.logger)
		return
	}
	if product == nil {
		writeDomainError(w, model.ErrProductNotFound, h.logger)
		return
	}

	if err := h.store.AddItem(r.Context(), *product, req.Quantity); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, h.cartView())
}

// changeQuantityRequest is the body for PATCH /api/cart/items/{id}.
type changeQuantityRequest struct {
	Delta int `json:"delta"`
}

// UpdateItem handles PATCH /api/cart/items/{id} requests. A delta that
// takes the quantity to zero or below removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request, productID string) {
	var req changeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.store.ChangeQuantity(r.Context(), productID, req.Delta); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.cartView())
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request, productID string) {
	if err := h.store.RemoveItem(r.Context(), productID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.cartView())
}

// applyCouponRequest is the body for POST /api/cart/coupon.
type applyCouponRequest struct {
	Code string `json:"code"`
}

// ApplyCoupon handles POST /api/cart/coupon requests.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	var req applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if _, err := h.orchestrator.ApplyCoupon(req.Code); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.cartView())
}
