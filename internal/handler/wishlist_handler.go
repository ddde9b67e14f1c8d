package handler

import (
	"encoding/json"
	"net/http"

	"shopkart/internal/cart"
	"shopkart/internal/catalog"
	"shopkart/internal/model"

	"github.com/rs/zerolog"
)

// WishlistHandler handles wishlist HTTP requests.
type WishlistHandler struct {
	store   *cart.Store
	catalog catalog.Service
	logger  zerolog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(store *cart.Store, catalogService catalog.Service, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		store:   store,
		catalog: catalogService,
		logger:  logger.With().Str("handler", "wishlist").Logger(),
	}
}

// wishlistResponse is the wishlist view.
type wishlistResponse struct {
	Items []model.WishlistEntry `json:"items"`
}

// Get handles GET /api/wishlist requests.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, wishlistResponse{Items: h.store.Wishlist()})
}

// addEntryRequest is the body for POST /api/wishlist/items.
type addEntryRequest struct {
	ProductID string `json:"productId"`
}

// AddEntry handles POST /api/wishlist/items requests.
func (h *WishlistHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeProductNotFound, "product ID is required", h.logger)
		return
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

	if err := h.store.AddToWishlist(r.Context(), *product); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, wishlistResponse{Items: h.store.Wishlist()})
}

// RemoveEntry handles DELETE /api/wishlist/items/{id} requests.
func (h *WishlistHandler) RemoveEntry(w http.ResponseWriter, r *http.Request, productID string) {
	if err := h.store.RemoveFromWishlist(r.Context(), productID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, wishlistResponse{Items: h.store.Wishlist()})
}

// MoveToCart handles POST /api/wishlist/items/{id}/move requests. The
// entry is removed from the wishlist and merged into the cart atomically.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request, productID string) {
	if err := h.store.MoveWishlistToCart(r.Context(), productID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, wishlistResponse{Items: h.store.Wishlist()})
}
