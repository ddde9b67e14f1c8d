package handler

import (
	"net/http"
	"strconv"

	"shopkart/internal/catalog"
	"shopkart/internal/model"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalogue HTTP requests.
type ProductHandler struct {
	service catalog.Service
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service catalog.Service, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests with paging, filter and sort
// query parameters.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	query := r.URL.Query()

	params := catalog.ListParams{
		Page:     1,
		Limit:    0,
		Category: query.Get("category"),
		Search:   query.Get("search"),
		Sort:     query.Get("sort"),
		Order:    query.Get("order"),
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidPaginationParam, "invalid page parameter", h.logger)
			return
		}
		params.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidPaginationParam, "invalid limit parameter", h.logger)
			return
		}
		params.Limit = limit
	}

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	id := r.URL.Path[len("/api/products/"):]
	if id == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeProductNotFound, "product ID is required", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve product", h.logger)
		return
	}

	if product == nil {
		writeDomainError(w, model.ErrProductNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}
