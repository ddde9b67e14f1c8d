package handler

import (
	"encoding/json"
	"net/http"

	"shopkart/internal/checkout"
	"shopkart/internal/model"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout and invoice HTTP requests.
type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	logger       zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(orchestrator *checkout.Orchestrator, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		logger:       logger.With().Str("handler", "checkout").Logger(),
	}
}

// Checkout handles POST /api/checkout requests. On success the invoice is
// returned and the cart has been cleared.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	invoice, err := h.orchestrator.Checkout(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, invoice)
}

// LatestInvoice handles GET /api/invoice requests.
func (h *CheckoutHandler) LatestInvoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	invoice, err := h.orchestrator.LatestInvoice(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve invoice", h.logger)
		return
	}

	if invoice == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeInternalError, "no invoice found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}
