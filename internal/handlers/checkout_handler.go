package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/pos-checkout/internal/cart"
	"github.com/Lixing-Zhang/pos-checkout/internal/middleware"
	"github.com/Lixing-Zhang/pos-checkout/internal/models"
	"github.com/Lixing-Zhang/pos-checkout/internal/service"
)

// CheckoutHandler handles requests against an open checkout session.
// Routes are expected to sit behind middleware.CheckoutSession.
type CheckoutHandler struct {
	checkout *service.CheckoutService
	log      *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout *service.CheckoutService, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		log:      log,
	}
}

// GetSession handles GET /api/checkout/{sessionId}
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, toSessionView(session), h.log)
}

// AdjustQuantity handles POST /api/checkout/{sessionId}/items/{index}/adjust
func (h *CheckoutHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	index, err := urlParamInt(r, "index")
	if err != nil {
		h.log.Warn("invalid line item index", "session_id", session.ID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid line item index", h.log)
		return
	}

	var req models.AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode adjust request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	outcome, err := h.checkout.AdjustQuantity(r.Context(), session.ID, index, req.Delta)
	if err != nil {
		h.log.Warn("failed to adjust quantity",
			"session_id", session.ID,
			"index", index,
			"delta", req.Delta,
			"error", err,
		)

		switch {
		case errors.Is(err, service.ErrInvalidDelta):
			WriteError(w, http.StatusBadRequest, "Delta must be non-zero", h.log)
		case errors.Is(err, service.ErrInvalidIndex):
			WriteError(w, http.StatusNotFound, "Line item not found", h.log)
		case errors.Is(err, service.ErrQuantityOverflow):
			WriteError(w, http.StatusUnprocessableEntity, "Quantity too large", h.log)
		case errors.Is(err, service.ErrSessionNotFound):
			WriteError(w, http.StatusNotFound, "Checkout session not found", h.log)
		default:
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, models.AdjustResponse{
		Result:  outcome.Result.String(),
		Applied: outcome.Result == cart.Applied,
		Cart:    toCartView(outcome.Cart),
	}, h.log)
}

// Summary handles GET /api/checkout/{sessionId}/summary
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	summary, err := h.checkout.Summary(r.Context(), session.ID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			WriteError(w, http.StatusNotFound, "Checkout session not found", h.log)
			return
		}
		h.log.Error("failed to build summary", "session_id", session.ID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, models.Summary{
		ItemCount:     summary.ItemCount,
		TotalQuantity: summary.TotalQuantity,
		Total:         cart.FormatMoney(summary.Total),
	}, h.log)
}

// CloseSession handles DELETE /api/checkout/{sessionId}
func (h *CheckoutHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.checkout.CloseSession(r.Context(), session.ID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			WriteError(w, http.StatusNotFound, "Checkout session not found", h.log)
			return
		}
		h.log.Error("failed to close checkout session", "session_id", session.ID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CheckoutHandler) session(w http.ResponseWriter, r *http.Request) (*service.CheckoutSession, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.log.Error("checkout route reached without session middleware", "path", r.URL.Path)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return nil, false
	}
	return session, true
}
