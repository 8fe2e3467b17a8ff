package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/pos-checkout/internal/service"
)

// RegisterHandler handles register grid requests
type RegisterHandler struct {
	registers *service.RegisterService
	checkout  *service.CheckoutService
	logger    *slog.Logger
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(registers *service.RegisterService, checkout *service.CheckoutService, logger *slog.Logger) *RegisterHandler {
	return &RegisterHandler{
		registers: registers,
		checkout:  checkout,
		logger:    logger,
	}
}

// ListRegisters handles GET /api/registers
func (h *RegisterHandler) ListRegisters(w http.ResponseWriter, r *http.Request) {
	registers, err := h.registers.ListRegisters(r.Context())
	if err != nil {
		h.logger.Error("failed to list registers", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, registers, h.logger)
}

// OpenSession handles POST /api/registers/{registerId}/sessions
// - 201: session opened with the seed cart
// - 400: Invalid ID supplied
// - 404: Register not found
// - 409: Register already in use
func (h *RegisterHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	registerID, err := urlParamInt(r, "registerId")
	if err != nil {
		h.logger.Warn("invalid register ID format", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	session, err := h.checkout.OpenSession(r.Context(), registerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegisterNotFound):
			h.logger.Info("register not found", "register_id", registerID)
			WriteError(w, http.StatusNotFound, "Register not found", h.logger)
		case errors.Is(err, service.ErrRegisterInUse):
			h.logger.Info("register already in use", "register_id", registerID)
			WriteError(w, http.StatusConflict, "Register is already in use", h.logger)
		default:
			h.logger.Error("failed to open checkout session", "register_id", registerID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, toSessionView(session), h.logger)
}
