package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/pos-checkout/internal/models"
	"github.com/Lixing-Zhang/pos-checkout/internal/service"
)

// LoginHandler handles login form submissions
type LoginHandler struct {
	login *service.LoginService
	log   *slog.Logger
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(login *service.LoginService, log *slog.Logger) *LoginHandler {
	return &LoginHandler{
		login: login,
		log:   log,
	}
}

// Login handles POST /api/login
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode login request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	result, err := h.login.Login(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			WriteJSON(w, http.StatusBadRequest, models.ValidationErrorResponse{
				Error:  "Invalid login form",
				Fields: verr.Fields,
			}, h.log)
			return
		}

		h.log.Error("failed to process login", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, models.LoginResponse{
		Status:   result.Status,
		Username: result.Username,
	}, h.log)
}
