package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger    *slog.Logger
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		startedAt: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string    `json:"status"`
	Service       string    `json:"service"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
	Version       string    `json:"version"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:        "healthy",
		Service:       "pos-checkout",
		Timestamp:     time.Now().UTC(),
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Version:       Version,
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
