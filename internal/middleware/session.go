package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Lixing-Zhang/pos-checkout/internal/service"
	"github.com/go-chi/chi/v5"
)

// SessionIDParam is the URL parameter holding the checkout session ID
const SessionIDParam = "sessionId"

type sessionKey struct{}

// SessionLookup resolves a checkout session by ID
type SessionLookup interface {
	GetSession(ctx context.Context, id string) (*service.CheckoutSession, error)
}

// CheckoutSession middleware loads the session named by {sessionId} into the
// request context. Unknown sessions get a 404 before the handler runs.
func CheckoutSession(lookup SessionLookup) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, SessionIDParam)
			if id == "" {
				writeError(w, http.StatusBadRequest, "Session ID is required")
				return
			}

			session, err := lookup.GetSession(r.Context(), id)
			if err != nil {
				if errors.Is(err, service.ErrSessionNotFound) {
					writeError(w, http.StatusNotFound, "Checkout session not found")
					return
				}
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session stored by CheckoutSession
func SessionFromContext(ctx context.Context) (*service.CheckoutSession, bool) {
	session, ok := ctx.Value(sessionKey{}).(*service.CheckoutSession)
	return session, ok
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
