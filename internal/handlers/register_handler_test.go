package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/pos-checkout/internal/models"
	"github.com/Lixing-Zhang/pos-checkout/internal/repository"
	"github.com/Lixing-Zhang/pos-checkout/internal/service"
	"github.com/Lixing-Zhang/pos-checkout/pkg/logger"
	"github.com/go-chi/chi/v5"
)

func newTestRegisterHandler() *RegisterHandler {
	log := logger.New("error")
	repo := repository.NewInMemoryRegisterRepository(6, []int{1, 2})
	registers := service.NewRegisterService(repo)
	checkout := service.NewCheckoutService(registers, repository.NewInMemorySeedRepository(), log)
	return NewRegisterHandler(registers, checkout, log)
}

func TestListRegisters(t *testing.T) {
	// Setup
	handler := newTestRegisterHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/registers", nil)
	w := httptest.NewRecorder()

	// Execute
	handler.ListRegisters(w, req)

	// Assert
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var registers []models.Register
	if err := json.NewDecoder(w.Body).Decode(&registers); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(registers) != 6 {
		t.Fatalf("expected 6 registers, got %d", len(registers))
	}

	for _, reg := range registers {
		want := models.RegisterAvailable
		if reg.ID == 1 || reg.ID == 2 {
			want = models.RegisterInUse
		}
		if reg.Status != want {
			t.Errorf("register %d: expected status %s, got %s", reg.ID, want, reg.Status)
		}
	}
}

func TestOpenSession(t *testing.T) {
	tests := []struct {
		name           string
		registerID     string
		expectedStatus int
	}{
		{
			name:           "available register",
			registerID:     "3",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "register in use",
			registerID:     "1",
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unknown register",
			registerID:     "99",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid ID",
			registerID:     "abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			handler := newTestRegisterHandler()
			r := chi.NewRouter()
			r.Post("/api/registers/{registerId}/sessions", handler.OpenSession)

			req := httptest.NewRequest(http.MethodPost, "/api/registers/"+tt.registerID+"/sessions", nil)
			w := httptest.NewRecorder()

			// Execute
			r.ServeHTTP(w, req)

			// Assert
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.expectedStatus != http.StatusCreated {
				return
			}

			var session models.Session
			if err := json.NewDecoder(w.Body).Decode(&session); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if session.ID == "" {
				t.Error("expected session ID to be set")
			}
			if len(session.Cart.Items) != 2 {
				t.Errorf("expected 2 seed items, got %d", len(session.Cart.Items))
			}
			if session.Cart.Total != "6000.00" {
				t.Errorf("expected total 6000.00, got %s", session.Cart.Total)
			}
		})
	}
}

func TestOpenSession_SecondOpenConflicts(t *testing.T) {
	handler := newTestRegisterHandler()
	r := chi.NewRouter()
	r.Post("/api/registers/{registerId}/sessions", handler.OpenSession)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/registers/5/sessions", nil))
	if first.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/registers/5/sessions", nil))
	if second.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", second.Code)
	}
}
