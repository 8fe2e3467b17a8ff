package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/pos-checkout/internal/models"
	"github.com/Lixing-Zhang/pos-checkout/internal/repository"
	"github.com/Lixing-Zhang/pos-checkout/internal/service"
	"github.com/Lixing-Zhang/pos-checkout/pkg/logger"
	"github.com/google/go-cmp/cmp"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	log := logger.New("error")
	registerRepo := repository.NewInMemoryRegisterRepository(6, []int{1, 2})
	registers := service.NewRegisterService(registerRepo)

	return NewRouter(RouterConfig{}, Services{
		Registers: registers,
		Checkout:  service.NewCheckoutService(registers, repository.NewInMemorySeedRepository(), log),
		Login:     service.NewLoginService(service.DefaultPasswordMinLength, log),
	}, log)
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func openTestSession(t *testing.T, h http.Handler, registerID string) models.Session {
	t.Helper()

	w := doRequest(t, h, http.MethodPost, "/api/registers/"+registerID+"/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("open session: expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var session models.Session
	if err := json.NewDecoder(w.Body).Decode(&session); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	return session
}

func adjust(t *testing.T, h http.Handler, sessionID, index string, delta int) (int, models.AdjustResponse) {
	t.Helper()

	w := doRequest(t, h, http.MethodPost,
		"/api/checkout/"+sessionID+"/items/"+index+"/adjust",
		models.AdjustRequest{Delta: delta})

	var resp models.AdjustResponse
	if w.Code == http.StatusOK {
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode adjust response: %v", err)
		}
	}
	return w.Code, resp
}

func quantities(c models.Cart) []int {
	out := make([]int, 0, len(c.Items))
	for _, item := range c.Items {
		out = append(out, item.Quantity)
	}
	return out
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t)

	w := doRequest(t, h, http.MethodGet, "/health", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
	}
}

func TestRouter_CheckoutFlow(t *testing.T) {
	h := newTestRouter(t)
	session := openTestSession(t, h, "3")

	if session.Cart.Total != "6000.00" {
		t.Fatalf("expected seed total 6000.00, got %s", session.Cart.Total)
	}

	// Increment the second line: 1x2000 + 3x2000
	code, resp := adjust(t, h, session.ID, "1", 1)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	if !resp.Applied || resp.Result != "applied" {
		t.Errorf("expected applied result, got %+v", resp)
	}
	if resp.Cart.Total != "8000.00" {
		t.Errorf("expected total 8000.00, got %s", resp.Cart.Total)
	}

	// Decrementing the first line below one is refused and leaves the cart alone
	code, resp = adjust(t, h, session.ID, "0", -1)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	if resp.Applied {
		t.Error("expected decrement at minimum to be rejected")
	}
	if resp.Result != "rejected_below_minimum" {
		t.Errorf("expected result rejected_below_minimum, got %s", resp.Result)
	}
	if diff := cmp.Diff([]int{1, 3}, quantities(resp.Cart)); diff != "" {
		t.Errorf("quantities mismatch (-want +got):\n%s", diff)
	}
	if resp.Cart.Total != "8000.00" {
		t.Errorf("expected total 8000.00, got %s", resp.Cart.Total)
	}

	// Summary reflects the same store
	w := doRequest(t, h, http.MethodGet, "/api/checkout/"+session.ID+"/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var summary models.Summary
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	want := models.Summary{ItemCount: 2, TotalQuantity: 4, Total: "8000.00"}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	// Session view
	w = doRequest(t, h, http.MethodGet, "/api/checkout/"+session.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var view models.Session
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if view.RegisterID != 3 {
		t.Errorf("expected register 3, got %d", view.RegisterID)
	}
	if view.Cart.Items[1].LineTotal != "6000.00" {
		t.Errorf("expected line total 6000.00, got %s", view.Cart.Items[1].LineTotal)
	}

	// Close releases the register
	w = doRequest(t, h, http.MethodDelete, "/api/checkout/"+session.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	w = doRequest(t, h, http.MethodGet, "/api/checkout/"+session.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 after close, got %d", w.Code)
	}

	openTestSession(t, h, "3")
}

func TestRouter_AdjustQuantity_Errors(t *testing.T) {
	h := newTestRouter(t)
	session := openTestSession(t, h, "4")

	tests := []struct {
		name           string
		path           string
		body           any
		expectedStatus int
	}{
		{
			name:           "zero delta",
			path:           "/api/checkout/" + session.ID + "/items/0/adjust",
			body:           models.AdjustRequest{Delta: 0},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric index",
			path:           "/api/checkout/" + session.ID + "/items/abc/adjust",
			body:           models.AdjustRequest{Delta: 1},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "index out of range",
			path:           "/api/checkout/" + session.ID + "/items/5/adjust",
			body:           models.AdjustRequest{Delta: 1},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "negative index",
			path:           "/api/checkout/" + session.ID + "/items/-1/adjust",
			body:           models.AdjustRequest{Delta: 1},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed body",
			path:           "/api/checkout/" + session.ID + "/items/0/adjust",
			body:           "not an object",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown session",
			path:           "/api/checkout/does-not-exist/items/0/adjust",
			body:           models.AdjustRequest{Delta: 1},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, h, http.MethodPost, tt.path, tt.body)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			var errResp map[string]string
			if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if errResp["error"] == "" {
				t.Error("expected error message in response")
			}
		})
	}

	// None of the failed requests touched the cart
	w := doRequest(t, h, http.MethodGet, "/api/checkout/"+session.ID+"/summary", nil)
	var summary models.Summary
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if summary.Total != "6000.00" {
		t.Errorf("expected total 6000.00, got %s", summary.Total)
	}
}

func TestRouter_AdjustQuantity_Overflow(t *testing.T) {
	h := newTestRouter(t)
	session := openTestSession(t, h, "5")

	maxInt := int(^uint(0) >> 1)
	code, _ := adjust(t, h, session.ID, "1", maxInt)

	if code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", code)
	}
}

func TestRouter_SessionsAreIsolated(t *testing.T) {
	h := newTestRouter(t)
	first := openTestSession(t, h, "3")
	second := openTestSession(t, h, "4")

	if code, _ := adjust(t, h, first.ID, "0", 5); code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}

	w := doRequest(t, h, http.MethodGet, "/api/checkout/"+second.ID+"/summary", nil)
	var summary models.Summary
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if summary.Total != "6000.00" {
		t.Errorf("expected untouched session total 6000.00, got %s", summary.Total)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/registers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("expected Access-Control-Allow-Origin header on preflight response")
	}
}
