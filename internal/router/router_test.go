package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"slidepress/internal/handlers"
)

// newTestRouter builds the route tree with an empty handler group.
// Routes that touch stores are not exercised here; this covers the
// static surface (health, unknown routes, method matching).
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	api := handlers.NewAPI(nil, nil, nil, nil, nil, nil, nil)
	r, stop := New(api)
	t.Cleanup(stop)
	return r
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
	if body := rec.Body.String(); body != `{"status":"ok"}` {
		t.Errorf("unexpected body %q", body)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestMalformedProjectIDRejected(t *testing.T) {
	router := newTestRouter(t)

	// UUID parsing happens before any store access, so a nil-dependency
	// handler group still answers this safely.
	req := httptest.NewRequest(http.MethodDelete, "/api/projects/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
