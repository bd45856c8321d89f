package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/udvasito/storefront/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewWithOutput(logging.Config{Level: "error", Format: "text"}, io.Discard)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowListed(t *testing.T) {
	handler := NewCORSMiddleware([]string{"https://shop.example.com"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Fatalf("Allow-Origin = %q", got)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	handler := NewCORSMiddleware([]string{"https://shop.example.com"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Allow-Origin = %q, want unset", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := NewCORSMiddleware([]string{"*"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", resp.Code)
	}
}

func TestRateLimiterThrottles(t *testing.T) {
	logger := testLogger()
	handler := NewRateLimiter(1, 2, logger).Handler(okHandler())

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		req.RemoteAddr = "10.0.0.1:50000"
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		last = resp.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("third burst request = %d, want 429", last)
	}

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.RemoteAddr = "10.0.0.2:50000"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("fresh client = %d, want 200", resp.Code)
	}
}

func TestTracingGeneratesTraceID(t *testing.T) {
	logger := testLogger()
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.GetTraceID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := NewTracingMiddleware(logger).Handler(inner)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/books", nil))

	if seen == "" {
		t.Fatal("expected trace id in request context")
	}
	if got := resp.Header().Get("X-Trace-ID"); got != seen {
		t.Fatalf("header trace id %q != context trace id %q", got, seen)
	}
}

func TestTracingPropagatesIncomingTraceID(t *testing.T) {
	logger := testLogger()
	handler := NewTracingMiddleware(logger).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("X-Trace-ID"); got != "trace-123" {
		t.Fatalf("trace id = %q, want trace-123", got)
	}
}
