package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSPreflightAndAllowedOrigin(t *testing.T) {
	h := GuardMiddleware(SecConfig{AllowedOrigins: []string{"https://app.example"}, RPS: 100, Burst: 100})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/arena/turn", nil)
	req.Header.Set("Origin", "https://app.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status: %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("allow-origin header missing")
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/arena/turn", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("disallowed origin must not get CORS headers")
	}
}

func TestRateLimitKicksIn(t *testing.T) {
	h := GuardMiddleware(SecConfig{RPS: 1, Burst: 2})(okHandler())

	limited := false
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/threads", nil)
		req.RemoteAddr = "10.1.2.3:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Fatalf("burst of requests was never rate limited")
	}
}

func TestHealthzBypassesRateLimit(t *testing.T) {
	h := GuardMiddleware(SecConfig{RPS: 0.0001, Burst: 1})(okHandler())
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "10.9.9.9:1111"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("health probe must never be limited, got %d", rr.Code)
		}
	}
}
