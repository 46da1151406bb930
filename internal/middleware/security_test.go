package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kunalgoyal9/gembot-backend/internal/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	middleware.SecurityHeaders(okHandler()).ServeHTTP(rr, req)

	want := map[string]string{
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"X-XSS-Protection":          "1; mode=block",
		"Content-Security-Policy":   "default-src 'self'",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	}
	for header, value := range want {
		if got := rr.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
	if rr.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", rr.Code)
	}
}

func TestHostCheck(t *testing.T) {
	tests := []struct {
		name        string
		allowedHost string
		reqHost     string
		wantStatus  int
	}{
		{name: "empty allowed host disables the check", allowedHost: "", reqHost: "evil.example.com", wantStatus: http.StatusOK},
		{name: "matching host", allowedHost: "api.example.com", reqHost: "api.example.com", wantStatus: http.StatusOK},
		{name: "matching host with port", allowedHost: "api.example.com", reqHost: "api.example.com:5000", wantStatus: http.StatusOK},
		{name: "case insensitive match", allowedHost: "api.example.com", reqHost: "API.Example.Com", wantStatus: http.StatusOK},
		{name: "mismatched host", allowedHost: "api.example.com", reqHost: "evil.example.com", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/health", nil)
			req.Host = tt.reqHost
			rr := httptest.NewRecorder()
			middleware.HostCheck(tt.allowedHost)(okHandler()).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}
