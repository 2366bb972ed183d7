package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestSecurity_SetsHeadersWithoutOverwriting(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	rr := httptest.NewRecorder()
	rr.Header().Set("X-Frame-Options", "SAMEORIGIN")
	Security(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/order", nil))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Fatalf("existing X-Frame-Options overwritten: %q", got)
	}
	if rr.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS set on plain HTTP")
	}
}

func TestForceHTTPS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		host   string
		proto  string
		status int
	}{
		{"localhost passes", "localhost:9009", "", http.StatusOK},
		{"loopback ip passes", "127.0.0.1:9009", "", http.StatusOK},
		{"proxy https passes", "orders.example.com", "https", http.StatusOK},
		{"public http redirects", "orders.example.com", "", http.StatusPermanentRedirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/order/recent", nil)
			req.Host = tt.host
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			rr := httptest.NewRecorder()
			ForceHTTPS(ok).ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d", rr.Code, tt.status)
			}
			if tt.status == http.StatusPermanentRedirect {
				if loc := rr.Header().Get("Location"); loc != "https://orders.example.com/api/order/recent" {
					t.Fatalf("Location = %q", loc)
				}
			}
		})
	}
}

func TestRequestLog_PassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rr := httptest.NewRecorder()
	RequestLog(zap.NewNop().Sugar())(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", rr.Code)
	}
}
