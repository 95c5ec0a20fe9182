package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hrms/internal/domain/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	handler := RateLimit(2, time.Minute)(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/fines", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fines", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on a limited response")
	}
}

func TestRateLimitKeysByActor(t *testing.T) {
	handler := RateLimit(1, time.Minute)(okHandler())

	send := func(userID string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/fines", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		ctx := context.WithValue(req.Context(), ctxKeyUser, auth.UserContext{UserID: userID, Role: auth.RoleEmployee})
		handler.ServeHTTP(rec, req.WithContext(ctx))
		return rec.Code
	}

	if code := send("u1"); code != http.StatusOK {
		t.Fatalf("first u1 request = %d, want 200", code)
	}
	if code := send("u2"); code != http.StatusOK {
		t.Fatalf("u2 should have its own bucket, got %d", code)
	}
	if code := send("u1"); code != http.StatusTooManyRequests {
		t.Fatalf("second u1 request = %d, want 429", code)
	}
}

func TestSensitiveRateScope(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   sensitiveScope
	}{
		{http.MethodPost, "/api/v1/auth/login", sensitiveScopeAuth},
		{http.MethodPost, "/api/v1/appeals/abc/resolve", sensitiveScopeActor},
		{http.MethodPost, "/api/v1/payroll/process", sensitiveScopeActor},
		{http.MethodPut, "/api/v1/leaves/abc/status", sensitiveScopeActor},
		{http.MethodGet, "/api/v1/auth/login", sensitiveScopeNone},
		{http.MethodPost, "/api/v1/fines", sensitiveScopeNone},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		if got := sensitiveRateScope(req); got != tt.want {
			t.Fatalf("%s %s scope = %q, want %q", tt.method, tt.path, got, tt.want)
		}
	}
}

func TestSensitiveLoginKeyedByUsername(t *testing.T) {
	handler := SensitiveMutationRateLimit(4, time.Minute)(okHandler())

	send := func(ip, body string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = ip + ":1234"
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// Same username from different IPs shares the username bucket.
	if code := send("10.0.0.1", `{"username":"admin"}`); code != http.StatusOK {
		t.Fatalf("first attempt = %d, want 200", code)
	}
	if code := send("10.0.0.2", `{"username":"admin"}`); code != http.StatusTooManyRequests {
		t.Fatalf("second attempt for same username = %d, want 429", code)
	}
}
