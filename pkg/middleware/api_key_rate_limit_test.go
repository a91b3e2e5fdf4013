package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roomdesk/pkg/logger"
)

func limiterLog() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func TestAllow_PerKeyWindow(t *testing.T) {
	rl := NewAPIKeyRateLimiter(2, time.Minute, limiterLog())
	defer rl.Stop()

	if !rl.Allow("key-a") || !rl.Allow("key-a") {
		t.Fatal("first two requests for a key must pass")
	}
	if rl.Allow("key-a") {
		t.Error("third request within the window must be rejected")
	}
	if !rl.Allow("key-b") {
		t.Error("a different key must have its own budget")
	}
}

func TestAllow_EmptyKeyPassesThrough(t *testing.T) {
	rl := NewAPIKeyRateLimiter(1, time.Minute, limiterLog())
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		if !rl.Allow("") {
			t.Fatal("requests without a key are not rate limited here")
		}
	}
}

func TestAPIKeyRateLimit_Rejects(t *testing.T) {
	rl := NewAPIKeyRateLimiter(1, time.Minute, limiterLog())
	defer rl.Stop()

	handler := APIKeyRateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/classroom/rooms", nil)
	req.Header.Set("X-API-Key", "key-a")
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", second.Code)
	}
}
