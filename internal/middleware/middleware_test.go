package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"uqm-starseed/internal/shared/config"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, BurstSize: 2})
	h := rl.Middleware(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/starmap/1", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterDisabledPassesThrough(t *testing.T) {
	rl := NewRateLimiter(context.Background(), config.RateLimitConfig{Enabled: false, BurstSize: 0})
	h := rl.Middleware(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestSweepForgetsIdleClients(t *testing.T) {
	rl := NewRateLimiter(context.Background(), config.RateLimitConfig{RequestsPerSecond: 10, BurstSize: 1})
	rl.limiter("10.0.0.2").Allow()

	assert.Equal(t, 0, rl.sweep(time.Now()))
	assert.Equal(t, 1, rl.sweep(time.Now().Add(time.Second)))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "192.168.1.1", clientIP(req, false))
	assert.Equal(t, "203.0.113.7", clientIP(req, true))
}

func TestCORSAllowsFrontend(t *testing.T) {
	c := NewCORS(config.FrontendConfig{URL: "http://localhost:3000"})
	h := c.Middleware(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/starmap/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
