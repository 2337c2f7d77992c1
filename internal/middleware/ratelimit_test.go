package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newTestLimiter(t *testing.T, cfg RateLimitConfig) *RateLimiter {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewRateLimiter(ctx, cfg)
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	handler := newTestLimiter(t, RateLimitConfig{RequestsPerSecond: 100, Burst: 10}).Middleware()(okHandler())

	for range 5 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	handler := newTestLimiter(t, RateLimitConfig{RequestsPerSecond: 1, Burst: 2}).Middleware()(okHandler())

	// Exhaust the burst
	for range 2 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.InDelta(t, float64(429), body["code"], 0.001)
	assert.Equal(t, "rate limit exceeded", body["message"])
}

func TestRateLimiter_PerClientIsolation(t *testing.T) {
	handler := newTestLimiter(t, RateLimitConfig{RequestsPerSecond: 1, Burst: 2}).Middleware()(okHandler())

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	require.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5678"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"), "different client should not be affected")
}

func TestRateLimiter_SweepDropsIdleClients(t *testing.T) {
	l := newTestLimiter(t, RateLimitConfig{RequestsPerSecond: 1, Burst: 1})
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.limiterFor("10.0.0.1")
	now = now.Add(11 * time.Minute)
	l.limiterFor("10.0.0.2")
	l.sweep(10 * time.Minute)

	_, stale := l.clients.Load("10.0.0.1")
	_, fresh := l.clients.Load("10.0.0.2")
	assert.False(t, stale)
	assert.True(t, fresh)
}

func TestClientIP_ExtractsHost(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		trust      bool
		want       string
	}{
		{name: "IPv4 with port", remoteAddr: "192.168.1.1:12345", want: "192.168.1.1"},
		{name: "IPv6 with port", remoteAddr: "[::1]:12345", want: "::1"},
		{name: "X-Forwarded-For ignored by default", remoteAddr: "10.0.0.1:1234", xff: "203.0.113.50", want: "10.0.0.1"},
		{name: "X-Forwarded-For single", remoteAddr: "10.0.0.1:1234", xff: "203.0.113.50", trust: true, want: "203.0.113.50"},
		{
			name:       "X-Forwarded-For chain",
			remoteAddr: "10.0.0.1:1234",
			xff:        "203.0.113.50, 70.41.3.18, 150.172.238.178",
			trust:      true,
			want:       "203.0.113.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, clientIP(req, tt.trust))
		})
	}
}
