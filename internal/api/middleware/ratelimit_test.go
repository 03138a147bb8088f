package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/libris-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(cfg config.RateLimitConfig, now *time.Time) *RateLimiter {
	rl := NewRateLimiter(cfg)
	rl.now = func() time.Time { return *now }
	return rl
}

func doRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimiter_Limit(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, Burst: 2}, &now)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1235").Code)

	rr := doRequest(handler, "10.0.0.1:1236")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), "Too many requests")

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.2:1234").Code)

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1237").Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(config.RateLimitConfig{Enabled: false, RequestsPerSecond: 1, Burst: 1})
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1234").Code)
	}
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, Burst: 1}, &now)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	doRequest(handler, "10.0.0.1:1")
	doRequest(handler, "10.0.0.2:1")
	assert.Len(t, rl.clients, 2)

	now = now.Add(clientIdleTTL + time.Second)
	doRequest(handler, "10.0.0.3:1")
	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "10.0.0.3")
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.RemoteAddr = "192.0.2.9"
	assert.Equal(t, "192.0.2.9", clientIP(req))
}
