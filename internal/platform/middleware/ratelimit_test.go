package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedHandler(t *testing.T, limit int, window time.Duration) (http.Handler, *miniredis.Miniredis) {
	t.Helper()
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := NewRateLimiter(client, logger, WithLimit(limit), WithWindow(window))

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return limiter.Limit("score")(ok), server
}

func doFrom(handler http.Handler, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/score", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitAllowsWithinBudget(t *testing.T) {
	handler, _ := newLimitedHandler(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		rec := doFrom(handler, "10.0.0.1:50000")
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doFrom(handler, "10.0.0.1:50000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitIsolatesClients(t *testing.T) {
	handler, _ := newLimitedHandler(t, 1, time.Minute)

	assert.Equal(t, http.StatusOK, doFrom(handler, "10.0.0.1:50000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doFrom(handler, "10.0.0.1:50000").Code)
	assert.Equal(t, http.StatusOK, doFrom(handler, "10.0.0.2:50000").Code)
}

func TestRateLimitResetsAfterWindow(t *testing.T) {
	handler, server := newLimitedHandler(t, 1, time.Minute)

	assert.Equal(t, http.StatusOK, doFrom(handler, "10.0.0.1:50000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doFrom(handler, "10.0.0.1:50000").Code)

	server.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, doFrom(handler, "10.0.0.1:50000").Code)
}

func TestRateLimitFailsOpenOnRedisOutage(t *testing.T) {
	handler, server := newLimitedHandler(t, 1, time.Minute)
	server.Close()

	assert.Equal(t, http.StatusOK, doFrom(handler, "10.0.0.1:50000").Code)
	assert.Equal(t, http.StatusOK, doFrom(handler, "10.0.0.1:50000").Code)
}

func TestRateLimitDisabledWithoutClient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := NewRateLimiter(nil, logger, WithLimit(1))

	handler := limiter.Limit("score")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	assert.Equal(t, http.StatusOK, doFrom(handler, "10.0.0.1:50000").Code)
	assert.Equal(t, http.StatusOK, doFrom(handler, "10.0.0.1:50000").Code)
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.Header.Del("X-Forwarded-For")
	assert.Equal(t, "10.0.0.9", clientIP(req))
}
