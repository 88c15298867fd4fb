package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/httputil"
)

const (
	defaultRateLimit  = 60
	defaultRateWindow = time.Minute
)

// RateLimiter enforces a fixed-window per-client request limit backed by
// Redis. A Redis outage fails open: screening availability outranks strict
// throttling.
type RateLimiter struct {
	client *redis.Client
	logger *slog.Logger
	limit  int
	window time.Duration
}

// RateLimiterOption configures the limiter.
type RateLimiterOption func(*RateLimiter)

// WithLimit sets the number of requests allowed per window.
func WithLimit(n int) RateLimiterOption {
	return func(l *RateLimiter) {
		if n > 0 {
			l.limit = n
		}
	}
}

// WithWindow sets the window length.
func WithWindow(d time.Duration) RateLimiterOption {
	return func(l *RateLimiter) {
		if d > 0 {
			l.window = d
		}
	}
}

// NewRateLimiter builds a limiter over client. A nil client disables
// limiting; Limit becomes a pass-through.
func NewRateLimiter(client *redis.Client, logger *slog.Logger, opts ...RateLimiterOption) *RateLimiter {
	l := &RateLimiter{
		client: client,
		logger: logger,
		limit:  defaultRateLimit,
		window: defaultRateWindow,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Limit wraps next with per-client throttling under the given class name.
// The class keeps separate budgets per endpoint group.
func (l *RateLimiter) Limit(class string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.client == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := "aegis:ratelimit:" + class + ":" + clientIP(r)

			count, err := l.client.Incr(ctx, key).Result()
			if err != nil {
				l.logger.WarnContext(ctx, "rate limit check failed, allowing request",
					"class", class,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
					l.logger.WarnContext(ctx, "rate limit window expiry failed", "error", err)
				}
			}

			remaining := int64(l.limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(l.limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited,
					"rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			fwd = fwd[:idx]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
