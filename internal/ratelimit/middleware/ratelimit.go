package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Ibramnsh/backend-sidokepung/internal/ratelimit/models"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/httputil"
	"github.com/Ibramnsh/backend-sidokepung/pkg/requestcontext"
)

// Defaults for the auth endpoints.
const (
	DefaultLimit  = 10
	DefaultWindow = time.Minute
)

// BucketStore counts hits per key inside a sliding window.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

type Middleware struct {
	store    BucketStore
	logger   *slog.Logger
	limit    int
	window   time.Duration
	disabled bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// WithLimit overrides DefaultLimit and DefaultWindow. Non-positive values are ignored.
func WithLimit(limit int, window time.Duration) Option {
	return func(m *Middleware) {
		if limit > 0 {
			m.limit = limit
		}
		if window > 0 {
			m.window = window
		}
	}
}

func New(store BucketStore, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		store:  store,
		logger: logger,
		limit:  DefaultLimit,
		window: DefaultWindow,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// ByIP limits requests per client IP within the named scope. Store failures
// let the request through.
func (m *Middleware) ByIP(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)
			result, err := m.store.Allow(ctx, scope+":"+ip, m.limit, m.window)
			if err != nil {
				m.logger.ErrorContext(ctx, "failed to check rate limit",
					"request_id", requestcontext.RequestID(ctx),
					"scope", scope,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)
			if !result.Allowed {
				m.logger.WarnContext(ctx, "rate limit exceeded",
					"request_id", requestcontext.RequestID(ctx),
					"scope", scope,
					"client_ip", ip,
				)
				writeRateLimitExceeded(w, result)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.ExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests from this IP address. Please try again later.",
		RetryAfter: result.RetryAfter,
	})
}
