// Package requestcontext carries request-scoped values from the HTTP
// middleware down to services without importing net/http.
package requestcontext

import (
	"context"
	"time"
)

type key int

const (
	keyUserID key = iota
	keyUsername
	keyClientIP
	keyUserAgent
	keyRequestID
	keyRequestTime
)

func str(ctx context.Context, k key) string {
	v, _ := ctx.Value(k).(string)
	return v
}

// WithUser records the authenticated admin.
func WithUser(ctx context.Context, userID, username string) context.Context {
	ctx = context.WithValue(ctx, keyUserID, userID)
	return context.WithValue(ctx, keyUsername, username)
}

// UserID is "" for anonymous requests.
func UserID(ctx context.Context) string   { return str(ctx, keyUserID) }
func Username(ctx context.Context) string { return str(ctx, keyUsername) }

// WithClientMetadata records the caller's address and User-Agent header.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, keyClientIP, clientIP)
	return context.WithValue(ctx, keyUserAgent, userAgent)
}

func ClientIP(ctx context.Context) string  { return str(ctx, keyClientIP) }
func UserAgent(ctx context.Context) string { return str(ctx, keyUserAgent) }

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// RequestID is the correlation id attached to every log line of a request.
func RequestID(ctx context.Context) string { return str(ctx, keyRequestID) }

// WithTime pins the clock Now returns for this context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, keyRequestTime, t)
}

// Now returns the pinned request time, or the wall clock when none is set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(keyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}
