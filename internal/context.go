package internal

import (
	"context"
	"time"
)

type ctxKey string

// ContextUserKey carries the viewer whose balances a snapshot fetch computes.
const ContextUserKey ctxKey = "userID"

// UserIDFromContext returns the viewer carried in the context, or the empty
// string when none was set.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value(ContextUserKey).(string); ok {
		return userID
	}
	return ""
}

// ContextWithUserID tags the context with the viewer for downstream fetches.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserKey, userID)
}

// WithTimeout bounds a fetch, falling back to 5 seconds when the configured
// duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
