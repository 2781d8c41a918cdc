package contextutil

import "context"

// contextKey is private so keys never collide with other packages.
type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID stores the request id, also used by tests.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID returns the request id propagated by middleware, or "".
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// GetKey exposes the raw key for middleware that needs it.
func GetKey() string {
	return string(requestIDKey)
}
