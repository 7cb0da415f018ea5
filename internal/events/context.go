package events

import "context"

type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID tags ctx so events published while handling it carry the id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
