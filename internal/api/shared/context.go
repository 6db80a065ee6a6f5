package shared

import (
	"context"
	"encoding/hex"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is the type of request-scoped values set by the HTTP layer.
type ContextKey string

const (
	// CallerContextKey holds the authenticated caller's email.
	CallerContextKey ContextKey = "caller"

	// TraceIDKey holds the request's trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithCaller returns a copy of ctx carrying the authenticated caller's email.
func WithCaller(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, CallerContextKey, email)
}

// GetCaller returns the authenticated caller's email and whether one is set.
func GetCaller(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(CallerContextKey).(string)
	return email, ok && email != ""
}

// generateTraceID returns 32 hex characters from a random UUID. If the random
// source fails it falls back to a time-ordered UUID.
func generateTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		slog.Error("failed to generate random trace ID", "error", err, "fallback", "uuid v7")
		if id, err = uuid.NewV7(); err != nil {
			return ""
		}
	}
	return hex.EncodeToString(id[:])
}
