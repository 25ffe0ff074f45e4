package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// ContextKey is the key type for request-scoped values.
type ContextKey string

const (
	// IdentityContextKey is the context key for the authenticated identity.
	IdentityContextKey ContextKey = "identity"

	// TaskContextKey is the context key for a task attached by the
	// ownership guard.
	TaskContextKey ContextKey = "task"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID.
	TraceIDLength = 16 // 32 hex characters
)

// Identity is the authenticated caller, derived from verified token claims.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// WithIdentity attaches the authenticated identity to the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// GetIdentity retrieves the authenticated identity from the context.
func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(Identity)
	return identity, ok
}

// WithTask attaches a task to the context. Set by the ownership guard so
// downstream handlers don't re-fetch it.
func WithTask(ctx context.Context, task *domain.Task) context.Context {
	return context.WithValue(ctx, TaskContextKey, task)
}

// GetTask retrieves the task attached by the ownership guard.
func GetTask(ctx context.Context) (*domain.Task, bool) {
	task, ok := ctx.Value(TaskContextKey).(*domain.Task)
	return task, ok
}

// SetTraceID adds a fresh trace ID to the context for correlating logs
// and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context, or "" if unset.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		slog.Error("failed to generate random trace ID, falling back to time-based id",
			"error", err)
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(time.Now().String())).String()
	}
	return hex.EncodeToString(b)
}
