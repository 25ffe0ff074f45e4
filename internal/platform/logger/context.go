package logger

import (
	"context"
	"log/slog"
)

// loggerKey is the context key type for the request-scoped logger.
// An unexported type prevents collisions with keys from other packages.
type loggerKey struct{}

// WithLogger returns a context carrying the given logger. Middleware uses
// this to attach a request-scoped logger (e.g. with a trace ID bound).
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// FromContext retrieves the logger from the context, falling back to the
// process default logger when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger from the context, falling back
// to the provided default. Use this in components that carry their own
// component-scoped logger.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return log
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
