// Package middleware contains the HTTP middleware chain: tracing,
// authentication, task ownership, and rate limiting.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
)

// TraceMiddleware adds a trace ID to the request context. Apply early in
// the chain so every handler and error response can correlate logs.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
