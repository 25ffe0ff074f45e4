package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/redact"
)

// includeStacks controls whether error responses carry a stack trace.
// Enabled outside production, set once at startup.
var includeStacks atomic.Bool

// ConfigureStackTraces sets whether error responses include stack traces.
func ConfigureStackTraces(enabled bool) {
	includeStacks.Store(enabled)
}

// ErrorBody is the inner error object of an error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Stack      string `json:"stack,omitempty"`
}

// ErrorResponse is the wire shape of every error response.
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
	Path      string    `json:"path"`
	TraceID   string    `json:"traceId,omitempty"`
}

// ResponseOption customizes error response behavior.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel raises 4xx errors to WARN level instead of the
// default DEBUG level. Use for operational issues like rate limiting or
// repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes the standard error envelope with the given
// status and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithErrorAndLog(w, r, status, message, nil)
}

// RespondWithErrorAndLog writes the standard error envelope and logs the
// underlying error. The raw error never reaches the client; logs get a
// redacted copy.
//
// Log level strategy: 5xx at ERROR, 429 at WARN, other 4xx at DEBUG
// unless elevated with WithElevatedLogLevel.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	body := ErrorBody{
		StatusCode: status,
		Message:    userMessage,
	}
	if includeStacks.Load() && err != nil {
		body.Stack = string(debug.Stack())
	}

	errorResponse := ErrorResponse{
		Error:     body,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
		TraceID:   traceID,
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	var responseOpts responseOptions
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, errorResponse)
}
