package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type. Unclassified errors map to 500 so internals never leak.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenVerification),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidTokenFormat),
		errors.Is(err, auth.ErrAuthenticationFailed):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrTaskNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Raw error strings never reach clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors keep their sentinel text; the expiry case in
	// particular must stay distinguishable from a generally bad token.
	case errors.Is(err, auth.ErrExpiredToken):
		return auth.ErrExpiredToken.Error()

	case errors.Is(err, auth.ErrMissingToken):
		return auth.ErrMissingToken.Error()

	case errors.Is(err, auth.ErrInvalidTokenFormat):
		return auth.ErrInvalidTokenFormat.Error()

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenVerification):
		return auth.ErrInvalidToken.Error()

	case errors.Is(err, auth.ErrAuthenticationFailed):
		return auth.ErrAuthenticationFailed.Error()

	// Authorization errors
	case errors.Is(err, domain.ErrTaskNotOwned):
		return domain.ErrTaskNotOwned.Error()

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	// Bad request errors carry their validation detail; domain validation
	// messages are written to be client-safe.
	case errors.Is(err, domain.ErrInvalidStatus):
		return domain.ErrInvalidStatus.Error()

	case errors.Is(err, domain.ErrInvalidEmail):
		return domain.ErrInvalidEmail.Error()

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr.Error()
		}
		return "Validation error"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// RespondWithMappedError is the single serialization point for handler
// errors: map to a status code, pick a safe message, emit the envelope.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	respondError(w, r, status, message, err)
}

// SanitizeValidationError converts a go-playground/validator error into a
// user-friendly message without leaking struct internals.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
