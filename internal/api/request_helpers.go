package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// respondError emits the standard error envelope and logs the underlying
// cause at the level appropriate for the status code.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// getIdentityFromContext extracts the authenticated identity placed in
// the request context by the authentication middleware.
func getIdentityFromContext(r *http.Request) (shared.Identity, bool) {
	identity, ok := shared.GetIdentity(r.Context())
	if !ok || identity.UserID == uuid.Nil {
		return shared.Identity{}, false
	}
	return identity, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}
