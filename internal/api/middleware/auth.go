package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/redact"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// AuthMiddleware verifies bearer tokens for protected routes.
type AuthMiddleware struct {
	tokenService auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate validates the Authorization header's token and attaches
// the caller's identity to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := m.tokenService.ExtractTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := m.tokenService.VerifyToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, auth.ErrExpiredToken.Error())
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			default:
				slog.Error("failed to verify token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication error")
			}
			return
		}

		ctx := shared.WithIdentity(r.Context(), shared.Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
