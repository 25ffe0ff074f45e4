package api

import (
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// AuthHandler handles the authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		respondError(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		Token:     session.Token,
		User:      session.User,
		ExpiresIn: session.ExpiresIn,
	})
}

// Verify handles POST /auth/verify. The token travels in the
// Authorization header, not the body.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	verification, err := h.authService.Verify(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VerifyResponse{
		Valid: true,
		Payload: ClaimsPayload{
			UserID:    verification.Claims.UserID.String(),
			Email:     verification.Claims.Email,
			IssuedAt:  verification.Claims.IssuedAt,
			ExpiresAt: verification.Claims.ExpiresAt,
		},
		User: verification.User,
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	session, err := h.authService.Refresh(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		Token:     session.Token,
		User:      session.User,
		ExpiresIn: session.ExpiresIn,
	})
}

// Logout handles POST /auth/logout. Tokens are stateless, so this only
// acknowledges; clients discard their copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}
