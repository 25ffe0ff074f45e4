// Package auth provides token issuance and verification for the API.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TokenService defines operations for managing signed identity tokens.
type TokenService interface {
	// IssueToken creates a signed token carrying the user's identity.
	// Returns the token string or an error if signing fails.
	IssueToken(ctx context.Context, user *domain.User) (string, error)

	// VerifyToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken past expiry, ErrInvalidToken for a malformed
	// token or bad signature, and ErrTokenVerification for any other
	// decode failure.
	VerifyToken(ctx context.Context, tokenString string) (*Claims, error)

	// ExtractTokenFromHeader pulls the raw token out of an Authorization
	// header value. The header must carry the literal "Bearer " prefix
	// followed by a non-empty token. Returns ErrMissingToken if the header
	// is absent or the remainder is empty, ErrInvalidTokenFormat if the
	// prefix is wrong.
	ExtractTokenFromHeader(headerValue string) (string, error)

	// Lifetime returns the configured token lifetime.
	Lifetime() time.Duration
}

// Claims represents the identity carried by a token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"userId"`

	// Email is the user's normalized email at issue time. The ownership
	// guard compares it against task owners.
	Email string `json:"email"`

	// Standard registered claims
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}
