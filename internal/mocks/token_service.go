package mocks

import (
	"context"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing.
type MockTokenService struct {
	IssueTokenFn             func(ctx context.Context, user *domain.User) (string, error)
	VerifyTokenFn            func(ctx context.Context, tokenString string) (*auth.Claims, error)
	ExtractTokenFromHeaderFn func(headerValue string) (string, error)

	// Default values used when functions aren't explicitly defined
	Token         string
	Claims        *auth.Claims
	IssueErr      error
	VerifyErr     error
	TokenLifetime time.Duration
}

var _ auth.TokenService = (*MockTokenService)(nil)

// IssueToken implements the auth.TokenService interface.
func (m *MockTokenService) IssueToken(ctx context.Context, user *domain.User) (string, error) {
	if m.IssueTokenFn != nil {
		return m.IssueTokenFn(ctx, user)
	}
	return m.Token, m.IssueErr
}

// VerifyToken implements the auth.TokenService interface.
func (m *MockTokenService) VerifyToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.VerifyTokenFn != nil {
		return m.VerifyTokenFn(ctx, tokenString)
	}
	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	return m.Claims, nil
}

// ExtractTokenFromHeader implements the auth.TokenService interface.
func (m *MockTokenService) ExtractTokenFromHeader(headerValue string) (string, error) {
	if m.ExtractTokenFromHeaderFn != nil {
		return m.ExtractTokenFromHeaderFn(headerValue)
	}
	if headerValue == "" {
		return "", auth.ErrMissingToken
	}
	const prefix = "Bearer "
	if len(headerValue) <= len(prefix) || headerValue[:len(prefix)] != prefix {
		return "", auth.ErrInvalidTokenFormat
	}
	return headerValue[len(prefix):], nil
}

// Lifetime implements the auth.TokenService interface.
func (m *MockTokenService) Lifetime() time.Duration {
	if m.TokenLifetime != 0 {
		return m.TokenLifetime
	}
	return time.Hour
}
