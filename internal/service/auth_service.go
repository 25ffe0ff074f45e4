package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Session is the result of a successful login or refresh.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresIn int64 // seconds until the token expires
}

// Verification is the result of a successful token verification.
type Verification struct {
	User   *domain.User
	Claims *auth.Claims
}

// AuthService implements the authentication flow: login issues a token,
// verify and refresh check one, logout is a stateless no-op. Tokens are
// never stored and cannot be revoked server-side.
type AuthService struct {
	userStore    store.UserStore
	tokenService auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userStore store.UserStore, tokenService auth.TokenService, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		userStore:    userStore,
		tokenService: tokenService,
		logger:       logger.With(slog.String("component", "auth_service")),
	}
}

// Login authenticates by email and issues a token. A nonexistent account
// and a deactivated one both fail with ErrAuthenticationFailed so the
// response doesn't reveal which case occurred.
func (s *AuthService) Login(ctx context.Context, email string) (*Session, error) {
	normalized := domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(normalized); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login failed: unknown email")
			return nil, auth.ErrAuthenticationFailed
		}
		s.logger.Error("login failed: user lookup error", "error", err)
		return nil, err
	}

	if !user.IsActive {
		s.logger.Debug("login failed: inactive user", "user_id", user.ID)
		return nil, auth.ErrAuthenticationFailed
	}

	token, err := s.tokenService.IssueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", "user_id", user.ID)
	return &Session{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.tokenService.Lifetime().Seconds()),
	}, nil
}

// Verify checks the Authorization header's token and re-fetches the user
// it was issued for. A user that no longer exists propagates the store's
// not-found error unmapped: a valid token for a deleted account is a 404,
// not a 401. An inactive user still verifies; only login and refresh
// reject inactive accounts.
func (s *AuthService) Verify(ctx context.Context, authHeader string) (*Verification, error) {
	token, err := s.tokenService.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return nil, err
	}

	claims, err := s.tokenService.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &Verification{User: user, Claims: claims}, nil
}

// Refresh verifies the current token and issues a fresh one with renewed
// timestamps. Unlike Verify, an inactive user is rejected. Two refreshes
// within the same second may produce byte-identical tokens; that is
// harmless since the claims are identical too.
func (s *AuthService) Refresh(ctx context.Context, authHeader string) (*Session, error) {
	verification, err := s.Verify(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	if !verification.User.IsActive {
		s.logger.Debug("refresh rejected: inactive user", "user_id", verification.User.ID)
		return nil, auth.ErrAuthenticationFailed
	}

	token, err := s.tokenService.IssueToken(ctx, verification.User)
	if err != nil {
		return nil, err
	}

	s.logger.Info("token refreshed", "user_id", verification.User.ID)
	return &Session{
		User:      verification.User,
		Token:     token,
		ExpiresIn: int64(s.tokenService.Lifetime().Seconds()),
	}, nil
}

// Logout always succeeds. Tokens are stateless and not invalidated;
// clients discard their copy.
func (s *AuthService) Logout(ctx context.Context) {
	s.logger.Debug("logout requested")
}
