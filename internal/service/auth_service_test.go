package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func newAuthFixture(t *testing.T) (*AuthService, *mocks.MockUserStore, *mocks.MockTokenService) {
	t.Helper()
	userStore := mocks.NewMockUserStore()
	tokenService := &mocks.MockTokenService{
		Token:         "issued.token.value",
		TokenLifetime: time.Hour,
	}
	return NewAuthService(userStore, tokenService, nil), userStore, tokenService
}

func addUser(t *testing.T, userStore *mocks.MockUserStore, email string, active bool) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email)
	require.NoError(t, err)
	user.IsActive = active
	userStore.Users[user.Email] = user
	return user
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, userStore *mocks.MockUserStore)
		email       string
		expectError error
	}{
		{
			name: "active user logs in",
			setup: func(t *testing.T, userStore *mocks.MockUserStore) {
				addUser(t, userStore, "a@test.com", true)
			},
			email: "a@test.com",
		},
		{
			name: "email lookup is case-insensitive",
			setup: func(t *testing.T, userStore *mocks.MockUserStore) {
				addUser(t, userStore, "a@test.com", true)
			},
			email: "A@TEST.COM",
		},
		{
			name:        "unknown email",
			setup:       func(t *testing.T, userStore *mocks.MockUserStore) {},
			email:       "nobody@test.com",
			expectError: auth.ErrAuthenticationFailed,
		},
		{
			name: "inactive user",
			setup: func(t *testing.T, userStore *mocks.MockUserStore) {
				addUser(t, userStore, "a@test.com", false)
			},
			email:       "a@test.com",
			expectError: auth.ErrAuthenticationFailed,
		},
		{
			name:        "malformed email",
			setup:       func(t *testing.T, userStore *mocks.MockUserStore) {},
			email:       "not-an-email",
			expectError: domain.ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userStore, _ := newAuthFixture(t)
			tt.setup(t, userStore)

			session, err := svc.Login(context.Background(), tt.email)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "issued.token.value", session.Token)
			assert.Equal(t, int64(3600), session.ExpiresIn)
			assert.Equal(t, "a@test.com", session.User.Email)
		})
	}
}

func TestLoginErrorShapeDoesNotLeakAccountState(t *testing.T) {
	// A nonexistent account and an inactive one must be indistinguishable.
	svc, userStore, _ := newAuthFixture(t)
	addUser(t, userStore, "inactive@test.com", false)

	_, errUnknown := svc.Login(context.Background(), "unknown@test.com")
	_, errInactive := svc.Login(context.Background(), "inactive@test.com")

	require.Error(t, errUnknown)
	require.Error(t, errInactive)
	assert.Equal(t, errUnknown.Error(), errInactive.Error())
}

func TestVerify(t *testing.T) {
	svc, userStore, tokenService := newAuthFixture(t)
	user := addUser(t, userStore, "a@test.com", true)
	tokenService.Claims = &auth.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	t.Run("valid token", func(t *testing.T) {
		verification, err := svc.Verify(context.Background(), "Bearer some.token.here")
		require.NoError(t, err)
		assert.Equal(t, user.ID, verification.User.ID)
		assert.Equal(t, user.Email, verification.Claims.Email)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := svc.Verify(context.Background(), "")
		assert.ErrorIs(t, err, auth.ErrMissingToken)
	})

	t.Run("expired token", func(t *testing.T) {
		tokenService.VerifyErr = auth.ErrExpiredToken
		defer func() { tokenService.VerifyErr = nil }()

		_, err := svc.Verify(context.Background(), "Bearer some.token.here")
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("deleted user propagates not found", func(t *testing.T) {
		delete(userStore.Users, user.Email)
		defer func() { userStore.Users[user.Email] = user }()

		_, err := svc.Verify(context.Background(), "Bearer some.token.here")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("inactive user still verifies", func(t *testing.T) {
		user.IsActive = false
		defer func() { user.IsActive = true }()

		verification, err := svc.Verify(context.Background(), "Bearer some.token.here")
		require.NoError(t, err)
		assert.False(t, verification.User.IsActive)
	})
}

func TestRefresh(t *testing.T) {
	svc, userStore, tokenService := newAuthFixture(t)
	user := addUser(t, userStore, "a@test.com", true)
	tokenService.Claims = &auth.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	t.Run("active user gets a fresh token", func(t *testing.T) {
		session, err := svc.Refresh(context.Background(), "Bearer some.token.here")
		require.NoError(t, err)
		assert.Equal(t, "issued.token.value", session.Token)
		assert.Equal(t, user.ID, session.User.ID)
	})

	t.Run("inactive user is rejected", func(t *testing.T) {
		user.IsActive = false
		defer func() { user.IsActive = true }()

		_, err := svc.Refresh(context.Background(), "Bearer some.token.here")
		assert.ErrorIs(t, err, auth.ErrAuthenticationFailed)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		tokenService.VerifyErr = auth.ErrInvalidToken
		defer func() { tokenService.VerifyErr = nil }()

		_, err := svc.Refresh(context.Background(), "Bearer some.token.here")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
