package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func newUserFixture(t *testing.T) (*UserService, *mocks.MockUserStore, *mocks.MockTaskStore) {
	t.Helper()
	userStore := mocks.NewMockUserStore()
	taskStore := mocks.NewMockTaskStore()
	return NewUserService(userStore, taskStore, nil), userStore, taskStore
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name        string
		existing    []string
		email       string
		expectEmail string
		expectError error
	}{
		{
			name:        "new user is active and normalized",
			email:       "  New.User@Example.COM ",
			expectEmail: "new.user@example.com",
		},
		{
			name:        "duplicate email",
			existing:    []string{"taken@example.com"},
			email:       "taken@example.com",
			expectError: store.ErrEmailExists,
		},
		{
			name:        "duplicate check is case-insensitive",
			existing:    []string{"taken@example.com"},
			email:       "TAKEN@example.com",
			expectError: store.ErrEmailExists,
		},
		{
			name:        "malformed email",
			email:       "nope",
			expectError: domain.ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userStore, _ := newUserFixture(t)
			for _, email := range tt.existing {
				addUser(t, userStore, email, true)
			}

			user, err := svc.Create(context.Background(), tt.email)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectEmail, user.Email)
			assert.True(t, user.IsActive)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Contains(t, userStore.Users, tt.expectEmail)
		})
	}
}

func TestCheckExists(t *testing.T) {
	svc, userStore, _ := newUserFixture(t)
	addUser(t, userStore, "present@example.com", true)

	exists, err := svc.CheckExists(context.Background(), "PRESENT@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.CheckExists(context.Background(), "absent@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.CheckExists(context.Background(), "no-at-sign")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestUpdateUser(t *testing.T) {
	t.Run("email change to a free address", func(t *testing.T) {
		svc, userStore, _ := newUserFixture(t)
		user := addUser(t, userStore, "old@example.com", true)

		newEmail := "New@Example.com"
		updated, err := svc.Update(context.Background(), user.ID, UpdateUserParams{Email: &newEmail})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
		require.NotNil(t, updated.UpdatedAt)
	})

	t.Run("email change to another user's address", func(t *testing.T) {
		svc, userStore, _ := newUserFixture(t)
		user := addUser(t, userStore, "a@example.com", true)
		addUser(t, userStore, "b@example.com", true)

		taken := "b@example.com"
		_, err := svc.Update(context.Background(), user.ID, UpdateUserParams{Email: &taken})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("setting own email back is allowed", func(t *testing.T) {
		svc, userStore, _ := newUserFixture(t)
		user := addUser(t, userStore, "a@example.com", true)

		same := "A@example.com"
		updated, err := svc.Update(context.Background(), user.ID, UpdateUserParams{Email: &same})
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", updated.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _ := newUserFixture(t)
		active := true
		_, err := svc.Update(context.Background(), uuid.New(), UpdateUserParams{IsActive: &active})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestActivateDeactivate(t *testing.T) {
	svc, userStore, _ := newUserFixture(t)
	user := addUser(t, userStore, "a@example.com", true)

	deactivated, err := svc.Deactivate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	activated, err := svc.Activate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)
}

func TestDeleteUserCascadesTasks(t *testing.T) {
	svc, userStore, taskStore := newUserFixture(t)
	user := addUser(t, userStore, "owner@example.com", true)
	other := addUser(t, userStore, "other@example.com", true)

	for i := 0; i < 3; i++ {
		task, err := domain.NewTask("title", "description", user.Email, "")
		require.NoError(t, err)
		taskStore.Tasks[task.ID] = task
	}
	kept, err := domain.NewTask("keep", "unrelated", other.Email, "")
	require.NoError(t, err)
	taskStore.Tasks[kept.ID] = kept

	require.NoError(t, svc.Delete(context.Background(), user.ID))

	assert.NotContains(t, userStore.Users, user.Email)
	assert.Len(t, taskStore.Tasks, 1)
	assert.Contains(t, taskStore.Tasks, kept.ID)
}

func TestDeleteUnknownUser(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStats(t *testing.T) {
	svc, userStore, _ := newUserFixture(t)
	addUser(t, userStore, "a@example.com", true)
	addUser(t, userStore, "b@example.com", true)
	addUser(t, userStore, "c@example.com", false)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 2, stats.ActiveUsers)
}
