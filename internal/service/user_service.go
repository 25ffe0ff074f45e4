// Package service implements the application's business logic over the
// store interfaces.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// UpdateUserParams carries the optional fields of a user update.
// Nil fields are left unchanged.
type UpdateUserParams struct {
	Email    *string
	IsActive *bool
}

// UserStats summarizes the user directory.
type UserStats struct {
	TotalUsers  int `json:"totalUsers"`
	ActiveUsers int `json:"activeUsers"`
}

// UserService provides user directory operations. Deleting a user also
// deletes every task that user owns.
type UserService struct {
	userStore store.UserStore
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userStore store.UserStore, taskStore store.TaskStore, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		userStore: userStore,
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "is required", domain.ErrInvalidID)
	}
	return s.userStore.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email. The email is normalized before
// lookup, so the check is case-insensitive.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	normalized := domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(normalized); err != nil {
		return nil, err
	}
	return s.userStore.GetByEmail(ctx, normalized)
}

// CheckExists reports whether a user with the email exists.
func (s *UserService) CheckExists(ctx context.Context, email string) (bool, error) {
	normalized := domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(normalized); err != nil {
		return false, err
	}
	return s.userStore.EmailExists(ctx, normalized)
}

// Create registers a new active user. Email uniqueness is checked with a
// read before the write; two concurrent registrations for the same email
// can race, and the store's unique index is the backstop for that window.
func (s *UserService) Create(ctx context.Context, email string) (*domain.User, error) {
	user, err := domain.NewUser(email)
	if err != nil {
		return nil, err
	}

	exists, err := s.userStore.EmailExists(ctx, user.Email)
	if err != nil {
		s.logger.Error("failed to check email existence", "error", err, "email", user.Email)
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, store.ErrEmailExists
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", "error", err, "user_id", user.ID)
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Update applies the non-nil fields of params to an existing user and
// refreshes UpdatedAt. Changing the email to one owned by another user
// returns ErrEmailExists.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Email != nil {
		normalized := domain.NormalizeEmail(*params.Email)
		if err := domain.ValidateEmail(normalized); err != nil {
			return nil, err
		}
		if normalized != user.Email {
			owner, err := s.userStore.GetByEmail(ctx, normalized)
			if err != nil && !store.IsNotFoundError(err) {
				return nil, fmt.Errorf("failed to check email ownership: %w", err)
			}
			if owner != nil && owner.ID != user.ID {
				return nil, store.ErrEmailExists
			}
			user.Email = normalized
		}
	}

	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}

	user.Touch()

	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id, "is_active", user.IsActive)
	return user, nil
}

// Activate marks the user active.
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	active := true
	return s.Update(ctx, id, UpdateUserParams{IsActive: &active})
}

// Deactivate marks the user inactive. Existing tokens stay valid for
// verification until expiry; login and refresh reject the account.
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	active := false
	return s.Update(ctx, id, UpdateUserParams{IsActive: &active})
}

// Delete removes a user and every task they own. Tasks go first so a
// failure never leaves tasks without an owner record.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.taskStore.DeleteByUserEmail(ctx, user.Email)
	if err != nil {
		s.logger.Error("failed to delete user tasks", "error", err, "user_id", id)
		return fmt.Errorf("failed to delete user tasks: %w", err)
	}

	if err := s.userStore.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user deleted", "user_id", id, "tasks_deleted", deleted)
	return nil
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}

// Stats returns directory totals.
func (s *UserService) Stats(ctx context.Context) (*UserStats, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.userStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, user := range users {
		if user.IsActive {
			active++
		}
	}

	return &UserStats{TotalUsers: total, ActiveUsers: active}, nil
}
