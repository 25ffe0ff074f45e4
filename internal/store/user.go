package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Emails passed to lookup methods must already be normalized
// (lowercase, trimmed); stores do not normalize on read.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their normalized email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// EmailExists reports whether a user with the normalized email exists.
	EmailExists(ctx context.Context, email string) (bool, error)

	// Update modifies an existing user's email, active flag, and UpdatedAt.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email owned by another user.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// Task cleanup is the service layer's responsibility, not the store's.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all users ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)
}
