package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// FindByUser retrieves tasks owned by the normalized email, newest
	// first. When status is non-empty only tasks in that status are
	// returned. Returns an empty slice when nothing matches.
	FindByUser(ctx context.Context, userEmail string, status domain.TaskStatus) ([]*domain.Task, error)

	// Update modifies an existing task's title, description, status, and
	// UpdatedAt. Ownership (UserEmail) is immutable and never written.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUserEmail removes every task owned by the normalized email.
	// Returns the number of tasks deleted. Deleting zero tasks is not an
	// error; users without tasks are common.
	DeleteByUserEmail(ctx context.Context, userEmail string) (int, error)

	// CountByUserAndStatus returns per-status task counts for the owner.
	CountByUserAndStatus(ctx context.Context, userEmail string) (TaskStatusCounts, error)
}

// TaskStatusCounts holds per-status task totals for a single owner.
type TaskStatusCounts struct {
	Total      int
	Todo       int
	InProgress int
	Done       int
}
