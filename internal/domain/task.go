package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Title and description length limits, enforced on create and update.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Common task validation errors
var (
	ErrEmptyTaskID        = errors.New("task ID cannot be empty")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title must be at most 100 characters long")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrDescriptionTooLong = errors.New("description must be at most 500 characters long")
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Valid task statuses. Every status can transition to every other status;
// no transition is forbidden and no history is recorded.
const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task represents a unit of work owned by a single user. Ownership is
// fixed at creation; there is no transfer operation.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	UserEmail   string     `json:"userEmail"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// NewTask creates a new Task owned by the given email. Title and
// description are trimmed, the owner email is normalized, and the status
// defaults to todo when empty. Returns an error if validation fails.
func NewTask(title, description, userEmail string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusTodo
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      status,
		UserEmail:   NormalizeEmail(userEmail),
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if err := ValidateDescription(t.Description); err != nil {
		return err
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	return ValidateEmail(t.UserEmail)
}

// ValidateTitle checks the title is non-blank and within the length limit.
// The limit applies to the raw length; a title of exactly 100 characters
// is accepted.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// ValidateDescription checks the description is non-blank and within the
// length limit.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	if len(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// SetStatus moves the task to the given status and refreshes UpdatedAt.
// All transitions are permitted, including setting the current status again.
func (t *Task) SetStatus(status TaskStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	t.Status = status
	t.Touch()
	return nil
}

// Touch refreshes the UpdatedAt timestamp.
func (t *Task) Touch() {
	now := time.Now().UTC()
	t.UpdatedAt = &now
}

// IsOwnedBy reports whether the task belongs to the given email.
// Both sides are stored normalized, so this is a case-sensitive compare
// over two lowercase strings.
func (t *Task) IsOwnedBy(email string) bool {
	return t.UserEmail == email
}
