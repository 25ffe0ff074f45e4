package service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// CreateTaskParams carries the fields of a task creation request.
type CreateTaskParams struct {
	Title       string
	Description string
	UserEmail   string
	Status      domain.TaskStatus
}

// UpdateTaskParams carries the optional fields of a task update.
// Nil fields are left unchanged. Ownership cannot be updated.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TaskStats summarizes one user's tasks.
type TaskStats struct {
	Total          int     `json:"total"`
	Todo           int     `json:"todo"`
	InProgress     int     `json:"inProgress"`
	Done           int     `json:"done"`
	CompletionRate float64 `json:"completionRate"`
}

// TaskService provides task CRUD and status transitions.
type TaskService struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// FindByUser returns the user's tasks, newest first, optionally filtered
// by status.
func (s *TaskService) FindByUser(
	ctx context.Context,
	userEmail string,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	normalized := domain.NormalizeEmail(userEmail)
	if err := domain.ValidateEmail(normalized); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.taskStore.FindByUser(ctx, normalized, status)
}

// GetByID retrieves a task by ID.
func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "is required", domain.ErrInvalidID)
	}
	return s.taskStore.GetByID(ctx, id)
}

// Create stores a new task. Status defaults to todo when empty.
func (s *TaskService) Create(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	task, err := domain.NewTask(params.Title, params.Description, params.UserEmail, params.Status)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task", "error", err, "task_id", task.ID)
		return nil, err
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"user_email", task.UserEmail,
		"status", string(task.Status))
	return task, nil
}

// Update applies the non-nil fields of params to an existing task and
// refreshes UpdatedAt.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, params UpdateTaskParams) (*domain.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		trimmed := strings.TrimSpace(*params.Title)
		if err := domain.ValidateTitle(trimmed); err != nil {
			return nil, err
		}
		task.Title = trimmed
	}

	if params.Description != nil {
		trimmed := strings.TrimSpace(*params.Description)
		if err := domain.ValidateDescription(trimmed); err != nil {
			return nil, err
		}
		task.Description = trimmed
	}

	if params.Status != nil {
		if !params.Status.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
		task.Status = *params.Status
	}

	task.Touch()

	if err := s.taskStore.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", id)
		return nil, err
	}

	s.logger.Info("task updated", "task_id", id, "status", string(task.Status))
	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "is required", domain.ErrInvalidID)
	}
	if err := s.taskStore.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// MoveToInProgress sets the task's status to in_progress.
func (s *TaskService) MoveToInProgress(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.setStatus(ctx, id, domain.TaskStatusInProgress)
}

// MarkAsDone sets the task's status to done.
func (s *TaskService) MarkAsDone(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.setStatus(ctx, id, domain.TaskStatusDone)
}

// MoveBackToTodo sets the task's status to todo.
func (s *TaskService) MoveBackToTodo(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.setStatus(ctx, id, domain.TaskStatusTodo)
}

func (s *TaskService) setStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error) {
	return s.Update(ctx, id, UpdateTaskParams{Status: &status})
}

// Stats returns per-status totals and a completion rate (percentage,
// rounded to two decimals) for one user's tasks.
func (s *TaskService) Stats(ctx context.Context, userEmail string) (*TaskStats, error) {
	normalized := domain.NormalizeEmail(userEmail)
	if err := domain.ValidateEmail(normalized); err != nil {
		return nil, err
	}

	counts, err := s.taskStore.CountByUserAndStatus(ctx, normalized)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if counts.Total > 0 {
		rate = math.Round(float64(counts.Done)/float64(counts.Total)*100*100) / 100
	}

	return &TaskStats{
		Total:          counts.Total,
		Todo:           counts.Todo,
		InProgress:     counts.InProgress,
		Done:           counts.Done,
		CompletionRate: rate,
	}, nil
}
