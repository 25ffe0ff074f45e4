package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	CreateFn               func(ctx context.Context, task *domain.Task) error
	GetByIDFn              func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByUserFn           func(ctx context.Context, userEmail string, status domain.TaskStatus) ([]*domain.Task, error)
	UpdateFn               func(ctx context.Context, task *domain.Task) error
	DeleteFn               func(ctx context.Context, id uuid.UUID) error
	DeleteByUserEmailFn    func(ctx context.Context, userEmail string) (int, error)
	CountByUserAndStatusFn func(ctx context.Context, userEmail string) (store.TaskStatusCounts, error)

	Tasks map[uuid.UUID]*domain.Task
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface.
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// FindByUser implements the TaskStore interface.
func (m *MockTaskStore) FindByUser(
	ctx context.Context,
	userEmail string,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	if m.FindByUserFn != nil {
		return m.FindByUserFn(ctx, userEmail, status)
	}
	tasks := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.UserEmail != userEmail {
			continue
		}
		if status != "" && task.Status != status {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// Update implements the TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// DeleteByUserEmail implements the TaskStore interface.
func (m *MockTaskStore) DeleteByUserEmail(ctx context.Context, userEmail string) (int, error) {
	if m.DeleteByUserEmailFn != nil {
		return m.DeleteByUserEmailFn(ctx, userEmail)
	}
	deleted := 0
	for id, task := range m.Tasks {
		if task.UserEmail == userEmail {
			delete(m.Tasks, id)
			deleted++
		}
	}
	return deleted, nil
}

// CountByUserAndStatus implements the TaskStore interface.
func (m *MockTaskStore) CountByUserAndStatus(
	ctx context.Context,
	userEmail string,
) (store.TaskStatusCounts, error) {
	if m.CountByUserAndStatusFn != nil {
		return m.CountByUserAndStatusFn(ctx, userEmail)
	}
	var counts store.TaskStatusCounts
	for _, task := range m.Tasks {
		if task.UserEmail != userEmail {
			continue
		}
		counts.Total++
		switch task.Status {
		case domain.TaskStatusTodo:
			counts.Todo++
		case domain.TaskStatusInProgress:
			counts.InProgress++
		case domain.TaskStatusDone:
			counts.Done++
		}
	}
	return counts, nil
}
