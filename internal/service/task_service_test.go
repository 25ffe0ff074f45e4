package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func newTaskFixture(t *testing.T) (*TaskService, *mocks.MockTaskStore) {
	t.Helper()
	taskStore := mocks.NewMockTaskStore()
	return NewTaskService(taskStore, nil), taskStore
}

func seedTask(t *testing.T, taskStore *mocks.MockTaskStore, email string, status domain.TaskStatus) *domain.Task {
	t.Helper()
	task, err := domain.NewTask("seeded task", "seeded description", email, status)
	require.NoError(t, err)
	taskStore.Tasks[task.ID] = task
	return task
}

func TestCreateTask(t *testing.T) {
	tests := []struct {
		name         string
		params       CreateTaskParams
		expectStatus domain.TaskStatus
		expectError  error
	}{
		{
			name: "defaults to todo",
			params: CreateTaskParams{
				Title:       "Buy milk",
				Description: "Two liters, whole",
				UserEmail:   "a@example.com",
			},
			expectStatus: domain.TaskStatusTodo,
		},
		{
			name: "explicit status kept",
			params: CreateTaskParams{
				Title:       "Ship release",
				Description: "Tag and push",
				UserEmail:   "a@example.com",
				Status:      domain.TaskStatusInProgress,
			},
			expectStatus: domain.TaskStatusInProgress,
		},
		{
			name: "title at limit accepted",
			params: CreateTaskParams{
				Title:       strings.Repeat("t", domain.MaxTitleLength),
				Description: "d",
				UserEmail:   "a@example.com",
			},
			expectStatus: domain.TaskStatusTodo,
		},
		{
			name: "title over limit rejected",
			params: CreateTaskParams{
				Title:       strings.Repeat("t", domain.MaxTitleLength+1),
				Description: "d",
				UserEmail:   "a@example.com",
			},
			expectError: domain.ErrTitleTooLong,
		},
		{
			name: "description at limit accepted",
			params: CreateTaskParams{
				Title:       "t",
				Description: strings.Repeat("d", domain.MaxDescriptionLength),
				UserEmail:   "a@example.com",
			},
			expectStatus: domain.TaskStatusTodo,
		},
		{
			name: "description over limit rejected",
			params: CreateTaskParams{
				Title:       "t",
				Description: strings.Repeat("d", domain.MaxDescriptionLength+1),
				UserEmail:   "a@example.com",
			},
			expectError: domain.ErrDescriptionTooLong,
		},
		{
			name: "blank title rejected",
			params: CreateTaskParams{
				Title:       "   ",
				Description: "d",
				UserEmail:   "a@example.com",
			},
			expectError: domain.ErrEmptyTitle,
		},
		{
			name: "invalid status rejected",
			params: CreateTaskParams{
				Title:       "t",
				Description: "d",
				UserEmail:   "a@example.com",
				Status:      domain.TaskStatus("archived"),
			},
			expectError: domain.ErrInvalidStatus,
		},
		{
			name: "invalid owner email rejected",
			params: CreateTaskParams{
				Title:       "t",
				Description: "d",
				UserEmail:   "not-an-email",
			},
			expectError: domain.ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, taskStore := newTaskFixture(t)

			task, err := svc.Create(context.Background(), tt.params)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Empty(t, taskStore.Tasks)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectStatus, task.Status)
			assert.Nil(t, task.UpdatedAt)
			assert.Contains(t, taskStore.Tasks, task.ID)
		})
	}
}

func TestCreateTaskNormalizesOwnerEmail(t *testing.T) {
	svc, _ := newTaskFixture(t)

	task, err := svc.Create(context.Background(), CreateTaskParams{
		Title:       "  padded title  ",
		Description: "desc",
		UserEmail:   " Owner@Example.COM ",
	})
	require.NoError(t, err)
	assert.Equal(t, "padded title", task.Title)
	assert.Equal(t, "owner@example.com", task.UserEmail)
}

func TestFindByUser(t *testing.T) {
	svc, taskStore := newTaskFixture(t)
	seedTask(t, taskStore, "a@example.com", domain.TaskStatusTodo)
	seedTask(t, taskStore, "a@example.com", domain.TaskStatusDone)
	seedTask(t, taskStore, "b@example.com", domain.TaskStatusTodo)

	t.Run("all tasks for user", func(t *testing.T) {
		tasks, err := svc.FindByUser(context.Background(), "A@example.com", "")
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		tasks, err := svc.FindByUser(context.Background(), "a@example.com", domain.TaskStatusDone)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, domain.TaskStatusDone, tasks[0].Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.FindByUser(context.Background(), "a@example.com", domain.TaskStatus("bogus"))
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.FindByUser(context.Background(), "bogus", "")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("partial update keeps other fields", func(t *testing.T) {
		svc, taskStore := newTaskFixture(t)
		task := seedTask(t, taskStore, "a@example.com", domain.TaskStatusTodo)

		title := "  renamed  "
		updated, err := svc.Update(context.Background(), task.ID, UpdateTaskParams{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.Equal(t, "seeded description", updated.Description)
		assert.Equal(t, domain.TaskStatusTodo, updated.Status)
		require.NotNil(t, updated.UpdatedAt)
	})

	t.Run("invalid field rejected without write", func(t *testing.T) {
		svc, taskStore := newTaskFixture(t)
		task := seedTask(t, taskStore, "a@example.com", domain.TaskStatusTodo)

		long := strings.Repeat("d", domain.MaxDescriptionLength+1)
		_, err := svc.Update(context.Background(), task.ID, UpdateTaskParams{Description: &long})
		assert.ErrorIs(t, err, domain.ErrDescriptionTooLong)
		assert.Equal(t, "seeded description", taskStore.Tasks[task.ID].Description)
	})

	t.Run("unknown task", func(t *testing.T) {
		svc, _ := newTaskFixture(t)
		title := "x"
		_, err := svc.Update(context.Background(), uuid.New(), UpdateTaskParams{Title: &title})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestStatusTransitionChain(t *testing.T) {
	svc, taskStore := newTaskFixture(t)
	task := seedTask(t, taskStore, "a@example.com", domain.TaskStatusTodo)

	afterStart, err := svc.MoveToInProgress(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, afterStart.Status)
	require.NotNil(t, afterStart.UpdatedAt)
	first := *afterStart.UpdatedAt

	afterDone, err := svc.MarkAsDone(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, afterDone.Status)
	require.NotNil(t, afterDone.UpdatedAt)
	second := *afterDone.UpdatedAt
	assert.False(t, second.Before(first))

	afterReopen, err := svc.MoveBackToTodo(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusTodo, afterReopen.Status)
	require.NotNil(t, afterReopen.UpdatedAt)
	assert.False(t, afterReopen.UpdatedAt.Before(second))

	assert.Equal(t, domain.TaskStatusTodo, taskStore.Tasks[task.ID].Status)
}

func TestDeleteTask(t *testing.T) {
	svc, taskStore := newTaskFixture(t)
	task := seedTask(t, taskStore, "a@example.com", domain.TaskStatusTodo)

	require.NoError(t, svc.Delete(context.Background(), task.ID))
	assert.Empty(t, taskStore.Tasks)

	err := svc.Delete(context.Background(), task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStats(t *testing.T) {
	svc, taskStore := newTaskFixture(t)
	seedTask(t, taskStore, "a@example.com", domain.TaskStatusTodo)
	seedTask(t, taskStore, "a@example.com", domain.TaskStatusInProgress)
	seedTask(t, taskStore, "a@example.com", domain.TaskStatusDone)
	seedTask(t, taskStore, "a@example.com", domain.TaskStatusDone)
	seedTask(t, taskStore, "b@example.com", domain.TaskStatusDone)

	stats, err := svc.Stats(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Todo)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 2, stats.Done)
	assert.Equal(t, 50.0, stats.CompletionRate)
}

func TestTaskStatsEmpty(t *testing.T) {
	svc, _ := newTaskFixture(t)
	stats, err := svc.Stats(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.CompletionRate)
}
