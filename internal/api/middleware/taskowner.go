package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskOwnerMiddleware guards single-task routes. It runs after
// Authenticate and enforces, in order: an authenticated identity (401),
// a well-formed task id path param (400), task existence (404), and
// ownership (403). On success the task is attached to the request
// context so handlers don't re-fetch it.
type TaskOwnerMiddleware struct {
	taskService *service.TaskService
}

// NewTaskOwnerMiddleware creates a new TaskOwnerMiddleware with the given
// dependencies.
func NewTaskOwnerMiddleware(taskService *service.TaskService) *TaskOwnerMiddleware {
	return &TaskOwnerMiddleware{taskService: taskService}
}

// RequireOwnership wraps a single-task route with the ownership checks.
func (m *TaskOwnerMiddleware) RequireOwnership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := shared.GetIdentity(r.Context())
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		idParam := chi.URLParam(r, "id")
		if idParam == "" {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Task id is required")
			return
		}

		id, err := uuid.Parse(idParam)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Task id has invalid format")
			return
		}

		task, err := m.taskService.GetByID(r.Context(), id)
		if err != nil {
			if store.IsNotFoundError(err) {
				shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"An unexpected error occurred", err)
			return
		}

		if !task.IsOwnedBy(identity.Email) {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden,
				domain.ErrTaskNotOwned.Error(), domain.ErrTaskNotOwned,
				shared.WithElevatedLogLevel())
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithTask(r.Context(), task)))
	})
}
