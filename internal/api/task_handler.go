package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// TaskHandler handles the task endpoints. Routes addressing a single
// task run behind the ownership guard, which attaches the verified task
// to the request context.
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// guardedTaskID returns the ID of the task attached by the ownership
// guard. Reaching a guarded handler without one is a wiring error.
func guardedTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	task, ok := shared.GetTask(r.Context())
	if !ok {
		respondError(w, r, http.StatusInternalServerError,
			"An unexpected error occurred", domain.ErrUnauthorized)
		return uuid.Nil, false
	}
	return task.ID, true
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		respondError(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskService.Create(r.Context(), service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		UserEmail:   req.UserEmail,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// List handles GET /tasks?userEmail=&status=.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("userEmail")
	status := r.URL.Query().Get("status")

	tasks, err := h.taskService.FindByUser(r.Context(), userEmail, domain.TaskStatus(status))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	filter := status
	if filter == "" {
		filter = "all"
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Data:   tasks,
		Count:  len(tasks),
		Filter: filter,
	})
}

// Stats handles GET /tasks/stats?userEmail=.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.taskService.Stats(r.Context(), r.URL.Query().Get("userEmail"))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// GetByID handles GET /tasks/{id}. The ownership guard already fetched
// and verified the task.
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	task, ok := shared.GetTask(r.Context())
	if !ok {
		respondError(w, r, http.StatusInternalServerError,
			"An unexpected error occurred", domain.ErrUnauthorized)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := guardedTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		respondError(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	params := service.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		params.Status = &status
	}

	task, err := h.taskService.Update(r.Context(), id, params)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := guardedTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Task deleted",
	})
}

// MoveToInProgress handles PATCH /tasks/{id}/in-progress.
func (h *TaskHandler) MoveToInProgress(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.taskService.MoveToInProgress)
}

// MarkAsDone handles PATCH /tasks/{id}/done.
func (h *TaskHandler) MarkAsDone(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.taskService.MarkAsDone)
}

// MoveBackToTodo handles PATCH /tasks/{id}/todo.
func (h *TaskHandler) MoveBackToTodo(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.taskService.MoveBackToTodo)
}

func (h *TaskHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	move func(ctx context.Context, id uuid.UUID) (*domain.Task, error),
) {
	id, ok := guardedTaskID(w, r)
	if !ok {
		return
	}

	task, err := move(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}
