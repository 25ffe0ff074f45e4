package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// UserHandler handles the user directory endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		respondError(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	user, err := h.userService.Create(r.Context(), req.Email)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// GetByID handles GET /users/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// GetByEmail handles GET /users/email/{email}.
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// CheckExists handles GET /users/check?email=.
func (h *UserHandler) CheckExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.userService.CheckExists(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserExistsResponse{Exists: exists})
}

// List handles GET /users/all.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserListResponse{
		Data:  users,
		Count: len(users),
	})
}

// Stats handles GET /users/stats.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.userService.Stats(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		respondError(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	user, err := h.userService.Update(r.Context(), id, service.UpdateUserParams{
		Email:    req.Email,
		IsActive: req.IsActive,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Activate handles PATCH /users/{id}/activate.
func (h *UserHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActivation(w, r, true)
}

// Deactivate handles PATCH /users/{id}/deactivate.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActivation(w, r, false)
}

func (h *UserHandler) setActivation(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	var user interface{}
	if active {
		user, err = h.userService.Activate(r.Context(), id)
	} else {
		user, err = h.userService.Deactivate(r.Context(), id)
	}
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}. Every task owned by the user is
// deleted along with the account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "User and associated tasks deleted",
	})
}
