package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// testEnv wires handlers, middleware, and mock stores into a router that
// mirrors the production route layout (minus rate limiting).
type testEnv struct {
	router       chi.Router
	userStore    *mocks.MockUserStore
	taskStore    *mocks.MockTaskStore
	tokenService *mocks.MockTokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	shared.ConfigureStackTraces(false)

	userStore := mocks.NewMockUserStore()
	taskStore := mocks.NewMockTaskStore()
	tokenService := &mocks.MockTokenService{
		Token:         "issued.token.value",
		TokenLifetime: time.Hour,
	}

	authService := service.NewAuthService(userStore, tokenService, nil)
	userService := service.NewUserService(userStore, taskStore, nil)
	taskService := service.NewTaskService(taskStore, nil)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	taskHandler := NewTaskHandler(taskService)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	ownerGuard := middleware.NewTaskOwnerMiddleware(taskService)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/verify", authHandler.Verify)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/logout", authHandler.Logout)

		r.Get("/users/check", userHandler.CheckExists)
		r.Get("/users/stats", userHandler.Stats)
		r.Get("/users/all", userHandler.List)
		r.Get("/users/email/{email}", userHandler.GetByEmail)
		r.Get("/users/{id}", userHandler.GetByID)
		r.Post("/users", userHandler.Create)
		r.Put("/users/{id}", userHandler.Update)
		r.Patch("/users/{id}/activate", userHandler.Activate)
		r.Patch("/users/{id}/deactivate", userHandler.Deactivate)
		r.Delete("/users/{id}", userHandler.Delete)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/tasks", taskHandler.List)
			r.Get("/tasks/stats", taskHandler.Stats)
			r.Post("/tasks", taskHandler.Create)

			r.Group(func(r chi.Router) {
				r.Use(ownerGuard.RequireOwnership)
				r.Get("/tasks/{id}", taskHandler.GetByID)
				r.Put("/tasks/{id}", taskHandler.Update)
				r.Delete("/tasks/{id}", taskHandler.Delete)
				r.Patch("/tasks/{id}/in-progress", taskHandler.MoveToInProgress)
				r.Patch("/tasks/{id}/done", taskHandler.MarkAsDone)
				r.Patch("/tasks/{id}/todo", taskHandler.MoveBackToTodo)
			})
		})
	})

	return &testEnv{
		router:       r,
		userStore:    userStore,
		taskStore:    taskStore,
		tokenService: tokenService,
	}
}

// addUser seeds a user directly into the mock store.
func (e *testEnv) addUser(t *testing.T, email string, active bool) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email)
	require.NoError(t, err)
	user.IsActive = active
	e.userStore.Users[user.Email] = user
	return user
}

// addTask seeds a task directly into the mock store.
func (e *testEnv) addTask(t *testing.T, ownerEmail string, status domain.TaskStatus) *domain.Task {
	t.Helper()
	task, err := domain.NewTask("seeded task", "seeded description", ownerEmail, status)
	require.NoError(t, err)
	e.taskStore.Tasks[task.ID] = task
	return task
}

// authenticateAs configures the mock token service so that any bearer
// token resolves to the given user's claims.
func (e *testEnv) authenticateAs(user *domain.User) {
	e.tokenService.Claims = &auth.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func bearerHeader() http.Header {
	return http.Header{"Authorization": []string{"Bearer test.token.value"}}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
