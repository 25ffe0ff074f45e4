package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api"
	apiMiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
)

// setupRouter configures the middleware chain and registers all routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService)
	userHandler := api.NewUserHandler(app.userService)
	taskHandler := api.NewTaskHandler(app.taskService)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)
	ownerGuard := apiMiddleware.NewTaskOwnerMiddleware(app.taskService)
	rateLimiter := apiMiddleware.NewRateLimiter(app.config.RateLimit)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Group(func(r chi.Router) {
			r.Use(rateLimiter.WriteLimit)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/verify", authHandler.Verify)
			r.Post("/auth/refresh", authHandler.Refresh)
			r.Post("/auth/logout", authHandler.Logout)
		})

		// User directory endpoints (public; registration is open)
		r.Group(func(r chi.Router) {
			r.Use(rateLimiter.ReadLimit)
			r.Get("/users/check", userHandler.CheckExists)
			r.Get("/users/stats", userHandler.Stats)
			r.Get("/users/all", userHandler.List)
			r.Get("/users/email/{email}", userHandler.GetByEmail)
			r.Get("/users/{id}", userHandler.GetByID)
		})
		r.Group(func(r chi.Router) {
			r.Use(rateLimiter.WriteLimit)
			r.Post("/users", userHandler.Create)
			r.Put("/users/{id}", userHandler.Update)
			r.Patch("/users/{id}/activate", userHandler.Activate)
			r.Patch("/users/{id}/deactivate", userHandler.Deactivate)
			r.Delete("/users/{id}", userHandler.Delete)
		})

		// Task endpoints (authenticated)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.With(rateLimiter.ReadLimit).Get("/tasks", taskHandler.List)
			r.With(rateLimiter.ReadLimit).Get("/tasks/stats", taskHandler.Stats)
			r.With(rateLimiter.WriteLimit).Post("/tasks", taskHandler.Create)

			// Single-task routes run behind the ownership guard.
			r.Group(func(r chi.Router) {
				r.Use(ownerGuard.RequireOwnership)
				r.With(rateLimiter.ReadLimit).Get("/tasks/{id}", taskHandler.GetByID)
				r.With(rateLimiter.WriteLimit).Put("/tasks/{id}", taskHandler.Update)
				r.With(rateLimiter.WriteLimit).Delete("/tasks/{id}", taskHandler.Delete)
				r.With(rateLimiter.WriteLimit).Patch("/tasks/{id}/in-progress", taskHandler.MoveToInProgress)
				r.With(rateLimiter.WriteLimit).Patch("/tasks/{id}/done", taskHandler.MarkAsDone)
				r.With(rateLimiter.WriteLimit).Patch("/tasks/{id}/todo", taskHandler.MoveBackToTodo)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
