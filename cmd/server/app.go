package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// application holds the wired dependency graph for the HTTP server.
type application struct {
	config *config.Config
	logger *slog.Logger

	userStore store.UserStore
	taskStore store.TaskStore

	tokenService auth.TokenService
	authService  *service.AuthService
	userService  *service.UserService
	taskService  *service.TaskService
}

// newApplication constructs every store and service from configuration.
// Secrets and lifetimes are read here once and passed into constructors.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       logger,
		userStore:    userStore,
		taskStore:    taskStore,
		tokenService: tokenService,
		authService:  service.NewAuthService(userStore, tokenService, logger),
		userService:  service.NewUserService(userStore, taskStore, logger),
		taskService:  service.NewTaskService(taskStore, logger),
	}, nil
}
