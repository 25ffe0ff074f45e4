package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/taskdeck/taskdeck-api/migrations"
)

// runMigrations executes the given goose command against the embedded
// migration files.
func runMigrations(db *sql.DB, command string, logger *slog.Logger) error {
	migrationLogger := logger.With(
		slog.String("component", "migrations"),
		slog.String("command", command),
	)

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	migrationLogger.Info("running migration command")

	var err error
	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown migration command: %q", command)
	}

	if err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}

	migrationLogger.Info("migration command completed")
	return nil
}

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}
