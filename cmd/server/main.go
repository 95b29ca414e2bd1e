// Package main implements the entry point for the NexoTime API server,
// which handles accounts, habits, routines, reminders and daily tracking.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/nexotime/nexotime/internal/config"
	"github.com/nexotime/nexotime/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status) and exit")
	flag.Parse()

	ctx := context.Background()

	if *migrateCmd != "" {
		if err := handleMigrations(*migrateCmd); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		return
	}

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and the database, runs
// pending migrations, and wires the application dependencies.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, appLogger, err := loadConfigAndLogger()
	if err != nil {
		return nil, err
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"scheduler_timezone", cfg.Scheduler.Timezone)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return newApplication(ctx, cfg, appLogger, db)
}

// handleMigrations runs one explicit migration command against the
// configured database, without starting the server.
func handleMigrations(command string) error {
	cfg, appLogger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", "error", err)
		}
	}()

	return runMigrationCommand(db, appLogger, command)
}

func loadConfigAndLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	return cfg, appLogger, nil
}
