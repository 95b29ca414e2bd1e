package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexotime/nexotime/internal/config"
	"github.com/nexotime/nexotime/internal/platform/postgres"
	"github.com/nexotime/nexotime/internal/platform/rabbitmq"
	redisplatform "github.com/nexotime/nexotime/internal/platform/redis"
	"github.com/nexotime/nexotime/internal/service/auth"
	"github.com/nexotime/nexotime/internal/service/reminder"
	"github.com/nexotime/nexotime/internal/service/summary"
	"github.com/nexotime/nexotime/internal/service/telegramlink"
	"github.com/nexotime/nexotime/internal/store"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core infrastructure
	logger      *slog.Logger
	db          *sql.DB
	redisClient *redis.Client
	publisher   *rabbitmq.Publisher

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	habitStore    store.HabitStore
	routineStore  store.RoutineStore
	reminderStore store.ReminderStore
	logStore      store.HabitLogStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	linkService      *telegramlink.Service
	summaryService   *summary.Service
	scheduler        *reminder.Scheduler
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies that must be established before
// application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger)
	app.habitStore = postgres.NewPostgresHabitStore(db, logger)
	app.routineStore = postgres.NewPostgresRoutineStore(db, logger)
	app.reminderStore = postgres.NewPostgresReminderStore(db, logger)
	app.logStore = postgres.NewPostgresHabitLogStore(db, logger)

	// Redis-backed link codes
	app.redisClient, err = redisplatform.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis client: %w", err)
	}
	codeStore := redisplatform.NewLinkCodeStore(app.redisClient)
	app.linkService = telegramlink.NewService(app.userStore, codeStore, logger)

	// Broker publisher for reminder events
	app.publisher, err = rabbitmq.NewPublisher(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize broker publisher: %w", err)
	}
	logger.Info("Broker publisher initialized")

	app.summaryService = summary.NewService(app.habitStore, app.logStore)

	app.scheduler, err = reminder.NewScheduler(
		app.reminderStore,
		app.publisher,
		cfg.Scheduler.Timezone,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the reminder scheduler and the HTTP server, handling
// lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	app.scheduler.Start(ctx)

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// tokenLifetime is the access token lifetime reported to API clients.
func (app *application) tokenLifetime() time.Duration {
	return time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.publisher != nil {
		app.publisher.Close()
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing redis client", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
