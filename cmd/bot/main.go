// Package main implements the entry point for the NexoTime Telegram bot,
// which answers interactive commands and delivers reminder notifications
// consumed from the message broker.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/nexotime/nexotime/internal/config"
	"github.com/nexotime/nexotime/internal/events"
	"github.com/nexotime/nexotime/internal/platform/logger"
	"github.com/nexotime/nexotime/internal/platform/postgres"
	"github.com/nexotime/nexotime/internal/platform/rabbitmq"
	redisplatform "github.com/nexotime/nexotime/internal/platform/redis"
	"github.com/nexotime/nexotime/internal/service/summary"
	"github.com/nexotime/nexotime/internal/service/telegramlink"
	"github.com/nexotime/nexotime/internal/telegram"
)

// notificationQueue is the durable queue reminder events are consumed from.
const notificationQueue = "telegram-notifications"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Bot failed: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required (NEXOTIME_TELEGRAM_BOT_TOKEN)")
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", "error", err)
		}
	}()

	// Stores
	userStore := postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, appLogger)
	habitStore := postgres.NewPostgresHabitStore(db, appLogger)
	routineStore := postgres.NewPostgresRoutineStore(db, appLogger)
	logStore := postgres.NewPostgresHabitLogStore(db, appLogger)

	// Redis-backed link codes, shared with the API server
	redisClient, err := redisplatform.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize redis client: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Error closing redis client", "error", err)
		}
	}()

	codeStore := redisplatform.NewLinkCodeStore(redisClient)
	linkService := telegramlink.NewService(userStore, codeStore, appLogger)
	summaryService := summary.NewService(habitStore, logStore)

	// Telegram client
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return fmt.Errorf("failed to initialize telegram client: %w", err)
	}
	appLogger.Info("Telegram client authorized", "username", botAPI.Self.UserName)

	bot := telegram.NewBot(botAPI, userStore, habitStore, routineStore, logStore, linkService, summaryService, appLogger)
	notifier := telegram.NewNotifier(botAPI, routineStore, summaryService, appLogger)

	// Broker consumer feeding the notifier
	consumer, err := rabbitmq.NewConsumer(
		cfg.RabbitMQ.URL,
		notificationQueue,
		events.ReminderDueKey,
		appLogger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize broker consumer: %w", err)
	}
	defer consumer.Close()
	consumer.SetHandler(notifier.HandleReminderDue)

	consumerErr := make(chan error, 1)
	go func() {
		consumerErr <- consumer.Start(ctx)
	}()

	go bot.Run(ctx)

	appLogger.Info("Bot started")

	select {
	case <-ctx.Done():
		appLogger.Info("Shutting down bot...")
	case err := <-consumerErr:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("consumer stopped: %w", err)
		}
	}

	slog.Info("Bot shutdown completed")
	return nil
}
