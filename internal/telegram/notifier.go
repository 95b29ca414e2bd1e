package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/events"
	"github.com/nexotime/nexotime/internal/platform/metrics"
	"github.com/nexotime/nexotime/internal/service/summary"
	"github.com/nexotime/nexotime/internal/store"
)

// MessageSender is the part of the Telegram client the notifier needs.
// Implemented by *tgbotapi.BotAPI.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier turns reminder events from the broker into Telegram messages.
type Notifier struct {
	sender    MessageSender
	routines  store.RoutineStore
	summaries *summary.Service
	logger    *slog.Logger
}

// NewNotifier creates a Notifier.
// If logger is nil, a default logger will be used.
func NewNotifier(
	sender MessageSender,
	routines store.RoutineStore,
	summaries *summary.Service,
	logger *slog.Logger,
) *Notifier {
	if sender == nil {
		panic("sender cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Notifier{
		sender:    sender,
		routines:  routines,
		summaries: summaries,
		logger:    logger.With(slog.String("component", "telegram_notifier")),
	}
}

// HandleReminderDue is the broker handler for reminder.due events.
func (n *Notifier) HandleReminderDue(ctx context.Context, data json.RawMessage) error {
	var event events.ReminderDue
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("failed to decode reminder event: %w", err)
	}

	chatID, err := strconv.ParseInt(event.TelegramID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram ID %q: %w", event.TelegramID, err)
	}

	text, err := n.message(ctx, event)
	if err != nil {
		return err
	}

	if _, err := n.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		metrics.IncrementTelegramMessagesSent("failed")
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	metrics.IncrementTelegramMessagesSent("success")

	n.logger.Info("reminder delivered",
		slog.String("reminder_id", event.ReminderID.String()),
		slog.String("kind", event.Kind))
	return nil
}

func (n *Notifier) message(ctx context.Context, event events.ReminderDue) (string, error) {
	switch domain.ReminderKind(event.Kind) {
	case domain.ReminderMorning:
		steps, err := n.routines.ListByType(ctx, event.UserID, domain.RoutineMorning)
		if err != nil {
			return "", fmt.Errorf("failed to list morning routine: %w", err)
		}
		return FormatRoutine(domain.RoutineMorning, steps), nil

	case domain.ReminderNight:
		steps, err := n.routines.ListByType(ctx, event.UserID, domain.RoutineNight)
		if err != nil {
			return "", fmt.Errorf("failed to list night routine: %w", err)
		}
		return FormatRoutine(domain.RoutineNight, steps), nil

	case domain.ReminderHabits:
		day, err := n.daySummary(ctx, event)
		if err != nil {
			return "", err
		}
		return FormatHabitChecklist(day), nil

	case domain.ReminderSummary:
		day, err := n.daySummary(ctx, event)
		if err != nil {
			return "", err
		}
		return FormatDaySummary(day), nil

	default:
		return "", fmt.Errorf("unknown reminder kind %q", event.Kind)
	}
}

func (n *Notifier) daySummary(ctx context.Context, event events.ReminderDue) (*summary.DaySummary, error) {
	date, err := time.Parse(domain.LogDateFormat, event.Date)
	if err != nil {
		// Old events may carry no date; fall back to today.
		date = time.Now()
	}

	day, err := n.summaries.Day(ctx, event.UserID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to compute day summary: %w", err)
	}
	return day, nil
}
