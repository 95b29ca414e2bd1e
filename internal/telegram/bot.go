// Package telegram implements the bot process: the interactive command
// handlers and the reminder notifier fed by the message broker.
package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/platform/metrics"
	"github.com/nexotime/nexotime/internal/redact"
	"github.com/nexotime/nexotime/internal/service/summary"
	"github.com/nexotime/nexotime/internal/service/telegramlink"
	"github.com/nexotime/nexotime/internal/store"
)

// botClient is the part of the Telegram API the handlers talk to.
// Implemented by *tgbotapi.BotAPI.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot serves interactive Telegram commands and habit-toggle buttons.
type Bot struct {
	api       *tgbotapi.BotAPI
	client    botClient
	users     store.UserStore
	habits    store.HabitStore
	routines  store.RoutineStore
	logs      store.HabitLogStore
	link      *telegramlink.Service
	summaries *summary.Service
	logger    *slog.Logger
}

// NewBot creates a Bot from an authorized API client.
// If logger is nil, a default logger will be used.
func NewBot(
	api *tgbotapi.BotAPI,
	users store.UserStore,
	habits store.HabitStore,
	routines store.RoutineStore,
	logs store.HabitLogStore,
	link *telegramlink.Service,
	summaries *summary.Service,
	logger *slog.Logger,
) *Bot {
	if api == nil {
		panic("api cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		api:       api,
		client:    api,
		users:     users,
		habits:    habits,
		routines:  routines,
		logs:      logs,
		link:      link,
		summaries: summaries,
		logger:    logger.With(slog.String("component", "telegram_bot")),
	}
}

// Run polls for updates until ctx is cancelled. It blocks and should be
// called in a goroutine.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)
	b.logger.Info("bot started", slog.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			switch {
			case update.CallbackQuery != nil:
				b.handleCallback(ctx, update.CallbackQuery)
			case update.Message != nil && update.Message.IsCommand():
				b.handleCommand(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	telegramID := strconv.FormatInt(chatID, 10)

	// /habits replies with toggle buttons, not plain text.
	if msg.Command() == "habits" {
		b.sendHabitBoard(ctx, chatID, telegramID)
		return
	}

	var reply string
	switch msg.Command() {
	case "start":
		reply = FormatWelcome()
	case "link":
		reply = b.handleLink(ctx, telegramID, msg.CommandArguments())
	case "morning":
		reply = b.withUser(ctx, telegramID, func(ctx context.Context, user *domain.User) string {
			return b.routineReply(ctx, user, domain.RoutineMorning)
		})
	case "night":
		reply = b.withUser(ctx, telegramID, func(ctx context.Context, user *domain.User) string {
			return b.routineReply(ctx, user, domain.RoutineNight)
		})
	case "summary":
		reply = b.withUser(ctx, telegramID, b.daySummary)
	default:
		reply = "Unknown command. Try /habits, /morning, /night or /summary."
	}

	b.send(chatID, reply)
}

func (b *Bot) handleLink(ctx context.Context, telegramID, args string) string {
	code := strings.ToUpper(strings.TrimSpace(args))
	if code == "" {
		return "Usage: /link YOURCODE (get a code from the app first)"
	}

	user, err := b.link.Redeem(ctx, code, telegramID)
	switch {
	case errors.Is(err, telegramlink.ErrInvalidLinkCode):
		return "That code is invalid or expired. Request a fresh one from the app."
	case errors.Is(err, telegramlink.ErrAlreadyLinked):
		return "This Telegram account is already linked to another user."
	case err != nil:
		b.logger.Error("link redemption failed", slog.String("error", redact.Error(err)))
		return "Something went wrong, please try again."
	}

	return FormatLinkSuccess(user.Name)
}

// resolveUser maps the chat to a linked account. On failure it returns a
// nil user and the text to reply with.
func (b *Bot) resolveUser(ctx context.Context, telegramID string) (*domain.User, string) {
	user, err := b.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, "This chat isn't linked yet. Send /link YOURCODE first."
		}
		b.logger.Error("failed to resolve user", slog.String("error", redact.Error(err)))
		return nil, "Something went wrong, please try again."
	}
	return user, ""
}

// withUser resolves the chat to a linked account before running fn.
func (b *Bot) withUser(ctx context.Context, telegramID string, fn func(context.Context, *domain.User) string) string {
	user, errReply := b.resolveUser(ctx, telegramID)
	if user == nil {
		return errReply
	}
	return fn(ctx, user)
}

// sendHabitBoard replies to /habits with today's checklist and one toggle
// button per habit.
func (b *Bot) sendHabitBoard(ctx context.Context, chatID int64, telegramID string) {
	user, errReply := b.resolveUser(ctx, telegramID)
	if user == nil {
		b.send(chatID, errReply)
		return
	}

	day, err := b.summaries.Day(ctx, user.ID, time.Now())
	if err != nil {
		b.logger.Error("failed to compute day summary", slog.String("error", redact.Error(err)))
		b.send(chatID, "Something went wrong, please try again.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, FormatHabitChecklist(day))
	if len(day.Habits) > 0 {
		msg.ReplyMarkup = HabitToggleKeyboard(day)
	}
	b.deliver(msg)
}

// handleCallback processes a habit-toggle button press: it records the new
// completion state and edits the original checklist message in place.
func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Telegram requires every callback to be answered, or the client
	// keeps showing a spinner.
	if _, err := b.client.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Error("failed to answer callback", slog.String("error", err.Error()))
	}

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	habitID, completed, ok := parseHabitCallback(query.Data)
	if !ok {
		return
	}

	user, errReply := b.resolveUser(ctx, strconv.FormatInt(query.From.ID, 10))
	if user == nil {
		b.send(chatID, errReply)
		return
	}

	if err := b.toggleHabit(ctx, user, habitID, completed); err != nil {
		b.logger.Error("failed to record habit toggle",
			slog.String("habit_id", habitID.String()),
			slog.String("error", redact.Error(err)))
		b.send(chatID, "Something went wrong, please try again.")
		return
	}

	day, err := b.summaries.Day(ctx, user.ID, time.Now())
	if err != nil {
		b.logger.Error("failed to compute day summary", slog.String("error", redact.Error(err)))
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID,
		query.Message.MessageID,
		FormatHabitChecklist(day),
		HabitToggleKeyboard(day),
	)
	b.deliver(edit)
}

// toggleHabit upserts today's log for the habit. Habits owned by someone
// else, or deactivated ones, behave like missing habits.
func (b *Bot) toggleHabit(ctx context.Context, user *domain.User, habitID uuid.UUID, completed bool) error {
	habit, err := b.habits.GetForUser(ctx, user.ID, habitID)
	if err != nil {
		return err
	}
	if !habit.Active {
		return store.ErrHabitNotFound
	}

	log, err := domain.NewHabitLog(user.ID, habit.ID, time.Now(), completed)
	if err != nil {
		return err
	}
	_, err = b.logs.Upsert(ctx, log)
	return err
}

// parseHabitCallback decodes "habit:<uuid>:done|undo" button data.
func parseHabitCallback(data string) (habitID uuid.UUID, completed, ok bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != "habit" {
		return uuid.Nil, false, false
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, false, false
	}

	switch parts[2] {
	case "done":
		return id, true, true
	case "undo":
		return id, false, true
	}
	return uuid.Nil, false, false
}

func (b *Bot) daySummary(ctx context.Context, user *domain.User) string {
	day, err := b.summaries.Day(ctx, user.ID, time.Now())
	if err != nil {
		b.logger.Error("failed to compute day summary", slog.String("error", redact.Error(err)))
		return "Something went wrong, please try again."
	}
	return FormatDaySummary(day)
}

func (b *Bot) routineReply(ctx context.Context, user *domain.User, routineType domain.RoutineType) string {
	steps, err := b.routines.ListByType(ctx, user.ID, routineType)
	if err != nil {
		b.logger.Error("failed to list routine", slog.String("error", redact.Error(err)))
		return "Something went wrong, please try again."
	}
	return FormatRoutine(routineType, steps)
}

func (b *Bot) send(chatID int64, text string) {
	b.deliver(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) deliver(c tgbotapi.Chattable) {
	if _, err := b.client.Send(c); err != nil {
		metrics.IncrementTelegramMessagesSent("failed")
		b.logger.Error("failed to send message", slog.String("error", err.Error()))
		return
	}
	metrics.IncrementTelegramMessagesSent("success")
}
