package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/mocks"
	"github.com/nexotime/nexotime/internal/service/summary"
)

const testChatID int64 = 12345

// fakeClient records outbound API calls instead of hitting Telegram.
type fakeClient struct {
	sent  []tgbotapi.MessageConfig
	edits []tgbotapi.EditMessageTextConfig
	acked []tgbotapi.CallbackConfig
}

func (f *fakeClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch v := c.(type) {
	case tgbotapi.MessageConfig:
		f.sent = append(f.sent, v)
	case tgbotapi.EditMessageTextConfig:
		f.edits = append(f.edits, v)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeClient) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		f.acked = append(f.acked, cb)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type botFixture struct {
	bot    *Bot
	client *fakeClient
	habits *mocks.MockHabitStore
	logs   *mocks.MockHabitLogStore
	user   *domain.User
	habit  *domain.Habit
}

// newTestBot wires a Bot against mock stores with one linked user owning
// one active habit.
func newTestBot(t *testing.T) *botFixture {
	t.Helper()

	user, err := domain.NewUser("pat@example.com", "Pat", "password123")
	require.NoError(t, err)
	user.TelegramID = "12345"

	userStore := mocks.NewMockUserStore()
	userStore.Users[user.Email] = user

	habit, err := domain.NewHabit(user.ID, "Meditate", "🧘")
	require.NoError(t, err)
	habitStore := mocks.NewMockHabitStore()
	habitStore.Habits[habit.ID] = habit

	logStore := mocks.NewMockHabitLogStore()
	client := &fakeClient{}

	bot := &Bot{
		client:    client,
		users:     userStore,
		habits:    habitStore,
		routines:  mocks.NewMockRoutineStore(),
		logs:      logStore,
		summaries: summary.NewService(habitStore, logStore),
		logger:    slog.Default(),
	}

	return &botFixture{
		bot:    bot,
		client: client,
		habits: habitStore,
		logs:   logStore,
		user:   user,
		habit:  habit,
	}
}

func commandMessage(text string) *tgbotapi.Message {
	command := strings.SplitN(text, " ", 2)[0]
	return &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: testChatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(command)}},
	}
}

func habitCallback(data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		Data: data,
		From: &tgbotapi.User{ID: testChatID},
		Message: &tgbotapi.Message{
			MessageID: 7,
			Chat:      &tgbotapi.Chat{ID: testChatID},
		},
	}
}

func TestHabitsCommandSendsToggleKeyboard(t *testing.T) {
	t.Parallel()

	f := newTestBot(t)
	f.bot.handleCommand(context.Background(), commandMessage("/habits"))

	require.Len(t, f.client.sent, 1)
	msg := f.client.sent[0]
	assert.Equal(t, testChatID, msg.ChatID)
	assert.Contains(t, msg.Text, "⬜ 🧘 Meditate")

	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok, "expected an inline keyboard on the /habits reply")
	require.Len(t, markup.InlineKeyboard, 1)

	button := markup.InlineKeyboard[0][0]
	assert.Contains(t, button.Text, "Meditate")
	require.NotNil(t, button.CallbackData)
	assert.Equal(t, fmt.Sprintf("habit:%s:done", f.habit.ID), *button.CallbackData)
}

func TestHabitsCommandUnlinkedChat(t *testing.T) {
	t.Parallel()

	f := newTestBot(t)
	f.user.TelegramID = ""

	f.bot.handleCommand(context.Background(), commandMessage("/habits"))

	require.Len(t, f.client.sent, 1)
	assert.Contains(t, f.client.sent[0].Text, "isn't linked yet")
	assert.Nil(t, f.client.sent[0].ReplyMarkup)
}

func TestHabitToggleCallbackMarksDone(t *testing.T) {
	t.Parallel()

	f := newTestBot(t)
	data := fmt.Sprintf("habit:%s:done", f.habit.ID)

	f.bot.handleCallback(context.Background(), habitCallback(data))

	require.Len(t, f.client.acked, 1)

	require.Len(t, f.logs.Logs, 1)
	assert.Equal(t, f.habit.ID, f.logs.Logs[0].HabitID)
	assert.True(t, f.logs.Logs[0].Completed)

	require.Len(t, f.client.edits, 1)
	edit := f.client.edits[0]
	assert.Equal(t, 7, edit.MessageID)
	assert.Contains(t, edit.Text, "✅ 🧘 Meditate")
	assert.Contains(t, edit.Text, "1 of 1 done")
	assert.Contains(t, edit.Text, "All habits done")

	require.NotNil(t, edit.ReplyMarkup)
	button := edit.ReplyMarkup.InlineKeyboard[0][0]
	require.NotNil(t, button.CallbackData)
	assert.Equal(t, fmt.Sprintf("habit:%s:undo", f.habit.ID), *button.CallbackData)
}

func TestHabitToggleCallbackUndo(t *testing.T) {
	t.Parallel()

	f := newTestBot(t)
	log, err := domain.NewHabitLog(f.user.ID, f.habit.ID, time.Now(), true)
	require.NoError(t, err)
	f.logs.Logs = append(f.logs.Logs, log)

	data := fmt.Sprintf("habit:%s:undo", f.habit.ID)
	f.bot.handleCallback(context.Background(), habitCallback(data))

	require.Len(t, f.logs.Logs, 1)
	assert.False(t, f.logs.Logs[0].Completed)

	require.Len(t, f.client.edits, 1)
	assert.Contains(t, f.client.edits[0].Text, "⬜ 🧘 Meditate")
	assert.Contains(t, f.client.edits[0].Text, "0 of 1 done")
}

func TestHabitToggleCallbackForeignHabit(t *testing.T) {
	t.Parallel()

	f := newTestBot(t)
	other, err := domain.NewHabit(uuid.New(), "Run", "")
	require.NoError(t, err)
	f.habits.Habits[other.ID] = other

	data := fmt.Sprintf("habit:%s:done", other.ID)
	f.bot.handleCallback(context.Background(), habitCallback(data))

	assert.Empty(t, f.logs.Logs)
	assert.Empty(t, f.client.edits)
	require.Len(t, f.client.sent, 1)
	assert.Contains(t, f.client.sent[0].Text, "Something went wrong")
}

func TestHabitToggleCallbackRejectsInactiveHabit(t *testing.T) {
	t.Parallel()

	f := newTestBot(t)
	f.habit.Active = false

	data := fmt.Sprintf("habit:%s:done", f.habit.ID)
	f.bot.handleCallback(context.Background(), habitCallback(data))

	assert.Empty(t, f.logs.Logs)
	assert.Empty(t, f.client.edits)
}

func TestHabitToggleCallbackIgnoresMalformedData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "wrong prefix", data: "reminder:abc:done"},
		{name: "missing action", data: "habit:" + uuid.NewString()},
		{name: "bad habit id", data: "habit:not-a-uuid:done"},
		{name: "unknown action", data: fmt.Sprintf("habit:%s:snooze", uuid.New())},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newTestBot(t)
			f.bot.handleCallback(context.Background(), habitCallback(tt.data))

			// The press is still acknowledged, but nothing is recorded.
			require.Len(t, f.client.acked, 1)
			assert.Empty(t, f.logs.Logs)
			assert.Empty(t, f.client.sent)
			assert.Empty(t, f.client.edits)
		})
	}
}
