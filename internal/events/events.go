// Package events defines the message payloads exchanged over the broker
// between the API server and the Telegram bot worker.
package events

import (
	"github.com/google/uuid"
)

// Routing keys on the events exchange.
const (
	// ReminderDueKey routes reminder firings from the scheduler to the bot.
	ReminderDueKey = "reminder.due"
)

// ReminderDue is published once per active reminder whose configured
// time of day matches the current scheduler minute.
type ReminderDue struct {
	ReminderID uuid.UUID `json:"reminder_id"`
	UserID     uuid.UUID `json:"user_id"`
	TelegramID string    `json:"telegram_id"`
	Kind       string    `json:"kind"`
	TimeOfDay  string    `json:"time_of_day"`
	Date       string    `json:"date"` // YYYY-MM-DD in the scheduler timezone
}
