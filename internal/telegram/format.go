package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/service/summary"
)

// FormatRoutine renders a routine as a numbered checklist.
func FormatRoutine(routineType domain.RoutineType, steps []*domain.RoutineStep) string {
	var b strings.Builder

	switch routineType {
	case domain.RoutineMorning:
		b.WriteString("☀️ Morning routine\n\n")
	case domain.RoutineNight:
		b.WriteString("🌙 Night routine\n\n")
	}

	if len(steps) == 0 {
		b.WriteString("No steps configured yet. Add some from the app!")
		return b.String()
	}

	for _, step := range steps {
		fmt.Fprintf(&b, "%d. %s\n", step.StepOrder, step.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatHabitChecklist renders today's habits with their completion state.
func FormatHabitChecklist(day *summary.DaySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Habits for %s\n\n", day.Date)

	if len(day.Habits) == 0 {
		b.WriteString("No active habits. Create one from the app!")
		return b.String()
	}

	for _, habit := range day.Habits {
		mark := "⬜"
		if habit.Completed {
			mark = "✅"
		}
		name := habit.Name
		if habit.Icon != "" {
			name = habit.Icon + " " + name
		}
		fmt.Fprintf(&b, "%s %s\n", mark, name)
	}
	fmt.Fprintf(&b, "\n%d of %d done (%.0f%%)", day.Completed, day.Total, day.Percent)
	if day.Completed == day.Total {
		b.WriteString("\n🎉 All habits done, great work!")
	}
	return b.String()
}

// HabitToggleKeyboard builds one button per habit that flips its completion
// state for the day. Button data is "habit:<id>:done" or "habit:<id>:undo".
func HabitToggleKeyboard(day *summary.DaySummary) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(day.Habits))
	for _, habit := range day.Habits {
		label := "✅ Mark done: " + habit.Name
		action := "done"
		if habit.Completed {
			label = "↩️ Undo: " + habit.Name
			action = "undo"
		}
		data := fmt.Sprintf("habit:%s:%s", habit.HabitID, action)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// FormatDaySummary renders the end-of-day recap.
func FormatDaySummary(day *summary.DaySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Summary for %s\n\n", day.Date)

	if day.Total == 0 {
		b.WriteString("No active habits to report on.")
		return b.String()
	}

	fmt.Fprintf(&b, "Completed %d of %d habits (%.0f%%)\n", day.Completed, day.Total, day.Percent)

	var missed []string
	for _, habit := range day.Habits {
		if !habit.Completed {
			missed = append(missed, habit.Name)
		}
	}

	switch {
	case len(missed) == 0:
		b.WriteString("\nPerfect day! 🎉")
	case len(missed) <= 5:
		b.WriteString("\nStill open: " + strings.Join(missed, ", "))
	default:
		fmt.Fprintf(&b, "\n%d habits still open", len(missed))
	}
	return b.String()
}

// FormatLinkSuccess confirms a completed account link.
func FormatLinkSuccess(name string) string {
	return fmt.Sprintf("✅ Linked! Hi %s, you'll now get your reminders here.", name)
}

// FormatWelcome is the /start greeting.
func FormatWelcome() string {
	return strings.Join([]string{
		"👋 Welcome to NexoTime!",
		"",
		"Link your account to receive reminders here:",
		"1. Open the app and request a link code",
		"2. Send me: /link YOURCODE",
		"",
		"Once linked you can use /habits, /morning, /night and /summary.",
	}, "\n")
}
