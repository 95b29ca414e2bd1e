package telegram

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/service/summary"
)

func TestFormatRoutine(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	steps := make([]*domain.RoutineStep, 0, 3)
	for i, desc := range []string{"Drink water", "Stretch", "Plan the day"} {
		step, err := domain.NewRoutineStep(userID, domain.RoutineMorning, i+1, desc)
		require.NoError(t, err)
		steps = append(steps, step)
	}

	got := FormatRoutine(domain.RoutineMorning, steps)
	assert.Contains(t, got, "Morning routine")
	assert.Contains(t, got, "1. Drink water")
	assert.Contains(t, got, "2. Stretch")
	assert.Contains(t, got, "3. Plan the day")
}

func TestFormatRoutineEmpty(t *testing.T) {
	t.Parallel()

	got := FormatRoutine(domain.RoutineNight, nil)
	assert.Contains(t, got, "Night routine")
	assert.Contains(t, got, "No steps configured yet")
}

func TestFormatHabitChecklist(t *testing.T) {
	t.Parallel()

	day := &summary.DaySummary{
		Date: "2025-03-10",
		Habits: []summary.HabitStatus{
			{Name: "Meditate", Icon: "🧘", Completed: true, Logged: true},
			{Name: "Read", Completed: false},
		},
		Total:     2,
		Completed: 1,
		Percent:   50,
	}

	got := FormatHabitChecklist(day)
	assert.Contains(t, got, "Habits for 2025-03-10")
	assert.Contains(t, got, "✅ 🧘 Meditate")
	assert.Contains(t, got, "⬜ Read")
	assert.Contains(t, got, "1 of 2 done (50%)")
}

func TestFormatHabitChecklistCelebratesFullDay(t *testing.T) {
	t.Parallel()

	day := &summary.DaySummary{
		Date:      "2025-03-10",
		Habits:    []summary.HabitStatus{{Name: "Meditate", Completed: true, Logged: true}},
		Total:     1,
		Completed: 1,
		Percent:   100,
	}

	got := FormatHabitChecklist(day)
	assert.Contains(t, got, "1 of 1 done (100%)")
	assert.Contains(t, got, "All habits done")
}

func TestHabitToggleKeyboard(t *testing.T) {
	t.Parallel()

	doneID := uuid.New()
	openID := uuid.New()
	day := &summary.DaySummary{
		Date: "2025-03-10",
		Habits: []summary.HabitStatus{
			{HabitID: doneID, Name: "Meditate", Completed: true, Logged: true},
			{HabitID: openID, Name: "Read"},
		},
		Total:     2,
		Completed: 1,
	}

	markup := HabitToggleKeyboard(day)
	require.Len(t, markup.InlineKeyboard, 2)

	undo := markup.InlineKeyboard[0][0]
	assert.Contains(t, undo.Text, "Undo: Meditate")
	require.NotNil(t, undo.CallbackData)
	assert.Equal(t, "habit:"+doneID.String()+":undo", *undo.CallbackData)

	done := markup.InlineKeyboard[1][0]
	assert.Contains(t, done.Text, "Mark done: Read")
	require.NotNil(t, done.CallbackData)
	assert.Equal(t, "habit:"+openID.String()+":done", *done.CallbackData)
}

func TestFormatHabitChecklistEmpty(t *testing.T) {
	t.Parallel()

	got := FormatHabitChecklist(&summary.DaySummary{Date: "2025-03-10"})
	assert.Contains(t, got, "No active habits")
}

func TestFormatDaySummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		day  *summary.DaySummary
		want []string
	}{
		{
			name: "perfect day",
			day: &summary.DaySummary{
				Date:      "2025-03-10",
				Habits:    []summary.HabitStatus{{Name: "Meditate", Completed: true}},
				Total:     1,
				Completed: 1,
				Percent:   100,
			},
			want: []string{"Completed 1 of 1 habits (100%)", "Perfect day!"},
		},
		{
			name: "missed habits are listed",
			day: &summary.DaySummary{
				Date: "2025-03-10",
				Habits: []summary.HabitStatus{
					{Name: "Meditate", Completed: true},
					{Name: "Read"},
					{Name: "Run"},
				},
				Total:     3,
				Completed: 1,
				Percent:   33.33,
			},
			want: []string{"Completed 1 of 3 habits (33%)", "Still open: Read, Run"},
		},
		{
			name: "no habits",
			day:  &summary.DaySummary{Date: "2025-03-10"},
			want: []string{"No active habits to report on"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDaySummary(tt.day)
			for _, fragment := range tt.want {
				assert.Contains(t, got, fragment)
			}
		})
	}
}
