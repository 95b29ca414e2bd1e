package summary

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/mocks"
	"github.com/nexotime/nexotime/internal/store"
)

func mustHabit(t *testing.T, userID uuid.UUID, name string) *domain.Habit {
	t.Helper()
	habit, err := domain.NewHabit(userID, name, "")
	require.NoError(t, err)
	return habit
}

func mustLog(t *testing.T, userID, habitID uuid.UUID, date time.Time, completed bool) *domain.HabitLog {
	t.Helper()
	log, err := domain.NewHabitLog(userID, habitID, date, completed)
	require.NoError(t, err)
	return log
}

func TestDaySummary(t *testing.T) {
	userID := uuid.New()
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	habits := mocks.NewMockHabitStore()
	logs := mocks.NewMockHabitLogStore()

	read := mustHabit(t, userID, "Read")
	run := mustHabit(t, userID, "Run")
	meditate := mustHabit(t, userID, "Meditate")
	for _, h := range []*domain.Habit{read, run, meditate} {
		require.NoError(t, habits.Create(context.Background(), h))
	}

	logs.Logs = []*domain.HabitLog{
		mustLog(t, userID, read.ID, today, true),
		mustLog(t, userID, run.ID, today, false),
	}

	svc := NewService(habits, logs)
	got, err := svc.Day(context.Background(), userID, today)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", got.Date)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.Completed)
	assert.InDelta(t, 33.33, got.Percent, 0.01)

	byID := make(map[uuid.UUID]HabitStatus)
	for _, hs := range got.Habits {
		byID[hs.HabitID] = hs
	}
	assert.True(t, byID[read.ID].Completed)
	assert.True(t, byID[run.ID].Logged)
	assert.False(t, byID[run.ID].Completed)
	assert.False(t, byID[meditate.ID].Logged)
}

func TestDaySummaryNoHabits(t *testing.T) {
	svc := NewService(mocks.NewMockHabitStore(), mocks.NewMockHabitLogStore())

	got, err := svc.Day(context.Background(), uuid.New(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, got.Total)
	assert.Equal(t, float64(0), got.Percent)
	assert.Empty(t, got.Habits)
}

func TestWeekSummary(t *testing.T) {
	userID := uuid.New()
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	habits := mocks.NewMockHabitStore()
	logs := mocks.NewMockHabitLogStore()

	habit := mustHabit(t, userID, "Read")
	require.NoError(t, habits.Create(context.Background(), habit))

	// Completed on the last three days of the window.
	for offset := 0; offset < 3; offset++ {
		logs.Logs = append(logs.Logs,
			mustLog(t, userID, habit.ID, end.AddDate(0, 0, -offset), true))
	}

	svc := NewService(habits, logs)
	got, err := svc.Week(context.Background(), userID, end)
	require.NoError(t, err)

	require.Len(t, got.Days, 7)
	assert.Equal(t, "2025-03-04", got.Days[0].Date)
	assert.Equal(t, "2025-03-10", got.Days[6].Date)
	assert.Equal(t, 7, got.Total)
	assert.Equal(t, 3, got.Completed)
	assert.InDelta(t, 42.85, got.Percent, 0.01)

	assert.Equal(t, 0, got.Days[0].Completed)
	assert.Equal(t, 1, got.Days[6].Completed)
}

func TestHabitStats(t *testing.T) {
	userID := uuid.New()
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	habits := mocks.NewMockHabitStore()
	logs := mocks.NewMockHabitLogStore()

	habit := mustHabit(t, userID, "Read")
	require.NoError(t, habits.Create(context.Background(), habit))

	// Current streak: today plus the two days before.
	// An older five-day run is the longest.
	for offset := 0; offset < 3; offset++ {
		logs.Logs = append(logs.Logs,
			mustLog(t, userID, habit.ID, today.AddDate(0, 0, -offset), true))
	}
	for offset := 10; offset < 15; offset++ {
		logs.Logs = append(logs.Logs,
			mustLog(t, userID, habit.ID, today.AddDate(0, 0, -offset), true))
	}
	// An incomplete entry breaks nothing extra but must not count.
	logs.Logs = append(logs.Logs,
		mustLog(t, userID, habit.ID, today.AddDate(0, 0, -5), false))

	svc := NewService(habits, logs)
	svc.timeFunc = func() time.Time { return today }

	got, err := svc.HabitStats(context.Background(), userID, habit.ID)
	require.NoError(t, err)

	assert.Equal(t, habit.ID, got.HabitID)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 5, got.LongestStreak)
	assert.Equal(t, 8, got.CompletedLast30)
	assert.InDelta(t, 26.66, got.CompletionRate30, 0.01)
}

func TestHabitStatsTodayNotLoggedYet(t *testing.T) {
	userID := uuid.New()
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	habits := mocks.NewMockHabitStore()
	logs := mocks.NewMockHabitLogStore()

	habit := mustHabit(t, userID, "Run")
	require.NoError(t, habits.Create(context.Background(), habit))

	// Completed yesterday and the day before, nothing today.
	logs.Logs = []*domain.HabitLog{
		mustLog(t, userID, habit.ID, today.AddDate(0, 0, -1), true),
		mustLog(t, userID, habit.ID, today.AddDate(0, 0, -2), true),
	}

	svc := NewService(habits, logs)
	svc.timeFunc = func() time.Time { return today }

	got, err := svc.HabitStats(context.Background(), userID, habit.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, got.CurrentStreak)
}

func TestHabitStatsUnknownHabit(t *testing.T) {
	svc := NewService(mocks.NewMockHabitStore(), mocks.NewMockHabitLogStore())

	_, err := svc.HabitStats(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, store.ErrHabitNotFound)
}
