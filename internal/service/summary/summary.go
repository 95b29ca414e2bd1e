// Package summary computes daily and weekly habit completion statistics
// from the raw habit log entries.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/store"
)

// statsWindowDays bounds how far back streak computation looks. A streak
// longer than a year is reported as capped at the window.
const statsWindowDays = 365

// HabitStatus is one habit's state within a day summary.
type HabitStatus struct {
	HabitID   uuid.UUID `json:"habit_id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Logged    bool      `json:"logged"`
	Completed bool      `json:"completed"`
}

// DaySummary reports completion for all active habits on one date.
type DaySummary struct {
	Date      string        `json:"date"`
	Habits    []HabitStatus `json:"habits"`
	Total     int           `json:"total"`
	Completed int           `json:"completed"`
	Percent   float64       `json:"percent"`
}

// DayCount is one day's aggregate inside a week summary.
type DayCount struct {
	Date      string  `json:"date"`
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Percent   float64 `json:"percent"`
}

// WeekSummary aggregates the seven days ending at Date.
type WeekSummary struct {
	Days      []DayCount `json:"days"`
	Total     int        `json:"total"`
	Completed int        `json:"completed"`
	Percent   float64    `json:"percent"`
}

// HabitStats reports streak and completion figures for a single habit.
type HabitStats struct {
	HabitID          uuid.UUID `json:"habit_id"`
	Name             string    `json:"name"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	CompletedLast30  int       `json:"completed_last_30"`
	CompletionRate30 float64   `json:"completion_rate_30"`
}

// Service computes summaries from the habit and log stores.
type Service struct {
	habits store.HabitStore
	logs   store.HabitLogStore

	timeFunc func() time.Time // Injectable for testing
}

// NewService creates a summary Service.
func NewService(habits store.HabitStore, logs store.HabitLogStore) *Service {
	if habits == nil {
		panic("habits cannot be nil")
	}
	if logs == nil {
		panic("logs cannot be nil")
	}
	return &Service{
		habits:   habits,
		logs:     logs,
		timeFunc: time.Now,
	}
}

// Day returns the per-habit completion summary for one calendar date.
// Active habits without a log entry count as not completed.
func (s *Service) Day(ctx context.Context, userID uuid.UUID, date time.Time) (*DaySummary, error) {
	day := domain.TruncateToDate(date)

	habits, err := s.habits.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	logs, err := s.logs.ListByDate(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	logged := make(map[uuid.UUID]bool, len(logs))
	for _, log := range logs {
		logged[log.HabitID] = log.Completed
	}

	result := &DaySummary{
		Date:   day.Format(domain.LogDateFormat),
		Habits: make([]HabitStatus, 0, len(habits)),
		Total:  len(habits),
	}

	for _, habit := range habits {
		completed, hasLog := logged[habit.ID]
		if completed {
			result.Completed++
		}
		result.Habits = append(result.Habits, HabitStatus{
			HabitID:   habit.ID,
			Name:      habit.Name,
			Icon:      habit.Icon,
			Logged:    hasLog,
			Completed: completed,
		})
	}

	result.Percent = percent(result.Completed, result.Total)
	return result, nil
}

// Week returns per-day aggregates for the seven days ending at date,
// oldest day first.
func (s *Service) Week(ctx context.Context, userID uuid.UUID, date time.Time) (*WeekSummary, error) {
	end := domain.TruncateToDate(date)

	result := &WeekSummary{
		Days: make([]DayCount, 0, 7),
	}

	for offset := 6; offset >= 0; offset-- {
		day := end.AddDate(0, 0, -offset)

		daySummary, err := s.Day(ctx, userID, day)
		if err != nil {
			return nil, err
		}

		result.Days = append(result.Days, DayCount{
			Date:      daySummary.Date,
			Total:     daySummary.Total,
			Completed: daySummary.Completed,
			Percent:   daySummary.Percent,
		})
		result.Total += daySummary.Total
		result.Completed += daySummary.Completed
	}

	result.Percent = percent(result.Completed, result.Total)
	return result, nil
}

// HabitStats returns streaks and the last-30-day completion figures for
// one habit. Returns store.ErrHabitNotFound for missing or foreign habits.
func (s *Service) HabitStats(ctx context.Context, userID, habitID uuid.UUID) (*HabitStats, error) {
	habit, err := s.habits.GetForUser(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	today := domain.TruncateToDate(s.timeFunc())
	since := today.AddDate(0, 0, -statsWindowDays)

	logs, err := s.logs.ListByHabitSince(ctx, userID, habitID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	completedDays := make(map[string]bool, len(logs))
	cutoff30 := today.AddDate(0, 0, -29)
	completed30 := 0
	for _, log := range logs {
		if !log.Completed {
			continue
		}
		completedDays[log.LogDate.Format(domain.LogDateFormat)] = true
		if !log.LogDate.Before(cutoff30) {
			completed30++
		}
	}

	return &HabitStats{
		HabitID:          habit.ID,
		Name:             habit.Name,
		CurrentStreak:    currentStreak(completedDays, today),
		LongestStreak:    longestStreak(completedDays, today),
		CompletedLast30:  completed30,
		CompletionRate30: percent(completed30, 30),
	}, nil
}

// currentStreak counts consecutive completed days ending today. A day not
// yet logged today does not break the streak; it starts counting from
// yesterday instead.
func currentStreak(completed map[string]bool, today time.Time) int {
	day := today
	if !completed[day.Format(domain.LogDateFormat)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for completed[day.Format(domain.LogDateFormat)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak finds the longest run of consecutive completed days inside
// the stats window.
func longestStreak(completed map[string]bool, today time.Time) int {
	longest, run := 0, 0
	day := today.AddDate(0, 0, -statsWindowDays)
	for !day.After(today) {
		if completed[day.Format(domain.LogDateFormat)] {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
		day = day.AddDate(0, 0, 1)
	}
	return longest
}

func percent(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
