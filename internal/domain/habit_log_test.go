package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHabitLog(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	habitID := uuid.New()
	noon := time.Date(2026, 2, 19, 12, 34, 56, 0, time.UTC)

	log, err := NewHabitLog(userID, habitID, noon, true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC), log.LogDate)
	assert.True(t, log.Completed)

	_, err = NewHabitLog(uuid.Nil, habitID, noon, true)
	assert.ErrorIs(t, err, ErrEmptyHabitLogUserID)

	_, err = NewHabitLog(userID, uuid.Nil, noon, true)
	assert.ErrorIs(t, err, ErrEmptyHabitLogHabitID)
}

func TestTruncateToDate(t *testing.T) {
	t.Parallel()

	// A late-evening timestamp in a western timezone is still that
	// calendar day in UTC terms after conversion.
	loc := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2026, 2, 19, 23, 30, 0, 0, loc)
	got := TruncateToDate(local)
	assert.Equal(t, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), got)

	utc := time.Date(2026, 2, 19, 0, 0, 0, 1, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC), TruncateToDate(utc))
}
