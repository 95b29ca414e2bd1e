package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReminder(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name     string
		kind     ReminderKind
		time     string
		wantTime string
		wantErr  error
	}{
		{name: "morning reminder", kind: ReminderMorning, time: "07:00", wantTime: "07:00"},
		{name: "summary reminder", kind: ReminderSummary, time: "22:30", wantTime: "22:30"},
		{name: "unpadded time is canonicalized", kind: ReminderNight, time: "7:30", wantTime: "07:30"},
		{name: "unknown kind", kind: "weekly", time: "07:00", wantErr: ErrInvalidReminderKind},
		{name: "bad time", kind: ReminderHabits, time: "25:00", wantErr: ErrInvalidReminderTime},
		{name: "not a time", kind: ReminderHabits, time: "morning", wantErr: ErrInvalidReminderTime},
		{name: "empty time", kind: ReminderHabits, time: "", wantErr: ErrInvalidReminderTime},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reminder, err := NewReminder(userID, tt.kind, tt.time)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, reminder.Active)
			assert.Equal(t, tt.kind, reminder.Kind)
			assert.Equal(t, tt.wantTime, reminder.TimeOfDay)
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "07:00", want: "07:00"},
		{input: "7:05", want: "07:05"},
		{input: "23:59", want: "23:59"},
		{input: "00:00", want: "00:00"},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "12", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidReminderTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
