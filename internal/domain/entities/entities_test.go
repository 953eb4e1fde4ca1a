package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey_UsesLocation(t *testing.T) {
	vilnius := time.FixedZone("UTC+03:00", 3*3600)
	instant := time.Date(2024, 3, 9, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-09", DateKey(instant))
	assert.Equal(t, "2024-03-10", DateKey(instant.In(vilnius)))
	assert.Equal(t, "2024-03-09", YesterdayKey(instant.In(vilnius)))
}

func TestDaysBetween(t *testing.T) {
	days, ok := DaysBetween("2024-02-27", "2024-03-01")
	require.True(t, ok)
	assert.Equal(t, 3, days)

	_, ok = DaysBetween("", "2024-03-01")
	assert.False(t, ok)

	_, ok = DaysBetween("2024-02-30x", "2024-03-01")
	assert.False(t, ok)
}

func TestParseTimezoneLocation(t *testing.T) {
	tests := []struct {
		in      string
		offset  int
		wantErr bool
	}{
		{in: "UTC", offset: 0},
		{in: "gmt", offset: 0},
		{in: "UTC+3", offset: 3 * 3600},
		{in: "UTC-7", offset: -7 * 3600},
		{in: "+02:00", offset: 2 * 3600},
		{in: "-03:30", offset: -(3*3600 + 30*60)},
		{in: "UTC+15", wantErr: true},
		{in: "Mars/Olympus", wantErr: true},
	}

	ref := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			loc, err := ParseTimezoneLocation(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, offset := ref.In(loc).Zone()
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestNextReminderAt(t *testing.T) {
	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	next, err := NextReminderAt("19:00", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC), next)

	next, err = NextReminderAt("07:15", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 2, 7, 15, 0, 0, time.UTC), next)

	_, err = NextReminderAt("25:00", now)
	assert.Error(t, err)
}

func TestSentenceItemID(t *testing.T) {
	key := SentenceItemID(42)
	assert.Equal(t, "sentence:42", key)
	assert.Equal(t, KindSentence, KindForID(key))
	assert.Equal(t, KindWord, KindForID("labas"))

	id, ok := ParseSentenceItemID(key)
	require.True(t, ok)
	assert.Equal(t, 42, id)

	_, ok = ParseSentenceItemID("sentence:x")
	assert.False(t, ok)
}

func TestNewUserState(t *testing.T) {
	s := NewUserState()

	assert.Equal(t, SchemaVersion, s.Version)
	assert.Equal(t, DefaultDailyGoalXP, s.DailyGoalXP)
	assert.Equal(t, DefaultStreakFreezeCost, s.StreakFreezeCost)
	assert.NotNil(t, s.SrsItems)
	assert.NotNil(t, s.LessonsCompleted)
	assert.True(t, s.Settings.NotificationsEnabled)
	assert.False(t, s.Settings.IgnoreDiacritics)
	assert.False(t, s.DailyQuests.AllCompleted())
}
