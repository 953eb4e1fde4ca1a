package entities

import (
	"fmt"
	"time"
)

// ReminderPayload carries what a daily reminder message shows.
type ReminderPayload struct {
	StreakCount int // current streak at risk
	DueCount    int // SRS items waiting for review
	DailyGoalXP int
	XPToday     int
}

// ParseReminderTime parses an "HH:MM" reminder time.
func ParseReminderTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("parse reminder time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// NextReminderAt returns the next occurrence of the "HH:MM" reminder time
// after now, in now's location.
func NextReminderAt(reminderTime string, now time.Time) (time.Time, error) {
	hour, minute, err := ParseReminderTime(reminderTime)
	if err != nil {
		return time.Time{}, err
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}
