package service

import (
	"context"
	"time"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

// StateRepository persists the single user state blob.
type StateRepository interface {
	Load(ctx context.Context, now time.Time) (*entities.UserState, error)
	Save(ctx context.Context, state *entities.UserState) error
	Key() string
}

// ContentRepository provides static lesson content.
type ContentRepository interface {
	GetAll() []entities.Lesson
	FindWord(word string) (entities.VocabularyEntry, bool)
}

// ReminderNotifier sends reminder notifications to the user.
type ReminderNotifier interface {
	SendReminder(ctx context.Context, payload entities.ReminderPayload) error
}

// Clock returns the current time in the user's zone.
type Clock func() time.Time

// ClockIn returns a wall clock reporting time in loc.
func ClockIn(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}
