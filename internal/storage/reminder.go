package storage

import (
	"sync"
	"time"
)

// ReminderLog remembers when a reminder was last sent per state key, so a
// rescheduled job does not notify twice on the same day.
type ReminderLog struct {
	mu   sync.RWMutex
	sent map[string]time.Time
}

func NewReminderLog() *ReminderLog {
	return &ReminderLog{
		sent: make(map[string]time.Time),
	}
}

func (l *ReminderLog) Get(key string) (time.Time, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	at, ok := l.sent[key]
	return at, ok
}

// UpsertAndGetPrev records at and returns the previous send time.
func (l *ReminderLog) UpsertAndGetPrev(key string, at time.Time) (prev time.Time, hadPrev bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, hadPrev = l.sent[key]
	l.sent[key] = at
	return prev, hadPrev
}
