package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
	"github.com/aliskhannn/mokykis/internal/domain/srs"
	"github.com/aliskhannn/mokykis/internal/storage"
)

var ErrNotifierNotSet = errors.New("notifier not initialized")

// ReminderService fires a daily reminder at settings.reminderTime when no XP
// was earned yet that day. The schedule lives in memory and is rebuilt on
// every start.
type ReminderService struct {
	progress *ProgressService
	sent     *storage.ReminderLog
	loc      *time.Location
	logger   *zap.Logger

	mu       sync.Mutex
	notifier ReminderNotifier
	cron     *cron.Cron
	entry    cron.EntryID
}

func NewReminderService(progress *ProgressService, sent *storage.ReminderLog, loc *time.Location, logger *zap.Logger) *ReminderService {
	if sent == nil {
		sent = storage.NewReminderLog()
	}
	return &ReminderService{
		progress: progress,
		sent:     sent,
		loc:      loc,
		logger:   logger,
	}
}

// SetNotifier sets the notifier (called after delivery is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = notifier
}

// CronSpec converts an "HH:MM" reminder time into a daily cron spec.
func CronSpec(reminderTime string) (string, error) {
	hour, minute, err := entities.ParseReminderTime(reminderTime)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidReminderTime, err)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// Start schedules the reminder and blocks until ctx is done.
func (s *ReminderService) Start(ctx context.Context) error {
	if err := s.Reschedule(ctx); err != nil {
		return err
	}
	s.logger.Info("reminder service started")

	<-ctx.Done()

	s.mu.Lock()
	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.cron = nil
	}
	s.mu.Unlock()

	s.logger.Info("reminder service stopped")
	return nil
}

// Reschedule rebuilds the cron entry from the current settings.
func (s *ReminderService) Reschedule(ctx context.Context) error {
	state, err := s.progress.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	spec, err := CronSpec(state.Settings.ReminderTime)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		s.cron = cron.New(cron.WithLocation(s.loc))
		s.cron.Start()
	}
	if s.entry != 0 {
		s.cron.Remove(s.entry)
	}

	s.entry, err = s.cron.AddFunc(spec, func() {
		if _, err := s.SendIfDue(ctx); err != nil {
			s.logger.Error("failed to send reminder", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	s.logger.Info("reminder scheduled",
		zap.String("reminder_time", state.Settings.ReminderTime),
		zap.String("spec", spec),
		zap.Time("next", s.cron.Entry(s.entry).Next),
	)
	return nil
}

// SendIfDue sends today's reminder when notifications are on, no XP was
// earned today and nothing was sent yet today. It reports whether a reminder
// went out.
func (s *ReminderService) SendIfDue(ctx context.Context) (bool, error) {
	state, err := s.progress.LoadState(ctx)
	if err != nil {
		return false, fmt.Errorf("load state: %w", err)
	}

	if !state.Settings.NotificationsEnabled || state.XPToday > 0 {
		return false, nil
	}

	now := s.progress.Clock()()
	today := entities.DateKey(now)
	if last, ok := s.sent.Get(s.progress.repo.Key()); ok && entities.DateKey(last.In(now.Location())) == today {
		return false, nil
	}

	s.mu.Lock()
	notifier := s.notifier
	s.mu.Unlock()
	if notifier == nil {
		return false, ErrNotifierNotSet
	}

	payload := entities.ReminderPayload{
		StreakCount: state.StreakCount,
		DueCount:    len(srs.DueItems(srs.Values(state.SrsItems), now)),
		DailyGoalXP: state.DailyGoalXP,
		XPToday:     state.XPToday,
	}
	if err := notifier.SendReminder(ctx, payload); err != nil {
		return false, fmt.Errorf("send reminder: %w", err)
	}

	fields := []zap.Field{
		zap.Int("streak", payload.StreakCount),
		zap.Int("due", payload.DueCount),
	}
	if prev, had := s.sent.UpsertAndGetPrev(s.progress.repo.Key(), now); had {
		fields = append(fields, zap.Time("previous", prev))
	}
	s.logger.Info("reminder sent", fields...)
	return true, nil
}
