package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

// XPPerGoalMinute converts the onboarding minutes choice into daily XP.
const XPPerGoalMinute = 5

var (
	ErrInvalidDailyGoal    = errors.New("daily goal must be positive")
	ErrInvalidReminderTime = errors.New("reminder time must be HH:MM")
)

type SettingsService struct {
	progress *ProgressService
}

func NewSettingsService(progress *ProgressService) *SettingsService {
	return &SettingsService{progress: progress}
}

func (s *SettingsService) Get(ctx context.Context) (entities.Settings, error) {
	state, err := s.progress.LoadState(ctx)
	if err != nil {
		return entities.Settings{}, err
	}
	return state.Settings, nil
}

// Update applies fn to the settings. An invalid reminder time is rejected.
func (s *SettingsService) Update(ctx context.Context, fn func(*entities.Settings)) (entities.Settings, error) {
	state, _, err := s.progress.Mutate(ctx, func(u *Update) error {
		next := u.State().Settings
		fn(&next)
		if _, _, err := entities.ParseReminderTime(next.ReminderTime); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidReminderTime, err)
		}
		u.State().Settings = next
		return nil
	})
	if err != nil {
		return entities.Settings{}, err
	}
	return state.Settings, nil
}

func (s *SettingsService) SetDailyGoal(ctx context.Context, xp int) error {
	if xp <= 0 {
		return ErrInvalidDailyGoal
	}
	_, _, err := s.progress.Mutate(ctx, func(u *Update) error {
		u.State().DailyGoalXP = xp
		return nil
	})
	return err
}

// FinishOnboarding stores the chosen daily minutes as an XP goal.
func (s *SettingsService) FinishOnboarding(ctx context.Context, minutes int, notifications bool) (*entities.UserState, error) {
	if minutes <= 0 {
		return nil, ErrInvalidDailyGoal
	}
	state, _, err := s.progress.Mutate(ctx, func(u *Update) error {
		st := u.State()
		st.DailyGoalXP = minutes * XPPerGoalMinute
		st.Settings.NotificationsEnabled = notifications
		st.OnboardingCompleted = true
		return nil
	})
	return state, err
}
