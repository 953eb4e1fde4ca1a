package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

func TestSettings_FinishOnboarding(t *testing.T) {
	env := newTestEnv(t)
	settings := NewSettingsService(env.progress)

	state, err := settings.FinishOnboarding(env.ctx, 10, false)
	require.NoError(t, err)

	assert.Equal(t, 50, state.DailyGoalXP)
	assert.False(t, state.Settings.NotificationsEnabled)
	assert.True(t, state.OnboardingCompleted)

	_, err = settings.FinishOnboarding(env.ctx, 0, true)
	assert.ErrorIs(t, err, ErrInvalidDailyGoal)
}

func TestSettings_Update(t *testing.T) {
	env := newTestEnv(t)
	settings := NewSettingsService(env.progress)

	got, err := settings.Update(env.ctx, func(s *entities.Settings) {
		s.ReminderTime = "07:45"
		s.AutoUseStreakFreeze = true
	})
	require.NoError(t, err)
	assert.Equal(t, "07:45", got.ReminderTime)
	assert.True(t, got.AutoUseStreakFreeze)

	_, err = settings.Update(env.ctx, func(s *entities.Settings) { s.ReminderTime = "7pm" })
	assert.ErrorIs(t, err, ErrInvalidReminderTime)

	current, err := settings.Get(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, "07:45", current.ReminderTime)

	require.NoError(t, settings.SetDailyGoal(env.ctx, 80))
	assert.Equal(t, 80, env.state(t).DailyGoalXP)
	assert.ErrorIs(t, settings.SetDailyGoal(env.ctx, -1), ErrInvalidDailyGoal)
}
