package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

type recordingNotifier struct {
	payloads []entities.ReminderPayload
}

func (n *recordingNotifier) SendReminder(_ context.Context, p entities.ReminderPayload) error {
	n.payloads = append(n.payloads, p)
	return nil
}

func TestCronSpec(t *testing.T) {
	spec, err := CronSpec("19:05")
	require.NoError(t, err)
	assert.Equal(t, "5 19 * * *", spec)

	spec, err = CronSpec("00:00")
	require.NoError(t, err)
	assert.Equal(t, "0 0 * * *", spec)

	_, err = CronSpec("19h")
	assert.ErrorIs(t, err, ErrInvalidReminderTime)
}

func TestReminder_SendIfDue(t *testing.T) {
	env := newTestEnv(t)
	reminders := NewReminderService(env.progress, nil, time.UTC, zap.NewNop())

	_, err := reminders.SendIfDue(env.ctx)
	assert.ErrorIs(t, err, ErrNotifierNotSet)

	notifier := &recordingNotifier{}
	reminders.SetNotifier(notifier)

	_, err = env.progress.AddSrsItem(env.ctx, "labas", entities.KindWord)
	require.NoError(t, err)

	sent, err := reminders.SendIfDue(env.ctx)
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, notifier.payloads, 1)
	assert.Equal(t, 1, notifier.payloads[0].DueCount)

	sent, err = reminders.SendIfDue(env.ctx)
	require.NoError(t, err)
	assert.False(t, sent, "second reminder on the same day")

	env.clock.advance(24 * time.Hour)
	_, _, err = env.progress.AwardXP(env.ctx, 5)
	require.NoError(t, err)
	sent, err = reminders.SendIfDue(env.ctx)
	require.NoError(t, err)
	assert.False(t, sent, "already studied today")

	env.clock.advance(24 * time.Hour)
	sent, err = reminders.SendIfDue(env.ctx)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Len(t, notifier.payloads, 2)
}

func TestReminder_NotificationsDisabled(t *testing.T) {
	env := newTestEnv(t)
	reminders := NewReminderService(env.progress, nil, time.UTC, zap.NewNop())
	reminders.SetNotifier(&recordingNotifier{})

	_, err := NewSettingsService(env.progress).Update(env.ctx, func(s *entities.Settings) {
		s.NotificationsEnabled = false
	})
	require.NoError(t, err)

	sent, err := reminders.SendIfDue(env.ctx)
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestReminder_StartStops(t *testing.T) {
	env := newTestEnv(t)
	reminders := NewReminderService(env.progress, nil, time.UTC, zap.NewNop())

	ctx, cancel := context.WithCancel(env.ctx)
	cancel()
	assert.NoError(t, reminders.Start(ctx))
}

func TestReminder_StartRejectsBadTime(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.progress.Mutate(env.ctx, func(u *Update) error {
		u.State().Settings.ReminderTime = "25:99"
		return nil
	})
	require.NoError(t, err)

	reminders := NewReminderService(env.progress, nil, time.UTC, zap.NewNop())
	assert.ErrorIs(t, reminders.Start(env.ctx), ErrInvalidReminderTime)
}
