package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleOnboardingGoal(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) error {
	minutes, ok := data.intParam(0)
	if !ok {
		return fmt.Errorf("invalid onboarding callback %q", data.Raw)
	}

	state, err := h.settingsService.FinishOnboarding(ctx, minutes, true)
	if err != nil {
		return err
	}
	h.logger.Info("onboarding finished",
		zap.Int("minutes", minutes),
		zap.Int("daily_goal_xp", state.DailyGoalXP),
	)

	text := fmt.Sprintf(
		"🎯 Daily goal set to %d XP (%d min a day).\n\n"+
			"I will remind you at %s if you have not practised yet.\n"+
			"Send /review to start or /help for all commands.",
		state.DailyGoalXP, minutes, state.Settings.ReminderTime,
	)
	return h.send(newEdit(cb.Message.Chat.ID, cb.Message.MessageID, text))
}
