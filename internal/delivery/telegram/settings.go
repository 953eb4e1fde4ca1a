package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mokykis/internal/delivery/view"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

func (h *Handler) handleSettings(ctx context.Context, chatID int64) error {
	text, kb, err := h.renderSettings(ctx)
	if err != nil {
		return err
	}

	msg := newPlainMessage(chatID, text)
	msg.ReplyMarkup = kb
	return h.send(msg)
}

func (h *Handler) renderSettings(ctx context.Context) (string, tgbotapi.InlineKeyboardMarkup, error) {
	state, err := h.progressService.LoadState(ctx)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}
	return view.Settings(state.Settings, state.DailyGoalXP), buildSettingsKeyboard(state.Settings), nil
}

func (h *Handler) handleSettingsToggle(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) error {
	if len(data.Params) != 1 {
		return fmt.Errorf("invalid settings callback %q", data.Raw)
	}

	var toggle func(*entities.Settings)
	switch data.Params[0] {
	case settingsSound:
		toggle = func(s *entities.Settings) { s.SoundEffects = !s.SoundEffects }
	case settingsNotifications:
		toggle = func(s *entities.Settings) { s.NotificationsEnabled = !s.NotificationsEnabled }
	case settingsDiacritics:
		toggle = func(s *entities.Settings) { s.IgnoreDiacritics = !s.IgnoreDiacritics }
	case settingsFreeze:
		toggle = func(s *entities.Settings) { s.AutoUseStreakFreeze = !s.AutoUseStreakFreeze }
	default:
		return fmt.Errorf("unknown settings toggle %q", data.Params[0])
	}

	if _, err := h.settingsService.Update(ctx, toggle); err != nil {
		return err
	}

	text, kb, err := h.renderSettings(ctx)
	if err != nil {
		return err
	}
	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, text)
	edit.ReplyMarkup = &kb
	return h.send(edit)
}
