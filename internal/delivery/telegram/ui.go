package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mokykis/internal/delivery/view"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

var onboardingMinutes = []int{5, 10, 15, 20}

// buildReviewAnswerKeyboard builds one button per answer option.
func buildReviewAnswerKeyboard(ex entities.Exercise, question int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(ex.Options))
	for i, option := range ex.Options {
		button := tgbotapi.NewInlineKeyboardButtonData(option, buildReviewAnswerCallback(question, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildSettingsKeyboard builds the toggle keyboard under the settings screen.
func buildSettingsKeyboard(s entities.Settings) tgbotapi.InlineKeyboardMarkup {
	toggle := func(label string, on bool, field string) tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s: %s", label, view.FormatBool(on)),
			buildSettingsToggleCallback(field),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			toggle("🔊 Sound", s.SoundEffects, settingsSound),
			toggle("🔔 Reminders", s.NotificationsEnabled, settingsNotifications),
		),
		tgbotapi.NewInlineKeyboardRow(
			toggle("🔤 Ignore diacritics", s.IgnoreDiacritics, settingsDiacritics),
		),
		tgbotapi.NewInlineKeyboardRow(
			toggle("🧊 Auto freeze", s.AutoUseStreakFreeze, settingsFreeze),
		),
	)
}

// buildOnboardingKeyboard offers the daily minutes choices.
func buildOnboardingKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(onboardingMinutes))
	for _, m := range onboardingMinutes {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d min", m),
			buildOnboardingGoalCallback(m),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}
