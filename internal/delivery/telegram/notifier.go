package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mokykis/internal/delivery/view"
	"github.com/aliskhannn/mokykis/internal/domain/entities"
)

// Sender is satisfied by *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier delivers daily reminders to the learner's chat.
type Notifier struct {
	bot    Sender
	chatID int64
}

func NewNotifier(bot Sender, chatID int64) *Notifier {
	return &Notifier{bot: bot, chatID: chatID}
}

func (n *Notifier) SendReminder(_ context.Context, p entities.ReminderPayload) error {
	msg := newPlainMessage(n.chatID, view.Reminder(p))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Review now", buildReviewStartCallback()),
		),
	)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send reminder to chat %d: %w", n.chatID, err)
	}
	return nil
}
