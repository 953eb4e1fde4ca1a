// messages.go contains message templates for Telegram.

package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgUnknownCommand = "Unknown command. Send /help to see what I can do."
	msgNoReviews      = "Nothing to review right now. Come back later! 🌱"
	msgReviewExpired  = "This review has expired. Send /review to start again."
	msgDailyLimit     = "You have learned today's sentences. See you tomorrow!"

	msgWelcome = "Labas! 👋 I will help you learn Lithuanian a little every day.\n\n" +
		"How many minutes a day do you want to practise?"
	msgWelcomeBack = "Sveiki sugrįžę! 👋"

	msgHelp = "/status - streak, XP and daily goal\n" +
		"/quests - today's quests\n" +
		"/achievements - unlocked and locked achievements\n" +
		"/review - review due words\n" +
		"/sentences - sentence learning progress\n" +
		"/settings - preferences\n" +
		"/help - this message"
)

// newPlainMessage creates a message without a parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit replaces the text of a sent message.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	return tgbotapi.NewEditMessageText(chatID, msgID, text)
}
