package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/delivery/view"
	"github.com/aliskhannn/mokykis/internal/service"
)

// BotCommands is the command menu registered with Telegram.
func BotCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start learning"},
		{Command: "status", Description: "Streak, XP and daily goal"},
		{Command: "quests", Description: "Today's quests"},
		{Command: "achievements", Description: "Achievements"},
		{Command: "review", Description: "Review due words"},
		{Command: "sentences", Description: "Sentence progress"},
		{Command: "settings", Description: "Settings"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) handleStart(ctx context.Context, chatID int64) error {
	state, err := h.progressService.LoadState(ctx)
	if err != nil {
		return err
	}

	if !state.OnboardingCompleted {
		msg := newPlainMessage(chatID, msgWelcome)
		msg.ReplyMarkup = buildOnboardingKeyboard()
		return h.send(msg)
	}

	if err := h.send(newPlainMessage(chatID, msgWelcomeBack)); err != nil {
		return err
	}
	return h.handleStatus(ctx, chatID)
}

func (h *Handler) handleStatus(ctx context.Context, chatID int64) error {
	state, err := h.progressService.LoadState(ctx)
	if err != nil {
		return err
	}
	due, err := h.progressService.GetDueSrsItems(ctx)
	if err != nil {
		return err
	}
	return h.send(newPlainMessage(chatID, view.Status(state, len(due))))
}

func (h *Handler) handleQuests(ctx context.Context, chatID int64) error {
	daily, err := h.questService.EnsureDailyQuests(ctx)
	if err != nil {
		return err
	}
	return h.send(newPlainMessage(chatID, view.Quests(daily)))
}

func (h *Handler) handleAchievements(ctx context.Context, chatID int64) error {
	unlocked, err := h.achievementService.Unlocked(ctx)
	if err != nil {
		return err
	}
	locked, err := h.achievementService.Locked(ctx)
	if err != nil {
		return err
	}
	return h.send(newPlainMessage(chatID, view.Achievements(unlocked, locked)))
}

func (h *Handler) handleReview(ctx context.Context, chatID int64) error {
	exercises, err := h.reviewService.GenerateReviewExercises(ctx, service.DefaultReviewLimit)
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		return h.send(newPlainMessage(chatID, msgNoReviews))
	}

	h.sessions.start(chatID, exercises)
	h.logger.Info("review started", zap.Int64("chat_id", chatID), zap.Int("exercises", len(exercises)))
	return h.sendQuestion(chatID)
}

// sendQuestion sends the current exercise of the chat's review session.
func (h *Handler) sendQuestion(chatID int64) error {
	ex, idx, total, ok := h.sessions.current(chatID)
	if !ok {
		return h.send(newPlainMessage(chatID, msgReviewExpired))
	}

	msg := newPlainMessage(chatID, fmt.Sprintf("🔁 %d/%d\n\n%s", idx+1, total, ex.Question))
	msg.ReplyMarkup = buildReviewAnswerKeyboard(ex, idx)
	return h.send(msg)
}

func (h *Handler) handleSentences(ctx context.Context, chatID int64) error {
	left, err := h.sentenceService.RemainingToday(ctx)
	if err != nil {
		return err
	}
	weekly, err := h.sentenceService.NeedsWeeklyReview(ctx)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("📝 Sentences left today: %d/%d", left, service.DailySentenceLimit)
	if left == 0 {
		text = msgDailyLimit
	}
	if weekly {
		text += "\n📅 Your weekly sentence review is due."
	}
	return h.send(newPlainMessage(chatID, text))
}
