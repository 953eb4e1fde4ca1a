package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handler serves the learner's chat. Updates from any other chat are
// ignored since the engine keeps a single learner state.
type Handler struct {
	bot                Bot
	chatID             int64
	logger             *zap.Logger
	progressService    ProgressService
	questService       QuestService
	achievementService AchievementService
	reviewService      ReviewService
	sentenceService    SentenceService
	settingsService    SettingsService
	sessions           *reviewSessions
}

func NewHandler(
	bot Bot,
	chatID int64,
	logger *zap.Logger,
	progressService ProgressService,
	questService QuestService,
	achievementService AchievementService,
	reviewService ReviewService,
	sentenceService SentenceService,
	settingsService SettingsService,
) *Handler {
	return &Handler{
		bot:                bot,
		chatID:             chatID,
		logger:             logger,
		progressService:    progressService,
		questService:       questService,
		achievementService: achievementService,
		reviewService:      reviewService,
		sentenceService:    sentenceService,
		settingsService:    settingsService,
		sessions:           newReviewSessions(),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started", zap.Int64("chat_id", h.chatID))
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		if !h.allowed(update.CallbackQuery.Message) {
			return
		}
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}
	if !h.allowed(update.Message) {
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	if !update.Message.IsCommand() {
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	command := update.Message.Command()
	switch command {
	case "start":
		h.run(ctx, command, chatID, h.handleStart)
	case "status":
		h.run(ctx, command, chatID, h.handleStatus)
	case "quests":
		h.run(ctx, command, chatID, h.handleQuests)
	case "achievements":
		h.run(ctx, command, chatID, h.handleAchievements)
	case "review":
		h.run(ctx, command, chatID, h.handleReview)
	case "sentences":
		h.run(ctx, command, chatID, h.handleSentences)
	case "settings":
		h.run(ctx, command, chatID, h.handleSettings)
	case "help":
		_ = h.send(newPlainMessage(chatID, msgHelp))
	default:
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) allowed(m *tgbotapi.Message) bool {
	if m == nil || m.Chat == nil {
		return false
	}
	if m.Chat.ID != h.chatID {
		h.logger.Warn("update from unknown chat ignored", zap.Int64("chat_id", m.Chat.ID))
		return false
	}
	return true
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
		return err
	}
	return nil
}
