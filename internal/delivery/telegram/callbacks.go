package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/mokykis/internal/delivery/view"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := decodeCallback(cb.Data)
	notice := ""

	var err error
	switch data.Action {
	case actionReview:
		notice, err = h.handleReviewAnswer(ctx, cb, data)
	case actionReviewStart:
		err = h.handleReview(ctx, cb.Message.Chat.ID)
	case actionSettings:
		err = h.handleSettingsToggle(ctx, cb, data)
	case actionOnboarding:
		err = h.handleOnboardingGoal(ctx, cb, data)
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}
	if err != nil {
		h.logger.Error("handle callback",
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.sendError(cb.Message.Chat.ID, msgInternalError)
	}

	// Remove the user's "clock".
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, notice)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

// handleReviewAnswer grades the pressed option and moves the session on. The
// returned notice is shown on the callback answer.
func (h *Handler) handleReviewAnswer(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	chatID := cb.Message.Chat.ID

	question, ok1 := data.intParam(0)
	option, ok2 := data.intParam(1)
	ex, idx, _, ok := h.sessions.current(chatID)
	if !ok1 || !ok2 || !ok || question != idx || option < 0 || option >= len(ex.Options) {
		return msgReviewExpired, nil
	}

	res, err := h.reviewService.SubmitAnswer(ctx, ex.ReviewWord, ex.Options[option], ex.Answer)
	if err != nil {
		return "", err
	}

	verdict := "✅ Correct!"
	if !res.Correct {
		verdict = fmt.Sprintf("❌ The answer is: %s", ex.Answer)
	}
	text := ex.Question + "\n\n" + verdict
	if rewards := view.Outcome(res.Outcome); rewards != "" {
		text += "\n" + rewards
	}
	if err := h.send(newEdit(chatID, cb.Message.MessageID, text)); err != nil {
		return "", err
	}

	finished, right, total := h.sessions.advance(chatID, res.Correct)
	if !finished {
		return "", h.sendQuestion(chatID)
	}

	h.logger.Info("review finished", zap.Int("correct", right), zap.Int("total", total))
	return "", h.send(newPlainMessage(chatID, fmt.Sprintf("🏁 Review finished: %d/%d correct", right, total)))
}
