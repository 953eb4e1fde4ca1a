package telegram

import (
	"context"

	"go.uber.org/zap"
)

type commandFunc func(ctx context.Context, chatID int64) error

// run executes a command handler. A failure is logged with the command name
// and the chat gets a generic error message.
func (h *Handler) run(ctx context.Context, command string, chatID int64, fn commandFunc) {
	err := fn(ctx, chatID)
	if err == nil {
		return
	}

	h.logger.Error("command failed",
		zap.String("command", command),
		zap.Int64("chat_id", chatID),
		zap.Error(err),
	)
	h.sendError(chatID, msgInternalError)
}
