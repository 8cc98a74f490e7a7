package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewCancelHandler returns a handler for the /cancel command.
func NewCancelHandler(deps HandlerDeps) bot.HandlerFunc {
	return cancelHandler{deps}.Handle
}

// cancelHandler aborts the user's in-progress dialogue, if any.
type cancelHandler struct {
	deps HandlerDeps
}

func (h cancelHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "cancel")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Cancel handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	text := h.deps.Config.Messages.NothingToCancel
	if h.deps.Dialogs.Cancel(chatID, userID) {
		text = h.deps.Config.Messages.Cancelled
		log.InfoContext(ctx, "Cancelled dialogue", "chat_id", chatID, "user_id", userID)
	}

	replyText(ctx, b, log, chatID, text)
}
