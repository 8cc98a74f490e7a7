package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ozodbek/bdaybot/internal/clock"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler registers the chat: it creates the settings row if missing
// and installs the daily greeting job. Repeating /start keeps the existing
// settings and replaces the job rather than adding a second one.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /start command", "chat_id", chatID, "user_id", update.Message.From.ID)

	if err := h.deps.Store.EnsureSettings(ctx, chatID); err != nil {
		log.ErrorContext(ctx, "Failed to ensure chat settings", "error", err, "chat_id", chatID)
		replyText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	settings, err := h.deps.Store.GetSettings(ctx, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load chat settings after ensure", "error", err, "chat_id", chatID)
		replyText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	hour, minute, err := clock.Parse(settings.GreetTime)
	if err != nil {
		log.WarnContext(ctx, "Stored greeting time is invalid, using default",
			"chat_id", chatID, "greet_time", settings.GreetTime, "error", err)
		hour, minute = 8, 0
	}

	if err := h.deps.Greeter.ScheduleDaily(chatID, hour, minute); err != nil {
		log.ErrorContext(ctx, "Failed to schedule daily greeting", "error", err, "chat_id", chatID)
		replyText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.deps.Config.Messages.Ready,
		ReplyMarkup: menuKeyboard(h.deps.Config.Messages),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send ready message", "error", err, "chat_id", chatID)
	}
}

// replyText sends a plain text reply, logging the failure instead of
// propagating it.
func replyText(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}
