package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ozodbek/bdaybot/internal/greeting"
)

// NewGreetingHandler returns a handler for the /greeting command.
func NewGreetingHandler(deps HandlerDeps) bot.HandlerFunc {
	return greetingHandler{deps}.Handle
}

// greetingHandler sets the chat's greeting template from the command
// argument. The template must contain the {names} placeholder.
type greetingHandler struct {
	deps HandlerDeps
}

func (h greetingHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "greeting")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Greeting handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID

	// Everything after "/greeting" (or "/greeting@botname") is the template.
	_, template, _ := strings.Cut(update.Message.Text, " ")
	template = strings.TrimSpace(template)

	if template == "" || !greeting.Valid(template) {
		replyText(ctx, b, log, chatID, h.deps.Config.Messages.GreetingUsage)
		return
	}

	if err := h.deps.Store.EnsureSettings(ctx, chatID); err != nil {
		log.ErrorContext(ctx, "Failed to ensure chat settings", "error", err, "chat_id", chatID)
		replyText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	if err := h.deps.Store.SetGreetText(ctx, chatID, template); err != nil {
		log.ErrorContext(ctx, "Failed to update greeting template", "error", err, "chat_id", chatID)
		replyText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Updated greeting template", "chat_id", chatID)
	replyText(ctx, b, log, chatID, h.deps.Config.Messages.GreetingUpdated)
}
