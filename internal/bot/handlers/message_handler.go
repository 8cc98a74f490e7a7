package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ozodbek/bdaybot/internal/clock"
	"github.com/ozodbek/bdaybot/internal/dialog"
)

// NewMessageHandler returns the default handler for plain text messages.
// It routes menu-button presses, feeds replies into in-progress dialogues,
// and ignores everything else.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps}.Handle
}

type messageHandler struct {
	deps HandlerDeps
}

func (h messageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "message")

	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	text := update.Message.Text
	msgs := h.deps.Config.Messages

	// Menu buttons win over a pending dialogue step: pressing one restarts
	// the interaction instead of feeding the label into the old flow.
	switch text {
	case msgs.ButtonAdd:
		h.deps.Dialogs.StartAdd(chatID, userID)
		log.InfoContext(ctx, "Started add-person dialogue", "chat_id", chatID, "user_id", userID)
		replyText(ctx, b, log, chatID, msgs.AskName)
		return

	case msgs.ButtonTime:
		h.deps.Dialogs.StartTimeChange(chatID, userID)
		log.InfoContext(ctx, "Started time-change dialogue", "chat_id", chatID, "user_id", userID)
		replyText(ctx, b, log, chatID, msgs.AskTime)
		return

	case msgs.ButtonList:
		h.sendList(ctx, b, log, chatID)
		return
	}

	out, err := h.deps.Dialogs.Handle(chatID, userID, text)

	switch {
	case errors.Is(err, dialog.ErrNoSession):
		// Ordinary chat message, nothing to do.
		return

	case errors.Is(err, dialog.ErrValidation):
		// Re-prompt; the session stays on the same step.
		step, ok := h.deps.Dialogs.Active(chatID, userID)
		if !ok {
			return
		}
		log.DebugContext(ctx, "Dialogue input rejected", "chat_id", chatID, "user_id", userID,
			"step", int(step), "error", err)
		replyText(ctx, b, log, chatID, h.invalidMessage(step))
		return

	case err != nil:
		log.ErrorContext(ctx, "Dialogue failed", "chat_id", chatID, "user_id", userID, "error", err)
		replyText(ctx, b, log, chatID, msgs.GeneralError)
		return
	}

	switch {
	case out.Person != nil:
		h.commitPerson(ctx, b, log, chatID, out.Person)

	case out.Time != nil:
		h.commitTime(ctx, b, log, chatID, out.Time)

	default:
		replyText(ctx, b, log, chatID, h.promptMessage(out.Next))
	}
}

// commitPerson stores the completed add flow and confirms it.
func (h messageHandler) commitPerson(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, p *dialog.Person) {
	msgs := h.deps.Config.Messages

	id, err := h.deps.Store.AddPerson(ctx, chatID, p.FullName, p.Day, p.Month)
	if err != nil {
		log.ErrorContext(ctx, "Failed to store person", "chat_id", chatID, "error", err)
		replyText(ctx, b, log, chatID, msgs.GeneralError)
		return
	}

	log.InfoContext(ctx, "Added person", "chat_id", chatID, "person_id", id,
		"day", p.Day, "month", p.Month)

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        fmt.Sprintf(msgs.PersonAdded, p.FullName, p.Day, p.Month),
		ReplyMarkup: menuKeyboard(msgs),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send confirmation", "error", err, "chat_id", chatID)
	}
}

// commitTime stores the new greeting time and reinstalls the chat's job.
func (h messageHandler) commitTime(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, t *dialog.TimeOfDay) {
	msgs := h.deps.Config.Messages

	if err := h.deps.Store.EnsureSettings(ctx, chatID); err != nil {
		log.ErrorContext(ctx, "Failed to ensure chat settings", "chat_id", chatID, "error", err)
		replyText(ctx, b, log, chatID, msgs.GeneralError)
		return
	}

	if err := h.deps.Store.SetGreetTime(ctx, chatID, t.Hour, t.Minute); err != nil {
		log.ErrorContext(ctx, "Failed to store greeting time", "chat_id", chatID, "error", err)
		replyText(ctx, b, log, chatID, msgs.GeneralError)
		return
	}

	if err := h.deps.Greeter.ScheduleDaily(chatID, t.Hour, t.Minute); err != nil {
		log.ErrorContext(ctx, "Failed to reschedule greeting", "chat_id", chatID, "error", err)
		replyText(ctx, b, log, chatID, msgs.GeneralError)
		return
	}

	formatted := clock.Format(t.Hour, t.Minute)
	log.InfoContext(ctx, "Changed greeting time", "chat_id", chatID, "time", formatted)

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        fmt.Sprintf(msgs.TimeChanged, formatted),
		ReplyMarkup: menuKeyboard(msgs),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send confirmation", "error", err, "chat_id", chatID)
	}
}

// sendList replies with every saved birthday, one "Name — DD.MM" line per
// person in insertion order.
func (h messageHandler) sendList(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64) {
	people, err := h.deps.Store.ListPeople(ctx, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list people", "chat_id", chatID, "error", err)
		replyText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	if len(people) == 0 {
		replyText(ctx, b, log, chatID, h.deps.Config.Messages.ListEmpty)
		return
	}

	lines := make([]string, len(people))
	for i, p := range people {
		lines[i] = fmt.Sprintf("%s — %02d.%02d", p.FullName, p.Day, p.Month)
	}

	replyText(ctx, b, log, chatID, strings.Join(lines, "\n"))
}

// promptMessage maps the step a dialogue advanced to onto its question.
func (h messageHandler) promptMessage(step dialog.Step) string {
	msgs := h.deps.Config.Messages
	switch step {
	case dialog.StepDay:
		return msgs.AskDay
	case dialog.StepMonth:
		return msgs.AskMonth
	case dialog.StepTime:
		return msgs.AskTime
	default:
		return msgs.AskName
	}
}

// invalidMessage maps the step that rejected input onto its re-prompt.
func (h messageHandler) invalidMessage(step dialog.Step) string {
	msgs := h.deps.Config.Messages
	switch step {
	case dialog.StepDay:
		return msgs.InvalidDay
	case dialog.StepMonth:
		return msgs.InvalidMonth
	case dialog.StepTime:
		return msgs.InvalidTime
	default:
		return msgs.InvalidName
	}
}
