package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
)

// GreetingSender delivers rendered greetings through the Telegram client.
// It is created empty and bound to the client after construction, because
// the client's default handler needs the greeter (and therefore the sender)
// to exist first.
type GreetingSender struct {
	b      *bot.Bot
	logger *slog.Logger
}

// NewGreetingSender creates an unbound sender.
func NewGreetingSender(logger *slog.Logger) *GreetingSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &GreetingSender{logger: logger.With("component", "greeting_sender")}
}

// Bind attaches the Telegram client. Must be called before the scheduler
// starts firing jobs.
func (s *GreetingSender) Bind(b *bot.Bot) {
	s.b = b
}

// SendGreeting sends the greeting text to the chat.
func (s *GreetingSender) SendGreeting(ctx context.Context, chatID int64, text string) error {
	if s.b == nil {
		return fmt.Errorf("greeting sender is not bound to a telegram client")
	}

	if _, err := s.b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		return fmt.Errorf("failed to send greeting to chat %d: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Greeting delivered", "chat_id", chatID)
	return nil
}
