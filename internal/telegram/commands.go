package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ozodbek/bdaybot/internal/config"
)

// SetupCommands advertises the configured commands to Telegram so clients
// show them in the command menu.
func SetupCommands(ctx context.Context, b *bot.Bot, logger *slog.Logger, commands []config.CommandConfig) error {
	if len(commands) == 0 {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	botCommands := make([]models.BotCommand, len(commands))
	for i, c := range commands {
		botCommands[i] = models.BotCommand{Command: c.Command, Description: c.Description}
	}

	ok, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: botCommands})
	if err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	if !ok {
		return fmt.Errorf("telegram rejected bot commands")
	}

	log.Info("Advertised bot commands", "count", len(botCommands))
	return nil
}
