package handlers

import (
	"log/slog"

	"github.com/ozodbek/bdaybot/internal/config"
	"github.com/ozodbek/bdaybot/internal/database"
	"github.com/ozodbek/bdaybot/internal/dialog"
)

// GreetScheduler is the slice of the greeter the handlers need: installing
// (or replacing) a chat's daily greeting job.
type GreetScheduler interface {
	ScheduleDaily(chatID int64, hour, minute int) error
}

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Store   database.Store
	Dialogs *dialog.Manager
	Greeter GreetScheduler
}
