package config

import "time"

// Default values for configuration
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultDBPath = "storage.db" // Default SQLite database file

	DefaultTelegramMode       = "polling"
	DefaultTelegramListenAddr = ":8080"

	DefaultDialogTimeout = 10 * time.Minute // Abandoned conversations expire after this
)

// Default user-visible strings
var DefaultMessages = Messages{
	Ready:           "🎂 I'm ready! I'll send birthday greetings here every day. Use the menu below.",
	AskName:         "Whose birthday should I remember? Send the person's name.",
	AskDay:          "Which day of the month? (1-31)",
	AskMonth:        "And the month? (1-12)",
	AskTime:         "When should the daily greeting arrive? Send a time like 08:00.",
	InvalidName:     "The name can't be empty. Please send the person's name.",
	InvalidDay:      "That doesn't look like a day. Send a number from 1 to 31.",
	InvalidMonth:    "That doesn't look like a month. Send a number from 1 to 12.",
	InvalidTime:     "That doesn't look like a time. Send it as HH:MM, for example 08:00.",
	PersonAdded:     "✅ Saved: %s — %02d.%02d",
	TimeChanged:     "⏰ Daily greeting time set to %s.",
	ListEmpty:       "No birthdays saved yet. Use the menu to add one.",
	Cancelled:       "Cancelled.",
	NothingToCancel: "Nothing to cancel.",
	GreetingUsage:   "Send /greeting followed by the new template. It must contain {names}.",
	GreetingUpdated: "✅ Greeting template updated.",
	GeneralError:    "❌ An error occurred. Please try again later.",

	ButtonAdd:  "➕ Add birthday",
	ButtonList: "📋 Birthday list",
	ButtonTime: "⏰ Change greeting time",
}

// Default advertised bot commands
var DefaultCommands = []CommandConfig{
	{Command: "start", Description: "Register this chat for daily birthday greetings"},
	{Command: "cancel", Description: "Abort the current dialogue"},
	{Command: "greeting", Description: "Set the greeting template ({names} required)"},
}
