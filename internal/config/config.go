// Package config provides configuration loading, validation, and management
// for the bot. It handles reading from YAML files, setting default values,
// and validating configuration parameters.
package config

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrConfiguration indicates invalid or unloadable configuration.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration. Values can be set via
// config.yaml or environment variables prefixed with BOT_
// (e.g. BOT_TELEGRAM_TOKEN).
type Config struct {
	Log      LogConfig       `mapstructure:"log"`
	Telegram TelegramConfig  `mapstructure:"telegram"`
	Database DatabaseConfig  `mapstructure:"database"`
	Dialog   DialogConfig    `mapstructure:"dialog"`
	Messages Messages        `mapstructure:"messages"`
	Commands []CommandConfig `mapstructure:"commands"`
}

// LogConfig controls log verbosity and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

// TelegramConfig holds the bot credential and update-delivery mode.
// Polling needs only the token; webhook mode additionally needs the public
// URL Telegram calls and the local address to serve it on.
type TelegramConfig struct {
	Token      string `mapstructure:"token"       validate:"required"`
	Mode       string `mapstructure:"mode"        validate:"oneof=polling webhook"`
	WebhookURL string `mapstructure:"webhook_url" validate:"required_if=Mode webhook,omitempty,url"`
	ListenAddr string `mapstructure:"listen_addr" validate:"required_if=Mode webhook"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// DialogConfig controls multi-step conversation behaviour.
type DialogConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1m,max=24h"`
}

// CommandConfig describes one advertised bot command.
type CommandConfig struct {
	Command     string `mapstructure:"command"     validate:"required"`
	Description string `mapstructure:"description" validate:"required"`
}

// Messages collects every user-visible string so deployments can reword or
// translate the bot without a rebuild.
type Messages struct {
	Ready           string `mapstructure:"ready"`
	AskName         string `mapstructure:"ask_name"`
	AskDay          string `mapstructure:"ask_day"`
	AskMonth        string `mapstructure:"ask_month"`
	AskTime         string `mapstructure:"ask_time"`
	InvalidName     string `mapstructure:"invalid_name"`
	InvalidDay      string `mapstructure:"invalid_day"`
	InvalidMonth    string `mapstructure:"invalid_month"`
	InvalidTime     string `mapstructure:"invalid_time"`
	PersonAdded     string `mapstructure:"person_added"`
	TimeChanged     string `mapstructure:"time_changed"`
	ListEmpty       string `mapstructure:"list_empty"`
	Cancelled       string `mapstructure:"cancelled"`
	NothingToCancel string `mapstructure:"nothing_to_cancel"`
	GreetingUsage   string `mapstructure:"greeting_usage"`
	GreetingUpdated string `mapstructure:"greeting_updated"`
	GeneralError    string `mapstructure:"general_error"`

	// Reply-keyboard button labels; the default message handler routes on
	// exact matches of these.
	ButtonAdd  string `mapstructure:"button_add"`
	ButtonList string `mapstructure:"button_list"`
	ButtonTime string `mapstructure:"button_time"`
}

// Validate checks the complete configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
