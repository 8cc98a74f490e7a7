package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load loads and validates configuration from:
// 1. Default values
// 2. the config file at configPath (or ./config.yaml when empty)
// 3. BOT_* environment variables
func Load(configPath string) (*Config, error) {
	// Set defaults first
	setDefaults()

	// Try to load config file (optional)
	if err := loadConfig(configPath); err != nil {
		return nil, fmt.Errorf("%w: failed to load config file: %v", ErrConfiguration, err)
	}

	cfg := &Config{}

	// Unmarshal config file and environment over defaults
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	// Validate the complete config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// loadConfig initializes and loads the configuration using viper
func loadConfig(configPath string) error {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	// Setup environment variables
	viper.SetEnvPrefix("BOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow missing config file
	if err := viper.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %v", err)
		}
		// Config file not found is okay, we'll use defaults
	}

	return nil
}

// setDefaults sets default values for optional configuration parameters.
// Every key needs a default (empty for required ones) so the matching
// BOT_* environment variable is picked up by Unmarshal.
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", DefaultLogLevel)
	viper.SetDefault("log.format", DefaultLogFormat)

	// Telegram defaults
	viper.SetDefault("telegram.token", "")
	viper.SetDefault("telegram.mode", DefaultTelegramMode)
	viper.SetDefault("telegram.webhook_url", "")
	viper.SetDefault("telegram.listen_addr", DefaultTelegramListenAddr)

	// Database defaults
	viper.SetDefault("database.path", DefaultDBPath)

	// Dialog defaults
	viper.SetDefault("dialog.timeout", DefaultDialogTimeout)

	// Message defaults
	viper.SetDefault("messages.ready", DefaultMessages.Ready)
	viper.SetDefault("messages.ask_name", DefaultMessages.AskName)
	viper.SetDefault("messages.ask_day", DefaultMessages.AskDay)
	viper.SetDefault("messages.ask_month", DefaultMessages.AskMonth)
	viper.SetDefault("messages.ask_time", DefaultMessages.AskTime)
	viper.SetDefault("messages.invalid_name", DefaultMessages.InvalidName)
	viper.SetDefault("messages.invalid_day", DefaultMessages.InvalidDay)
	viper.SetDefault("messages.invalid_month", DefaultMessages.InvalidMonth)
	viper.SetDefault("messages.invalid_time", DefaultMessages.InvalidTime)
	viper.SetDefault("messages.person_added", DefaultMessages.PersonAdded)
	viper.SetDefault("messages.time_changed", DefaultMessages.TimeChanged)
	viper.SetDefault("messages.list_empty", DefaultMessages.ListEmpty)
	viper.SetDefault("messages.cancelled", DefaultMessages.Cancelled)
	viper.SetDefault("messages.nothing_to_cancel", DefaultMessages.NothingToCancel)
	viper.SetDefault("messages.greeting_usage", DefaultMessages.GreetingUsage)
	viper.SetDefault("messages.greeting_updated", DefaultMessages.GreetingUpdated)
	viper.SetDefault("messages.general_error", DefaultMessages.GeneralError)
	viper.SetDefault("messages.button_add", DefaultMessages.ButtonAdd)
	viper.SetDefault("messages.button_list", DefaultMessages.ButtonList)
	viper.SetDefault("messages.button_time", DefaultMessages.ButtonTime)

	// Command defaults
	viper.SetDefault("commands", DefaultCommands)
}
