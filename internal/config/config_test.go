package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/ozodbek/bdaybot/internal/config"
)

// Load reads through viper's package-level state, so these tests reset it
// and cannot run in parallel.

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("BOT_TELEGRAM_TOKEN", "12345:test-token")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}

	if cfg.Telegram.Token != "12345:test-token" {
		t.Errorf("token = %q, want value from environment", cfg.Telegram.Token)
	}
	if cfg.Log.Level != config.DefaultLogLevel {
		t.Errorf("log level = %q, want %q", cfg.Log.Level, config.DefaultLogLevel)
	}
	if cfg.Telegram.Mode != "polling" {
		t.Errorf("mode = %q, want polling", cfg.Telegram.Mode)
	}
	if cfg.Database.Path != config.DefaultDBPath {
		t.Errorf("db path = %q, want %q", cfg.Database.Path, config.DefaultDBPath)
	}
	if cfg.Dialog.Timeout != 10*time.Minute {
		t.Errorf("dialog timeout = %v, want 10m", cfg.Dialog.Timeout)
	}
	if cfg.Messages.ButtonAdd == "" || cfg.Messages.ButtonList == "" || cfg.Messages.ButtonTime == "" {
		t.Error("menu button labels must have defaults")
	}
	if len(cfg.Commands) == 0 {
		t.Error("advertised commands must have defaults")
	}
}

func TestLoadMissingToken(t *testing.T) {
	viper.Reset()
	t.Setenv("BOT_TELEGRAM_TOKEN", "")

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load accepted configuration without a bot token")
	}
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	t.Setenv("BOT_TELEGRAM_TOKEN", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
telegram:
  token: "999:file-token"
log:
  level: debug
  format: text
dialog:
  timeout: 5m
messages:
  button_add: "Add"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Telegram.Token != "999:file-token" {
		t.Errorf("token = %q, want file value", cfg.Telegram.Token)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %q/%q, want debug/text", cfg.Log.Level, cfg.Log.Format)
	}
	if cfg.Dialog.Timeout != 5*time.Minute {
		t.Errorf("dialog timeout = %v, want 5m", cfg.Dialog.Timeout)
	}
	if cfg.Messages.ButtonAdd != "Add" {
		t.Errorf("button_add = %q, want overridden value", cfg.Messages.ButtonAdd)
	}
	// Untouched keys keep their defaults.
	if cfg.Messages.ButtonList != config.DefaultMessages.ButtonList {
		t.Errorf("button_list = %q, want default", cfg.Messages.ButtonList)
	}
}

func TestLoadWebhookModeRequiresURL(t *testing.T) {
	viper.Reset()
	t.Setenv("BOT_TELEGRAM_TOKEN", "12345:test-token")
	t.Setenv("BOT_TELEGRAM_MODE", "webhook")

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load accepted webhook mode without a webhook URL")
	}
}
