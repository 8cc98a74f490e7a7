// Package bot implements the core bot functionality, lifecycle management,
// and component orchestration.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/ozodbek/bdaybot/internal/config"
	"github.com/ozodbek/bdaybot/internal/database"
)

// Bot represents the main application and manages its components' lifecycle.
type Bot struct {
	logger  *slog.Logger
	cfg     *config.Config
	db      *sqlx.DB
	store   database.Store
	tgBot   *tgbot.Bot
	greeter *Greeter
}

// NewBot creates the bot with all required dependencies.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	db *sqlx.DB,
	store database.Store,
	tgBot *tgbot.Bot,
	greeter *Greeter,
) *Bot {
	return &Bot{
		logger:  logger.With("component", "bot_orchestrator"),
		cfg:     cfg,
		db:      db,
		store:   store,
		tgBot:   tgBot,
		greeter: greeter,
	}
}

// Run starts the update listener and the greeter, blocking until the context
// is cancelled or a component fails. Shutdown is graceful: the greeter waits
// for running jobs and the webhook server drains in-flight requests.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...", "mode", b.cfg.Telegram.Mode)

	g, gCtx := errgroup.WithContext(ctx)

	if b.cfg.Telegram.Mode == "webhook" {
		b.runWebhook(g, gCtx)
	} else {
		b.runPolling(g, gCtx)
	}

	g.Go(func() error {
		if err := b.greeter.RestoreAll(gCtx); err != nil {
			b.logger.Error("Failed to restore greeting jobs", "error", err)
			return fmt.Errorf("failed to restore greeting jobs: %w", err)
		}
		if err := b.greeter.Start(); err != nil {
			b.logger.Error("Failed to start greeter", "error", err)
			return fmt.Errorf("failed to start greeter: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping greeter...")

		if err := b.greeter.Stop(); err != nil {
			b.logger.Error("Error stopping greeter", "error", err)
		}

		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}

// runPolling starts the long-polling update listener.
func (b *Bot) runPolling(g *errgroup.Group, gCtx context.Context) {
	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener (polling)...")

		b.tgBot.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})
}

// runWebhook registers the webhook with Telegram, starts the webhook update
// processor, and serves the webhook endpoint plus /healthz over HTTP.
func (b *Bot) runWebhook(g *errgroup.Group, gCtx context.Context) {
	g.Go(func() error {
		if _, err := b.tgBot.SetWebhook(gCtx, &tgbot.SetWebhookParams{
			URL: b.cfg.Telegram.WebhookURL,
		}); err != nil {
			b.logger.Error("Failed to register webhook", "url", b.cfg.Telegram.WebhookURL, "error", err)
			return fmt.Errorf("failed to register webhook: %w", err)
		}
		b.logger.Info("Webhook registered", "url", b.cfg.Telegram.WebhookURL)

		b.tgBot.StartWebhook(gCtx)
		b.logger.Info("Telegram webhook processor stopped.")

		if gCtx.Err() == nil {
			return fmt.Errorf("webhook processor stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		mux := http.NewServeMux()
		mux.Handle("/", b.tgBot.WebhookHandler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			if err := b.store.Ping(r.Context()); err != nil {
				http.Error(w, "database unreachable", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})

		srv := &http.Server{
			Addr:              b.cfg.Telegram.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			b.logger.Info("Starting webhook HTTP server", "addr", srv.Addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-gCtx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				b.logger.Error("Error shutting down webhook HTTP server", "error", err)
			}
			return nil
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				b.logger.Error("Webhook HTTP server failed", "error", err)
				return fmt.Errorf("webhook http server failed: %w", err)
			}
			return nil
		}
	})
}
