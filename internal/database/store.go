package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ozodbek/bdaybot/internal/clock"
)

// ErrSettingsNotFound is returned when a chat has no settings row. After
// /start the row always exists, so hitting this later indicates a caller
// skipped EnsureSettings.
var ErrSettingsNotFound = errors.New("chat settings not found")

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// EnsureSettings creates the chat's settings row with defaults if it
	// does not exist yet. Calling it again is a no-op.
	EnsureSettings(ctx context.Context, chatID int64) error

	// GetSettings retrieves a chat's settings. Returns ErrSettingsNotFound
	// when the chat never issued /start.
	GetSettings(ctx context.Context, chatID int64) (*ChatSettings, error)

	// ListSettings retrieves the settings of every known chat.
	ListSettings(ctx context.Context) ([]ChatSettings, error)

	// SetGreetTime updates the chat's daily greeting time.
	SetGreetTime(ctx context.Context, chatID int64, hour, minute int) error

	// SetGreetText updates the chat's greeting template.
	SetGreetText(ctx context.Context, chatID int64, text string) error

	// AddPerson inserts a tracked birthday and returns its generated ID.
	AddPerson(ctx context.Context, chatID int64, fullName string, day, month int) (int64, error)

	// ListPeople retrieves all people in a chat in insertion order.
	ListPeople(ctx context.Context, chatID int64) ([]Person, error)

	// FindPeopleOn retrieves the chat's people whose birthday is exactly
	// the given day and month, in insertion order.
	FindPeopleOn(ctx context.Context, chatID int64, day, month int) ([]Person, error)
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSettings creates the chat's settings row if absent. Greeting time
// and text come from the schema defaults so a fresh chat and a migrated one
// look the same.
func (s *sqlxStore) EnsureSettings(ctx context.Context, chatID int64) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}

	now := time.Now().UTC()
	query := `
        INSERT INTO chat_settings (chat_id, created_at, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(chat_id) DO NOTHING;
    `

	result, err := s.db.ExecContext(ctx, query, chatID, now, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error ensuring chat settings", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to ensure settings for chat %d: %w", chatID, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 1 {
		s.logger.InfoContext(ctx, "Created chat settings with defaults", "chat_id", chatID)
	} else {
		s.logger.DebugContext(ctx, "Chat settings already present", "chat_id", chatID)
	}

	return nil
}

// GetSettings retrieves a chat's settings row.
func (s *sqlxStore) GetSettings(ctx context.Context, chatID int64) (*ChatSettings, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}

	var settings ChatSettings
	query := `SELECT chat_id, created_at, updated_at, greet_time, greet_text
	          FROM chat_settings WHERE chat_id = ?`

	err := s.db.GetContext(ctx, &settings, query, chatID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("%w: chat %d", ErrSettingsNotFound, chatID)

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching settings",
			"chat_id", chatID, "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting chat settings", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get settings for chat %d: %w", chatID, err)
	}

	return &settings, nil
}

// ListSettings retrieves every chat's settings, used to restore greeting
// triggers at startup.
func (s *sqlxStore) ListSettings(ctx context.Context) ([]ChatSettings, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var settings []ChatSettings
	query := `SELECT chat_id, created_at, updated_at, greet_time, greet_text
	          FROM chat_settings ORDER BY chat_id`

	if err := s.db.SelectContext(ctx, &settings, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing chat settings", "error", err)
		return nil, fmt.Errorf("failed to list chat settings: %w", err)
	}

	s.logger.DebugContext(ctx, "Fetched all chat settings", "count", len(settings))
	return settings, nil
}

// SetGreetTime updates the chat's daily greeting time. The value is stored
// zero-padded so reads round-trip through clock.Parse.
func (s *sqlxStore) SetGreetTime(ctx context.Context, chatID int64, hour, minute int) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("%w: %02d:%02d is not a valid time of day", clock.ErrInvalidClock, hour, minute)
	}

	return s.updateSettings(ctx, chatID, `UPDATE chat_settings SET greet_time = ?, updated_at = ? WHERE chat_id = ?`,
		clock.Format(hour, minute))
}

// SetGreetText updates the chat's greeting template.
func (s *sqlxStore) SetGreetText(ctx context.Context, chatID int64, text string) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}
	if text == "" {
		return fmt.Errorf("greeting template must not be empty")
	}

	return s.updateSettings(ctx, chatID, `UPDATE chat_settings SET greet_text = ?, updated_at = ? WHERE chat_id = ?`,
		text)
}

// updateSettings runs a single-column settings update, mapping a missed row
// to ErrSettingsNotFound.
func (s *sqlxStore) updateSettings(ctx context.Context, chatID int64, query, value string) error {
	result, err := s.db.ExecContext(ctx, query, value, time.Now().UTC(), chatID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error updating chat settings", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to update settings for chat %d: %w", chatID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not get affected row count for settings update",
			"chat_id", chatID, "error", err)
		return nil
	}
	if affected == 0 {
		return fmt.Errorf("%w: chat %d", ErrSettingsNotFound, chatID)
	}

	return nil
}

// AddPerson inserts a tracked birthday. The write runs in a transaction so
// a failed insert never leaves a partial row.
func (s *sqlxStore) AddPerson(ctx context.Context, chatID int64, fullName string, day, month int) (int64, error) {
	if chatID == 0 {
		return 0, fmt.Errorf("chat_id cannot be zero")
	}
	if fullName == "" {
		return 0, fmt.Errorf("person must have a non-empty name")
	}
	if day < 1 || day > 31 {
		return 0, fmt.Errorf("day %d out of range 1-31", day)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("month %d out of range 1-12", month)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for adding person",
			"chat_id", chatID, "error", err)
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				if !errors.Is(rollbackErr, sql.ErrTxDone) {
					s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
				}
			}
		}
	}()

	query := `
        INSERT INTO people (chat_id, full_name, day, month, created_at)
        VALUES (?, ?, ?, ?, ?);
    `

	result, err := tx.ExecContext(ctx, query, chatID, fullName, day, month, time.Now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error adding person", "chat_id", chatID, "error", err)
		return 0, fmt.Errorf("failed to add person for chat %d: %w", chatID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after adding person",
			"chat_id", chatID, "error", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction", "chat_id", chatID, "error", err)
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "Person added", "chat_id", chatID, "person_id", id, "day", day, "month", month)
	return id, nil
}

// ListPeople retrieves all people in a chat in insertion order.
func (s *sqlxStore) ListPeople(ctx context.Context, chatID int64) ([]Person, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var people []Person
	query := `
        SELECT id, created_at, chat_id, full_name, day, month
        FROM people
        WHERE chat_id = ?
        ORDER BY id;
    `

	if err := s.db.SelectContext(ctx, &people, query, chatID); err != nil {
		s.logger.ErrorContext(ctx, "Error listing people", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to list people for chat %d: %w", chatID, err)
	}

	return people, nil
}

// FindPeopleOn retrieves the chat's people with the exact day/month match,
// in insertion order.
func (s *sqlxStore) FindPeopleOn(ctx context.Context, chatID int64, day, month int) ([]Person, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var people []Person
	query := `
        SELECT id, created_at, chat_id, full_name, day, month
        FROM people
        WHERE chat_id = ? AND day = ? AND month = ?
        ORDER BY id;
    `

	err := s.db.SelectContext(ctx, &people, query, chatID, day, month)

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while matching birthdays",
			"chat_id", chatID, "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error matching birthdays", "chat_id", chatID,
			"day", day, "month", month, "error", err)
		return nil, fmt.Errorf("failed to match birthdays for chat %d: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Matched birthdays", "chat_id", chatID,
		"day", day, "month", month, "count", len(people))
	return people, nil
}
