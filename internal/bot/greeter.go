package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/ozodbek/bdaybot/internal/clock"
	"github.com/ozodbek/bdaybot/internal/database"
	"github.com/ozodbek/bdaybot/internal/greeting"
)

// Fallback when a stored greeting time cannot be parsed.
const (
	defaultGreetHour   = 8
	defaultGreetMinute = 0
)

// Sender delivers a rendered greeting to a chat. The Telegram client
// satisfies it; tests substitute their own.
type Sender interface {
	SendGreeting(ctx context.Context, chatID int64, text string) error
}

// Greeter owns the per-chat daily greeting jobs. Each chat has at most one
// job; re-registering a chat removes the old job before installing the new
// one, so a time change never leaves the previous trigger behind.
type Greeter struct {
	scheduler gocron.Scheduler
	store     database.Store
	sender    Sender
	logger    *slog.Logger

	mu      sync.Mutex
	jobs    map[int64]uuid.UUID // active job handle per chat
	running bool

	now func() time.Time
}

// NewGreeter creates a greeter with its own gocron scheduler.
func NewGreeter(logger *slog.Logger, store database.Store, sender Sender) (*Greeter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		// This error typically occurs only if time.LoadLocation fails, which is rare.
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Greeter{
		scheduler: s,
		store:     store,
		sender:    sender,
		logger:    logger.With("component", "greeter"),
		jobs:      make(map[int64]uuid.UUID),
		now:       time.Now,
	}, nil
}

// ScheduleDaily installs the chat's daily greeting job at the given local
// wall-clock time. An existing job for the chat is removed first.
func (g *Greeter) ScheduleDaily(chatID int64, hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", clock.ErrInvalidClock, hour, minute)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if oldID, ok := g.jobs[chatID]; ok {
		if err := g.scheduler.RemoveJob(oldID); err != nil {
			g.logger.Warn("Failed to remove superseded greeting job",
				"chat_id", chatID, "job_id", oldID, "error", err)
		}
		delete(g.jobs, chatID)
	}

	job, err := g.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(
			gocron.NewAtTime(uint(hour), uint(minute), 0),
		)),
		gocron.NewTask(
			func(ctx context.Context, id int64) {
				g.greet(ctx, id)
			},
			context.Background(),
			chatID,
		),
		gocron.WithName(fmt.Sprintf("greet-%d", chatID)),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule greeting for chat %d: %w", chatID, err)
	}

	g.jobs[chatID] = job.ID()
	g.logger.Info("Scheduled daily greeting", "chat_id", chatID, "time", clock.Format(hour, minute))

	return nil
}

// Unschedule removes the chat's greeting job, reporting whether one existed.
func (g *Greeter) Unschedule(chatID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	jobID, ok := g.jobs[chatID]
	if !ok {
		return false
	}

	if err := g.scheduler.RemoveJob(jobID); err != nil {
		g.logger.Warn("Failed to remove greeting job", "chat_id", chatID, "error", err)
	}
	delete(g.jobs, chatID)

	return true
}

// RestoreAll re-registers a greeting job for every stored chat. Called at
// startup so a restart does not silently drop greetings until each chat
// issues /start again. A chat with an unparseable stored time falls back to
// the default rather than aborting the whole restore.
func (g *Greeter) RestoreAll(ctx context.Context) error {
	settings, err := g.store.ListSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load chat settings for restore: %w", err)
	}

	for _, s := range settings {
		hour, minute, err := clock.Parse(s.GreetTime)
		if err != nil {
			g.logger.Warn("Stored greeting time is invalid, using default",
				"chat_id", s.ChatID, "greet_time", s.GreetTime, "error", err)
			hour, minute = defaultGreetHour, defaultGreetMinute
		}

		if err := g.ScheduleDaily(s.ChatID, hour, minute); err != nil {
			g.logger.Error("Failed to restore greeting job", "chat_id", s.ChatID, "error", err)
		}
	}

	g.logger.Info("Restored greeting jobs", "count", len(settings))

	return nil
}

// Start begins the scheduler's internal ticking.
func (g *Greeter) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return fmt.Errorf("greeter is already running")
	}

	g.scheduler.Start()
	g.running = true
	g.logger.Info("Greeter started", "jobs", len(g.jobs))

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to complete.
func (g *Greeter) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.running {
		g.logger.Info("Greeter is not running, nothing to stop.")
		return nil
	}

	err := g.scheduler.Shutdown()
	if err != nil {
		g.logger.Error("Error during greeter shutdown", "error", err)
	} else {
		g.logger.Info("Greeter stopped gracefully.")
	}

	g.running = false
	return err
}

// greet is one job execution: find today's birthdays in the chat and send
// the rendered greeting. A day with no matches sends nothing. Errors are
// logged and swallowed so one chat's failure never affects another's job.
func (g *Greeter) greet(ctx context.Context, chatID int64) {
	log := g.logger.With("chat_id", chatID)

	today := g.now()
	people, err := g.store.FindPeopleOn(ctx, chatID, today.Day(), int(today.Month()))
	if err != nil {
		log.ErrorContext(ctx, "Failed to look up today's birthdays", "error", err)
		return
	}
	if len(people) == 0 {
		log.DebugContext(ctx, "No birthdays today")
		return
	}

	settings, err := g.store.GetSettings(ctx, chatID)
	if err != nil {
		// A scheduled chat always has a settings row; this is a bug upstream.
		log.ErrorContext(ctx, "Failed to load settings for scheduled chat", "error", err)
		return
	}

	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.FullName
	}

	text, ok := greeting.Format(settings.GreetText, names)
	if !ok {
		return
	}

	if err := g.sender.SendGreeting(ctx, chatID, text); err != nil {
		log.ErrorContext(ctx, "Failed to send greeting", "error", err)
		return
	}

	log.InfoContext(ctx, "Sent birthday greeting", "people", len(people))
}
