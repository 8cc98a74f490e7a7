package database_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/ozodbek/bdaybot/internal/database"
)

const testChatID = int64(42)

// newTestStore opens a fresh migrated database in a temp dir.
func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return database.NewStore(db, logger)
}

func TestPing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestEnsureSettingsCreatesDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	if err := store.EnsureSettings(ctx, testChatID); err != nil {
		t.Fatalf("EnsureSettings: %v", err)
	}

	settings, err := store.GetSettings(ctx, testChatID)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.ChatID != testChatID {
		t.Errorf("chat_id = %d, want %d", settings.ChatID, testChatID)
	}
	if settings.GreetTime != "08:00" {
		t.Errorf("default greet_time = %q, want %q", settings.GreetTime, "08:00")
	}
	if settings.GreetText != "🎂 Birthdays today:\n\n{names}" {
		t.Errorf("default greet_text = %q", settings.GreetText)
	}
}

func TestEnsureSettingsIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	if err := store.EnsureSettings(ctx, testChatID); err != nil {
		t.Fatalf("first EnsureSettings: %v", err)
	}
	if err := store.SetGreetTime(ctx, testChatID, 17, 30); err != nil {
		t.Fatalf("SetGreetTime: %v", err)
	}

	// A repeated /start must not reset anything.
	if err := store.EnsureSettings(ctx, testChatID); err != nil {
		t.Fatalf("second EnsureSettings: %v", err)
	}

	settings, err := store.GetSettings(ctx, testChatID)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.GreetTime != "17:30" {
		t.Errorf("greet_time = %q after repeated ensure, want %q", settings.GreetTime, "17:30")
	}

	all, err := store.ListSettings(ctx)
	if err != nil {
		t.Fatalf("ListSettings: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("settings rows = %d, want 1", len(all))
	}
}

func TestGetSettingsNotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.GetSettings(context.Background(), 999)
	if !errors.Is(err, database.ErrSettingsNotFound) {
		t.Errorf("GetSettings for unknown chat: error = %v, want ErrSettingsNotFound", err)
	}
}

func TestSetGreetTime(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	if err := store.SetGreetTime(ctx, testChatID, 9, 15); !errors.Is(err, database.ErrSettingsNotFound) {
		t.Errorf("SetGreetTime before /start: error = %v, want ErrSettingsNotFound", err)
	}

	if err := store.EnsureSettings(ctx, testChatID); err != nil {
		t.Fatalf("EnsureSettings: %v", err)
	}
	if err := store.SetGreetTime(ctx, testChatID, 9, 5); err != nil {
		t.Fatalf("SetGreetTime: %v", err)
	}

	settings, err := store.GetSettings(ctx, testChatID)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.GreetTime != "09:05" {
		t.Errorf("greet_time = %q, want zero-padded %q", settings.GreetTime, "09:05")
	}

	if err := store.SetGreetTime(ctx, testChatID, 24, 0); err == nil {
		t.Error("SetGreetTime accepted an out-of-range hour")
	}
}

func TestSetGreetText(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	if err := store.EnsureSettings(ctx, testChatID); err != nil {
		t.Fatalf("EnsureSettings: %v", err)
	}
	if err := store.SetGreetText(ctx, testChatID, "Hi:\n{names}"); err != nil {
		t.Fatalf("SetGreetText: %v", err)
	}

	settings, err := store.GetSettings(ctx, testChatID)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.GreetText != "Hi:\n{names}" {
		t.Errorf("greet_text = %q, want %q", settings.GreetText, "Hi:\n{names}")
	}

	if err := store.SetGreetText(ctx, 999, "Hi:\n{names}"); !errors.Is(err, database.ErrSettingsNotFound) {
		t.Errorf("SetGreetText for unknown chat: error = %v, want ErrSettingsNotFound", err)
	}
}

func TestAddAndListPeople(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.AddPerson(ctx, testChatID, "Alice Johnson", 14, 3)
	if err != nil {
		t.Fatalf("AddPerson: %v", err)
	}
	second, err := store.AddPerson(ctx, testChatID, "Bob Smith", 1, 12)
	if err != nil {
		t.Fatalf("AddPerson: %v", err)
	}
	if second <= first {
		t.Errorf("IDs not increasing: %d then %d", first, second)
	}

	// People from another chat must stay invisible.
	if _, err := store.AddPerson(ctx, testChatID+1, "Carol", 14, 3); err != nil {
		t.Fatalf("AddPerson other chat: %v", err)
	}

	people, err := store.ListPeople(ctx, testChatID)
	if err != nil {
		t.Fatalf("ListPeople: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("ListPeople returned %d people, want 2", len(people))
	}
	if people[0].FullName != "Alice Johnson" || people[1].FullName != "Bob Smith" {
		t.Errorf("insertion order not preserved: %q, %q", people[0].FullName, people[1].FullName)
	}
	if people[0].Day != 14 || people[0].Month != 3 {
		t.Errorf("person fields = %d.%d, want 14.3", people[0].Day, people[0].Month)
	}
}

func TestAddPersonValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	testCases := []struct {
		name     string
		fullName string
		day      int
		month    int
	}{
		{name: "empty name", fullName: "", day: 1, month: 1},
		{name: "day too small", fullName: "Alice", day: 0, month: 1},
		{name: "day too large", fullName: "Alice", day: 32, month: 1},
		{name: "month too small", fullName: "Alice", day: 1, month: 0},
		{name: "month too large", fullName: "Alice", day: 1, month: 13},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := store.AddPerson(ctx, testChatID, tc.fullName, tc.day, tc.month); err == nil {
				t.Errorf("AddPerson(%q, %d, %d) accepted invalid input", tc.fullName, tc.day, tc.month)
			}
		})
	}
}

func TestFindPeopleOn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	for _, p := range []struct {
		name       string
		day, month int
	}{
		{"Alice", 14, 3},
		{"Bob", 14, 3},
		{"Carol", 15, 3},
		{"Dave", 14, 4},
	} {
		if _, err := store.AddPerson(ctx, testChatID, p.name, p.day, p.month); err != nil {
			t.Fatalf("AddPerson(%q): %v", p.name, err)
		}
	}

	matched, err := store.FindPeopleOn(ctx, testChatID, 14, 3)
	if err != nil {
		t.Fatalf("FindPeopleOn: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("matched %d people, want 2", len(matched))
	}
	if matched[0].FullName != "Alice" || matched[1].FullName != "Bob" {
		t.Errorf("matched %q, %q; want Alice, Bob in insertion order",
			matched[0].FullName, matched[1].FullName)
	}

	none, err := store.FindPeopleOn(ctx, testChatID, 1, 1)
	if err != nil {
		t.Fatalf("FindPeopleOn no match: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("matched %d people on an empty day, want 0", len(none))
	}
}
