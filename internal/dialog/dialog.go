// Package dialog tracks multi-step conversations: the three-question flow
// that adds a person and the single-question flow that changes the greeting
// time. Each session belongs to one user in one chat and consumes exactly
// one message per step.
package dialog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ozodbek/bdaybot/internal/clock"
)

// ErrValidation marks user input that cannot be accepted for the current
// step. The session stays on the same step; callers re-prompt.
var ErrValidation = errors.New("invalid input")

// ErrNoSession is returned when a user has no in-progress flow.
var ErrNoSession = errors.New("no active dialogue")

// DefaultTTL is how long an untouched session survives before it is
// discarded on the user's next message.
const DefaultTTL = 10 * time.Minute

// Step identifies what a session is waiting for.
type Step int

const (
	StepName Step = iota + 1
	StepDay
	StepMonth
	StepTime
)

// Person is the committed result of a completed add flow.
type Person struct {
	FullName string
	Day      int
	Month    int
}

// TimeOfDay is the committed result of a completed time-change flow.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Outcome reports what consuming one message did. Exactly one of the three
// fields is meaningful: Person or Time when a flow committed and the session
// is gone, otherwise Next names the step the session now waits on.
type Outcome struct {
	Person *Person
	Time   *TimeOfDay
	Next   Step
}

type key struct {
	chatID int64
	userID int64
}

type session struct {
	step     Step
	fullName string
	day      int
	touched  time.Time
}

// Manager holds all in-progress sessions. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[key]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a session manager. A non-positive ttl falls back to
// DefaultTTL.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Manager{
		sessions: make(map[key]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// StartAdd begins the add-person flow for the user, replacing any session
// already in progress. The first expected message is the person's name.
func (m *Manager) StartAdd(chatID, userID int64) {
	m.start(chatID, userID, StepName)
}

// StartTimeChange begins the greeting-time flow for the user, replacing any
// session already in progress. The expected message is an HH:MM time.
func (m *Manager) StartTimeChange(chatID, userID int64) {
	m.start(chatID, userID, StepTime)
}

func (m *Manager) start(chatID, userID int64, step Step) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[key{chatID, userID}] = &session{step: step, touched: m.now()}
}

// Cancel drops the user's session, reporting whether one existed.
func (m *Manager) Cancel(chatID, userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{chatID, userID}
	_, ok := m.sessions[k]
	delete(m.sessions, k)

	return ok
}

// Active reports the step a live session is waiting on. An expired session
// is discarded here rather than by a background sweeper.
func (m *Manager) Active(chatID, userID int64) (Step, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.live(key{chatID, userID})
	if !ok {
		return 0, false
	}

	return s.step, true
}

// Handle consumes one message for the user's session. On a validation error
// the session keeps its current step so the same question can be asked
// again; nothing is ever committed partially.
func (m *Manager) Handle(chatID, userID int64, text string) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{chatID, userID}

	s, ok := m.live(k)
	if !ok {
		return Outcome{}, ErrNoSession
	}

	s.touched = m.now()

	switch s.step {
	case StepName:
		name := strings.TrimSpace(text)
		if name == "" {
			return Outcome{}, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}

		s.fullName = name
		s.step = StepDay

		return Outcome{Next: StepDay}, nil

	case StepDay:
		day, err := parseRange(text, 1, 31, "day")
		if err != nil {
			return Outcome{}, err
		}

		s.day = day
		s.step = StepMonth

		return Outcome{Next: StepMonth}, nil

	case StepMonth:
		month, err := parseRange(text, 1, 12, "month")
		if err != nil {
			return Outcome{}, err
		}

		delete(m.sessions, k)

		return Outcome{Person: &Person{FullName: s.fullName, Day: s.day, Month: month}}, nil

	case StepTime:
		hour, minute, err := clock.Parse(text)
		if err != nil {
			return Outcome{}, fmt.Errorf("%w: %s", ErrValidation, err)
		}

		delete(m.sessions, k)

		return Outcome{Time: &TimeOfDay{Hour: hour, Minute: minute}}, nil

	default:
		delete(m.sessions, k)

		return Outcome{}, ErrNoSession
	}
}

// live fetches a session, discarding it when past its TTL.
func (m *Manager) live(k key) (*session, bool) {
	s, ok := m.sessions[k]
	if !ok {
		return nil, false
	}

	if m.now().Sub(s.touched) > m.ttl {
		delete(m.sessions, k)

		return nil, false
	}

	return s, true
}

func parseRange(text string, min, max int, field string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrValidation, field)
	}

	if v < min || v > max {
		return 0, fmt.Errorf("%w: %s must be between %d and %d", ErrValidation, field, min, max)
	}

	return v, nil
}
