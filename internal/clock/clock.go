// Package clock handles the "HH:MM" time-of-day strings used for greeting
// schedules: the format users type, the format stored in chat settings, and
// the hour/minute pair the scheduler needs.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClock indicates a string that is not a valid HH:MM time of day.
var ErrInvalidClock = errors.New("invalid time of day")

// Parse parses "HH:MM" (24-hour) into an hour/minute pair.
// Single-digit hours and minutes are accepted ("8:05").
func Parse(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected HH:MM, got %q", ErrInvalidClock, s)
	}

	hour, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour out of range in %q", ErrInvalidClock, s)
	}

	minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute out of range in %q", ErrInvalidClock, s)
	}

	return hour, minute, nil
}

// Format renders an hour/minute pair as zero-padded "HH:MM".
func Format(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
