package clock_test

import (
	"errors"
	"testing"

	"github.com/ozodbek/bdaybot/internal/clock"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "default greeting time", input: "08:00", wantHour: 8},
		{name: "midnight", input: "00:00"},
		{name: "end of day", input: "23:59", wantHour: 23, wantMinute: 59},
		{name: "single digit hour", input: "8:05", wantHour: 8, wantMinute: 5},
		{name: "surrounding whitespace", input: " 09:30 ", wantHour: 9, wantMinute: 30},
		{name: "empty", input: "", wantErr: true},
		{name: "no separator", input: "0800", wantErr: true},
		{name: "too many fields", input: "08:00:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "08:60", wantErr: true},
		{name: "negative hour", input: "-1:30", wantErr: true},
		{name: "not numeric", input: "ab:cd", wantErr: true},
		{name: "plain text", input: "morning", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			hour, minute, err := clock.Parse(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %02d:%02d", tc.input, hour, minute)
				}
				if !errors.Is(err, clock.ErrInvalidClock) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalidClock", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.input, err)
			}
			if hour != tc.wantHour || minute != tc.wantMinute {
				t.Errorf("Parse(%q) = %02d:%02d, want %02d:%02d", tc.input, hour, minute, tc.wantHour, tc.wantMinute)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if got := clock.Format(8, 0); got != "08:00" {
		t.Errorf("Format(8, 0) = %q, want %q", got, "08:00")
	}
	if got := clock.Format(23, 59); got != "23:59" {
		t.Errorf("Format(23, 59) = %q, want %q", got, "23:59")
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	hour, minute, err := clock.Parse(clock.Format(17, 45))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if hour != 17 || minute != 45 {
		t.Errorf("round trip = %02d:%02d, want 17:45", hour, minute)
	}
}
