package greeting_test

import (
	"testing"

	"github.com/ozodbek/bdaybot/internal/greeting"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		template string
		names    []string
		want     string
		wantOK   bool
	}{
		{
			name:     "two names",
			template: "Hi:\n{names}",
			names:    []string{"Alice", "Bob"},
			want:     "Hi:\n🎉 Alice\n🎉 Bob",
			wantOK:   true,
		},
		{
			name:     "single name",
			template: "Hi:\n{names}",
			names:    []string{"Alice"},
			want:     "Hi:\n🎉 Alice",
			wantOK:   true,
		},
		{
			name:     "empty names suppresses the message",
			template: "Hi:\n{names}",
			names:    nil,
			wantOK:   false,
		},
		{
			name:     "default template",
			template: greeting.DefaultTemplate,
			names:    []string{"Alice"},
			want:     "🎂 Birthdays today:\n\n🎉 Alice",
			wantOK:   true,
		},
		{
			name:     "order preserved",
			template: "{names}",
			names:    []string{"Zoe", "Adam", "Mia"},
			want:     "🎉 Zoe\n🎉 Adam\n🎉 Mia",
			wantOK:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := greeting.Format(tc.template, tc.names)
			if ok != tc.wantOK {
				t.Fatalf("Format ok = %v, want %v", ok, tc.wantOK)
			}
			if got != tc.want {
				t.Errorf("Format = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	if !greeting.Valid(greeting.DefaultTemplate) {
		t.Error("default template must contain the placeholder")
	}
	if greeting.Valid("happy birthday everyone") {
		t.Error("template without placeholder reported valid")
	}
}
