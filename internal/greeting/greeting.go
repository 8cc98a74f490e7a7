// Package greeting renders the per-chat greeting template into the message
// sent on a birthday match.
package greeting

import "strings"

// Placeholder is the token in a greeting template replaced by the matched
// names. Templates without it are rejected at write time.
const Placeholder = "{names}"

// Bullet prefixes each name in the rendered list.
const Bullet = "🎉 "

// DefaultTemplate is the greeting text a chat starts with.
const DefaultTemplate = "🎂 Birthdays today:\n\n{names}"

// Valid reports whether a template contains the names placeholder.
func Valid(template string) bool {
	return strings.Contains(template, Placeholder)
}

// Format substitutes the matched names into the template, one bulleted name
// per line, preserving the given order. It returns false when names is
// empty: no message should be sent at all for a day with no matches.
func Format(template string, names []string) (string, bool) {
	if len(names) == 0 {
		return "", false
	}

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = Bullet + name
	}

	return strings.ReplaceAll(template, Placeholder, strings.Join(lines, "\n")), true
}
