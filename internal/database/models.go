package database

import "time"

// ChatSettings holds a chat's greeting configuration. Exactly one row per
// chat that has ever issued /start; rows are created with defaults and
// never deleted.
type ChatSettings struct {
	ChatID    int64     `db:"chat_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// GreetTime is the daily send time as "HH:MM" local wall clock.
	GreetTime string `db:"greet_time"`
	// GreetText is the greeting template containing the {names} placeholder.
	GreetText string `db:"greet_text"`
}

// Person is one tracked birthday in a chat. Day and month describe a yearly
// recurring date; no year is stored.
type Person struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ChatID   int64  `db:"chat_id"`
	FullName string `db:"full_name"`
	Day      int    `db:"day"`
	Month    int    `db:"month"`
}
