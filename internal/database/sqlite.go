package database

import (
	"fmt"
	"time"
)

// sqliteTimeLayout is fixed width so stored values compare correctly as text.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatSQLiteTime renders t in UTC for TEXT timestamp columns.
func FormatSQLiteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

// ParseSQLiteTime parses a value written by FormatSQLiteTime.
func ParseSQLiteTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse sqlite time %q: %w", s, err)
	}
	return t.UTC(), nil
}
