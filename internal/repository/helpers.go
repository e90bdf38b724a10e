package repository

import (
	"fmt"
	"time"
)

// storedTimeLayout has a fixed width so stored timestamps compare correctly as text.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// parseTime parses a stored timestamp.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(storedTimeLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// timeToString formats t for SQLite storage in UTC.
func timeToString(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}
