package utils

import (
	"time"
)

// DBTimeFormat is the layout reservations are stored and rendered with.
// Times are kept in UTC end to end (the DSN pins loc=UTC).
const DBTimeFormat = "2006-01-02 15:04:05"

// ParseTimestamp parses an ISO-8601 timestamp from a client. A trailing "Z"
// or an explicit offset is honored; a naive timestamp without offset is
// interpreted as UTC. Fractional seconds are accepted.
func ParseTimestamp(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatDBTime renders a timestamp in the wire/database layout in UTC.
func FormatDBTime(t time.Time) string {
	return t.UTC().Format(DBTimeFormat)
}
