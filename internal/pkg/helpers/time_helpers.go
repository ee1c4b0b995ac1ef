package helpers

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format for plain dates.
const DateLayout = "2006-01-02"

// ErrInvalidDate marks a date string that is neither a plain date nor RFC3339.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a "yyyy-MM-dd" date, falling back to RFC3339 for clients
// that send full timestamps.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// FormatDate renders a timestamp as a plain date with no time component.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current calendar date with the time component truncated.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ParseDuration parses a duration string, returns the default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}
