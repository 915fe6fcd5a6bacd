package engine

import (
	"fmt"
	"time"

	"github.com/habitforge/habitctl/internal/constants"
)

// NextOccurrence returns the next wall-clock occurrence of an HH:MM
// reminder time relative to now: today if the time is still ahead,
// otherwise tomorrow.
func NextOccurrence(now time.Time, timeStr string) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reminder time %q: %w", timeStr, err)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}

// Until returns the duration until the next occurrence of the reminder.
func Until(now time.Time, timeStr string) (time.Duration, error) {
	next, err := NextOccurrence(now, timeStr)
	if err != nil {
		return 0, err
	}
	return next.Sub(now), nil
}

// FormatCountdown renders a duration the way the dashboard shows it:
// "02h 05m 09s until reminder".
func FormatCountdown(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60
	return fmt.Sprintf("%02dh %02dm %02ds until reminder", hours, minutes, seconds)
}

// Countdown is the one-line countdown for a reminder time, or an empty
// string if the time is unset or unparseable.
func Countdown(now time.Time, timeStr string) string {
	if timeStr == "" {
		return ""
	}
	d, err := Until(now, timeStr)
	if err != nil {
		return ""
	}
	return FormatCountdown(d)
}
