package engine

import (
	"testing"
	"time"
)

func TestNextOccurrence_LaterToday(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	next, err := NextOccurrence(now, "19:30")
	if err != nil {
		t.Fatalf("NextOccurrence failed: %v", err)
	}
	want := time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("Expected %v, got %v", want, next)
	}
}

func TestNextOccurrence_AlreadyPassedRollsToTomorrow(t *testing.T) {
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	next, err := NextOccurrence(now, "19:30")
	if err != nil {
		t.Fatalf("NextOccurrence failed: %v", err)
	}
	want := time.Date(2026, 3, 2, 19, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("Expected %v, got %v", want, next)
	}
}

func TestNextOccurrence_ExactMinuteRollsToTomorrow(t *testing.T) {
	now := time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC)

	next, err := NextOccurrence(now, "19:30")
	if err != nil {
		t.Fatalf("NextOccurrence failed: %v", err)
	}
	if next.Day() != 2 {
		t.Errorf("Expected next occurrence tomorrow, got %v", next)
	}
}

func TestNextOccurrence_InvalidTime(t *testing.T) {
	if _, err := NextOccurrence(time.Now(), "25:99"); err == nil {
		t.Error("Expected error for invalid time")
	}
}

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{2*time.Hour + 5*time.Minute + 9*time.Second, "02h 05m 09s until reminder"},
		{0, "00h 00m 00s until reminder"},
		{-time.Second, "00h 00m 00s until reminder"},
		{26 * time.Hour, "26h 00m 00s until reminder"},
	}

	for _, tc := range cases {
		if got := FormatCountdown(tc.d); got != tc.want {
			t.Errorf("FormatCountdown(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestCountdown(t *testing.T) {
	now := time.Date(2026, 3, 1, 7, 59, 55, 0, time.UTC)

	if got := Countdown(now, "08:00"); got != "00h 00m 05s until reminder" {
		t.Errorf("Unexpected countdown: %q", got)
	}
	if got := Countdown(now, ""); got != "" {
		t.Errorf("Expected empty countdown for unset time, got %q", got)
	}
	if got := Countdown(now, "bogus"); got != "" {
		t.Errorf("Expected empty countdown for bad time, got %q", got)
	}
}
