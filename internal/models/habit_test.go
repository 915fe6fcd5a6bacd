package models

import "testing"

func TestCheckedInOn(t *testing.T) {
	h := Habit{LastCheckInDate: "2026-03-01"}

	if !h.CheckedInOn("2026-03-01") {
		t.Error("Expected check-in on matching date")
	}
	if h.CheckedInOn("2026-03-02") {
		t.Error("Expected no check-in on other date")
	}
	if (Habit{}).CheckedInOn("") {
		t.Error("Expected no check-in when never checked in")
	}
}

func TestProgressFraction(t *testing.T) {
	cases := []struct {
		streak, target int
		want           float64
	}{
		{5, 10, 0.5},
		{10, 10, 1},
		{15, 10, 1}, // capped
		{0, 10, 0},
		{3, 0, 0}, // degenerate target
	}

	for _, tc := range cases {
		h := Habit{CurrentStreak: tc.streak, TargetDays: tc.target}
		if got := h.ProgressFraction(); got != tc.want {
			t.Errorf("ProgressFraction(%d/%d) = %v, want %v", tc.streak, tc.target, got, tc.want)
		}
	}
}

func TestHasPlaceholderUsername(t *testing.T) {
	if !(User{Username: "user_12345"}).HasPlaceholderUsername() {
		t.Error("Expected user_ prefix to count as placeholder")
	}
	if (User{Username: "alice"}).HasPlaceholderUsername() {
		t.Error("Expected real username not to count as placeholder")
	}
}

func TestPictureSatisfied(t *testing.T) {
	if (User{}).PictureSatisfied() {
		t.Error("Expected unaddressed picture to be unsatisfied")
	}
	if !(User{ProfilePicURL: "https://cdn/x.png"}).PictureSatisfied() {
		t.Error("Expected uploaded picture to satisfy")
	}
	if !(User{HasBeenPromptedForProfilePic: true}).PictureSatisfied() {
		t.Error("Expected declined prompt to satisfy")
	}
}
