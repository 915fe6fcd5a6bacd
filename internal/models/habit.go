package models

// Habit mirrors the habit DTO served by GET /api/habits/sorted.
type Habit struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	TargetDays      int      `json:"targetDays"`
	StartDate       string   `json:"startDate,omitempty"` // YYYY-MM-DD
	CurrentStreak   int      `json:"currentStreak"`
	LastCheckInDate string   `json:"lastCheckInDate,omitempty"` // YYYY-MM-DD
	Completed       bool     `json:"completed"`
	CompletedDays   []string `json:"completedDays,omitempty"`
	ReminderTime    string   `json:"reminderTime,omitempty"` // HH:MM
}

// CheckedInOn reports whether the habit was already checked in on the given
// date (YYYY-MM-DD).
func (h Habit) CheckedInOn(date string) bool {
	return h.LastCheckInDate != "" && h.LastCheckInDate == date
}

// ProgressFraction returns streak progress toward the target, capped at 1.
func (h Habit) ProgressFraction() float64 {
	if h.TargetDays <= 0 {
		return 0
	}
	f := float64(h.CurrentStreak) / float64(h.TargetDays)
	if f > 1 {
		return 1
	}
	return f
}

// HasReminder reports whether a daily reminder is set.
func (h Habit) HasReminder() bool {
	return h.ReminderTime != ""
}
