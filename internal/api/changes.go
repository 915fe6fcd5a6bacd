package api

import "encoding/json"

// HabitChanges is a partial edit for PUT /api/habits/{id}/edit. Only fields
// that were explicitly set are serialized; ClearReminder sends an explicit
// null so the server drops the reminder, which is different from omitting
// the field entirely.
type HabitChanges struct {
	Title         *string
	TargetDays    *int
	Completed     *bool
	ReminderTime  *string
	ClearReminder bool
}

// IsZero reports whether the edit carries no changes at all.
func (hc HabitChanges) IsZero() bool {
	return hc.Title == nil && hc.TargetDays == nil && hc.Completed == nil &&
		hc.ReminderTime == nil && !hc.ClearReminder
}

func (hc HabitChanges) MarshalJSON() ([]byte, error) {
	m := make(map[string]any)
	if hc.Title != nil {
		m["title"] = *hc.Title
	}
	if hc.TargetDays != nil {
		m["targetDays"] = *hc.TargetDays
	}
	if hc.Completed != nil {
		m["completed"] = *hc.Completed
	}
	if hc.ClearReminder {
		m["reminderTime"] = nil
	} else if hc.ReminderTime != nil {
		m["reminderTime"] = *hc.ReminderTime
	}
	return json.Marshal(m)
}

// String pointer helper for building edits.
func String(s string) *string { return &s }

// Int pointer helper for building edits.
func Int(i int) *int { return &i }

// Bool pointer helper for building edits.
func Bool(b bool) *bool { return &b }
