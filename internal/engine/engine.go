// Package engine owns the habit list for the authenticated user. The server
// is the single source of truth: every mutation is followed by a full
// refetch rather than a local patch, which sidesteps ordering races between
// in-flight requests at the cost of a round-trip.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/habitforge/habitctl/internal/api"
	"github.com/habitforge/habitctl/internal/constants"
	"github.com/habitforge/habitctl/internal/logger"
	"github.com/habitforge/habitctl/internal/models"
	"github.com/habitforge/habitctl/internal/validation"
)

var (
	// ErrAlreadyCheckedIn means the habit was already checked in today; no
	// request is issued.
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	// ErrHabitCompleted means the habit reached its target; check-in and
	// reminder changes are rejected locally.
	ErrHabitCompleted = errors.New("habit is already completed")
	// ErrHabitNotFound means no habit with the given id is known.
	ErrHabitNotFound = errors.New("habit not found")
)

// SortBy selects the server-side ordering of the habit list.
type SortBy string

const (
	SortStartDate SortBy = "startdate"
	SortStreak    SortBy = "streak"
	SortCompleted SortBy = "completed"
)

// Filter selects the client-side subset of the fetched list.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseSortBy validates a sort flag value.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(s)) {
	case SortStartDate, SortStreak, SortCompleted:
		return SortBy(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("invalid sort %q (expected startdate, streak, or completed)", s)
	}
}

// ParseFilter validates a filter flag value.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(s)) {
	case FilterAll, FilterActive, FilterCompleted:
		return Filter(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("invalid filter %q (expected all, active, or completed)", s)
	}
}

// TokenSource supplies the bearer token for habit operations.
type TokenSource interface {
	Token() (string, error)
}

// CheckInResult reports the outcome of a successful check-in. CompletedNow
// is true exactly once per qualifying check-in, when the incremented streak
// reaches the target.
type CheckInResult struct {
	Habit        models.Habit
	CompletedNow bool
}

// Engine coordinates habit operations against the API. Its cached list is a
// value that is replaced wholesale on every fetch, never merged.
type Engine struct {
	client *api.Client
	tokens TokenSource
	now    func() time.Time

	mu        sync.Mutex
	habits    []models.Habit
	reminders map[int64]string // habit id -> HH:MM
	lastSort  SortBy
}

// New creates an engine backed by the given client and token source.
func New(client *api.Client, tokens TokenSource) *Engine {
	return &Engine{
		client:    client,
		tokens:    tokens,
		now:       time.Now,
		reminders: make(map[int64]string),
		lastSort:  SortStartDate,
	}
}

// List fetches all habits ordered server-side by sortBy and returns the
// subset matching filter. The filter is applied locally without a second
// round-trip, and the reminder index is rebuilt from the full fetched set.
func (e *Engine) List(ctx context.Context, sortBy SortBy, filter Filter) ([]models.Habit, error) {
	all, err := e.refresh(ctx, sortBy)
	if err != nil {
		return nil, err
	}
	return ApplyFilter(all, filter), nil
}

// ApplyFilter returns the habits matching the given filter.
func ApplyFilter(habits []models.Habit, filter Filter) []models.Habit {
	if filter == FilterAll || filter == "" {
		return habits
	}
	out := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		switch filter {
		case FilterActive:
			if !h.Completed {
				out = append(out, h)
			}
		case FilterCompleted:
			if h.Completed {
				out = append(out, h)
			}
		}
	}
	return out
}

// Create validates locally, then submits the new habit and refetches.
func (e *Engine) Create(ctx context.Context, title string, targetDays int) error {
	if err := validation.HabitTitle(title); err != nil {
		return err
	}
	if err := validation.TargetDays(targetDays); err != nil {
		return err
	}

	tok, err := e.tokens.Token()
	if err != nil {
		return err
	}
	if err := e.client.CreateHabit(ctx, tok, strings.TrimSpace(title), targetDays); err != nil {
		return err
	}

	_, err = e.refresh(ctx, e.sortInUse())
	return err
}

// CheckIn records today's check-in. Habits already checked in today or
// already completed are rejected locally with no request issued.
func (e *Engine) CheckIn(ctx context.Context, habitID int64) (CheckInResult, error) {
	var result CheckInResult

	habit, err := e.find(ctx, habitID)
	if err != nil {
		return result, err
	}
	if habit.Completed {
		return result, ErrHabitCompleted
	}
	if habit.CheckedInOn(e.today()) {
		return result, ErrAlreadyCheckedIn
	}

	tok, err := e.tokens.Token()
	if err != nil {
		return result, err
	}
	if err := e.client.CheckIn(ctx, tok, habitID); err != nil {
		return result, err
	}

	// The streak the server will report after this check-in.
	result.CompletedNow = habit.CurrentStreak+1 >= habit.TargetDays

	all, err := e.refresh(ctx, e.sortInUse())
	if err != nil {
		return result, err
	}
	for _, h := range all {
		if h.ID == habitID {
			result.Habit = h
			break
		}
	}
	return result, nil
}

// Edit validates locally, submits the partial edit, and refetches. A failed
// edit leaves local state untouched so the caller's form stays open.
func (e *Engine) Edit(ctx context.Context, habitID int64, changes api.HabitChanges) error {
	if changes.IsZero() {
		return errors.New("nothing to change")
	}
	if changes.Title != nil {
		if err := validation.HabitTitle(*changes.Title); err != nil {
			return err
		}
		trimmed := strings.TrimSpace(*changes.Title)
		changes.Title = &trimmed
	}
	if changes.TargetDays != nil {
		if err := validation.TargetDays(*changes.TargetDays); err != nil {
			return err
		}
	}
	if changes.ReminderTime != nil {
		// An empty reminder time means clear, expressed as explicit null.
		if strings.TrimSpace(*changes.ReminderTime) == "" {
			changes.ReminderTime = nil
			changes.ClearReminder = true
		} else if err := validation.ReminderTime(*changes.ReminderTime); err != nil {
			return err
		}
	}

	tok, err := e.tokens.Token()
	if err != nil {
		return err
	}
	if err := e.client.EditHabit(ctx, tok, habitID, changes); err != nil {
		return err
	}

	_, err = e.refresh(ctx, e.sortInUse())
	return err
}

// Delete removes a habit and refetches. Confirmation is the caller's
// responsibility; by the time Delete is called the decision is final.
func (e *Engine) Delete(ctx context.Context, habitID int64) error {
	tok, err := e.tokens.Token()
	if err != nil {
		return err
	}
	if err := e.client.DeleteHabit(ctx, tok, habitID); err != nil {
		return err
	}
	_, err = e.refresh(ctx, e.sortInUse())
	return err
}

// SetReminder sets the daily reminder time for a habit. Completed habits
// are rejected locally.
func (e *Engine) SetReminder(ctx context.Context, habitID int64, timeStr string) error {
	habit, err := e.find(ctx, habitID)
	if err != nil {
		return err
	}
	if habit.Completed {
		return ErrHabitCompleted
	}
	if err := validation.ReminderTime(timeStr); err != nil {
		return err
	}
	return e.Edit(ctx, habitID, api.HabitChanges{ReminderTime: api.String(timeStr)})
}

// ClearReminder turns the daily reminder off server-side.
func (e *Engine) ClearReminder(ctx context.Context, habitID int64) error {
	if _, err := e.find(ctx, habitID); err != nil {
		return err
	}
	return e.Edit(ctx, habitID, api.HabitChanges{ClearReminder: true})
}

// ReminderIndex returns a snapshot of habit id to reminder time, rebuilt on
// every fetch from the habits that carry a non-empty reminderTime.
func (e *Engine) ReminderIndex() map[int64]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[int64]string, len(e.reminders))
	for id, t := range e.reminders {
		out[id] = t
	}
	return out
}

// Habits returns the last fetched list.
func (e *Engine) Habits() []models.Habit {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Habit, len(e.habits))
	copy(out, e.habits)
	return out
}

// Find returns a habit from the cache, fetching the list first if the cache
// is empty.
func (e *Engine) Find(ctx context.Context, habitID int64) (models.Habit, error) {
	return e.find(ctx, habitID)
}

// Today returns today's date in YYYY-MM-DD, as used for check-in gating.
func (e *Engine) Today() string { return e.today() }

func (e *Engine) today() string {
	return e.now().Format(constants.DateFormat)
}

func (e *Engine) sortInUse() SortBy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSort
}

func (e *Engine) find(ctx context.Context, habitID int64) (models.Habit, error) {
	e.mu.Lock()
	cached := len(e.habits) > 0
	var found *models.Habit
	for i := range e.habits {
		if e.habits[i].ID == habitID {
			h := e.habits[i]
			found = &h
			break
		}
	}
	e.mu.Unlock()

	if found != nil {
		return *found, nil
	}
	if cached {
		return models.Habit{}, ErrHabitNotFound
	}

	all, err := e.refresh(ctx, e.sortInUse())
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range all {
		if h.ID == habitID {
			return h, nil
		}
	}
	return models.Habit{}, ErrHabitNotFound
}

// refresh fetches the full list and replaces the cache and reminder index.
func (e *Engine) refresh(ctx context.Context, sortBy SortBy) ([]models.Habit, error) {
	tok, err := e.tokens.Token()
	if err != nil {
		return nil, err
	}

	habits, err := e.client.SortedHabits(ctx, tok, string(sortBy))
	if err != nil {
		return nil, err
	}

	reminders := make(map[int64]string)
	for _, h := range habits {
		if h.HasReminder() {
			reminders[h.ID] = h.ReminderTime
		}
	}

	e.mu.Lock()
	e.habits = habits
	e.reminders = reminders
	e.lastSort = sortBy
	e.mu.Unlock()

	logger.Debug("Refreshed habit list", "count", len(habits), "sort", sortBy)
	return habits, nil
}
