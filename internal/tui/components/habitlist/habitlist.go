package habitlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/habitforge/habitctl/internal/engine"
	"github.com/habitforge/habitctl/internal/models"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	Habit models.Habit
}

type DeleteHabitMsg struct {
	Habit models.Habit
}

type CheckInMsg struct {
	ID int64
}

type PickTimeMsg struct {
	Habit models.Habit
}

type ClearReminderMsg struct {
	ID int64
}

type Item struct {
	Habit models.Habit
	Today string
	Now   time.Time
}

func (i Item) Title() string {
	switch {
	case i.Habit.Completed:
		return "✓ " + i.Habit.Title
	case i.Habit.CheckedInOn(i.Today):
		return "• " + i.Habit.Title
	default:
		return "○ " + i.Habit.Title
	}
}

func (i Item) Description() string {
	parts := []string{fmt.Sprintf("%d/%d days", i.Habit.CurrentStreak, i.Habit.TargetDays)}

	if i.Habit.Completed {
		parts = append(parts, "completed")
	} else if i.Habit.CheckedInOn(i.Today) {
		parts = append(parts, "checked in today")
	}
	if i.Habit.HasReminder() {
		parts = append(parts, engine.Countdown(i.Now, i.Habit.ReminderTime))
	}
	if i.Habit.LastCheckInDate != "" {
		parts = append(parts, "last check-in "+i.Habit.LastCheckInDate)
	}

	return strings.Join(parts, "  ·  ")
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Add           key.Binding
	CheckIn       key.Binding
	Edit          key.Binding
	Delete        key.Binding
	Remind        key.Binding
	ClearReminder key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		CheckIn: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "check in"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Remind: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "set reminder"),
		),
		ClearReminder: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unset reminder"),
		),
	}
}

type Model struct {
	list   list.Model
	keys   KeyMap
	habits []models.Habit
	today  string
	now    time.Time
}

func New(habits []models.Habit, today string, now time.Time, width, height int) Model {
	l := list.New(buildItems(habits, today, now), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.CheckIn, keys.Edit, keys.Delete, keys.Remind, keys.ClearReminder}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.CheckIn, keys.Edit, keys.Delete, keys.Remind, keys.ClearReminder}
	}

	return Model{
		list:   l,
		keys:   keys,
		habits: habits,
		today:  today,
		now:    now,
	}
}

func buildItems(habits []models.Habit, today string, now time.Time) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h, Today: today, Now: now}
	}
	return items
}

func (m *Model) SetHabits(habits []models.Habit, today string) {
	m.habits = habits
	m.today = today
	m.list.SetItems(buildItems(habits, today, m.now))
}

// SetNow advances the clock the per-item countdowns render from.
func (m *Model) SetNow(now time.Time) {
	m.now = now
	m.list.SetItems(buildItems(m.habits, m.today, now))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.CheckIn):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.Habit.Completed && !i.Habit.CheckedInOn(m.today) {
					return m, func() tea.Msg { return CheckInMsg{ID: i.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditHabitMsg{Habit: i.Habit} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{Habit: i.Habit} }
			}
		case key.Matches(msg, m.keys.Remind):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.Habit.Completed {
					return m, func() tea.Msg { return PickTimeMsg{Habit: i.Habit} }
				}
			}
		case key.Matches(msg, m.keys.ClearReminder):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Habit.HasReminder() {
					return m, func() tea.Msg { return ClearReminderMsg{ID: i.Habit.ID} }
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
