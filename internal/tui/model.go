// Package tui is the interactive dashboard. It is only reachable from a
// fully onboarded session; every mutation goes through the engine, which
// refetches the list from the server before the view is redrawn.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/habitforge/habitctl/internal/constants"
	"github.com/habitforge/habitctl/internal/engine"
	"github.com/habitforge/habitctl/internal/models"
	"github.com/habitforge/habitctl/internal/session"
	"github.com/habitforge/habitctl/internal/tui/components/habitlist"
)

type Model struct {
	session *session.Controller
	engine  *engine.Engine

	state     constants.DashboardState
	keys      KeyMap
	help      help.Model
	habitList habitlist.Model

	form      *huh.Form
	habitForm *HabitFormModel
	timeForm  *TimeFormModel

	// Habit the open form or confirmation applies to. Zero when adding.
	editing models.Habit

	sort   engine.SortBy
	filter engine.Filter

	now         time.Time
	status      string
	celebration string
	welcomeBack bool
	quitting    bool
	width       int
	height      int
}

func New(sess *session.Controller, eng *engine.Engine) Model {
	now := time.Now()
	today := now.Format(constants.DateFormat)

	m := Model{
		session:     sess,
		engine:      eng,
		state:       constants.StateList,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		habitList:   habitlist.New(nil, today, now, 0, 0),
		sort:        engine.SortStartDate,
		filter:      engine.FilterAll,
		now:         now,
		welcomeBack: sess.WelcomeBackDue(),
	}
	m.reload()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Sort, m.keys.Filter, m.keys.Refresh, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Sort, m.keys.Filter, m.keys.Refresh},
		{m.keys.Logout, m.keys.Quit, m.keys.Help},
	}
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// reload refetches through the engine and swaps the rendered list. Errors
// land in the status line; the previous list stays on screen.
func (m *Model) reload() {
	habits, err := m.engine.List(context.Background(), m.sort, m.filter)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.habitList.SetHabits(habits, m.now.Format(constants.DateFormat))
}

func nextSort(s engine.SortBy) engine.SortBy {
	switch s {
	case engine.SortStartDate:
		return engine.SortStreak
	case engine.SortStreak:
		return engine.SortCompleted
	default:
		return engine.SortStartDate
	}
}

func nextFilter(f engine.Filter) engine.Filter {
	switch f {
	case engine.FilterAll:
		return engine.FilterActive
	case engine.FilterActive:
		return engine.FilterCompleted
	default:
		return engine.FilterAll
	}
}
