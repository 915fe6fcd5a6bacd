package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/habitforge/habitctl/internal/api"
	"github.com/habitforge/habitctl/internal/constants"
	"github.com/habitforge/habitctl/internal/models"
	"github.com/habitforge/habitctl/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The clock ticks in every state so countdowns stay live behind forms.
	if t, ok := msg.(TickMsg); ok {
		m.now = time.Time(t)
		m.habitList.SetNow(m.now)
		return m, tick()
	}

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.habitList.SetSize(msg.Width-h, msg.Height-6-v)
	}

	// Handle Add Habit State
	if m.state == constants.StateAddHabit || m.state == constants.StateEditHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateList
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			targetDays, _ := strconv.Atoi(m.habitForm.TargetDays)
			var err error
			if m.state == constants.StateAddHabit {
				err = m.engine.Create(context.Background(), m.habitForm.Title, targetDays)
			} else {
				err = m.engine.Edit(context.Background(), m.editing.ID, api.HabitChanges{
					Title:      api.String(m.habitForm.Title),
					TargetDays: api.Int(targetDays),
				})
			}
			if err != nil {
				if quit := m.onUnauthorized(err); quit != nil {
					return m, quit
				}
				// Stay in the form so the user can retry or cancel with ESC.
				m.status = err.Error()
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			m.reload()
			m.state = constants.StateList
		case huh.StateAborted:
			m.state = constants.StateList
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Pick Time State
	if m.state == constants.StatePickTime {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateList
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if err := m.engine.SetReminder(context.Background(), m.editing.ID, m.timeForm.Time); err != nil {
				if quit := m.onUnauthorized(err); quit != nil {
					return m, quit
				}
				m.status = err.Error()
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			m.reload()
			m.state = constants.StateList
		case huh.StateAborted:
			m.state = constants.StateList
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Delete State
	if m.state == constants.StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if err := m.engine.Delete(context.Background(), m.editing.ID); err != nil {
					if quit := m.onUnauthorized(err); quit != nil {
						return m, quit
					}
					m.status = err.Error()
				} else {
					m.reload()
				}
				m.state = constants.StateList
				m.editing = models.Habit{}
			case "n", "N", "esc", "q":
				m.state = constants.StateList
				m.editing = models.Habit{}
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = newHabitForm(m.habitForm)
		m.editing = models.Habit{}
		m.state = constants.StateAddHabit
		m.celebration = ""
		return m, m.form.Init()

	case habitlist.EditHabitMsg:
		m.habitForm = &HabitFormModel{
			Title:      msg.Habit.Title,
			TargetDays: strconv.Itoa(msg.Habit.TargetDays),
		}
		m.form = newHabitForm(m.habitForm)
		m.editing = msg.Habit
		m.state = constants.StateEditHabit
		m.celebration = ""
		return m, m.form.Init()

	case habitlist.DeleteHabitMsg:
		m.editing = msg.Habit
		m.state = constants.StateConfirmDelete
		m.celebration = ""
		return m, nil

	case habitlist.CheckInMsg:
		m.celebration = ""
		result, err := m.engine.CheckIn(context.Background(), msg.ID)
		if err != nil {
			if quit := m.onUnauthorized(err); quit != nil {
				return m, quit
			}
			m.status = err.Error()
			return m, nil
		}
		m.welcomeBack = false
		if result.CompletedNow {
			m.celebration = "🎉 Congrats on completing your habit! 🎉"
		}
		m.reload()
		return m, nil

	case habitlist.PickTimeMsg:
		// The default is only a suggestion; the user always confirms a time.
		suggested := msg.Habit.ReminderTime
		if suggested == "" {
			suggested = constants.DefaultReminderTime
		}
		m.timeForm = &TimeFormModel{Time: suggested}
		m.form = newTimeForm(m.timeForm)
		m.editing = msg.Habit
		m.state = constants.StatePickTime
		m.celebration = ""
		return m, m.form.Init()

	case habitlist.ClearReminderMsg:
		m.celebration = ""
		if err := m.engine.ClearReminder(context.Background(), msg.ID); err != nil {
			if quit := m.onUnauthorized(err); quit != nil {
				return m, quit
			}
			m.status = err.Error()
			return m, nil
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.celebration = ""
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Sort):
			m.sort = nextSort(m.sort)
			m.celebration = ""
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Filter):
			m.filter = nextFilter(m.filter)
			m.celebration = ""
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Logout):
			if err := m.session.Logout(); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.habitList, cmd = m.habitList.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// onUnauthorized handles a 401/403 from any habit operation: the session is
// discarded and the dashboard exits so the user lands back at login.
func (m *Model) onUnauthorized(err error) tea.Cmd {
	if !api.IsUnauthorized(err) {
		return nil
	}
	m.session.ForceLogout()
	m.quitting = true
	return tea.Quit
}
