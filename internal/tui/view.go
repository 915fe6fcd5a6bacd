package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/habitforge/habitctl/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateAddHabit, constants.StateEditHabit, constants.StatePickTime:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = docStyle.Render(m.habitList.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	username := ""
	if u := m.session.User(); u != nil {
		username = u.Username
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(constants.AppName),
		metaStyle.Render(username),
		metaStyle.Render(fmt.Sprintf("sort: %s", m.sort)),
		metaStyle.Render(fmt.Sprintf("filter: %s", m.filter)),
	)

	if m.welcomeBack {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			nudgeStyle.Render("Welcome back! Don't forget to check in today."),
		)
	}
	return header
}

func (m Model) viewStatus() string {
	switch {
	case m.celebration != "":
		return celebrateStyle.Render(m.celebration)
	case m.status != "":
		return errorStyle.Render(m.status)
	default:
		return ""
	}
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete habit %q? This cannot be undone.", m.editing.Title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
