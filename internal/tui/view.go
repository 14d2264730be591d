package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studylit/internal/constants"
)

var tabTitles = []string{"Dashboard", "Weekly", "Rankings", "Habits", "Badges"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDashboard:
		content = docStyle.Render(m.dashboardModel.View())
	case constants.StateWeekly:
		content = docStyle.Render(m.weeklyModel.View())
	case constants.StateRankings:
		content = docStyle.Render(m.rankingsModel.View())
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateBadges:
		content = docStyle.Render(m.badgesModel.View())
	case constants.StateLogSession, constants.StateAddHabit:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var status string
	switch {
	case m.formError != "":
		status = errorStyle.Render("Error: " + m.formError)
	case m.banner != "":
		status = bannerStyle.Render(m.banner)
	case m.validationWarn != "":
		status = warningStyle.Render(m.validationWarn)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		status,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if int(active) >= tabCount {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(0, m.height-4),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete habit %q and its history?", m.habitToDelete)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
