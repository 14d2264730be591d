package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.help.Width = ws.Width
		m.resize()
	}

	switch m.state {
	case constants.StateLogSession, constants.StateAddHabit:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		return m.openHabitForm()
	case habits.ToggleHabitMsg:
		m.setError(m.toggleHabit(msg.ID))
		return m, nil
	case habits.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.habitToDelete = msg.Name
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = constants.SessionState((int(m.state) + 1) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = constants.SessionState((int(m.state) + tabCount - 1) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.banner = ""
			m.formError = ""
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Log):
			return m.openSessionForm()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case constants.StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case constants.StateBadges:
		m.badgesModel, cmd = m.badgesModel.Update(msg)
	}
	return m, cmd
}

func (m Model) openSessionForm() (tea.Model, tea.Cmd) {
	m.sessionForm = &SessionFormModel{Subject: defaultSubject(m.snap)}
	m.form = NewSessionForm(m.sessionForm)
	m.formError = ""
	m.previousState = m.state
	m.state = constants.StateLogSession
	return m, m.form.Init()
}

func (m Model) openHabitForm() (tea.Model, tea.Cmd) {
	m.habitForm = &HabitFormModel{}
	m.form = NewHabitForm(m.habitForm)
	m.formError = ""
	m.previousState = m.state
	m.state = constants.StateAddHabit
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var err error
		if m.state == constants.StateLogSession {
			err = m.logSession(*m.sessionForm)
		} else {
			err = m.addHabit(m.habitForm.Name)
		}
		if err != nil {
			// Stay in the form so the user can fix the input or press esc.
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.formError = ""
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.setError(m.deleteHabit(m.habitToDeleteID))
		m.habitToDeleteID, m.habitToDelete = "", ""
		m.state = m.previousState
	case "n", "N", "esc", "q":
		m.habitToDeleteID, m.habitToDelete = "", ""
		m.state = m.previousState
	}
	return m, nil
}

func (m *Model) setError(err error) {
	if err != nil {
		m.formError = err.Error()
		return
	}
	m.formError = ""
}
