package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studylit/internal/badges"
	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/tui/components/badgelist"
	"github.com/julianstephens/studylit/internal/tui/components/dashboard"
	"github.com/julianstephens/studylit/internal/tui/components/habits"
	"github.com/julianstephens/studylit/internal/tui/components/rankings"
	"github.com/julianstephens/studylit/internal/tui/components/weekly"
	"github.com/julianstephens/studylit/internal/utils"
	"github.com/julianstephens/studylit/internal/validation"
)

// tabCount is the number of tab states; they come first in SessionState.
const tabCount = int(constants.StateBadges) + 1

type SessionFormModel struct {
	Subject string
	Hours   string
	Date    string
}

type HabitFormModel struct {
	Name string
}

type Model struct {
	ctx             *cli.Context
	snap            stats.Snapshot
	state           constants.SessionState
	previousState   constants.SessionState
	keys            KeyMap
	help            help.Model
	dashboardModel  dashboard.Model
	weeklyModel     weekly.Model
	rankingsModel   rankings.Model
	habitsModel     habits.Model
	badgesModel     badgelist.Model
	form            *huh.Form
	sessionForm     *SessionFormModel
	habitForm       *HabitFormModel
	habitToDeleteID string
	habitToDelete   string
	banner          string // Newest badge unlock
	validationWarn  string
	formError       string
	quitting        bool
	width           int
	height          int
}

func NewModel(ctx *cli.Context) Model {
	m := Model{
		ctx:            ctx,
		state:          constants.StateDashboard,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		dashboardModel: dashboard.New(0, 0),
		weeklyModel:    weekly.New(0, 0),
		rankingsModel:  rankings.New(0, 0),
		habitsModel:    habits.New(0, 0),
		badgesModel:    badgelist.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Log}
	switch m.state {
	case constants.StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Toggle, m.keys.Delete)
	}
	return append(keys, m.keys.Quit, m.keys.Help)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	actions := []key.Binding{m.keys.Log}
	if m.state == constants.StateHabits {
		actions = append(actions, m.keys.Add, m.keys.Toggle, m.keys.Delete)
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh rebuilds the snapshot and pushes it into every tab.
func (m *Model) refresh() {
	snap, err := m.ctx.Snapshot()
	if err != nil {
		logger.Error("Failed to load snapshot", "error", err)
		m.formError = err.Error()
		return
	}
	m.snap = snap
	m.dashboardModel.SetSnapshot(snap)
	m.weeklyModel.SetSnapshot(snap)
	m.rankingsModel.SetSnapshot(snap)
	m.habitsModel.SetSnapshot(snap)
	m.badgesModel.SetBadges(snap.Badges, snap.Today)
	m.updateValidationStatus()
}

func (m *Model) updateValidationStatus() {
	result := validation.New().ValidateSnapshot(m.snap.Entries, m.snap.Habits, m.snap.Logs)
	if result.HasConflicts() {
		m.validationWarn = fmt.Sprintf("⚠ %d data warning(s), run '%s doctor'", len(result.Conflicts), constants.AppName)
	} else {
		m.validationWarn = ""
	}
}

// logSession stores the form's session and reports a newly unlocked badge
// in the banner.
func (m *Model) logSession(f SessionFormModel) error {
	hours, err := utils.ParseHours(f.Hours)
	if err != nil {
		return err
	}
	day, err := m.ctx.ResolveDay(strings.TrimSpace(f.Date))
	if err != nil {
		return err
	}

	entry := models.StudyEntry{Date: day, Subject: strings.TrimSpace(f.Subject), Hours: hours}
	_, unlocked, err := storage.RecordStudySession(m.ctx.Store, entry, m.ctx.Now())
	if err != nil {
		return err
	}
	if unlocked != nil {
		shown := *unlocked
		shown.Icon = badges.Glyph(unlocked.Icon)
		m.banner = fmt.Sprintf("%s Badge unlocked: %s", shown.Icon, shown.Title)
		m.ctx.NotifyBadge(shown)
	}
	m.refresh()
	return nil
}

func (m *Model) addHabit(name string) error {
	if _, err := storage.CreateHabit(m.ctx.Store, strings.TrimSpace(name), m.ctx.Now()); err != nil {
		return err
	}
	m.refresh()
	return nil
}

func (m *Model) toggleHabit(id string) error {
	if _, err := storage.ToggleHabitLog(m.ctx.Store, id, m.snap.TodayKey()); err != nil {
		return err
	}
	m.refresh()
	return nil
}

func (m *Model) deleteHabit(id string) error {
	if err := m.ctx.Store.DeleteHabit(id); err != nil {
		return err
	}
	m.refresh()
	return nil
}

func (m *Model) resize() {
	// Tabs, banner and help take five rows.
	h := max(0, m.height-5)
	w := max(0, m.width-4)
	m.dashboardModel.SetSize(w, h)
	m.weeklyModel.SetSize(w, h)
	m.rankingsModel.SetSize(w, h)
	m.habitsModel.SetSize(w, h)
	m.badgesModel.SetSize(w, h)
}
