package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
	"github.com/julianstephens/studylit/internal/tui/components/habits"
)

var testNow = time.Date(2024, 3, 13, 15, 0, 0, 0, time.Local)

type recordingNotifier struct {
	sent []models.Badge
}

func (r *recordingNotifier) NotifyBadge(b models.Badge) error {
	r.sent = append(r.sent, b)
	return nil
}

func setupModel(t *testing.T) (Model, *recordingNotifier) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	store.MigrationLog = func(string) {}
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	notifier := &recordingNotifier{}
	ctx := &cli.Context{Store: store, Notifier: notifier, Clock: func() time.Time { return testNow }}
	return NewModel(ctx), notifier
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func TestTabCycling(t *testing.T) {
	m, _ := setupModel(t)

	want := []constants.SessionState{
		constants.StateWeekly,
		constants.StateRankings,
		constants.StateHabits,
		constants.StateBadges,
		constants.StateDashboard,
	}
	for _, state := range want {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != state {
			t.Fatalf("state = %v, want %v", m.state, state)
		}
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateBadges {
		t.Errorf("shift+tab from dashboard = %v, want badges", m.state)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	m, _ := setupModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	for i, title := range tabTitles {
		m.state = constants.SessionState(i)
		view := m.View()
		if !strings.Contains(view, title) {
			t.Errorf("view for tab %d missing title %q", i, title)
		}
	}
}

func TestLogSessionUnlocksBadge(t *testing.T) {
	m, notifier := setupModel(t)

	if err := m.logSession(SessionFormModel{Subject: "Math", Hours: "1h30m"}); err != nil {
		t.Fatalf("logSession() error = %v", err)
	}
	if got := m.snap.TodayHours(); got != 1.5 {
		t.Errorf("TodayHours() = %v, want 1.5", got)
	}
	if !strings.Contains(m.banner, "First Session") {
		t.Errorf("banner = %q, want the first session badge", m.banner)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Icon != "🚀" {
		t.Errorf("notified = %+v", notifier.sent)
	}

	m.banner = ""
	if err := m.logSession(SessionFormModel{Subject: "Math", Hours: "1", Date: "yesterday"}); err != nil {
		t.Fatalf("logSession() error = %v", err)
	}
	if m.banner != "" {
		t.Errorf("second session set banner %q", m.banner)
	}
	if entries := m.snap.EntriesOn("2024-03-12"); len(entries) != 1 {
		t.Errorf("entries yesterday = %d, want 1", len(entries))
	}
}

func TestLogSessionRejectsBadInput(t *testing.T) {
	m, _ := setupModel(t)

	tests := []SessionFormModel{
		{Subject: "Math", Hours: "abc"},
		{Subject: "Math", Hours: "30"},
		{Subject: "", Hours: "1"},
		{Subject: "Math", Hours: "1", Date: "03/13/2024"},
	}
	for _, f := range tests {
		if err := m.logSession(f); err == nil {
			t.Errorf("logSession(%+v) succeeded, want error", f)
		}
	}
	if len(m.snap.Entries) != 0 {
		t.Errorf("entries = %d, want 0", len(m.snap.Entries))
	}
}

func TestHabitFlow(t *testing.T) {
	m, _ := setupModel(t)

	if err := m.addHabit("Read"); err != nil {
		t.Fatalf("addHabit() error = %v", err)
	}
	if err := m.addHabit("Read"); err == nil {
		t.Error("expected duplicate habit to fail")
	}

	items := m.habitsModel.Items()
	if len(items) != 1 {
		t.Fatalf("habit items = %d, want 1", len(items))
	}
	id := items[0].Stats.Habit.ID

	m = send(t, m, habits.ToggleHabitMsg{ID: id})
	if !m.habitsModel.Items()[0].Stats.CompletedToday {
		t.Error("habit should be completed after toggle")
	}

	m = send(t, m, habits.DeleteHabitMsg{ID: id, Name: "Read"})
	if m.state != constants.StateConfirmDelete {
		t.Fatalf("state = %v, want confirm delete", m.state)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if len(m.habitsModel.Items()) != 1 {
		t.Fatal("declining the confirmation deleted the habit")
	}

	m = send(t, m, habits.DeleteHabitMsg{ID: id, Name: "Read"})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if len(m.habitsModel.Items()) != 0 {
		t.Errorf("habit items = %d after delete, want 0", len(m.habitsModel.Items()))
	}
	if len(m.snap.Logs) != 0 {
		t.Errorf("logs = %d after delete, want 0", len(m.snap.Logs))
	}
}

func TestOpenFormsAndEscape(t *testing.T) {
	m, _ := setupModel(t)
	if err := m.logSession(SessionFormModel{Subject: "Physics", Hours: "1"}); err != nil {
		t.Fatalf("logSession() error = %v", err)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if m.state != constants.StateLogSession {
		t.Fatalf("state = %v, want log session", m.state)
	}
	if m.sessionForm.Subject != "Physics" {
		t.Errorf("prefilled subject = %q, want Physics", m.sessionForm.Subject)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateDashboard {
		t.Errorf("esc returned to %v, want dashboard", m.state)
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.quitting {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
