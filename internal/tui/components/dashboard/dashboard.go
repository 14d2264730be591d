package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/utils"
)

const barWidth = 24

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(10)
	valueStyle = lipgloss.NewStyle().Bold(true)
	quoteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

type Model struct {
	viewport viewport.Model
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m *Model) SetSnapshot(snap stats.Snapshot) {
	m.viewport.SetContent(Render(snap))
}

// Render draws the dashboard for snap.
func Render(snap stats.Snapshot) string {
	sum := snap.Summary()
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render("Today · "+sum.Today))
	fmt.Fprintln(&b)
	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label), value)
	}
	row("Today", fmt.Sprintf("%s %s / %s",
		utils.ProgressBar(sum.DailyGoalProgress, barWidth),
		valueStyle.Render(utils.FormatHours(sum.TodayHours)),
		utils.FormatHours(snap.Settings.DailyGoalHours)))
	row("Week", fmt.Sprintf("%s %s / %s",
		utils.ProgressBar(sum.WeeklyGoalProgress, barWidth),
		valueStyle.Render(utils.FormatHours(sum.WeeklyHours)),
		utils.FormatHours(snap.Settings.WeeklyGoalHours)))
	row("Month", valueStyle.Render(utils.FormatHours(sum.MonthlyHours)))
	fmt.Fprintln(&b)
	row("Streak", fmt.Sprintf("🔥 %s  (best %d)", valueStyle.Render(days(sum.CurrentStreak)), sum.LongestStreak))
	row("Badges", fmt.Sprintf("%d unlocked", sum.UnlockedBadgeCount))

	if entries := snap.EntriesOn(sum.Today); len(entries) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, titleStyle.Render("Sessions today"))
		for _, e := range entries {
			fmt.Fprintf(&b, "  %-20s %s\n", e.Subject, utils.FormatHours(e.Hours))
		}
	}

	if sum.Quote != "" {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, quoteStyle.Render("“"+sum.Quote+"”"))
	}
	return b.String()
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}
