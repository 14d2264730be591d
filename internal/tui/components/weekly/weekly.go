package weekly

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/utils"
)

const barWidth = 30

var (
	thisWeekStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	lastWeekStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	todayStyle    = lipgloss.NewStyle().Bold(true)
)

type Model struct {
	snap   stats.Snapshot
	width  int
	height int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

func (m *Model) SetSnapshot(snap stats.Snapshot) {
	m.snap = snap
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View draws this week's bars with last week's underneath for comparison.
func (m Model) View() string {
	this := m.snap.ThisWeekBars()
	last := m.snap.LastWeekBars()

	peak := 0.0
	for _, bars := range [][]stats.DayBar{this, last} {
		for _, bar := range bars {
			peak = math.Max(peak, bar.Hours)
		}
	}

	today := m.snap.TodayKey()
	var b strings.Builder
	for i, bar := range this {
		label := bar.Label
		if bar.Date == today {
			label = todayStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s %s %s\n", label,
			thisWeekStyle.Render(fmt.Sprintf("%-*s", barWidth, utils.ScaledBar(bar.Hours, peak, barWidth))),
			utils.FormatHours(bar.Hours))
		if i < len(last) {
			fmt.Fprintf(&b, "    %s %s\n",
				lastWeekStyle.Render(fmt.Sprintf("%-*s", barWidth, utils.ScaledBar(last[i].Hours, peak, barWidth))),
				lastWeekStyle.Render(utils.FormatHours(last[i].Hours)))
		}
	}

	weekly := m.snap.WeeklyHours()
	goal := m.snap.Settings.WeeklyGoalHours
	fmt.Fprintf(&b, "\nThis week %s vs last week %s\n",
		utils.FormatHours(weekly), utils.FormatHours(stats.PeriodHours(m.snap.Entries, dates(last))))
	fmt.Fprintf(&b, "Weekly goal %s %.0f%% of %s\n",
		utils.ProgressBar(stats.GoalProgress(weekly, goal), 20), stats.GoalProgress(weekly, goal), utils.FormatHours(goal))
	return b.String()
}

func dates(bars []stats.DayBar) []string {
	out := make([]string, len(bars))
	for i, bar := range bars {
		out[i] = bar.Date
	}
	return out
}
