package cli

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/studylit/internal/badges"
	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/utils"
)

const barWidth = 30

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}
	sum := snap.Summary()

	fmt.Printf("Dashboard for %s\n\n", sum.Today)
	fmt.Printf("  Today:       %-7s %s %3.0f%% of %s\n",
		utils.FormatHours(sum.TodayHours), utils.ProgressBar(sum.DailyGoalProgress, 20),
		sum.DailyGoalProgress, utils.FormatHours(snap.Settings.DailyGoalHours))
	fmt.Printf("  This week:   %-7s %s %3.0f%% of %s\n",
		utils.FormatHours(sum.WeeklyHours), utils.ProgressBar(sum.WeeklyGoalProgress, 20),
		sum.WeeklyGoalProgress, utils.FormatHours(snap.Settings.WeeklyGoalHours))
	fmt.Printf("  This month:  %s\n\n", utils.FormatHours(sum.MonthlyHours))
	fmt.Printf("  Current streak: %d days\n", sum.CurrentStreak)
	fmt.Printf("  Longest streak: %d days\n", sum.LongestStreak)
	fmt.Printf("  Badges:         %d/%d\n", sum.UnlockedBadgeCount, len(snap.Badges))
	if sum.Quote != "" {
		fmt.Printf("\n  \"%s\"\n", sum.Quote)
	}
	return nil
}

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}

	thisWeek := snap.ThisWeekBars()
	lastWeek := snap.LastWeekBars()
	peak := 0.0
	for _, b := range append(append([]stats.DayBar{}, thisWeek...), lastWeek...) {
		peak = math.Max(peak, b.Hours)
	}

	fmt.Printf("Week of %s\n\n", thisWeek[0].Date)
	for i, bar := range thisWeek {
		marker := " "
		if bar.Date == snap.TodayKey() {
			marker = ">"
		}
		fmt.Printf("%s %s  %-*s %6s   (last week %s)\n",
			marker, bar.Label, barWidth, utils.ScaledBar(bar.Hours, peak, barWidth),
			utils.FormatHours(bar.Hours), utils.FormatHours(lastWeek[i].Hours))
	}

	weekly := snap.WeeklyHours()
	previous := stats.PeriodHours(snap.Entries, datesOf(lastWeek))
	fmt.Printf("\nTotal: %s (last week %s)\n", utils.FormatHours(weekly), utils.FormatHours(previous))
	fmt.Printf("Weekly goal: %s %3.0f%% of %s\n",
		utils.ProgressBar(stats.GoalProgress(weekly, snap.Settings.WeeklyGoalHours), 20),
		stats.GoalProgress(weekly, snap.Settings.WeeklyGoalHours),
		utils.FormatHours(snap.Settings.WeeklyGoalHours))
	return nil
}

type RankingsCmd struct {
	Limit int `help:"Show only the top N subjects (0 for all)." default:"0"`
}

func (c *RankingsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}

	totals := snap.SubjectTotals()
	if len(totals) == 0 {
		fmt.Println("No study sessions logged yet.")
		return nil
	}
	if c.Limit > 0 && c.Limit < len(totals) {
		totals = totals[:c.Limit]
	}

	fmt.Println("Subject rankings (all time):")
	fmt.Println()
	for i, t := range totals {
		fmt.Printf("%2d. %-20s %7s  %5.1f%%  %s\n",
			i+1, t.Subject, utils.FormatHours(t.Hours), t.Percentage, utils.ProgressBar(t.Percentage, 20))
	}
	return nil
}

type BadgesCmd struct{}

func (c *BadgesCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}

	now := ctx.Now()
	fmt.Printf("Badges (%d/%d unlocked):\n\n", badges.UnlockedCount(snap.Badges), len(snap.Badges))
	for _, b := range snap.Badges {
		status := "locked"
		glyph := "🔒"
		if b.Unlocked() {
			status = "unlocked " + humanize.RelTime(*b.UnlockedAt, now, "ago", "from now")
			glyph = badges.Glyph(b.Icon)
		}
		fmt.Printf("%s  %-15s %-30s %s\n", glyph, b.Title, b.Description, status)
	}
	return nil
}

func datesOf(bars []stats.DayBar) []string {
	out := make([]string, len(bars))
	for i, b := range bars {
		out[i] = b.Date
	}
	return out
}
