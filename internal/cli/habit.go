package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/storage"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's status and streaks." default:"1"`
	Toggle HabitToggleCmd `cmd:"" help:"Mark or unmark a habit for a day."`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit's streaks and calendar."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := storage.CreateHabit(ctx.Store, strings.TrimSpace(c.Name), ctx.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", habit.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}
	if len(snap.Habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Printf("Habits for %s:\n\n", snap.TodayKey())
	recorded := 0
	for _, hs := range snap.AllHabitStats() {
		status := "[ ]"
		if hs.CompletedToday {
			status = "[x]"
			recorded++
		}
		fmt.Printf("%s %-24s streak %3d  best %3d  %3.0f%% (%dd)\n",
			status, hs.Habit.Name, hs.CurrentStreak, hs.LongestStreak,
			hs.CompletionRate, constants.CompletionWindowDays)
	}

	fmt.Printf("\nRecorded: %d/%d\n", recorded, len(snap.Habits))
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Date string `help:"Date in YYYY-MM-DD format or 'yesterday' (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := storage.FindHabit(ctx.Store, c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	done, err := storage.ToggleHabitLog(ctx.Store, habit.ID, day)
	if err != nil {
		return err
	}

	if done {
		fmt.Printf("Marked habit %q for %s\n", habit.Name, day)
	} else {
		fmt.Printf("Unmarked habit %q for %s\n", habit.Name, day)
	}
	return nil
}

type HabitShowCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Days int    `help:"Number of days in the calendar." default:"30"`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}

	habit, err := storage.FindHabit(ctx.Store, c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}

	hs := snap.HabitStats(habit)
	fmt.Printf("%s\n\n", habit.Name)
	fmt.Printf("  Current streak:  %d days\n", hs.CurrentStreak)
	fmt.Printf("  Longest streak:  %d days\n", hs.LongestStreak)
	fmt.Printf("  Completion:      %.0f%% over the last %d days\n\n", hs.CompletionRate, constants.CompletionWindowDays)

	fmt.Print(renderCalendar(snap.HabitCalendar(habit.ID, c.Days)))
	return nil
}

// renderCalendar draws the trailing calendar as rows of seven day cells.
// Completed days show "x", today is bracketed.
func renderCalendar(days []stats.CalendarDay) string {
	var b strings.Builder
	for i, d := range days {
		mark := "."
		if d.Completed {
			mark = "x"
		}
		cell := fmt.Sprintf(" %2d%s ", d.DayOfMonth, mark)
		if d.IsToday {
			cell = fmt.Sprintf("[%2d%s]", d.DayOfMonth, mark)
		}
		b.WriteString(cell)
		if (i+1)%7 == 0 || i == len(days)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or ID to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := storage.FindHabit(ctx.Store, c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
