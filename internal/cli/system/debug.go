package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpDay      *DebugDumpDayCmd      `cmd:"" help:"Dump a day's sessions and habit logs as JSON."`
	DumpEntry    *DebugDumpEntryCmd    `cmd:"" help:"Dump study session data as JSON."`
	DumpHabit    *DebugDumpHabitCmd    `cmd:"" help:"Dump habit data as JSON."`
	DumpBadges   *DebugDumpBadgesCmd   `cmd:"" help:"Dump badge data as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
	DumpSummary  *DebugDumpSummaryCmd  `cmd:"" help:"Dump the computed dashboard summary as JSON."`
}

func printJSON(v any, what string) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()}, "output")
}

type DebugDumpDayCmd struct {
	Date string `arg:"" help:"Day to dump (YYYY-MM-DD, 'today' or 'yesterday')."`
}

// DayDump is everything stored for one calendar day.
type DayDump struct {
	Date      string              `json:"date"`
	Entries   []models.StudyEntry `json:"entries"`
	HabitLogs []models.HabitLog   `json:"habit_logs"`
	Hours     float64             `json:"hours"`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	date := cmd.Date
	if date == "today" {
		date = ""
	}
	day, err := ctx.ResolveDay(date)
	if err != nil {
		return err
	}

	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}

	dump := DayDump{Date: day, Entries: []models.StudyEntry{}, HabitLogs: []models.HabitLog{}}
	for _, e := range snap.EntriesOn(day) {
		dump.Entries = append(dump.Entries, e)
		dump.Hours += e.Hours
	}
	for _, l := range snap.Logs {
		if l.Date == day {
			dump.HabitLogs = append(dump.HabitLogs, l)
		}
	}
	return printJSON(dump, "day")
}

type DebugDumpEntryCmd struct {
	ID string `arg:"" help:"ID of the study session to dump."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	entry, err := ctx.Store.GetStudyEntry(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("study session not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get study session: %w", err)
	}
	return printJSON(entry, "study session")
}

type DebugDumpHabitCmd struct {
	ID string `arg:"" help:"ID or name of the habit to dump."`
}

// HabitDump is a habit with its full log history.
type HabitDump struct {
	models.Habit
	Logs []models.HabitLog `json:"logs"`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	habit, err := storage.FindHabit(ctx.Store, cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("habit not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get habit: %w", err)
	}

	logs, err := ctx.Store.GetAllHabitLogs()
	if err != nil {
		return fmt.Errorf("failed to get habit logs: %w", err)
	}
	dump := HabitDump{Habit: habit, Logs: []models.HabitLog{}}
	for _, l := range logs {
		if l.HabitID == habit.ID {
			dump.Logs = append(dump.Logs, l)
		}
	}
	return printJSON(dump, "habit")
}

type DebugDumpBadgesCmd struct {
	Raw bool `help:"Show only the rows stored, without merging the catalog."`
}

func (cmd *DebugDumpBadgesCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if cmd.Raw {
		stored, err := ctx.Store.GetBadges()
		if err != nil {
			return fmt.Errorf("failed to get badges: %w", err)
		}
		if stored == nil {
			stored = []models.Badge{}
		}
		return printJSON(stored, "badges")
	}

	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}
	return printJSON(snap.Badges, "badges")
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings, "settings")
}

type DebugDumpSummaryCmd struct{}

func (cmd *DebugDumpSummaryCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}
	return printJSON(snap.Summary(), "summary")
}
