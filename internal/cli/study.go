package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/utils"
)

type LogCmd struct {
	Subject string `arg:"" help:"Subject studied."`
	Hours   string `arg:"" help:"Time studied, as hours (1.5) or a duration (1h30m)."`
	Date    string `help:"Date in YYYY-MM-DD format or 'yesterday' (default: today)." default:""`
}

func (c *LogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	hours, err := utils.ParseHours(c.Hours)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	entry, unlocked, err := storage.RecordStudySession(ctx.Store, models.StudyEntry{
		Date:    day,
		Subject: strings.TrimSpace(c.Subject),
		Hours:   hours,
	}, ctx.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Logged %s of %s on %s\n", utils.FormatHours(entry.Hours), entry.Subject, entry.Date)

	snap, err := ctx.Snapshot()
	if err == nil {
		fmt.Printf("Today: %s / %s goal · streak %d days\n",
			utils.FormatHours(snap.TodayHours()),
			utils.FormatHours(snap.Settings.DailyGoalHours),
			snap.CurrentStreak())
	}

	ctx.AnnounceBadge(unlocked)
	return nil
}

type EntryCmd struct {
	List   EntryListCmd   `cmd:"" help:"List study sessions." default:"1"`
	Delete EntryDeleteCmd `cmd:"" help:"Delete a study session."`
}

type EntryListCmd struct {
	Date string `help:"Only show sessions on this date (YYYY-MM-DD)." default:""`
	All  bool   `help:"Show every session ever logged."`
}

func (c *EntryListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries, err := ctx.Store.GetAllStudyEntries()
	if err != nil {
		return err
	}

	if !c.All {
		day, err := ctx.ResolveDay(c.Date)
		if err != nil {
			return err
		}
		filtered := entries[:0]
		for _, e := range entries {
			if e.Date == day {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
		fmt.Printf("Study sessions for %s:\n\n", day)
	}

	if len(entries) == 0 {
		fmt.Println("No study sessions found.")
		return nil
	}

	var total float64
	for _, e := range entries {
		total += e.Hours
		fmt.Printf("%s  %-10s %6s  %s\n", shortID(e.ID), e.Date, utils.FormatHours(e.Hours), e.Subject)
	}
	fmt.Printf("\nTotal: %s across %d sessions\n", utils.FormatHours(total), len(entries))
	return nil
}

type EntryDeleteCmd struct {
	ID string `arg:"" help:"Session ID, or a unique prefix of it."`
}

func (c *EntryDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entry, err := findEntry(ctx.Store, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteStudyEntry(entry.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted %s of %s on %s\n", utils.FormatHours(entry.Hours), entry.Subject, entry.Date)
	fmt.Println("Badges already earned stay unlocked.")
	return nil
}

// findEntry resolves a full id or an unambiguous id prefix.
func findEntry(p storage.Provider, id string) (models.StudyEntry, error) {
	entry, err := p.GetStudyEntry(id)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.StudyEntry{}, err
	}

	entries, err := p.GetAllStudyEntries()
	if err != nil {
		return models.StudyEntry{}, err
	}
	var matches []models.StudyEntry
	for _, e := range entries {
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return models.StudyEntry{}, fmt.Errorf("study session %q: %w", id, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.StudyEntry{}, fmt.Errorf("session id %q is ambiguous (%d matches)", id, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
