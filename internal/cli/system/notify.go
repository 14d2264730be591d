package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/notifier"
	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/utils"
)

type textNotifier interface {
	Notify(text string) error
}

var newNotifier = func() textNotifier { return notifier.New() }

// NotifyCmd is meant to run from a scheduler (cron, launchd). It reminds the
// user when today's goal is still open late in the day.
type NotifyCmd struct {
	DryRun  bool   `help:"Print notifications to stdout instead of sending them."`
	After   string `help:"Do not remind before this time of day (HH:MM)." default:"18:00"`
	Message string `help:"Send this text instead of the computed reminder."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	msg := c.Message
	if msg == "" {
		after, err := time.Parse(constants.TimeFormat, c.After)
		if err != nil {
			return fmt.Errorf("invalid --after time %q (expected HH:MM): %w", c.After, err)
		}
		now := ctx.Now()
		if now.Hour()*60+now.Minute() < after.Hour()*60+after.Minute() {
			if c.DryRun {
				fmt.Printf("Too early for a reminder (before %s).\n", c.After)
			}
			return nil
		}

		snap, err := ctx.Snapshot()
		if err != nil {
			return err
		}
		var ok bool
		if msg, ok = reminderMessage(snap); !ok {
			if c.DryRun {
				fmt.Println("Daily goal already met, nothing to send.")
			}
			return nil
		}
	}

	if c.DryRun {
		fmt.Println("[DryRun] " + msg)
		return nil
	}
	if err := newNotifier().Notify(msg); err != nil {
		logger.Warn("Failed to send reminder", "error", err)
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// reminderMessage builds the evening reminder. It reports false once the
// daily goal is met.
func reminderMessage(snap stats.Snapshot) (string, bool) {
	goal := snap.Settings.DailyGoalHours
	today := snap.TodayHours()
	if goal <= 0 || today >= goal {
		return "", false
	}

	left := utils.FormatHours(goal - today)
	var msg string
	switch streak := snap.CurrentStreak(); {
	case streak > 0:
		msg = fmt.Sprintf("🔥 %d-day streak at risk: %s left to reach today's %s goal", streak, left, utils.FormatHours(goal))
	case today > 0:
		msg = fmt.Sprintf("📚 %s more to hit today's %s goal", left, utils.FormatHours(goal))
	default:
		msg = fmt.Sprintf("📚 Nothing logged yet today. Goal: %s", utils.FormatHours(goal))
	}

	var open []string
	for _, hs := range snap.AllHabitStats() {
		if !hs.CompletedToday {
			open = append(open, hs.Habit.Name)
		}
	}
	if len(open) > 0 {
		msg += fmt.Sprintf(" · habits left: %s", strings.Join(open, ", "))
	}
	return msg, true
}
