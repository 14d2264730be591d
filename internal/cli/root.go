package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/studylit/internal/backup"
	"github.com/julianstephens/studylit/internal/badges"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/utils"
)

// BadgeNotifier delivers badge unlocks outside the terminal.
type BadgeNotifier interface {
	NotifyBadge(models.Badge) error
}

type Context struct {
	Store    storage.Provider
	Notifier BadgeNotifier
	// Clock overrides time.Now, mostly for tests.
	Clock func() time.Time
}

// Settings returns the stored settings with defaults filled in.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// Now returns the current time in the configured timezone. An unusable
// timezone falls back to the system zone so reads never fail on it.
func (c *Context) Now() time.Time {
	now := time.Now()
	if c.Clock != nil {
		now = c.Clock()
	}
	settings, err := c.Settings()
	if err != nil {
		return now
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings, using local time", "timezone", settings.Timezone)
		return now
	}
	return now.In(loc)
}

// ResolveDay turns an optional --date flag into a day key. Empty means today.
func (c *Context) ResolveDay(date string) (string, error) {
	now := c.Now()
	if date == "" {
		return stats.FormatDate(now), nil
	}
	if date == "yesterday" {
		return stats.FormatDate(stats.AddDays(now, -1)), nil
	}
	day, err := stats.ParseDate(date, now.Location())
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}
	return stats.FormatDate(day), nil
}

// Snapshot loads the full application state as of now.
func (c *Context) Snapshot() (stats.Snapshot, error) {
	return storage.LoadSnapshot(c.Store, c.Now())
}

// AnnounceBadge prints a newly unlocked badge and forwards it to the
// notifier when notifications are enabled. Notification failures are logged.
func (c *Context) AnnounceBadge(b *models.Badge) {
	if b == nil {
		return
	}
	shown := *b
	shown.Icon = badges.Glyph(b.Icon)
	fmt.Printf("\n%s Badge unlocked: %s\n   %s\n", shown.Icon, shown.Title, shown.Description)
	c.NotifyBadge(shown)
}

// NotifyBadge forwards b to the notifier without printing anything.
func (c *Context) NotifyBadge(b models.Badge) {
	if c.Notifier == nil {
		return
	}
	settings, err := c.Settings()
	if err != nil || !settings.NotificationsEnabled {
		return
	}
	if err := c.Notifier.NotifyBadge(b); err != nil {
		logger.Warn("Badge notification failed", "badge", b.ID, "error", err)
	}
}

// IsLocalStore reports whether the store lives in a file on this machine.
func (c *Context) IsLocalStore() bool {
	info, err := os.Stat(c.Store.GetConfigPath())
	return err == nil && !info.IsDir()
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsLocalStore() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
