package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())
	logger.Info("Storage initialized", "path", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

// reset deletes a local store file so Init starts from scratch.
func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	// Don't delete if it's the source (user error protection)
	if c.Source != "" {
		if absSource, err := filepath.Abs(ExpandPath(c.Source)); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	_, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	// Close first to prevent file locking issues
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	fmt.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore, err := OpenStore(sourcePath)
	if err != nil {
		return err
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	return copyStore(sourceStore, ctx.Store)
}

// copyStore copies every collection from src into dst. Records dst already
// holds are skipped, so copying twice is harmless.
func copyStore(src, dst storage.Provider) error {
	fmt.Println("  Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating study sessions...")
	entries, err := src.GetAllStudyEntries()
	if err != nil {
		return fmt.Errorf("failed to get study sessions from source: %w", err)
	}
	copied := 0
	for _, entry := range entries {
		if err := dst.AddStudyEntry(entry); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				continue
			}
			return fmt.Errorf("failed to add study session %s: %w", entry.ID, err)
		}
		copied++
	}
	fmt.Printf("    Migrated %d study sessions\n", copied)

	fmt.Println("  Migrating habits...")
	habits, err := src.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	copied = 0
	for _, habit := range habits {
		if err := dst.AddHabit(habit); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				continue
			}
			return fmt.Errorf("failed to add habit %s: %w", habit.ID, err)
		}
		copied++
	}
	fmt.Printf("    Migrated %d habits\n", copied)

	fmt.Println("  Migrating habit logs...")
	logs, err := src.GetAllHabitLogs()
	if err != nil {
		return fmt.Errorf("failed to get habit logs from source: %w", err)
	}
	for _, log := range logs {
		if err := dst.SaveHabitLog(log); err != nil {
			return fmt.Errorf("failed to save habit log %s/%s: %w", log.HabitID, log.Date, err)
		}
	}
	fmt.Printf("    Migrated %d habit logs\n", len(logs))

	fmt.Println("  Migrating badges...")
	badges, err := src.GetBadges()
	if err != nil {
		return fmt.Errorf("failed to get badges from source: %w", err)
	}
	if err := dst.SaveBadges(badges); err != nil {
		return fmt.Errorf("failed to save badges to destination: %w", err)
	}
	fmt.Printf("    Migrated %d badges\n", len(badges))

	return nil
}
