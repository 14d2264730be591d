package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/studylit/internal/badges"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/validation"
)

// ToggleHabitLog flips a habit's completion for day. A completed log is
// removed outright; an absent or incomplete one becomes completed. The
// returned bool is the completion state after the toggle.
func ToggleHabitLog(p Provider, habitID, day string) (bool, error) {
	if _, err := p.GetHabit(habitID); err != nil {
		return false, err
	}

	existing, err := p.GetHabitLog(habitID, day)
	switch {
	case err == nil && existing.Completed:
		if err := p.DeleteHabitLog(habitID, day); err != nil {
			return false, fmt.Errorf("failed to clear habit log: %w", err)
		}
		logger.Debug("Habit log cleared", "habit", habitID, "day", day)
		return false, nil
	case err == nil || errors.Is(err, ErrNotFound):
		if err := p.SaveHabitLog(models.HabitLog{HabitID: habitID, Date: day, Completed: true}); err != nil {
			return false, fmt.Errorf("failed to save habit log: %w", err)
		}
		logger.Debug("Habit log completed", "habit", habitID, "day", day)
		return true, nil
	default:
		return false, err
	}
}

// LoadSnapshot reads every collection into a stats.Snapshot for today.
// Badges come back as the full catalog with stored unlocks applied.
func LoadSnapshot(p Provider, today time.Time) (stats.Snapshot, error) {
	settings, err := p.GetSettings()
	if err != nil {
		return stats.Snapshot{}, fmt.Errorf("failed to load settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	entries, err := p.GetAllStudyEntries()
	if err != nil {
		return stats.Snapshot{}, fmt.Errorf("failed to load study entries: %w", err)
	}
	habits, err := p.GetAllHabits()
	if err != nil {
		return stats.Snapshot{}, fmt.Errorf("failed to load habits: %w", err)
	}
	logs, err := p.GetAllHabitLogs()
	if err != nil {
		return stats.Snapshot{}, fmt.Errorf("failed to load habit logs: %w", err)
	}
	stored, err := p.GetBadges()
	if err != nil {
		return stats.Snapshot{}, fmt.Errorf("failed to load badges: %w", err)
	}

	return stats.Snapshot{
		Entries:  entries,
		Habits:   habits,
		Logs:     logs,
		Settings: settings,
		Badges:   badges.Merge(stored),
		Today:    today,
	}, nil
}

// RecordStudySession validates and stores entry, then runs the badge
// evaluator over the updated entries. It returns the badge unlocked by this
// session, or nil. Missing ids and creation times are filled in.
func RecordStudySession(p Provider, entry models.StudyEntry, now time.Time) (models.StudyEntry, *models.Badge, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if err := validation.ValidateEntry(entry); err != nil {
		return entry, nil, err
	}

	if err := p.AddStudyEntry(entry); err != nil {
		return entry, nil, fmt.Errorf("failed to save study entry: %w", err)
	}
	logger.Info("Study session recorded", "id", entry.ID, "subject", entry.Subject, "hours", entry.Hours, "date", entry.Date)

	unlocked, err := EvaluateBadges(p, now)
	if err != nil {
		return entry, nil, err
	}
	return entry, unlocked, nil
}

// EvaluateBadges runs one badge evaluation against stored data and persists
// the result when a badge unlocks.
func EvaluateBadges(p Provider, now time.Time) (*models.Badge, error) {
	entries, err := p.GetAllStudyEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to load study entries: %w", err)
	}
	settings, err := p.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	stored, err := p.GetBadges()
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}

	updated, unlocked := badges.Evaluate(entries, stored, settings.DailyGoalHours, now)
	if unlocked == nil {
		return nil, nil
	}
	if err := p.SaveBadges(updated); err != nil {
		return nil, fmt.Errorf("failed to save badges: %w", err)
	}
	logger.Info("Badge unlocked", "badge", unlocked.ID)
	return unlocked, nil
}

// CreateHabit validates name and stores a new habit.
func CreateHabit(p Provider, name string, now time.Time) (models.Habit, error) {
	if err := validation.ValidateHabitName(name); err != nil {
		return models.Habit{}, err
	}
	if _, err := p.GetHabitByName(name); err == nil {
		return models.Habit{}, fmt.Errorf("habit %q: %w", name, ErrAlreadyExists)
	} else if !errors.Is(err, ErrNotFound) {
		return models.Habit{}, err
	}

	h := models.Habit{ID: uuid.New().String(), Name: name, CreatedAt: now}
	if err := p.AddHabit(h); err != nil {
		return models.Habit{}, fmt.Errorf("failed to save habit: %w", err)
	}
	logger.Info("Habit created", "id", h.ID, "name", h.Name)
	return h, nil
}

// FindHabit resolves a habit by exact name first, then by id.
func FindHabit(p Provider, nameOrID string) (models.Habit, error) {
	h, err := p.GetHabitByName(nameOrID)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Habit{}, err
	}
	return p.GetHabit(nameOrID)
}
