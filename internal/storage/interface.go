package storage

import (
	"errors"

	"github.com/julianstephens/studylit/internal/models"
)

var (
	// ErrNotFound is wrapped by every lookup that finds no record.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique name or id is reused.
	ErrAlreadyExists = errors.New("already exists")
)

// Provider is the capability set every backend offers. Engine code only ever
// sees full snapshots read through it, so sqlite, postgres and the JSON file
// are interchangeable.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Study entries are immutable once written; they are only added or deleted.
	AddStudyEntry(models.StudyEntry) error
	GetStudyEntry(id string) (models.StudyEntry, error)
	GetAllStudyEntries() ([]models.StudyEntry, error)
	DeleteStudyEntry(id string) error

	// Habits. DeleteHabit also removes every log of the habit.
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	DeleteHabit(id string) error

	// Habit logs, at most one per (habit, day). SaveHabitLog upserts.
	GetHabitLog(habitID, day string) (models.HabitLog, error)
	GetAllHabitLogs() ([]models.HabitLog, error)
	SaveHabitLog(models.HabitLog) error
	DeleteHabitLog(habitID, day string) error

	// Badges. SaveBadges never clears an unlock already stored.
	GetBadges() ([]models.Badge, error)
	SaveBadges([]models.Badge) error

	// Utils
	GetConfigPath() string
}
