package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	AppName            = "studylit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/studylit/studylit.db"
	ConnectionEnvVar   = "STUDYLIT_DB_CONNECTION"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studylit-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "studylit-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.studylit"

	// Analytics constants
	CompletionWindowDays = 30
	HabitCalendarDays    = 30
	MaxHoursPerDay       = 24.0

	// Conflict Types
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictNonPositiveHours   ConflictType = "non_positive_hours"
	ConflictEmptySubject       ConflictType = "empty_subject"
	ConflictDayOverbooked      ConflictType = "day_overbooked"
	ConflictDuplicateHabitLog  ConflictType = "duplicate_habit_log"
	ConflictOrphanHabitLog     ConflictType = "orphan_habit_log"
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
)

// Session States. The first five are the tabs, in display order.
const (
	StateDashboard SessionState = iota
	StateWeekly
	StateRankings
	StateHabits
	StateBadges
	StateLogSession
	StateAddHabit
	StateConfirmDelete
)
