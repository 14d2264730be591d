package validation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
)

// MaxHabitNameLen bounds habit names so they fit the habits tab.
const MaxHabitNameLen = 64

// ErrInvalid is wrapped by every input validation failure.
var ErrInvalid = errors.New("invalid input")

// Conflict represents an inconsistency found in stored data
type Conflict struct {
	Type        constants.ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Subjects or habit names involved
	IDs         []string // Record IDs involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// ValidateDate checks that day is a real YYYY-MM-DD calendar date.
func ValidateDate(day string) error {
	if _, err := time.Parse(constants.DateFormat, day); err != nil {
		return invalid("date %q must be YYYY-MM-DD", day)
	}
	return nil
}

// ValidateHours checks a single session length.
func ValidateHours(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return invalid("hours must be greater than 0")
	}
	if hours > constants.MaxHoursPerDay {
		return invalid("hours must be at most %g", constants.MaxHoursPerDay)
	}
	return nil
}

// ValidateEntry checks a study entry before it is stored.
func ValidateEntry(e models.StudyEntry) error {
	if err := ValidateDate(e.Date); err != nil {
		return err
	}
	if strings.TrimSpace(e.Subject) == "" {
		return invalid("subject cannot be empty")
	}
	return ValidateHours(e.Hours)
}

// ValidateHabitName checks a habit name before it is stored.
func ValidateHabitName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invalid("habit name cannot be empty")
	}
	if trimmed != name {
		return invalid("habit name cannot start or end with spaces")
	}
	if len([]rune(name)) > MaxHabitNameLen {
		return invalid("habit name must be at most %d characters", MaxHabitNameLen)
	}
	return nil
}

// ValidateSettings checks user settings before they are saved.
func ValidateSettings(s models.Settings) error {
	if s.DailyGoalHours <= 0 || s.DailyGoalHours > constants.MaxHoursPerDay {
		return invalid("daily goal must be between 0 and %g hours", constants.MaxHoursPerDay)
	}
	if s.WeeklyGoalHours <= 0 || s.WeeklyGoalHours > 7*constants.MaxHoursPerDay {
		return invalid("weekly goal must be between 0 and %g hours", 7*constants.MaxHoursPerDay)
	}
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return invalid("unknown timezone %q", s.Timezone)
		}
	}
	return nil
}

// Validator checks stored data for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateEntries reports malformed entries and days logging more than 24 hours.
func (v *Validator) ValidateEntries(entries []models.StudyEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	daily := make(map[string]float64)
	dayIDs := make(map[string][]string)
	for _, e := range entries {
		if err := ValidateDate(e.Date); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidDate,
				Description: fmt.Sprintf("Entry %s has invalid date %q", e.ID, e.Date),
				Items:       []string{e.Subject},
				IDs:         []string{e.ID},
			})
			continue
		}
		if e.Hours <= 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictNonPositiveHours,
				Description: fmt.Sprintf("Entry %s on %s has %g hours", e.ID, e.Date, e.Hours),
				Date:        e.Date,
				IDs:         []string{e.ID},
			})
		}
		if strings.TrimSpace(e.Subject) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictEmptySubject,
				Description: fmt.Sprintf("Entry %s on %s has no subject", e.ID, e.Date),
				Date:        e.Date,
				IDs:         []string{e.ID},
			})
		}
		daily[e.Date] += e.Hours
		dayIDs[e.Date] = append(dayIDs[e.Date], e.ID)
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		if daily[day] > constants.MaxHoursPerDay {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDayOverbooked,
				Description: fmt.Sprintf("%s logs %.1f hours, more than a day holds", day, daily[day]),
				Date:        day,
				IDs:         dayIDs[day],
			})
		}
	}

	return result
}

// ValidateHabits reports duplicate names, logs for unknown habits, and more
// than one log for the same habit and day.
func (v *Validator) ValidateHabits(habits []models.Habit, logs []models.HabitLog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]string, len(habits))
	byName := make(map[string][]string)
	var names []string
	for _, h := range habits {
		known[h.ID] = h.Name
		if _, seen := byName[h.Name]; !seen {
			names = append(names, h.Name)
		}
		byName[h.Name] = append(byName[h.Name], h.ID)
	}
	for _, name := range names {
		if ids := byName[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}

	seen := make(map[string]int)
	for _, l := range logs {
		name, ok := known[l.HabitID]
		if !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictOrphanHabitLog,
				Description: fmt.Sprintf("Log on %s references unknown habit %s", l.Date, l.HabitID),
				Date:        l.Date,
				IDs:         []string{l.HabitID},
			})
			continue
		}
		key := l.HabitID + "|" + l.Date
		seen[key]++
		if seen[key] == 2 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateHabitLog,
				Description: fmt.Sprintf("Habit \"%s\" has more than one log on %s", name, l.Date),
				Date:        l.Date,
				Items:       []string{name},
				IDs:         []string{l.HabitID},
			})
		}
	}

	return result
}

// ValidateSnapshot runs every data check.
func (v *Validator) ValidateSnapshot(entries []models.StudyEntry, habits []models.Habit, logs []models.HabitLog) ValidationResult {
	result := v.ValidateEntries(entries)
	result.Conflicts = append(result.Conflicts, v.ValidateHabits(habits, logs).Conflicts...)
	return result
}
