package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/utils"
	"github.com/julianstephens/studylit/internal/validation"
)

// NewSessionForm creates the form for logging a study session.
func NewSessionForm(fm *SessionFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Value(&fm.Subject).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("subject cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Hours").
				Description("1.5 or 1h30m").
				Value(&fm.Hours).
				Validate(func(s string) error {
					hours, err := utils.ParseHours(s)
					if err != nil {
						return err
					}
					return validation.ValidateHours(hours)
				}),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, blank for today").
				Value(&fm.Date).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" || s == "yesterday" {
						return nil
					}
					return validation.ValidateDate(s)
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewHabitForm creates a new form for adding habits
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					return validation.ValidateHabitName(strings.TrimSpace(s))
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// defaultSubject prefills the session form with the most studied subject.
func defaultSubject(snap stats.Snapshot) string {
	if totals := snap.SubjectTotals(); len(totals) > 0 {
		return totals[0].Subject
	}
	return ""
}
