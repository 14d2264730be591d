package optimizer

import (
	"fmt"
	"math"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/storage"
)

// SuggestionType represents the kind of change suggested
type SuggestionType string

const (
	SuggestionRaiseDailyGoal  SuggestionType = "raise_daily_goal"
	SuggestionLowerDailyGoal  SuggestionType = "lower_daily_goal"
	SuggestionRaiseWeeklyGoal SuggestionType = "raise_weekly_goal"
	SuggestionLowerWeeklyGoal SuggestionType = "lower_weekly_goal"
	SuggestionFocusSubject    SuggestionType = "focus_subject"
	SuggestionRemoveHabit     SuggestionType = "remove_habit"
)

const (
	// WindowDays is the trailing window analyzed, ending yesterday.
	WindowDays = constants.CompletionWindowDays
	// ReviewWeeks is how many complete weeks the weekly goal is judged on.
	ReviewWeeks = 4

	minActiveDays   = 7
	raiseHitRate    = 0.8
	lowerHitRate    = 0.2
	habitMinAgeDays = 14
	habitMinRate    = 25.0
	minGoalHours    = 0.5
)

// Suggestion is one proposed change. Target names the habit id or subject
// the suggestion is about; goal suggestions leave it empty.
type Suggestion struct {
	Type      SuggestionType `json:"type"`
	Target    string         `json:"target,omitempty"`
	Label     string         `json:"label"`
	Reason    string         `json:"reason"`
	Current   float64        `json:"current,omitempty"`
	Suggested float64        `json:"suggested,omitempty"`
}

// Actionable reports whether Apply changes anything for the suggestion.
func (s Suggestion) Actionable() bool {
	return s.Type != SuggestionFocusSubject
}

// GoalAnalyzer looks at recent study history and suggests goal and habit changes.
type GoalAnalyzer struct {
	snap stats.Snapshot
}

func NewGoalAnalyzer(snap stats.Snapshot) *GoalAnalyzer {
	return &GoalAnalyzer{snap: snap}
}

// Analyze returns every suggestion for the snapshot, goals first.
func (ga *GoalAnalyzer) Analyze() []Suggestion {
	var out []Suggestion
	if s, ok := ga.analyzeDailyGoal(); ok {
		out = append(out, s)
	}
	if s, ok := ga.analyzeWeeklyGoal(); ok {
		out = append(out, s)
	}
	if s, ok := ga.analyzeSubjects(); ok {
		out = append(out, s)
	}
	out = append(out, ga.analyzeHabits()...)
	return out
}

func (ga *GoalAnalyzer) window() []string {
	return stats.TrailingDates(stats.AddDays(ga.snap.Today, -1), WindowDays)
}

func (ga *GoalAnalyzer) analyzeDailyGoal() (Suggestion, bool) {
	goal := ga.snap.Settings.DailyGoalHours
	if goal <= 0 {
		return Suggestion{}, false
	}

	daily := stats.DailyHours(ga.snap.Entries)
	active, hits := 0, 0
	total := 0.0
	for _, day := range ga.window() {
		h := daily[day]
		if h > 0 {
			active++
			total += h
		}
		if h >= goal {
			hits++
		}
	}
	if active < minActiveDays {
		return Suggestion{}, false
	}

	rate := float64(hits) / float64(WindowDays)
	switch {
	case rate >= raiseHitRate:
		return Suggestion{
			Type:      SuggestionRaiseDailyGoal,
			Label:     "Daily goal",
			Reason:    fmt.Sprintf("goal met on %d of the last %d days", hits, WindowDays),
			Current:   goal,
			Suggested: raised(goal, 1.25),
		}, true
	case rate <= lowerHitRate:
		suggested := math.Max(roundHalf(total/float64(active)), minGoalHours)
		if suggested >= goal {
			return Suggestion{}, false
		}
		return Suggestion{
			Type:      SuggestionLowerDailyGoal,
			Label:     "Daily goal",
			Reason:    fmt.Sprintf("goal met on only %d of the last %d days", hits, WindowDays),
			Current:   goal,
			Suggested: suggested,
		}, true
	}
	return Suggestion{}, false
}

func (ga *GoalAnalyzer) analyzeWeeklyGoal() (Suggestion, bool) {
	goal := ga.snap.Settings.WeeklyGoalHours
	if goal <= 0 {
		return Suggestion{}, false
	}

	met, low := 0, 0
	total := 0.0
	for k := 1; k <= ReviewWeeks; k++ {
		hours := stats.PeriodHours(ga.snap.Entries, stats.WeekDates(stats.AddDays(ga.snap.Today, -7*k)))
		total += hours
		if hours >= goal {
			met++
		}
		if hours < goal/2 {
			low++
		}
	}
	if total == 0 {
		return Suggestion{}, false
	}

	switch {
	case met == ReviewWeeks:
		return Suggestion{
			Type:      SuggestionRaiseWeeklyGoal,
			Label:     "Weekly goal",
			Reason:    fmt.Sprintf("goal met in each of the last %d weeks", ReviewWeeks),
			Current:   goal,
			Suggested: raised(goal, 1.2),
		}, true
	case low == ReviewWeeks:
		suggested := math.Max(roundHalf(total/ReviewWeeks), minGoalHours)
		if suggested >= goal {
			return Suggestion{}, false
		}
		return Suggestion{
			Type:      SuggestionLowerWeeklyGoal,
			Label:     "Weekly goal",
			Reason:    fmt.Sprintf("under half the goal in each of the last %d weeks", ReviewWeeks),
			Current:   goal,
			Suggested: suggested,
		}, true
	}
	return Suggestion{}, false
}

// analyzeSubjects flags the least studied subject of the window.
func (ga *GoalAnalyzer) analyzeSubjects() (Suggestion, bool) {
	inWindow := make(map[string]bool, WindowDays)
	for _, day := range ga.window() {
		inWindow[day] = true
	}
	var recent []models.StudyEntry
	for _, e := range ga.snap.Entries {
		if inWindow[e.Date] {
			recent = append(recent, e)
		}
	}

	totals := stats.SubjectTotals(recent)
	if len(totals) < 2 {
		return Suggestion{}, false
	}
	last := totals[len(totals)-1]
	return Suggestion{
		Type:    SuggestionFocusSubject,
		Target:  last.Subject,
		Label:   last.Subject,
		Reason:  fmt.Sprintf("needs focus: %.0f%% of study time over the last %d days", last.Percentage, WindowDays),
		Current: last.Hours,
	}, true
}

func (ga *GoalAnalyzer) analyzeHabits() []Suggestion {
	var out []Suggestion
	cutoff := stats.FormatDate(stats.AddDays(ga.snap.Today, -habitMinAgeDays))
	yesterday := stats.AddDays(ga.snap.Today, -1)
	for _, h := range ga.snap.Habits {
		if stats.FormatDate(h.CreatedAt.In(ga.snap.Today.Location())) > cutoff {
			continue
		}
		rate := stats.HabitCompletionRate(ga.snap.Logs, h.ID, yesterday, WindowDays)
		if rate >= habitMinRate {
			continue
		}
		out = append(out, Suggestion{
			Type:    SuggestionRemoveHabit,
			Target:  h.ID,
			Label:   h.Name,
			Reason:  fmt.Sprintf("completed on %.0f%% of the last %d days", rate, WindowDays),
			Current: rate,
		})
	}
	return out
}

// Apply writes an actionable suggestion to the store.
func Apply(p storage.Provider, s Suggestion) error {
	switch s.Type {
	case SuggestionRaiseDailyGoal, SuggestionLowerDailyGoal, SuggestionRaiseWeeklyGoal, SuggestionLowerWeeklyGoal:
		settings, err := p.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if s.Type == SuggestionRaiseDailyGoal || s.Type == SuggestionLowerDailyGoal {
			settings.DailyGoalHours = s.Suggested
		} else {
			settings.WeeklyGoalHours = s.Suggested
		}
		if err := p.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		return nil
	case SuggestionRemoveHabit:
		if err := p.DeleteHabit(s.Target); err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}
		return nil
	case SuggestionFocusSubject:
		return nil
	default:
		return fmt.Errorf("unknown suggestion type %q", s.Type)
	}
}

func roundHalf(h float64) float64 {
	return math.Round(h*2) / 2
}

// raised scales goal up, rounded to half hours, by at least half an hour.
func raised(goal, factor float64) float64 {
	return math.Max(roundHalf(goal*factor), goal+minGoalHours)
}
