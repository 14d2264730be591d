package stats

import (
	"time"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
)

// Snapshot is the full application state read from the store at one moment.
// Every method is a pure query over the snapshot; nothing is cached, so
// callers build a new Snapshot whenever the underlying data changes.
type Snapshot struct {
	Entries  []models.StudyEntry
	Habits   []models.Habit
	Logs     []models.HabitLog
	Settings models.Settings
	Badges   []models.Badge
	Today    time.Time
}

// Summary is the dashboard view of a snapshot.
type Summary struct {
	Today              string         `json:"today" yaml:"today"`
	TodayHours         float64        `json:"today_hours" yaml:"today_hours"`
	WeeklyHours        float64        `json:"weekly_hours" yaml:"weekly_hours"`
	MonthlyHours       float64        `json:"monthly_hours" yaml:"monthly_hours"`
	CurrentStreak      int            `json:"current_streak" yaml:"current_streak"`
	LongestStreak      int            `json:"longest_streak" yaml:"longest_streak"`
	DailyGoalProgress  float64        `json:"daily_goal_progress" yaml:"daily_goal_progress"`
	WeeklyGoalProgress float64        `json:"weekly_goal_progress" yaml:"weekly_goal_progress"`
	ThisWeek           []DayBar       `json:"this_week" yaml:"this_week"`
	LastWeek           []DayBar       `json:"last_week" yaml:"last_week"`
	Subjects           []SubjectTotal `json:"subjects" yaml:"subjects"`
	UnlockedBadgeCount int            `json:"unlocked_badges" yaml:"unlocked_badges"`
	Quote              string         `json:"quote" yaml:"quote"`
}

// HabitStats is the per-habit view shown on the habits tab.
type HabitStats struct {
	Habit          models.Habit `json:"habit" yaml:"habit"`
	CompletedToday bool         `json:"completed_today" yaml:"completed_today"`
	CurrentStreak  int          `json:"current_streak" yaml:"current_streak"`
	LongestStreak  int          `json:"longest_streak" yaml:"longest_streak"`
	CompletionRate float64      `json:"completion_rate" yaml:"completion_rate"`
}

func (s Snapshot) TodayKey() string {
	return FormatDate(s.Today)
}

func (s Snapshot) TodayHours() float64 {
	return TodayHours(s.Entries, s.Today)
}

func (s Snapshot) WeeklyHours() float64 {
	return WeeklyHours(s.Entries, s.Today)
}

func (s Snapshot) MonthlyHours() float64 {
	return MonthlyHours(s.Entries, s.Today)
}

func (s Snapshot) CurrentStreak() int {
	return CurrentStudyStreak(s.Entries, s.Settings.DailyGoalHours, s.Today)
}

func (s Snapshot) LongestStreak() int {
	return LongestStudyStreak(s.Entries, s.Settings.DailyGoalHours)
}

func (s Snapshot) SubjectTotals() []SubjectTotal {
	return SubjectTotals(s.Entries)
}

func (s Snapshot) ThisWeekBars() []DayBar {
	return WeeklyBars(s.Entries, s.Today)
}

func (s Snapshot) LastWeekBars() []DayBar {
	return LastWeekBars(s.Entries, s.Today)
}

// EntriesOn returns the entries logged on day, in store order.
func (s Snapshot) EntriesOn(day string) []models.StudyEntry {
	var out []models.StudyEntry
	for _, e := range s.Entries {
		if e.Date == day {
			out = append(out, e)
		}
	}
	return out
}

// HabitStats computes streaks and completion for a single habit.
func (s Snapshot) HabitStats(h models.Habit) HabitStats {
	return HabitStats{
		Habit:          h,
		CompletedToday: completedDays(s.Logs, h.ID)[s.TodayKey()],
		CurrentStreak:  CurrentHabitStreak(s.Logs, h.ID, s.Today),
		LongestStreak:  LongestHabitStreak(s.Logs, h.ID),
		CompletionRate: HabitCompletionRate(s.Logs, h.ID, s.Today, constants.CompletionWindowDays),
	}
}

// AllHabitStats returns HabitStats for every habit, in habit order.
func (s Snapshot) AllHabitStats() []HabitStats {
	out := make([]HabitStats, 0, len(s.Habits))
	for _, h := range s.Habits {
		out = append(out, s.HabitStats(h))
	}
	return out
}

func (s Snapshot) HabitCalendar(habitID string, days int) []CalendarDay {
	return HabitCalendar(s.Logs, habitID, s.Today, days)
}

// Summary gathers everything the dashboard renders.
func (s Snapshot) Summary() Summary {
	weekly := s.WeeklyHours()
	today := s.TodayHours()

	unlocked := 0
	for _, b := range s.Badges {
		if b.Unlocked() {
			unlocked++
		}
	}

	return Summary{
		Today:              s.TodayKey(),
		TodayHours:         today,
		WeeklyHours:        weekly,
		MonthlyHours:       s.MonthlyHours(),
		CurrentStreak:      s.CurrentStreak(),
		LongestStreak:      s.LongestStreak(),
		DailyGoalProgress:  GoalProgress(today, s.Settings.DailyGoalHours),
		WeeklyGoalProgress: GoalProgress(weekly, s.Settings.WeeklyGoalHours),
		ThisWeek:           s.ThisWeekBars(),
		LastWeek:           s.LastWeekBars(),
		Subjects:           s.SubjectTotals(),
		UnlockedBadgeCount: unlocked,
		Quote:              QuoteOfTheDay(s.Today),
	}
}
