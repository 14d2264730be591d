package stats

import (
	"sort"
	"time"

	"github.com/julianstephens/studylit/internal/models"
)

// DailyHours sums study hours per day key.
func DailyHours(entries []models.StudyEntry) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range entries {
		totals[e.Date] += e.Hours
	}
	return totals
}

func goalDays(entries []models.StudyEntry, goalHours float64) map[string]bool {
	days := make(map[string]bool)
	for day, hours := range DailyHours(entries) {
		if hours >= goalHours {
			days[day] = true
		}
	}
	return days
}

// completedDays uses existence semantics: any completed log for the day counts,
// however many logs exist for it.
func completedDays(logs []models.HabitLog, habitID string) map[string]bool {
	days := make(map[string]bool)
	for _, l := range logs {
		if l.HabitID == habitID && l.Completed {
			days[l.Date] = true
		}
	}
	return days
}

// currentRun walks backward from today counting qualifying days.
// An unqualified today is skipped rather than ending the run.
func currentRun(qualifying map[string]bool, today time.Time) int {
	if len(qualifying) == 0 {
		return 0
	}

	todayKey := FormatDate(today)
	day := calendarDay(today)
	streak := 0
	for {
		key := FormatDate(day)
		if qualifying[key] {
			streak++
		} else if key != todayKey {
			break
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// longestRun returns the longest chain of day keys exactly one day apart.
func longestRun(qualifying map[string]bool) int {
	if len(qualifying) == 0 {
		return 0
	}

	days := make([]string, 0, len(qualifying))
	for day := range qualifying {
		days = append(days, day)
	}
	sort.Strings(days)

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if gap, ok := daysBetween(days[i-1], days[i]); ok && gap == 1 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

// CurrentStudyStreak counts consecutive days, ending today or yesterday,
// whose summed hours reach goalHours.
func CurrentStudyStreak(entries []models.StudyEntry, goalHours float64, today time.Time) int {
	return currentRun(goalDays(entries, goalHours), today)
}

// LongestStudyStreak returns the longest run of consecutive goal-meeting days ever logged.
func LongestStudyStreak(entries []models.StudyEntry, goalHours float64) int {
	return longestRun(goalDays(entries, goalHours))
}

// CurrentHabitStreak counts consecutive completed days of a habit ending today or yesterday.
func CurrentHabitStreak(logs []models.HabitLog, habitID string, today time.Time) int {
	return currentRun(completedDays(logs, habitID), today)
}

// LongestHabitStreak returns the longest run of consecutive completed days of a habit.
func LongestHabitStreak(logs []models.HabitLog, habitID string) int {
	return longestRun(completedDays(logs, habitID))
}
