package stats

import (
	"sort"
	"time"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
)

// SubjectTotal is one row of the subject ranking.
type SubjectTotal struct {
	Subject    string  `json:"subject" yaml:"subject"`
	Hours      float64 `json:"hours" yaml:"hours"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// DayBar is one bar of the Monday-Sunday weekly chart.
type DayBar struct {
	Label string  `json:"label" yaml:"label"`
	Date  string  `json:"date" yaml:"date"`
	Hours float64 `json:"hours" yaml:"hours"`
}

// CalendarDay is one cell of a habit's trailing calendar grid.
type CalendarDay struct {
	Date       string `json:"date" yaml:"date"`
	DayOfMonth int    `json:"day_of_month" yaml:"day_of_month"`
	Completed  bool   `json:"completed" yaml:"completed"`
	IsToday    bool   `json:"is_today" yaml:"is_today"`
}

// PeriodHours sums the hours of entries whose date is one of days.
func PeriodHours(entries []models.StudyEntry, days []string) float64 {
	if len(days) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}

	total := 0.0
	for _, e := range entries {
		if _, ok := set[e.Date]; ok {
			total += e.Hours
		}
	}
	return total
}

// TodayHours sums the hours logged on today's date.
func TodayHours(entries []models.StudyEntry, today time.Time) float64 {
	return PeriodHours(entries, []string{FormatDate(today)})
}

// WeeklyHours sums the hours of the Monday-Sunday week containing today.
func WeeklyHours(entries []models.StudyEntry, today time.Time) float64 {
	return PeriodHours(entries, WeekDates(today))
}

// MonthlyHours sums the hours of the calendar month containing today.
func MonthlyHours(entries []models.StudyEntry, today time.Time) float64 {
	return PeriodHours(entries, MonthDates(today))
}

// SubjectTotals groups hours per subject and ranks subjects by hours, descending.
// Subjects with equal hours keep the order in which they first appear in entries.
func SubjectTotals(entries []models.StudyEntry) []SubjectTotal {
	if len(entries) == 0 {
		return []SubjectTotal{}
	}

	index := make(map[string]int)
	var totals []SubjectTotal
	grand := 0.0
	for _, e := range entries {
		i, ok := index[e.Subject]
		if !ok {
			i = len(totals)
			index[e.Subject] = i
			totals = append(totals, SubjectTotal{Subject: e.Subject})
		}
		totals[i].Hours += e.Hours
		grand += e.Hours
	}

	for i := range totals {
		if grand > 0 {
			totals[i].Percentage = totals[i].Hours / grand * 100
		}
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Hours > totals[j].Hours
	})
	return totals
}

// HabitCompletionRate returns the percentage of the trailing windowDays
// (today included) on which the habit was completed.
func HabitCompletionRate(logs []models.HabitLog, habitID string, today time.Time, windowDays int) float64 {
	if windowDays <= 0 {
		return 0
	}
	done := completedDays(logs, habitID)
	count := 0
	for _, day := range TrailingDates(today, windowDays) {
		if done[day] {
			count++
		}
	}
	return float64(count) / float64(windowDays) * 100
}

// WeeklyBars returns per-day hours for the Monday-Sunday week containing reference.
func WeeklyBars(entries []models.StudyEntry, reference time.Time) []DayBar {
	daily := DailyHours(entries)
	week := WeekDates(reference)

	bars := make([]DayBar, 0, len(week))
	for i, day := range week {
		bars = append(bars, DayBar{
			Label: weekdayLabels[i],
			Date:  day,
			Hours: daily[day],
		})
	}
	return bars
}

// LastWeekBars returns the weekly bars of the week before the one containing today.
func LastWeekBars(entries []models.StudyEntry, today time.Time) []DayBar {
	return WeeklyBars(entries, AddDays(today, -7))
}

// HabitCalendar returns the trailing days grid for a habit, oldest first.
func HabitCalendar(logs []models.HabitLog, habitID string, today time.Time, days int) []CalendarDay {
	done := completedDays(logs, habitID)
	todayKey := FormatDate(today)
	end := calendarDay(today)

	var grid []CalendarDay
	for i := days - 1; i >= 0; i-- {
		d := end.AddDate(0, 0, -i)
		key := FormatDate(d)
		grid = append(grid, CalendarDay{
			Date:       key,
			DayOfMonth: d.Day(),
			Completed:  done[key],
			IsToday:    key == todayKey,
		})
	}
	return grid
}

// GoalProgress returns how much of goal the hours cover, as a percentage in [0, 100].
func GoalProgress(hours, goal float64) float64 {
	if goal <= 0 || hours <= 0 {
		return 0
	}
	p := hours / goal * 100
	if p > 100 {
		return 100
	}
	return p
}

// QuoteOfTheDay picks the dashboard quote; it changes once per calendar day.
func QuoteOfTheDay(today time.Time) string {
	if len(constants.Quotes) == 0 {
		return ""
	}
	return constants.Quotes[today.YearDay()%len(constants.Quotes)]
}
