package stats

import (
	"time"

	"github.com/julianstephens/studylit/internal/constants"
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// FormatDate returns the calendar-day key of t using t's own location.
// The time is never shifted to UTC, so 23:30 local stays on the local day.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD key into midnight of that day in loc.
func ParseDate(day string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(constants.DateFormat, day, loc)
}

// calendarDay pins t to noon of its calendar day so that day-by-day
// arithmetic never lands on a DST gap.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days, keeping its location.
func AddDays(t time.Time, n int) time.Time {
	return calendarDay(t).AddDate(0, 0, n)
}

// WeekDates returns the Monday through Sunday keys of the week containing t.
// Weeks always start on Monday regardless of locale.
func WeekDates(t time.Time) []string {
	day := calendarDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday
	monday := day.AddDate(0, 0, -offset)

	dates := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, FormatDate(monday.AddDate(0, 0, i)))
	}
	return dates
}

// MonthDates returns every day key of the calendar month containing t, first to last.
func MonthDates(t time.Time) []string {
	y, m, _ := t.Date()
	first := time.Date(y, m, 1, 12, 0, 0, 0, t.Location())
	// Day 0 of the next month is the last day of this one.
	daysInMonth := time.Date(y, m+1, 0, 12, 0, 0, 0, t.Location()).Day()

	dates := make([]string, 0, daysInMonth)
	for i := 0; i < daysInMonth; i++ {
		dates = append(dates, FormatDate(first.AddDate(0, 0, i)))
	}
	return dates
}

// TrailingDates returns the n day keys ending at t (inclusive), oldest first.
func TrailingDates(t time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	end := calendarDay(t)
	dates := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, FormatDate(end.AddDate(0, 0, -i)))
	}
	return dates
}

// daysBetween returns the number of calendar days from a to b.
// ok is false when either key is malformed.
func daysBetween(a, b string) (days int, ok bool) {
	from, err := time.Parse(constants.DateFormat, a)
	if err != nil {
		return 0, false
	}
	to, err := time.Parse(constants.DateFormat, b)
	if err != nil {
		return 0, false
	}
	// Both parse as UTC midnight, so the difference is a whole number of days.
	return int(to.Sub(from).Hours() / 24), true
}
