package stats

import (
	"testing"
	"time"
)

func TestFormatDateUsesLocalCalendarDay(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	// 23:30 on Jan 1 in EST is already Jan 2 in UTC.
	late := time.Date(2024, 1, 1, 23, 30, 0, 0, est)

	if got := FormatDate(late); got != "2024-01-01" {
		t.Errorf("FormatDate() = %q, want %q", got, "2024-01-01")
	}
}

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	got, err := ParseDate("2024-03-10", loc)
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if got.Location() != loc || got.Day() != 10 || got.Hour() != 0 {
		t.Errorf("ParseDate() = %v, want midnight of 2024-03-10 in %v", got, loc)
	}

	if _, err := ParseDate("03/10/2024", loc); err == nil {
		t.Error("ParseDate() accepted a malformed date")
	}
}

func TestWeekDates(t *testing.T) {
	want := []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-05", "2024-01-06", "2024-01-07",
	}

	tests := []struct {
		name string
		day  time.Time
	}{
		{"monday", time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)},
		{"sunday belongs to the preceding monday", time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekDates(tt.day)
			if len(got) != 7 {
				t.Fatalf("WeekDates() returned %d dates, want 7", len(got))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("WeekDates()[%d] = %q, want %q", i, got[i], want[i])
				}
			}
		})
	}
}

func TestWeekDatesAcrossYearBoundary(t *testing.T) {
	got := WeekDates(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	if got[0] != "2024-12-30" || got[6] != "2025-01-05" {
		t.Errorf("WeekDates() = %v, want 2024-12-30..2025-01-05", got)
	}
}

func TestMonthDates(t *testing.T) {
	tests := []struct {
		name      string
		day       time.Time
		wantLen   int
		wantFirst string
		wantLast  string
	}{
		{"leap february", time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), 29, "2024-02-01", "2024-02-29"},
		{"common february", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), 28, "2023-02-01", "2023-02-28"},
		{"december", time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC), 31, "2024-12-01", "2024-12-31"},
		{"april", time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), 30, "2024-04-01", "2024-04-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthDates(tt.day)
			if len(got) != tt.wantLen {
				t.Fatalf("MonthDates() len = %d, want %d", len(got), tt.wantLen)
			}
			if got[0] != tt.wantFirst || got[len(got)-1] != tt.wantLast {
				t.Errorf("MonthDates() = %s..%s, want %s..%s", got[0], got[len(got)-1], tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestTrailingDates(t *testing.T) {
	got := TrailingDates(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), 3)
	want := []string{"2024-02-29", "2024-03-01", "2024-03-02"}
	if len(got) != len(want) {
		t.Fatalf("TrailingDates() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TrailingDates()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := TrailingDates(time.Now(), 0); got != nil {
		t.Errorf("TrailingDates(n=0) = %v, want nil", got)
	}
}

func TestDayArithmeticAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// Clocks jump forward at 02:00 on 2024-03-10.
	day := time.Date(2024, 3, 11, 0, 30, 0, 0, loc)

	if got := FormatDate(AddDays(day, -1)); got != "2024-03-10" {
		t.Errorf("AddDays(-1) = %q, want 2024-03-10", got)
	}
	if got := FormatDate(AddDays(day, -2)); got != "2024-03-09" {
		t.Errorf("AddDays(-2) = %q, want 2024-03-09", got)
	}
}
