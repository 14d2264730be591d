package badges

import (
	"fmt"
	"testing"
	"time"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/stats"
)

var evalTime = time.Date(2024, 1, 7, 18, 0, 0, 0, time.UTC)

// streakEntries returns one goal-meeting entry per day for the n days ending at evalTime.
func streakEntries(n int, hours float64) []models.StudyEntry {
	var entries []models.StudyEntry
	for i, d := range stats.TrailingDates(evalTime, n) {
		entries = append(entries, models.StudyEntry{
			ID:      fmt.Sprintf("e%d", i),
			Date:    d,
			Subject: "Math",
			Hours:   hours,
		})
	}
	return entries
}

func unlockedAt(t time.Time) *time.Time {
	return &t
}

func TestCatalogOrder(t *testing.T) {
	want := []string{
		constants.BadgeStreak7,
		constants.BadgeStreak30,
		constants.BadgeHours100,
		constants.BadgeFirstSession,
		constants.BadgeFiveSubjects,
	}
	got := Catalog()
	if len(got) != len(want) {
		t.Fatalf("Catalog() has %d badges, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Catalog()[%d] = %q, want %q", i, got[i].ID, id)
		}
		if got[i].Unlocked() {
			t.Errorf("Catalog()[%d] is unlocked", i)
		}
	}

	got[0].Title = "changed"
	if Catalog()[0].Title == "changed" {
		t.Error("Catalog() exposes shared state")
	}
}

func TestMerge(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := []models.Badge{
		{ID: constants.BadgeFirstSession, UnlockedAt: unlockedAt(ts)},
		{ID: "retired_badge", UnlockedAt: unlockedAt(ts)},
	}

	merged := Merge(stored)
	if len(merged) != len(Catalog()) {
		t.Fatalf("Merge() returned %d badges, want %d", len(merged), len(Catalog()))
	}
	for _, b := range merged {
		if b.ID == "retired_badge" {
			t.Error("Merge() kept an unknown badge")
		}
		wantUnlocked := b.ID == constants.BadgeFirstSession
		if b.Unlocked() != wantUnlocked {
			t.Errorf("badge %s unlocked = %v, want %v", b.ID, b.Unlocked(), wantUnlocked)
		}
		if b.Title == "" {
			t.Errorf("badge %s lost its catalog title", b.ID)
		}
	}
	if UnlockedCount(merged) != 1 {
		t.Errorf("UnlockedCount() = %d, want 1", UnlockedCount(merged))
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.StudyEntry
		current []models.Badge
		wantID  string
	}{
		{
			name:   "no entries unlocks nothing",
			wantID: "",
		},
		{
			name:    "first session",
			entries: streakEntries(1, 1),
			wantID:  constants.BadgeFirstSession,
		},
		{
			name:    "seven day streak wins over first session",
			entries: streakEntries(7, 2),
			wantID:  constants.BadgeStreak7,
		},
		{
			name:    "streak and hours both qualify, streak comes first",
			entries: streakEntries(7, 14.5),
			wantID:  constants.BadgeStreak7,
		},
		{
			name:    "hours milestone after streak already unlocked",
			entries: streakEntries(7, 14.5),
			current: []models.Badge{
				{ID: constants.BadgeStreak7, UnlockedAt: unlockedAt(evalTime.Add(-time.Hour))},
			},
			wantID: constants.BadgeHours100,
		},
		{
			name: "five distinct subjects",
			entries: []models.StudyEntry{
				{Date: "2024-01-07", Subject: "Math", Hours: 0.5},
				{Date: "2024-01-07", Subject: "Art", Hours: 0.5},
				{Date: "2024-01-07", Subject: "History", Hours: 0.5},
				{Date: "2024-01-07", Subject: "Physics", Hours: 0.5},
				{Date: "2024-01-07", Subject: "Biology", Hours: 0.5},
			},
			current: []models.Badge{
				{ID: constants.BadgeFirstSession, UnlockedAt: unlockedAt(evalTime.Add(-time.Hour))},
			},
			wantID: constants.BadgeFiveSubjects,
		},
		{
			name:    "everything already unlocked",
			entries: streakEntries(30, 5),
			current: allUnlocked(evalTime.Add(-time.Hour)),
			wantID:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, unlocked := Evaluate(tt.entries, tt.current, 2, evalTime)

			if tt.wantID == "" {
				if unlocked != nil {
					t.Fatalf("Evaluate() unlocked %q, want none", unlocked.ID)
				}
				return
			}
			if unlocked == nil {
				t.Fatalf("Evaluate() unlocked nothing, want %q", tt.wantID)
			}
			if unlocked.ID != tt.wantID {
				t.Errorf("Evaluate() unlocked %q, want %q", unlocked.ID, tt.wantID)
			}
			if unlocked.UnlockedAt == nil || !unlocked.UnlockedAt.Equal(evalTime) {
				t.Errorf("UnlockedAt = %v, want %v", unlocked.UnlockedAt, evalTime)
			}
			if got, want := UnlockedCount(updated), UnlockedCount(tt.current)+1; got != want {
				t.Errorf("UnlockedCount(updated) = %d, want %d", got, want)
			}
		})
	}
}

func allUnlocked(ts time.Time) []models.Badge {
	list := Catalog()
	for i := range list {
		list[i].UnlockedAt = unlockedAt(ts)
	}
	return list
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	current := Catalog()
	Evaluate(streakEntries(7, 2), current, 2, evalTime)

	for _, b := range current {
		if b.Unlocked() {
			t.Errorf("Evaluate() mutated input badge %s", b.ID)
		}
	}
}

func TestEvaluateUnlocksOnePerCall(t *testing.T) {
	// 30 days at 5h qualifies for every badge except five_subjects.
	entries := streakEntries(30, 5)
	want := []string{
		constants.BadgeStreak7,
		constants.BadgeStreak30,
		constants.BadgeHours100,
		constants.BadgeFirstSession,
	}

	current := Catalog()
	for i, id := range want {
		var unlocked *models.Badge
		current, unlocked = Evaluate(entries, current, 2, evalTime.Add(time.Duration(i)*time.Minute))
		if unlocked == nil || unlocked.ID != id {
			t.Fatalf("call %d unlocked %v, want %q", i, unlocked, id)
		}
		if UnlockedCount(current) != i+1 {
			t.Fatalf("call %d: %d badges unlocked, want %d", i, UnlockedCount(current), i+1)
		}
	}

	if _, unlocked := Evaluate(entries, current, 2, evalTime.Add(time.Hour)); unlocked != nil {
		t.Errorf("extra call unlocked %q, want none", unlocked.ID)
	}
}

func TestEvaluateNeverRelocks(t *testing.T) {
	first := evalTime.Add(-48 * time.Hour)
	current := []models.Badge{
		{ID: constants.BadgeStreak7, UnlockedAt: unlockedAt(first)},
	}

	// No entries at all: nothing qualifies any more, but the unlock stays.
	updated, unlocked := Evaluate(nil, current, 2, evalTime)
	if unlocked != nil {
		t.Fatalf("Evaluate() unlocked %q, want none", unlocked.ID)
	}
	for _, b := range updated {
		if b.ID == constants.BadgeStreak7 {
			if b.UnlockedAt == nil || !b.UnlockedAt.Equal(first) {
				t.Errorf("streak_7 UnlockedAt = %v, want %v", b.UnlockedAt, first)
			}
		}
	}
}

func TestGlyph(t *testing.T) {
	for _, b := range Catalog() {
		if g := Glyph(b.Icon); g == b.Icon {
			t.Errorf("Glyph(%q) has no emoji", b.Icon)
		}
	}
	if got := Glyph("🔥"); got != "🔥" {
		t.Errorf("Glyph passthrough = %q", got)
	}
}
