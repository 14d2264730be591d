package optimize

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/optimizer"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
)

var now = time.Date(2024, 3, 31, 12, 0, 0, 0, time.Local)

func setupContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	store.MigrationLog = func(string) {}
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	// Three hours every day of the analyzed window.
	for d := 1; d <= 30; d++ {
		entry := models.StudyEntry{
			ID:        fmt.Sprintf("entry-%02d", d),
			Date:      fmt.Sprintf("2024-03-%02d", d),
			Subject:   "Math",
			Hours:     3,
			CreatedAt: now,
		}
		if err := store.AddStudyEntry(entry); err != nil {
			t.Fatalf("failed to add entry: %v", err)
		}
	}

	return &cli.Context{Store: store, Clock: func() time.Time { return now }}
}

func TestOptimizeDryRunChangesNothing(t *testing.T) {
	ctx := setupContext(t)

	cmd := &OptimizeCmd{DryRun: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.DailyGoalHours != 2 {
		t.Errorf("DailyGoalHours = %v, want unchanged 2", settings.DailyGoalHours)
	}
}

func TestOptimizeAutoApply(t *testing.T) {
	ctx := setupContext(t)

	cmd := &OptimizeCmd{AutoApply: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.DailyGoalHours != 2.5 {
		t.Errorf("DailyGoalHours = %v, want 2.5", settings.DailyGoalHours)
	}
}

func TestTypeLabel(t *testing.T) {
	types := []optimizer.SuggestionType{
		optimizer.SuggestionRaiseDailyGoal,
		optimizer.SuggestionLowerDailyGoal,
		optimizer.SuggestionRaiseWeeklyGoal,
		optimizer.SuggestionLowerWeeklyGoal,
		optimizer.SuggestionFocusSubject,
		optimizer.SuggestionRemoveHabit,
	}
	seen := map[string]bool{}
	for _, st := range types {
		label := typeLabel(st)
		if label == typeLabel("unknown") {
			t.Errorf("typeLabel(%q) fell through to the default", st)
		}
		if seen[label] {
			t.Errorf("typeLabel(%q) = %q is not unique", st, label)
		}
		seen[label] = true
	}
}
