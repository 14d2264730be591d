package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
)

// fixedNow is a Wednesday.
var fixedNow = time.Date(2024, 3, 13, 15, 0, 0, 0, time.Local)

type recordingNotifier struct {
	badges []models.Badge
	err    error
}

func (r *recordingNotifier) NotifyBadge(b models.Badge) error {
	r.badges = append(r.badges, b)
	return r.err
}

func setupContext(t *testing.T) (*Context, *recordingNotifier) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	store.MigrationLog = func(string) {}
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	n := &recordingNotifier{}
	return &Context{
		Store:    store,
		Notifier: n,
		Clock:    func() time.Time { return fixedNow },
	}, n
}

func TestResolveDay(t *testing.T) {
	ctx, _ := setupContext(t)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"empty is today", "", "2024-03-13", false},
		{"yesterday", "yesterday", "2024-03-12", false},
		{"explicit date", "2024-02-29", "2024-02-29", false},
		{"bad format", "03/13/2024", "", true},
		{"impossible date", "2024-02-30", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ctx.ResolveDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveDay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogCmdRecordsSessionAndAnnouncesBadge(t *testing.T) {
	ctx, n := setupContext(t)

	cmd := &LogCmd{Subject: " Math ", Hours: "1h30m"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	entries, err := ctx.Store.GetAllStudyEntries()
	if err != nil {
		t.Fatalf("GetAllStudyEntries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Subject != "Math" || entries[0].Hours != 1.5 || entries[0].Date != "2024-03-13" {
		t.Errorf("entry = %+v", entries[0])
	}

	if len(n.badges) != 1 || n.badges[0].ID != constants.BadgeFirstSession {
		t.Fatalf("notified %+v, want first_session", n.badges)
	}
	if n.badges[0].Icon != "🚀" {
		t.Errorf("notified icon = %q, want the emoji glyph", n.badges[0].Icon)
	}

	// A second session unlocks nothing new.
	if err := (&LogCmd{Subject: "Math", Hours: "1"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(n.badges) != 1 {
		t.Errorf("notified %d times, want 1", len(n.badges))
	}
}

func TestLogCmdRespectsNotificationSetting(t *testing.T) {
	ctx, n := setupContext(t)

	settings, _ := ctx.Store.GetSettings()
	settings.NotificationsEnabled = false
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	if err := (&LogCmd{Subject: "Math", Hours: "2"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(n.badges) != 0 {
		t.Errorf("notified %d badges with notifications disabled", len(n.badges))
	}
}

func TestLogCmdNotifierFailureIsNotFatal(t *testing.T) {
	ctx, n := setupContext(t)
	n.err = errors.New("tray app not running")

	if err := (&LogCmd{Subject: "Math", Hours: "2"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestLogCmdRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		cmd  LogCmd
	}{
		{"zero hours", LogCmd{Subject: "Math", Hours: "0"}},
		{"garbage hours", LogCmd{Subject: "Math", Hours: "lots"}},
		{"too many hours", LogCmd{Subject: "Math", Hours: "25"}},
		{"empty subject", LogCmd{Subject: "  ", Hours: "1"}},
		{"bad date", LogCmd{Subject: "Math", Hours: "1", Date: "tomorrow-ish"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupContext(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected an error")
			}
			entries, _ := ctx.Store.GetAllStudyEntries()
			if len(entries) != 0 {
				t.Errorf("stored %d entries for rejected input", len(entries))
			}
		})
	}
}

func addEntry(t *testing.T, p storage.Provider, id, day, subject string, hours float64) {
	t.Helper()
	err := p.AddStudyEntry(models.StudyEntry{ID: id, Date: day, Subject: subject, Hours: hours, CreatedAt: fixedNow})
	if err != nil {
		t.Fatalf("AddStudyEntry() error = %v", err)
	}
}

func TestEntryDeleteByPrefix(t *testing.T) {
	ctx, _ := setupContext(t)
	addEntry(t, ctx.Store, "abc12345-0000", "2024-03-13", "Math", 1)
	addEntry(t, ctx.Store, "abd99999-0000", "2024-03-13", "Physics", 2)

	if err := (&EntryDeleteCmd{ID: "abc"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	entries, _ := ctx.Store.GetAllStudyEntries()
	if len(entries) != 1 || entries[0].ID != "abd99999-0000" {
		t.Errorf("remaining entries = %+v", entries)
	}
}

func TestFindEntry(t *testing.T) {
	ctx, _ := setupContext(t)
	addEntry(t, ctx.Store, "abc12345-0000", "2024-03-13", "Math", 1)
	addEntry(t, ctx.Store, "abd99999-0000", "2024-03-13", "Physics", 2)

	if _, err := findEntry(ctx.Store, "ab"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("findEntry(ab) error = %v, want ambiguous", err)
	}
	if _, err := findEntry(ctx.Store, "zzz"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("findEntry(zzz) error = %v, want ErrNotFound", err)
	}
	got, err := findEntry(ctx.Store, "abc12345-0000")
	if err != nil || got.Subject != "Math" {
		t.Errorf("findEntry(full id) = %+v, %v", got, err)
	}
}

func TestEntryListRuns(t *testing.T) {
	ctx, _ := setupContext(t)
	addEntry(t, ctx.Store, "e1", "2024-03-13", "Math", 1)

	for _, cmd := range []*EntryListCmd{{}, {All: true}, {Date: "2024-03-01"}} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("Run(%+v) error = %v", cmd, err)
		}
	}
}

func TestHabitLifecycle(t *testing.T) {
	ctx, _ := setupContext(t)

	if err := (&HabitAddCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatalf("add error = %v", err)
	}
	if err := (&HabitAddCmd{Name: "Read"}).Run(ctx); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("duplicate add error = %v, want ErrAlreadyExists", err)
	}

	if err := (&HabitToggleCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatalf("toggle error = %v", err)
	}
	if err := (&HabitToggleCmd{Name: "Read", Date: "yesterday"}).Run(ctx); err != nil {
		t.Fatalf("toggle yesterday error = %v", err)
	}

	habit, err := ctx.Store.GetHabitByName("Read")
	if err != nil {
		t.Fatalf("GetHabitByName() error = %v", err)
	}
	snap, err := ctx.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	hs := snap.HabitStats(habit)
	if !hs.CompletedToday || hs.CurrentStreak != 2 {
		t.Errorf("habit stats = %+v, want completed today with streak 2", hs)
	}

	// Toggling today again clears it.
	if err := (&HabitToggleCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatalf("toggle error = %v", err)
	}
	if _, err := ctx.Store.GetHabitLog(habit.ID, "2024-03-13"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabitLog() after untoggle error = %v, want ErrNotFound", err)
	}

	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Errorf("list error = %v", err)
	}
	if err := (&HabitShowCmd{Name: "Read", Days: 14}).Run(ctx); err != nil {
		t.Errorf("show error = %v", err)
	}

	if err := (&HabitDeleteCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatalf("delete error = %v", err)
	}
	logs, _ := ctx.Store.GetAllHabitLogs()
	if len(logs) != 0 {
		t.Errorf("%d logs survived habit deletion", len(logs))
	}
	if err := (&HabitToggleCmd{Name: "Read"}).Run(ctx); err == nil {
		t.Error("toggling a deleted habit should fail")
	}
}

func TestRenderCalendar(t *testing.T) {
	days := []stats.CalendarDay{
		{Date: "2024-03-11", DayOfMonth: 11, Completed: true},
		{Date: "2024-03-12", DayOfMonth: 12},
		{Date: "2024-03-13", DayOfMonth: 13, Completed: true, IsToday: true},
	}
	want := " 11x  12. [13x]\n"
	if got := renderCalendar(days); got != want {
		t.Errorf("renderCalendar() = %q, want %q", got, want)
	}
}

func TestReportCommandsRun(t *testing.T) {
	ctx, _ := setupContext(t)
	addEntry(t, ctx.Store, "e1", "2024-03-11", "Math", 2)
	addEntry(t, ctx.Store, "e2", "2024-03-12", "Physics", 1)
	addEntry(t, ctx.Store, "e3", "2024-03-05", "Math", 3)

	cmds := []interface{ Run(*Context) error }{
		&StatsCmd{}, &WeekCmd{}, &RankingsCmd{}, &RankingsCmd{Limit: 1}, &BadgesCmd{},
	}
	for _, cmd := range cmds {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("%T.Run() error = %v", cmd, err)
		}
	}
}

func TestExportCmdWritesFile(t *testing.T) {
	ctx, _ := setupContext(t)
	addEntry(t, ctx.Store, "e1", "2024-03-13", "Math", 2)

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out.json")
	if err := (&ExportCmd{Output: jsonPath}).Run(ctx); err != nil {
		t.Fatalf("json export error = %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if entries, ok := doc["entries"].([]any); !ok || len(entries) != 1 {
		t.Errorf("entries = %v", doc["entries"])
	}

	yamlPath := filepath.Join(dir, "out.yml")
	if err := (&ExportCmd{Output: yamlPath}).Run(ctx); err != nil {
		t.Fatalf("yaml export error = %v", err)
	}
	data, err = os.ReadFile(yamlPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "subject: Math") {
		t.Errorf("yaml export missing entry:\n%s", data)
	}

	if err := (&ExportCmd{Format: "csv"}).Run(ctx); err == nil {
		t.Error("csv export should be rejected")
	}
}

func TestPerformAutomaticBackup(t *testing.T) {
	ctx, _ := setupContext(t)
	ctx.PerformAutomaticBackup()

	backups, err := os.ReadDir(filepath.Join(filepath.Dir(ctx.Store.GetConfigPath()), constants.BackupDirName))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("got %d backups, want 1", len(backups))
	}
}
