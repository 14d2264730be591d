package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/storage"
)

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	for _, cmd := range []*MigrateCmd{{Status: true}, {}} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("migrate (status=%v) failed: %v", cmd.Status, err)
		}
	}
}

func TestMigrateCmd_RejectsJSONStore(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "studylit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init JSON store: %v", err)
	}

	if err := (&MigrateCmd{}).Run(&cli.Context{Store: store}); err == nil {
		t.Error("migrate should fail for the JSON store")
	}
}
