package backups

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage/sqlite"
)

var fixedNow = time.Date(2025, 3, 20, 9, 30, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(store)
	ctx.Now = func() time.Time { return fixedNow }
	return ctx, store
}

func seed(t *testing.T, store *sqlite.Store) {
	t.Helper()
	if err := store.AddHabit(models.Habit{ID: "h1", Name: "Run", CreatedAt: fixedNow}); err != nil {
		t.Fatal(err)
	}
	for _, day := range []int{1, 2, 3} {
		if _, err := store.ToggleCompletion("h1", 2025, 2, day); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src, srcStore := setupTestContext(t)
	seed(t, srcStore)

	out := filepath.Join(t.TempDir(), "export.json")
	if err := (&ExportCmd{Out: out}).Run(src); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"habitId"`) {
		t.Errorf("export missing habitId key:\n%s", data)
	}

	dst, dstStore := setupTestContext(t)
	if err := dstStore.AddHabit(models.Habit{ID: "old", Name: "Stale", CreatedAt: fixedNow}); err != nil {
		t.Fatal(err)
	}
	if err := (&ImportCmd{File: out}).Run(dst); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	habits, _ := dstStore.ListHabits(context.Background())
	if len(habits) != 1 || habits[0].Name != "Run" {
		t.Fatalf("expected imported habit to replace existing data, got %+v", habits)
	}
	if habits[0].ID == "h1" {
		t.Error("expected imported habit to receive a fresh ID")
	}
	completions, _ := dstStore.ListCompletions(context.Background(), habits[0].ID)
	if len(completions) != 3 {
		t.Errorf("expected 3 completions, got %d", len(completions))
	}
}

func TestImportRejectsInvalidFile(t *testing.T) {
	ctx, store := setupTestContext(t)
	seed(t, store)

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"habits": "nope"}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := (&ImportCmd{File: path}).Run(ctx); err == nil {
		t.Fatal("expected error importing invalid file")
	}
	habits, _ := store.ListHabits(context.Background())
	if len(habits) != 1 {
		t.Errorf("expected existing data untouched, got %d habits", len(habits))
	}
}

func TestBackupCreateListRestore(t *testing.T) {
	ctx, store := setupTestContext(t)
	seed(t, store)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list on empty backup dir failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	mgr, err := ctx.SnapshotManager()
	if err != nil {
		t.Fatal(err)
	}
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected one backup, got %d (%v)", len(backups), err)
	}

	// Lookup by file name inside the backup directory
	name := filepath.Base(backups[0].Path)
	if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("reload after restore failed: %v", err)
	}
	habits, _ := store.ListHabits(context.Background())
	if len(habits) != 1 {
		t.Errorf("expected restored habit, got %d", len(habits))
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}
