package habits

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/storage/sqlite"
	"github.com/julianstephens/habitlit/internal/validation"
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

func TestHabitAddCmd(t *testing.T) {
	ctx, store := setupTestContext(t)

	if err := (&HabitAddCmd{Name: "  Meditate "}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	habit, err := store.GetHabitByName("Meditate")
	if err != nil {
		t.Fatalf("habit not stored: %v", err)
	}
	if !habit.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected CreatedAt %v, got %v", fixedNow, habit.CreatedAt)
	}

	if err := (&HabitAddCmd{Name: "Meditate"}).Run(ctx); !errors.Is(err, storage.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if err := (&HabitAddCmd{Name: " "}).Run(ctx); !errors.Is(err, validation.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestHabitListCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Errorf("list on empty store failed: %v", err)
	}
	if err := (&HabitAddCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}

func TestHabitRenameCmd(t *testing.T) {
	ctx, store := setupTestContext(t)
	if err := (&HabitAddCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if err := (&HabitRenameCmd{Name: "Run", NewName: "Jog"}).Run(ctx); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if _, err := store.GetHabitByName("Jog"); err != nil {
		t.Errorf("renamed habit not found: %v", err)
	}
	if err := (&HabitRenameCmd{Name: "Run", NewName: "Walk"}).Run(ctx); err == nil {
		t.Error("expected error renaming a missing habit")
	}
}

func TestHabitDeleteCmd(t *testing.T) {
	ctx, store := setupTestContext(t)
	if err := (&HabitAddCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&MarkCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if err := (&HabitDeleteCmd{Name: "Run", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	habits, _ := store.ListHabits(context.Background())
	completions, _ := store.GetAllCompletions()
	if len(habits) != 0 || len(completions) != 0 {
		t.Errorf("expected habit and history removed, got %d habits, %d completions", len(habits), len(completions))
	}

	// Deleting snapshots the database first
	mgr, err := ctx.SnapshotManager()
	if err != nil {
		t.Fatal(err)
	}
	backups, _ := mgr.ListBackups()
	if len(backups) == 0 {
		t.Error("expected an automatic backup before delete")
	}
}

func TestMarkCmd(t *testing.T) {
	ctx, store := setupTestContext(t)
	if err := (&HabitAddCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	habit, _ := store.GetHabitByName("Run")

	// Default date is today
	if err := (&MarkCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	rec, err := store.GetCompletion(habit.ID, 2025, 2, 20)
	if err != nil || !rec.Completed {
		t.Fatalf("expected today's completion, got %+v (%v)", rec, err)
	}

	// Marking again toggles it off
	if err := (&MarkCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	rec, _ = store.GetCompletion(habit.ID, 2025, 2, 20)
	if rec.Completed {
		t.Error("expected second mark to toggle the day off")
	}

	if err := (&MarkCmd{Name: "Run", Date: "2025-02-28"}).Run(ctx); err != nil {
		t.Fatalf("mark with date failed: %v", err)
	}
	if rec, err := store.GetCompletion(habit.ID, 2025, 1, 28); err != nil || !rec.Completed {
		t.Errorf("expected completion on 2025-02-28, got %+v (%v)", rec, err)
	}

	if err := (&MarkCmd{Name: "Run", Date: "02/28/2025"}).Run(ctx); err == nil {
		t.Error("expected error for malformed date")
	}
	if err := (&MarkCmd{Name: "Nope"}).Run(ctx); err == nil {
		t.Error("expected error for unknown habit")
	}
}
