package system

import (
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/backup"
	"github.com/julianstephens/habitlit/internal/models"
)

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, store := newInitializedContext(t)
	if err := store.AddHabit(models.Habit{ID: "h1", Name: "Run", CreatedAt: fixedNow}); err != nil {
		t.Fatal(err)
	}

	// Missing backups is a warning, not a failure
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_Uninitialized(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail when the database does not exist")
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, store := newInitializedContext(t)

	db := store.GetDB()
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, store := newInitializedContext(t)

	mgr := backup.NewManager(store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed with backups present: %v", err)
	}
	if err := checkBackupsPresent(ctx); err != nil {
		t.Errorf("checkBackupsPresent() = %v, want nil", err)
	}
}

func TestCheckMigrationsComplete_Incomplete(t *testing.T) {
	ctx, store := newInitializedContext(t)

	db := store.GetDB()
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (1)"); err != nil {
		t.Fatal(err)
	}

	if err := checkMigrationsComplete(ctx); err == nil {
		t.Error("checkMigrationsComplete should fail with incomplete migrations")
	}
}

func TestCheckClockTimezone(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	if err := checkClockTimezone(ctx); err != nil {
		t.Errorf("clock/timezone check failed: %v", err)
	}

	ctx.Now = func() time.Time { return time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC) }
	if err := checkClockTimezone(ctx); err == nil {
		t.Error("expected failure for a clock before 2020")
	}
}
