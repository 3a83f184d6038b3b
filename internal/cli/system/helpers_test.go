package system

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/storage/sqlite"
)

var fixedNow = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

// newTestContext returns a context over an uninitialized SQLite store.
func newTestContext(t *testing.T) (*cli.Context, *sqlite.Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(store)
	ctx.Now = func() time.Time { return fixedNow }
	return ctx, store, dbPath
}

// newInitializedContext returns a context over a migrated SQLite store.
func newInitializedContext(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	ctx, store, _ := newTestContext(t)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	return ctx, store
}
