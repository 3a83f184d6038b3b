package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitlit/internal/analytics"
	"github.com/julianstephens/habitlit/internal/backup"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/storage/sqlite"
)

// ErrSnapshotsUnsupported is returned by snapshot commands on non-SQLite stores.
var ErrSnapshotsUnsupported = errors.New("database snapshots are only supported for SQLite storage")

type Context struct {
	Store storage.Provider
	// Now is the clock every command reads "today" from.
	Now func() time.Time
}

// NewContext wires a store to the wall clock.
func NewContext(store storage.Provider) *Context {
	return &Context{
		Store: store,
		Now:   time.Now,
	}
}

// Clock returns the current instant from ctx.Now, or time.Now when unset.
func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Loader returns an analytics loader reading from the store.
func (c *Context) Loader() *analytics.Loader {
	return analytics.NewLoader(c.Store)
}

// FindHabit looks up a habit by name with a user-facing error.
func (c *Context) FindHabit(name string) (models.Habit, error) {
	habit, err := c.Store.GetHabitByName(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, fmt.Errorf("habit %q not found", strings.TrimSpace(name))
		}
		return models.Habit{}, err
	}
	return habit, nil
}

// SnapshotManager returns the backup manager for SQLite stores.
func (c *Context) SnapshotManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, ErrSnapshotsUnsupported
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.SnapshotManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolvePeriod turns optional year and 1-12 month flags into a Period.
// Zero values fall back to the current year and month.
func ResolvePeriod(year, month int, now time.Time) (analytics.Period, error) {
	period := analytics.CurrentPeriod(now)
	if year != 0 {
		period.Year = year
	}
	if month != 0 {
		if month < 1 || month > 12 {
			return analytics.Period{}, fmt.Errorf("invalid month %d (expected 1-12)", month)
		}
		period.Month = month - 1
	}
	return period, nil
}
