package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/habitlit/internal/models"
)

var (
	// ErrNotFound is returned when a habit or completion does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when no database exists yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'habitlit init' first")
	// ErrDuplicateName is returned when a habit name is already taken.
	ErrDuplicateName = errors.New("a habit with that name already exists")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	// ListHabits returns every habit in creation order.
	ListHabits(ctx context.Context) ([]models.Habit, error)
	RenameHabit(id, name string) error
	// DeleteHabit removes the habit and all of its completion records.
	DeleteHabit(id string) error

	// Completions
	// ToggleCompletion flips the completed state of a habit on one day and
	// returns the new state. A missing record counts as not completed.
	ToggleCompletion(habitID string, year, month, day int) (bool, error)
	GetCompletion(habitID string, year, month, day int) (models.CompletionRecord, error)
	ListCompletions(ctx context.Context, habitID string) ([]models.CompletionRecord, error)
	ListCompletionsForMonth(habitID string, year, month int) ([]models.CompletionRecord, error)
	GetAllCompletions() ([]models.CompletionRecord, error)

	// ReplaceAll swaps the full data set in a single transaction.
	ReplaceAll(habits []models.Habit, completions []models.CompletionRecord) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by stores backed by the embedded schema migrations.
type Migrator interface {
	PendingMigrations() (int, error)
	Migrate(logFn func(string)) (int, error)
}
