package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
)

// TestStore_Integration tests PostgreSQL store with a real database
// Set POSTGRES_TEST_URL environment variable to run this test
// Example: POSTGRES_TEST_URL="postgres://habitlit_user@localhost:5432/habitlit_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	if err := store.ReplaceAll(nil, nil); err != nil {
		t.Fatalf("Failed to clear data: %v", err)
	}

	ctx := context.Background()
	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      "Integration",
		CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	t.Run("Habits", func(t *testing.T) {
		if err := store.AddHabit(habit); err != nil {
			t.Fatalf("Failed to add habit: %v", err)
		}
		got, err := store.GetHabitByName("Integration")
		if err != nil {
			t.Fatalf("Failed to get habit: %v", err)
		}
		if got.ID != habit.ID || !got.CreatedAt.Equal(habit.CreatedAt) {
			t.Errorf("Unexpected habit: %+v", got)
		}
		if err := store.AddHabit(models.Habit{ID: uuid.New().String(), Name: "Integration", CreatedAt: habit.CreatedAt}); !errors.Is(err, storage.ErrDuplicateName) {
			t.Errorf("Expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		for i, want := range []bool{true, false} {
			got, err := store.ToggleCompletion(habit.ID, 2025, 2, 3)
			if err != nil {
				t.Fatalf("Toggle %d failed: %v", i, err)
			}
			if got != want {
				t.Errorf("Toggle %d: expected %v, got %v", i, want, got)
			}
		}
		records, err := store.ListCompletions(ctx, habit.ID)
		if err != nil {
			t.Fatalf("Failed to list completions: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("Expected 1 record, got %d", len(records))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.DeleteHabit(habit.ID); err != nil {
			t.Fatalf("Failed to delete habit: %v", err)
		}
		all, err := store.GetAllCompletions()
		if err != nil {
			t.Fatalf("Failed to list completions: %v", err)
		}
		if len(all) != 0 {
			t.Errorf("Expected cascade delete, %d records remain", len(all))
		}
	})
}
