package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/validation"
)

const completionColumns = `id, habit_id, year, month, day, completed`

func (s *Store) ToggleCompletion(habitID string, year, month, day int) (bool, error) {
	if err := validation.ValidateCompletion(models.CompletionRecord{
		HabitID: habitID, Year: year, Month: month, Day: day,
	}); err != nil {
		return false, err
	}
	if _, err := s.GetHabit(habitID); err != nil {
		return false, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var completed bool
	err = tx.QueryRow(`SELECT completed FROM completions WHERE habit_id = ? AND year = ? AND month = ? AND day = ?`,
		habitID, year, month, day).Scan(&completed)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		completed = true
		_, err = tx.Exec(`INSERT INTO completions (`+completionColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), habitID, year, month, day, completed)
	case err == nil:
		completed = !completed
		_, err = tx.Exec(`UPDATE completions SET completed = ? WHERE habit_id = ? AND year = ? AND month = ? AND day = ?`,
			completed, habitID, year, month, day)
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle completion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit toggle: %w", err)
	}
	return completed, nil
}

func (s *Store) GetCompletion(habitID string, year, month, day int) (models.CompletionRecord, error) {
	row := s.db.QueryRow(`SELECT `+completionColumns+` FROM completions
		WHERE habit_id = ? AND year = ? AND month = ? AND day = ?`, habitID, year, month, day)
	return scanCompletion(row)
}

func (s *Store) ListCompletions(ctx context.Context, habitID string) ([]models.CompletionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+completionColumns+` FROM completions
		WHERE habit_id = ? ORDER BY year, month, day`, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return collectCompletions(rows)
}

func (s *Store) ListCompletionsForMonth(habitID string, year, month int) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(`SELECT `+completionColumns+` FROM completions
		WHERE habit_id = ? AND year = ? AND month = ? ORDER BY day`, habitID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return collectCompletions(rows)
}

func (s *Store) GetAllCompletions() ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(`SELECT ` + completionColumns + ` FROM completions ORDER BY habit_id, year, month, day`)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return collectCompletions(rows)
}

func (s *Store) ReplaceAll(habits []models.Habit, completions []models.CompletionRecord) error {
	if result := validation.ValidateData(habits, completions); result.HasConflicts() {
		return errors.New(result.FormatReport())
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM completions`); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM habits`); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}

	for _, h := range habits {
		if _, err := tx.Exec(`INSERT INTO habits (id, name, created_at) VALUES (?, ?, ?)`,
			h.ID, h.Name, h.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("failed to insert habit %q: %w", h.Name, err)
		}
	}
	for _, c := range completions {
		id := c.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := tx.Exec(`INSERT INTO completions (`+completionColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			id, c.HabitID, c.Year, c.Month, c.Day, c.Completed); err != nil {
			return fmt.Errorf("failed to insert completion: %w", err)
		}
	}

	return tx.Commit()
}

func scanCompletion(row scanner) (models.CompletionRecord, error) {
	var c models.CompletionRecord
	if err := row.Scan(&c.ID, &c.HabitID, &c.Year, &c.Month, &c.Day, &c.Completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CompletionRecord{}, storage.ErrNotFound
		}
		return models.CompletionRecord{}, err
	}
	return c, nil
}

func collectCompletions(rows *sql.Rows) ([]models.CompletionRecord, error) {
	defer rows.Close()

	var records []models.CompletionRecord
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, c)
	}
	return records, rows.Err()
}
