package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/validation"
)

const habitColumns = `id, name, created_at`

func (s *Store) AddHabit(habit models.Habit) error {
	name, err := validation.NormalizeHabitName(habit.Name)
	if err != nil {
		return err
	}
	if habit.ID == "" {
		return fmt.Errorf("habit %q has no ID", name)
	}

	_, err = s.db.Exec(`INSERT INTO habits (id, name, created_at) VALUES ($1, $2, $3)`,
		habit.ID, name, habit.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", storage.ErrDuplicateName, name)
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	return scanHabit(s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1`, id))
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	return scanHabit(s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE name = $1`, strings.TrimSpace(name)))
}

func (s *Store) ListHabits(ctx context.Context) ([]models.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+habitColumns+` FROM habits ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) RenameHabit(id, name string) error {
	name, err := validation.NormalizeHabitName(name)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`UPDATE habits SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", storage.ErrDuplicateName, name)
		}
		return fmt.Errorf("failed to rename habit: %w", err)
	}
	return expectOneRow(res)
}

func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM completions WHERE habit_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete completions: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	if err := row.Scan(&h.ID, &h.Name, &h.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, storage.ErrNotFound
		}
		return models.Habit{}, err
	}
	h.CreatedAt = h.CreatedAt.UTC()
	return h, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
