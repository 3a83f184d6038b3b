package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

var (
	ErrEmptyName      = errors.New("habit name cannot be empty")
	ErrInvalidMonth   = errors.New("month out of range")
	ErrInvalidDay     = errors.New("day out of range for month")
	ErrInvalidYear    = errors.New("year out of range")
	ErrMissingHabitID = errors.New("completion has no habit ID")
)

const (
	minYear = 1970
	maxYear = 9999
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingHabitID     ConflictType = "missing_habit_id"
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictEmptyHabitName     ConflictType = "empty_habit_name"
	ConflictOrphanCompletion   ConflictType = "orphan_completion"
	ConflictDuplicateDay       ConflictType = "duplicate_completion_day"
	ConflictInvalidDate        ConflictType = "invalid_date"
)

// Conflict represents a detected problem in stored habit data
type Conflict struct {
	Type        ConflictType
	Description string
	HabitID     string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// NormalizeHabitName trims a habit name and rejects empty results.
func NormalizeHabitName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyName
	}
	return trimmed, nil
}

// ValidateDate checks a (year, zero-based month, day) triple.
func ValidateDate(year, month, day int) error {
	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if month < 0 || month >= constants.MonthsPerYear {
		return fmt.Errorf("%w: %d (expected 0-11)", ErrInvalidMonth, month)
	}
	if days := utils.DaysInMonth(year, month); day < 1 || day > days {
		return fmt.Errorf("%w: %d (month has %d days)", ErrInvalidDay, day, days)
	}
	return nil
}

// ValidateCompletion checks the fields of a single record.
func ValidateCompletion(c models.CompletionRecord) error {
	if c.HabitID == "" {
		return ErrMissingHabitID
	}
	return ValidateDate(c.Year, c.Month, c.Day)
}

type dayKey struct {
	habitID          string
	year, month, day int
}

// ValidateData checks a full data set for the invariants storage relies on:
// unique non-empty habit IDs and names, completions that reference a known
// habit, valid dates, and at most one record per habit and day.
func ValidateData(habits []models.Habit, completions []models.CompletionRecord) ValidationResult {
	var result ValidationResult

	known := make(map[string]bool, len(habits))
	names := make(map[string]bool, len(habits))
	for _, h := range habits {
		if h.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingHabitID,
				Description: fmt.Sprintf("habit %q has no ID", h.Name),
			})
		} else {
			known[h.ID] = true
		}

		name := strings.TrimSpace(h.Name)
		if name == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyHabitName,
				Description: fmt.Sprintf("habit %s has an empty name", h.ID),
				HabitID:     h.ID,
			})
			continue
		}
		if names[name] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("habit name %q is used more than once", name),
				HabitID:     h.ID,
			})
		}
		names[name] = true
	}

	seen := make(map[dayKey]bool, len(completions))
	for _, c := range completions {
		if !known[c.HabitID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanCompletion,
				Description: fmt.Sprintf("completion on %04d-%02d-%02d references unknown habit %q", c.Year, c.Month+1, c.Day, c.HabitID),
				HabitID:     c.HabitID,
			})
		}
		if err := ValidateDate(c.Year, c.Month, c.Day); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("completion for habit %q: %v", c.HabitID, err),
				HabitID:     c.HabitID,
			})
			continue
		}
		key := dayKey{c.HabitID, c.Year, c.Month, c.Day}
		if seen[key] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateDay,
				Description: fmt.Sprintf("habit %q has more than one record for %04d-%02d-%02d", c.HabitID, c.Year, c.Month+1, c.Day),
				HabitID:     c.HabitID,
			})
		}
		seen[key] = true
	}

	return result
}
