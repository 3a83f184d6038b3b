package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
)

// ErrInvalidFormat is returned when an import file lacks habits or completions.
var ErrInvalidFormat = errors.New("invalid backup file format")

// ID is a record identifier that decodes from either a JSON string or a
// JSON number. Older exports used auto-increment numeric IDs.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// HabitEntry is the exported form of a habit.
type HabitEntry struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CompletionEntry is the exported form of a completion record.
// Month is zero-based.
type CompletionEntry struct {
	ID        ID   `json:"id,omitempty"`
	HabitID   ID   `json:"habitId"`
	Year      int  `json:"year"`
	Month     int  `json:"month"`
	Day       int  `json:"day"`
	Completed bool `json:"completed"`
}

// Document is the top-level JSON backup file.
type Document struct {
	Version     int               `json:"version"`
	ExportedAt  time.Time         `json:"exportedAt"`
	Habits      []HabitEntry      `json:"habits"`
	Completions []CompletionEntry `json:"completions"`
}

// DefaultFilename returns the suggested export file name for now.
func DefaultFilename(now time.Time) string {
	return constants.ExportFilePrefix + now.UTC().Format(constants.DateFormat) + constants.ExportFileSuffix
}

// Export writes habits and completions as an indented JSON document.
func Export(w io.Writer, habits []models.Habit, completions []models.CompletionRecord, now time.Time) error {
	doc := Document{
		Version:     constants.ExportVersion,
		ExportedAt:  now.UTC(),
		Habits:      make([]HabitEntry, 0, len(habits)),
		Completions: make([]CompletionEntry, 0, len(completions)),
	}
	for _, h := range habits {
		doc.Habits = append(doc.Habits, HabitEntry{
			ID:        ID(h.ID),
			Name:      h.Name,
			CreatedAt: h.CreatedAt.UTC(),
		})
	}
	for _, c := range completions {
		doc.Completions = append(doc.Completions, CompletionEntry{
			ID:        ID(c.ID),
			HabitID:   ID(c.HabitID),
			Year:      c.Year,
			Month:     c.Month,
			Day:       c.Day,
			Completed: c.Completed,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Decode reads a JSON backup. Files without a habits or completions array
// are rejected with ErrInvalidFormat.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if doc.Habits == nil || doc.Completions == nil {
		return Document{}, ErrInvalidFormat
	}
	return doc, nil
}

// Remap converts a decoded document into records with fresh IDs.
// Completion habit IDs are rewritten through the old-to-new mapping;
// IDs with no matching habit are kept as they are.
func Remap(doc Document) ([]models.Habit, []models.CompletionRecord) {
	idMap := make(map[ID]string, len(doc.Habits))
	habits := make([]models.Habit, 0, len(doc.Habits))
	for _, h := range doc.Habits {
		newID := uuid.New().String()
		idMap[h.ID] = newID
		habits = append(habits, models.Habit{
			ID:        newID,
			Name:      strings.TrimSpace(h.Name),
			CreatedAt: h.CreatedAt,
		})
	}

	completions := make([]models.CompletionRecord, 0, len(doc.Completions))
	for _, c := range doc.Completions {
		habitID, ok := idMap[c.HabitID]
		if !ok {
			habitID = string(c.HabitID)
		}
		completions = append(completions, models.CompletionRecord{
			ID:        uuid.New().String(),
			HabitID:   habitID,
			Year:      c.Year,
			Month:     c.Month,
			Day:       c.Day,
			Completed: c.Completed,
		})
	}
	return habits, completions
}
