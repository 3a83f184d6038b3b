package models

import "time"

// Habit represents a daily practice to track
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CompletionRecord is the state of one habit on one calendar day.
// Month is zero-based (0 = January) to match the stored and exported format.
type CompletionRecord struct {
	ID        string `json:"id"`
	HabitID   string `json:"habit_id"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	Completed bool   `json:"completed"`
}

// Date returns local midnight of the record's day in loc.
func (c CompletionRecord) Date(loc *time.Location) time.Time {
	return time.Date(c.Year, time.Month(c.Month+1), c.Day, 0, 0, 0, 0, loc)
}

// HabitHistory pairs a habit with every completion record stored for it.
type HabitHistory struct {
	Habit       Habit
	Completions []CompletionRecord
}
