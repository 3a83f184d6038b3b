package models

import "time"

// HabitStats is derived from a habit's completion history for one
// reporting period. It is recomputed on every request and never persisted.
type HabitStats struct {
	HabitID            string
	HabitName          string
	CurrentStreak      int
	BestStreak         int
	BestStreakStart    *time.Time
	TotalCompletions   int // completions in the period's year
	MonthlyCompletions int // completions in the period's month
	MonthlyConsistency int
	YearlyConsistency  int
	DaysSinceCreation  int
}

// MonthBreakdown holds per-habit completion counts for one month,
// keyed by habit name.
type MonthBreakdown struct {
	Month  string
	Counts map[string]int
}

// Summary aggregates stats across habits. Each pointer is nil when there
// are no stats.
type Summary struct {
	BestStreak               *HabitStats
	MostCompletedThisMonth   *HabitStats
	MostCompletedThisYear    *HabitStats
	TotalCompletionsThisYear int
}
