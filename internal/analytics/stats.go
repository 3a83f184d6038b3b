package analytics

import (
	"math"
	"slices"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

// ComputeStats derives per-habit stats for period. Streaks span the whole
// history and are anchored at now; totals cover period.Year; consistency
// covers period.Month. Habits without an ID are skipped.
func ComputeStats(histories []models.HabitHistory, period Period, now time.Time) []models.HabitStats {
	loc := now.Location()
	daysElapsed := period.DaysElapsed(now)
	reference := period.Reference(now)

	stats := make([]models.HabitStats, 0, len(histories))
	for _, h := range histories {
		if h.Habit.ID == "" {
			continue
		}

		var allDates, monthDates []time.Time
		yearly := 0
		for _, c := range h.Completions {
			if !c.Completed {
				continue
			}
			d := c.Date(loc)
			allDates = append(allDates, d)
			if c.Year == period.Year {
				yearly++
			}
			if period.Contains(c) {
				monthDates = append(monthDates, d)
			}
		}
		sortDates(allDates)
		sortDates(monthDates)

		streaks := Streaks(allDates, now)
		monthly := len(monthDates)

		stats = append(stats, models.HabitStats{
			HabitID:            h.Habit.ID,
			HabitName:          h.Habit.Name,
			CurrentStreak:      streaks.Current,
			BestStreak:         streaks.Best,
			BestStreakStart:    streaks.BestStart,
			TotalCompletions:   yearly,
			MonthlyCompletions: monthly,
			MonthlyConsistency: ConsistencyScore(monthly, daysElapsed, monthDates, reference),
			YearlyConsistency:  YearlyConsistency(yearly, period.Year, h.Habit.CreatedAt, now),
			DaysSinceCreation:  DaysSinceCreation(h.Habit.CreatedAt, now),
		})
	}
	return stats
}

// DaysSinceCreation is the number of whole days between createdAt and now,
// never less than 1.
func DaysSinceCreation(createdAt, now time.Time) int {
	days := math.Floor(now.Sub(createdAt).Hours() / 24)
	return max(1, int(days))
}

func sortDates(dates []time.Time) {
	slices.SortFunc(dates, func(a, b time.Time) int {
		return a.Compare(b)
	})
}

// completedDates returns the completed dates of records, ascending.
func completedDates(records []models.CompletionRecord, loc *time.Location) []time.Time {
	var dates []time.Time
	for _, c := range records {
		if c.Completed {
			dates = append(dates, c.Date(loc))
		}
	}
	sortDates(dates)
	return dates
}

// HistoryStreaks is a convenience for callers holding raw records.
func HistoryStreaks(records []models.CompletionRecord, now time.Time) StreakResult {
	return Streaks(completedDates(records, now.Location()), utils.StartOfDay(now))
}
