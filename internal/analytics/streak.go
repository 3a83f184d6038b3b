package analytics

import (
	"time"

	"github.com/julianstephens/habitlit/internal/utils"
)

// StreakResult holds the current and best streak of one habit.
// BestStart is nil when there are no completions.
type StreakResult struct {
	Current   int
	Best      int
	BestStart *time.Time
}

// Streaks computes streaks from completed dates sorted ascending.
// The current streak only counts if the last completion is today or
// yesterday relative to today. When several runs share the best length,
// the most recent one is reported.
func Streaks(sortedDates []time.Time, today time.Time) StreakResult {
	if len(sortedDates) == 0 {
		return StreakResult{}
	}

	best := 0
	var bestStart time.Time
	run := 1
	runStart := utils.StartOfDay(sortedDates[0])

	for i := 1; i < len(sortedDates); i++ {
		gap := utils.DayGap(sortedDates[i-1], sortedDates[i])
		switch {
		case gap == 1:
			run++
		case gap > 1:
			// >= so that a later run of equal length replaces the earlier one
			if run >= best {
				best = run
				bestStart = runStart
			}
			run = 1
			runStart = utils.StartOfDay(sortedDates[i])
		}
	}
	if run >= best {
		best = run
		bestStart = runStart
	}

	return StreakResult{
		Current:   currentStreak(sortedDates, today),
		Best:      best,
		BestStart: &bestStart,
	}
}

func currentStreak(sortedDates []time.Time, today time.Time) int {
	last := sortedDates[len(sortedDates)-1]
	sinceLast := utils.DayGap(last, today)
	if sinceLast != 0 && sinceLast != 1 {
		return 0
	}

	streak := 1
	for i := len(sortedDates) - 2; i >= 0; i-- {
		gap := utils.DayGap(sortedDates[i], sortedDates[i+1])
		if gap == 0 {
			continue
		}
		if gap != 1 {
			break
		}
		streak++
	}
	return streak
}

// longestRun returns the length of the longest run of consecutive days.
// It is at least 1 for any input.
func longestRun(sortedDates []time.Time) int {
	longest := 1
	run := 1
	for i := 1; i < len(sortedDates); i++ {
		gap := utils.DayGap(sortedDates[i-1], sortedDates[i])
		switch {
		case gap == 1:
			run++
		case gap > 1:
			longest = max(longest, run)
			run = 1
		}
	}
	return max(longest, run)
}
