package analytics

import (
	"math"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/utils"
)

// ConsistencyScore rates a period from 0 to 100 by blending the completion
// ratio, the best run of consecutive days and the regularity of the gaps
// between completions. sortedDates must hold only the period's completed
// dates, ascending.
func ConsistencyScore(completions, daysElapsed int, sortedDates []time.Time, reference time.Time) int {
	if completions == 0 {
		return 0
	}
	// A new period on its first day, already completed.
	if daysElapsed == 1 && completions == 1 {
		return constants.MaxScore
	}

	ratio := float64(completions) / float64(max(daysElapsed, 1))

	streakScore := 0.0
	if len(sortedDates) > 0 {
		streakScore = math.Min(1, float64(longestRun(sortedDates))/constants.TargetStreak)
	}

	gapScore := 1.0
	switch {
	case len(sortedDates) >= 2:
		total := 0
		for i := 1; i < len(sortedDates); i++ {
			total += utils.DayGap(sortedDates[i-1], sortedDates[i])
		}
		avgGap := float64(total) / float64(len(sortedDates)-1)
		if avgGap > 0 {
			gapScore = math.Min(1, 1/avgGap)
		}
	case len(sortedDates) == 1 && daysElapsed > 1:
		sinceLast := utils.DayGap(sortedDates[0], reference)
		if sinceLast != 0 {
			gapScore = math.Max(constants.MinSingleGapScore, 1/float64(sinceLast+1))
		}
	}

	blend := ratio*constants.ConsistencyRatioWeight +
		streakScore*constants.ConsistencyStreakWeight +
		gapScore*constants.ConsistencyGapWeight

	return clampScore(roundHalfUp(blend * constants.MaxScore))
}

// YearlyConsistency is the share of tracked days in year that were
// completed, as a percentage. Tracking starts on the later of January 1
// and the habit's creation day and ends at now, or December 31 for a past
// year. A year that has not started yet scores 0.
func YearlyConsistency(completions, year int, createdAt, now time.Time) int {
	loc := now.Location()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	if created := utils.StartOfDay(createdAt.In(loc)); created.After(start) {
		start = created
	}
	end := utils.StartOfDay(now)
	if yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, loc); yearEnd.Before(end) {
		end = yearEnd
	}

	if end.Before(start) {
		return 0
	}
	days := max(1, utils.DayGap(start, end)+1)
	return clampScore(roundHalfUp(float64(completions) / float64(days) * constants.MaxScore))
}

// roundHalfUp rounds halves toward positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clampScore(score int) int {
	return min(constants.MaxScore, max(0, score))
}
