package analytics

import "github.com/julianstephens/habitlit/internal/models"

// Summarize picks the leading habits across stats. On ties the habit that
// appears first wins.
func Summarize(stats []models.HabitStats) models.Summary {
	var summary models.Summary
	for i := range stats {
		s := &stats[i]
		if summary.BestStreak == nil || s.BestStreak > summary.BestStreak.BestStreak {
			summary.BestStreak = s
		}
		if summary.MostCompletedThisMonth == nil || s.MonthlyCompletions > summary.MostCompletedThisMonth.MonthlyCompletions {
			summary.MostCompletedThisMonth = s
		}
		if summary.MostCompletedThisYear == nil || s.TotalCompletions > summary.MostCompletedThisYear.TotalCompletions {
			summary.MostCompletedThisYear = s
		}
		summary.TotalCompletionsThisYear += s.TotalCompletions
	}
	return summary
}
