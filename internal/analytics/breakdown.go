package analytics

import (
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
)

// MonthlyBreakdown counts completions per habit for each month of year,
// January first. Every month is present, including those not yet reached.
func MonthlyBreakdown(histories []models.HabitHistory, year int) []models.MonthBreakdown {
	months := make([]models.MonthBreakdown, constants.MonthsPerYear)
	for m := range months {
		months[m] = models.MonthBreakdown{
			Month:  constants.MonthLabels[m],
			Counts: make(map[string]int, len(histories)),
		}
	}

	for _, h := range histories {
		if h.Habit.ID == "" {
			continue
		}
		for m := range months {
			months[m].Counts[h.Habit.Name] = 0
		}
		for _, c := range h.Completions {
			if !c.Completed || c.Year != year || c.Month < 0 || c.Month >= constants.MonthsPerYear {
				continue
			}
			months[c.Month].Counts[h.Habit.Name]++
		}
	}
	return months
}
