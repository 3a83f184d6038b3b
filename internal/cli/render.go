package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// NewTable returns a table styled like the rest of the CLI output.
func NewTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// StatsTable renders per-habit statistics.
func StatsTable(stats []models.HabitStats) string {
	t := NewTable("Habit", "Current", "Best", "Best since", "Month", "Total", "Consistency", "Year", "Days")
	for _, s := range stats {
		t.Row(
			s.HabitName,
			strconv.Itoa(s.CurrentStreak),
			strconv.Itoa(s.BestStreak),
			FormatStreakStart(s),
			strconv.Itoa(s.MonthlyCompletions),
			strconv.Itoa(s.TotalCompletions),
			fmt.Sprintf("%d%%", s.MonthlyConsistency),
			fmt.Sprintf("%d%%", s.YearlyConsistency),
			strconv.Itoa(s.DaysSinceCreation),
		)
	}
	return t.String()
}

// FormatStreakStart renders the best streak start date, or "-" when unset.
func FormatStreakStart(s models.HabitStats) string {
	if s.BestStreakStart == nil {
		return "-"
	}
	return s.BestStreakStart.Format(constants.LongDateFormat)
}

// BreakdownTable renders one row per month and one column per habit.
func BreakdownTable(breakdown []models.MonthBreakdown, habitNames []string) string {
	headers := append([]string{"Month"}, habitNames...)
	t := NewTable(headers...)
	for _, mb := range breakdown {
		row := []string{mb.Month}
		for _, name := range habitNames {
			row = append(row, strconv.Itoa(mb.Counts[name]))
		}
		t.Row(row...)
	}
	return t.String()
}

// SummaryLines renders the cross-habit highlights.
func SummaryLines(summary models.Summary) []string {
	line := func(label string, s *models.HabitStats, value func(*models.HabitStats) string) string {
		if s == nil {
			return fmt.Sprintf("%-26s -", label)
		}
		return fmt.Sprintf("%-26s %s (%s)", label, s.HabitName, value(s))
	}
	return []string{
		line("Best streak:", summary.BestStreak, func(s *models.HabitStats) string {
			return fmt.Sprintf("%d days", s.BestStreak)
		}),
		line("Most completed (month):", summary.MostCompletedThisMonth, func(s *models.HabitStats) string {
			return fmt.Sprintf("%d completions", s.MonthlyCompletions)
		}),
		line("Most completed (year):", summary.MostCompletedThisYear, func(s *models.HabitStats) string {
			return fmt.Sprintf("%d completions", s.TotalCompletions)
		}),
		fmt.Sprintf("%-26s %d", "Completions this year:", summary.TotalCompletionsThisYear),
	}
}
