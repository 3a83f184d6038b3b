package stats

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/habitlit/internal/analytics"
	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
)

type StatsCmd struct {
	Year  int `help:"Year to report on (default: current year)."`
	Month int `help:"Month to report on, 1-12 (default: current month)."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	now := ctx.Clock()
	period, err := cli.ResolvePeriod(c.Year, c.Month, now)
	if err != nil {
		return err
	}

	report, err := load(ctx, period, period.Year, now)
	if err != nil {
		return err
	}

	fmt.Printf("Habit statistics for %s\n", period.Label())
	if len(report.Stats) == 0 {
		fmt.Println("No habits to report on.")
		return nil
	}
	fmt.Println(cli.StatsTable(report.Stats))
	return nil
}

type BreakdownCmd struct {
	Year int `help:"Year to break down (default: current year)."`
}

func (c *BreakdownCmd) Run(ctx *cli.Context) error {
	now := ctx.Clock()
	period := analytics.CurrentPeriod(now)
	year := period.Year
	if c.Year != 0 {
		year = c.Year
	}

	report, err := load(ctx, period, year, now)
	if err != nil {
		return err
	}

	fmt.Printf("Monthly breakdown for %d\n", year)
	if len(report.Stats) == 0 {
		fmt.Println("No habits to report on.")
		return nil
	}
	fmt.Println(cli.BreakdownTable(report.Breakdown, habitNames(report.Stats)))
	return nil
}

type SummaryCmd struct {
	Year  int `help:"Year to summarize (default: current year)."`
	Month int `help:"Month to summarize, 1-12 (default: current month)."`
}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	now := ctx.Clock()
	period, err := cli.ResolvePeriod(c.Year, c.Month, now)
	if err != nil {
		return err
	}

	report, err := load(ctx, period, period.Year, now)
	if err != nil {
		return err
	}

	fmt.Printf("Summary for %s\n", period.Label())
	for _, line := range cli.SummaryLines(report.Summary) {
		fmt.Println("  " + line)
	}
	return nil
}

// load builds the report with the same now the caller used to pick period.
func load(ctx *cli.Context, period analytics.Period, breakdownYear int, now time.Time) (analytics.Report, error) {
	loadCtx, cancel := context.WithTimeout(context.Background(), constants.LoadTimeout)
	defer cancel()

	report, err := ctx.Loader().Load(loadCtx, period, breakdownYear, now)
	if err != nil {
		return analytics.Report{}, err
	}
	for _, f := range report.Failures {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", f)
	}
	return report, nil
}

func habitNames(stats []models.HabitStats) []string {
	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.HabitName)
	}
	return names
}
