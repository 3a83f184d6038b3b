package habits

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitlit/internal/analytics"
	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/utils"
)

type MarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}

	now := ctx.Clock()
	day := utils.StartOfDay(now)
	if c.Date != "" {
		day, err = utils.ParseDay(c.Date, now.Location())
		if err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
		}
	}

	completed, err := ctx.Store.ToggleCompletion(habit.ID, day.Year(), int(day.Month())-1, day.Day())
	if err != nil {
		return err
	}

	state := "not done"
	if completed {
		state = "done"
	}
	fmt.Printf("✓ %s marked %s for %s\n", habit.Name, state, day.Format(constants.DateFormat))

	records, err := ctx.Store.ListCompletions(context.Background(), habit.ID)
	if err != nil {
		return err
	}
	streaks := analytics.HistoryStreaks(records, now)
	fmt.Printf("  Current streak: %d  Best streak: %d\n", streaks.Current, streaks.Best)
	return nil
}
