package habits

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/habitlit/internal/analytics"
	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Rename HabitRenameCmd `cmd:"" help:"Rename a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completion history."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	name, err := validation.NormalizeHabitName(c.Name)
	if err != nil {
		return err
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: ctx.Clock(),
	}
	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("✓ Added habit: %s\n", name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.ListHabits(context.Background())
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'habitlit habit add <name>'.")
		return nil
	}

	now := ctx.Clock()
	t := cli.NewTable("Habit", "Created", "Days")
	for _, h := range habits {
		t.Row(
			h.Name,
			h.CreatedAt.In(now.Location()).Format(constants.DateFormat),
			strconv.Itoa(analytics.DaysSinceCreation(h.CreatedAt, now)),
		)
	}
	fmt.Println(t.String())
	return nil
}

type HabitRenameCmd struct {
	Name    string `arg:"" help:"Current habit name."`
	NewName string `arg:"" help:"New habit name."`
}

func (c *HabitRenameCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.RenameHabit(habit.ID, c.NewName); err != nil {
		return err
	}

	fmt.Printf("✓ Renamed %q to %q\n", habit.Name, c.NewName)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.FindHabit(c.Name)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", habit.Name)).
			Description("All completion history for this habit will be removed.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			WithTheme(huh.ThemeDracula()).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted habit: %s\n", habit.Name)
	return nil
}
