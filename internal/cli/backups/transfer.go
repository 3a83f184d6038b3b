package backups

import (
	"context"
	"fmt"
	"os"

	"github.com/julianstephens/habitlit/internal/backup"
	"github.com/julianstephens/habitlit/internal/cli"
)

type ExportCmd struct {
	Out string `short:"o" help:"Output file (default: habit-tracker-backup-YYYY-MM-DD.json in the working directory). Use - for stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.ListHabits(context.Background())
	if err != nil {
		return err
	}
	completions, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return err
	}

	now := ctx.Clock()
	if c.Out == "-" {
		return backup.Export(os.Stdout, habits, completions, now)
	}

	path := c.Out
	if path == "" {
		path = backup.DefaultFilename(now)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := backup.Export(f, habits, completions, now); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	fmt.Printf("✓ Exported %d habits and %d completions to %s\n", len(habits), len(completions), path)
	return nil
}

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON backup file to import. Replaces all current data."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	doc, err := backup.Decode(f)
	if err != nil {
		return err
	}
	habits, completions := backup.Remap(doc)

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.ReplaceAll(habits, completions); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("✓ Imported %d habits and %d completions\n", len(habits), len(completions))
	return nil
}
