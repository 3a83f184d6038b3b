package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
)

// Source supplies habits and their completion records.
type Source interface {
	// ListHabits returns habits in creation order.
	ListHabits(ctx context.Context) ([]models.Habit, error)
	// ListCompletions returns every record of one habit in no particular order.
	ListCompletions(ctx context.Context, habitID string) ([]models.CompletionRecord, error)
}

// FetchFailure records a habit whose completions could not be read.
// The habit is left out of the report.
type FetchFailure struct {
	HabitID   string
	HabitName string
	Err       error
}

func (f FetchFailure) Error() string {
	return fmt.Sprintf("habit %q: %v", f.HabitName, f.Err)
}

func (f FetchFailure) Unwrap() error { return f.Err }

// Report is everything the presentation layer needs for one view.
type Report struct {
	Period        Period
	BreakdownYear int
	GeneratedAt   time.Time
	Stats         []models.HabitStats
	Breakdown     []models.MonthBreakdown
	Summary       models.Summary
	Failures      []FetchFailure
}

// Loader reads histories from a Source and runs the analytics over them.
type Loader struct {
	source      Source
	concurrency int
}

// NewLoader creates a loader that fetches at most
// constants.MaxConcurrentFetches histories at once.
func NewLoader(source Source) *Loader {
	return &Loader{
		source:      source,
		concurrency: constants.MaxConcurrentFetches,
	}
}

// Histories fetches every habit's completions concurrently. The result
// keeps the source's habit order. A habit whose fetch fails is omitted and
// reported as a FetchFailure; only a failure to list habits, or a
// cancelled context, is returned as an error.
func (l *Loader) Histories(ctx context.Context) ([]models.HabitHistory, []FetchFailure, error) {
	habits, err := l.source.ListHabits(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list habits: %w", err)
	}

	results := make([][]models.CompletionRecord, len(habits))
	errs := make([]error, len(habits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, l.concurrency))
	for i, habit := range habits {
		if habit.ID == "" {
			continue
		}
		g.Go(func() error {
			records, err := l.source.ListCompletions(gctx, habit.ID)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = records
			return nil
		})
	}
	// Per-habit errors are collected in errs; no goroutine fails the group.
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	histories := make([]models.HabitHistory, 0, len(habits))
	var failures []FetchFailure
	for i, habit := range habits {
		if habit.ID == "" {
			continue
		}
		if errs[i] != nil {
			logger.Warn("Omitting habit from report", "habit", habit.Name, "error", errs[i])
			failures = append(failures, FetchFailure{HabitID: habit.ID, HabitName: habit.Name, Err: errs[i]})
			continue
		}
		histories = append(histories, models.HabitHistory{Habit: habit, Completions: results[i]})
	}
	return histories, failures, nil
}

// Load builds a report for period, with the monthly breakdown for
// breakdownYear. now is the single reference instant for every figure.
func (l *Loader) Load(ctx context.Context, period Period, breakdownYear int, now time.Time) (Report, error) {
	histories, failures, err := l.Histories(ctx)
	if err != nil {
		return Report{}, err
	}

	stats := ComputeStats(histories, period, now)
	logger.Debug("Computed habit stats", "period", period.Label(), "habits", len(stats), "failures", len(failures))

	return Report{
		Period:        period,
		BreakdownYear: breakdownYear,
		GeneratedAt:   now,
		Stats:         stats,
		Breakdown:     MonthlyBreakdown(histories, breakdownYear),
		Summary:       Summarize(stats),
		Failures:      failures,
	}, nil
}
