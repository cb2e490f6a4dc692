package reconcile

import (
	"context"

	"nutrient-sync/core/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run processes every food with at most Options.Concurrency pipelines at once
// and returns one result per food, in input order.
// Each pipeline writes only its own result slot; totals are folded afterwards
// with Summarize.
func (e *Engine) Run(ctx context.Context, foods []models.Food) []Result {
	results := make([]Result, len(foods))

	var g errgroup.Group
	g.SetLimit(e.opts.Concurrency)

	e.logger.Info("Processing foods",
		zap.Int("foods", len(foods)),
		zap.Int("concurrency", e.opts.Concurrency),
		zap.Bool("override", e.opts.Override),
		zap.Bool("dry_run", e.opts.DryRun),
	)

	for i := range foods {
		g.Go(func() error {
			results[i] = e.Process(ctx, foods[i])
			return nil
		})
	}

	// Pipelines never return errors.
	_ = g.Wait()

	return results
}
