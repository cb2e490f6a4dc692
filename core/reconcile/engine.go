package reconcile

import (
	"context"
	"time"

	"nutrient-sync/core/logger"
	"nutrient-sync/core/models"

	"go.uber.org/zap"
)

const (
	// DefaultLowWaterMark is the remaining FDC budget under which pipelines cool down.
	DefaultLowWaterMark = 20
	// DefaultCooldown is the pause applied under the low-water mark.
	DefaultCooldown = 60 * time.Second
)

// Engine runs the per-food reconcile pipeline.
// The dictionary and options are shared read-only by all pipelines.
type Engine struct {
	catalog  Catalog
	lookup   Lookup
	resolver Resolver
	dict     *models.Dictionary
	opts     Options
	throttle *Throttle
	logger   *zap.Logger
}

// NewEngine creates an engine. Zero LowWaterMark and Cooldown take their defaults.
func NewEngine(catalog Catalog, lookup Lookup, resolver Resolver, dict *models.Dictionary, opts Options, logger *zap.Logger) *Engine {
	if opts.LowWaterMark == 0 {
		opts.LowWaterMark = DefaultLowWaterMark
	}
	if opts.Cooldown == 0 {
		opts.Cooldown = DefaultCooldown
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	return &Engine{
		catalog:  catalog,
		lookup:   lookup,
		resolver: resolver,
		dict:     dict,
		opts:     opts,
		throttle: NewThrottle(opts.LowWaterMark, opts.Cooldown, opts.Clock),
		logger:   logger,
	}
}

// Process reconciles a single food: skip-check, resolve, lookup, merge, push, throttle.
// food is the pipeline's own copy. Failures are logged and returned as an outcome,
// never as an error.
func (e *Engine) Process(ctx context.Context, food models.Food) Result {
	l := logger.WithFood(e.logger, &food)
	result := Result{FoodID: food.ID, Name: food.Name}

	if !e.opts.Override && len(food.Properties) == e.dict.Total() {
		l.Debug("Food already has every property, skipping")
		result.Outcome = OutcomeAlreadyUpToDate
		return result
	}

	id, ok := e.resolver.Resolve(ctx, &food)
	if !ok {
		l.Warn("Food does not have a FDC ID and will not be updated")
		result.Outcome = OutcomeNoCrossRefID
		return result
	}
	result.CrossRefID = id

	if err := e.throttle.Wait(ctx); err != nil {
		return e.fail(l, result, OutcomeLookupFailed, err, "Waiting for the FDC rate limit cooldown was interrupted")
	}

	external, remaining, err := e.lookup.FetchFood(ctx, id)
	if err != nil {
		return e.fail(l, result, OutcomeLookupFailed, err, "Error fetching food properties from the FDC database")
	}
	e.throttle.Observe(remaining)
	food.CrossRefID = models.IntPtr(id)
	l.Debug("Fetched properties from FDC", zap.Int("fdc_id", id), zap.Int("nutrients", len(external.Nutrients)))

	food.Properties = Merge(food.Properties, external.Nutrients, e.opts.Override)
	result.Properties = len(food.Properties)

	if e.opts.DryRun {
		l.Info("Dry-run: food would be updated", zap.Int("properties", result.Properties))
		result.Outcome = OutcomeWouldUpdate
	} else {
		if err := e.catalog.PushFood(ctx, &food); err != nil {
			return e.fail(l, result, OutcomePushFailed, err, "Error updating food")
		}
		l.Info("Successfully updated food", zap.Int("properties", result.Properties))
		result.Outcome = OutcomeUpdated
	}

	if e.throttle.Low(remaining) {
		l.Info("Few FDC requests left before being rate limited, cooling down",
			zap.Int("requests_left", remaining),
			zap.Duration("cooldown", e.throttle.Duration()),
		)
		if err := e.throttle.Cooldown(ctx); err != nil {
			l.Warn("Cooldown interrupted", zap.Error(err))
		}
	}

	return result
}

func (e *Engine) fail(l *zap.Logger, result Result, outcome Outcome, err error, msg string) Result {
	l.Warn(msg, zap.Int("fdc_id", result.CrossRefID), zap.Error(err))
	result.Outcome = outcome
	result.Error = err.Error()
	return result
}
