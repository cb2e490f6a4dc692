package reconcile

import (
	"context"
	"time"

	"nutrient-sync/core/models"
)

// Outcome is the terminal state of one food's pipeline.
type Outcome string

const (
	// OutcomeUpdated means the merged food was pushed to the catalog.
	OutcomeUpdated Outcome = "updated"
	// OutcomeWouldUpdate means the food was merged but not pushed (dry-run).
	OutcomeWouldUpdate Outcome = "would_update"
	// OutcomeAlreadyUpToDate means the food already has every known property.
	OutcomeAlreadyUpToDate Outcome = "already_up_to_date"
	// OutcomeNoCrossRefID means no FDC ID could be resolved.
	OutcomeNoCrossRefID Outcome = "no_fdc_id"
	// OutcomeLookupFailed means the FDC lookup failed.
	OutcomeLookupFailed Outcome = "lookup_failed"
	// OutcomePushFailed means the catalog rejected the update.
	OutcomePushFailed Outcome = "push_failed"
)

// Result is the reconciliation output for a single food.
type Result struct {
	// FoodID is the catalog id of the food.
	FoodID int `json:"food_id"`

	// Name is the display name of the food.
	Name string `json:"name"`

	// CrossRefID is the FDC ID used for the lookup, zero if none was resolved.
	CrossRefID int `json:"fdc_id,omitempty"`

	// Outcome is the terminal state of the pipeline.
	Outcome Outcome `json:"outcome"`

	// Properties is the number of properties sent (or that would be sent).
	Properties int `json:"properties,omitempty"`

	// Error describes the failure for failed outcomes.
	Error string `json:"error,omitempty"`
}

// Summary provides aggregate counts for a run.
type Summary struct {
	// Total is the number of foods processed.
	Total int `json:"total"`

	// Updated counts foods pushed to the catalog.
	Updated int `json:"updated"`

	// WouldUpdate counts foods merged during a dry-run.
	WouldUpdate int `json:"would_update"`

	// NotUpdated counts lookup and push failures.
	NotUpdated int `json:"not_updated"`

	// NoCrossRefID counts foods without a resolvable FDC ID.
	NoCrossRefID int `json:"no_fdc_id"`

	// AlreadyUpToDate counts foods skipped because they already have every property.
	AlreadyUpToDate int `json:"already_up_to_date"`
}

// Summarize folds per-food results into run totals.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Outcome {
		case OutcomeUpdated:
			s.Updated++
		case OutcomeWouldUpdate:
			s.WouldUpdate++
		case OutcomeAlreadyUpToDate:
			s.AlreadyUpToDate++
		case OutcomeNoCrossRefID:
			s.NoCrossRefID++
		case OutcomeLookupFailed, OutcomePushFailed:
			s.NotUpdated++
		}
	}
	return s
}

// Options controls reconcile behavior.
type Options struct {
	// Override replaces every existing property with the FDC values.
	// If false, only properties missing from the food are added.
	Override bool

	// DryRun merges properties but never pushes them.
	DryRun bool

	// Concurrency bounds the number of pipelines running at once.
	// Values below one mean one.
	Concurrency int

	// LowWaterMark is the remaining request budget below which pipelines cool down.
	LowWaterMark int

	// Cooldown is the pause applied once the budget falls below LowWaterMark.
	Cooldown time.Duration

	// Clock is used for throttling. If nil, the wall clock is used.
	Clock Clock
}

// Catalog pushes updated foods to the catalog.
type Catalog interface {
	PushFood(ctx context.Context, food *models.Food) error
}

// Lookup fetches a food from the external provider together with the remaining request budget.
// Returned nutrients are already filtered and renamed to catalog names.
type Lookup interface {
	FetchFood(ctx context.Context, crossRefID int) (*models.ExternalFood, int, error)
}

// Resolver derives the FDC ID of a food. ok is false when none is available.
type Resolver interface {
	Resolve(ctx context.Context, food *models.Food) (id int, ok bool)
}
