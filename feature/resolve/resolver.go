package resolve

import (
	"context"
	"regexp"
	"strconv"

	"nutrient-sync/core/logger"
	"nutrient-sync/core/models"

	"go.uber.org/zap"
)

// detailsPattern matches an FDC detail page URL and captures the FDC ID.
var detailsPattern = regexp.MustCompile(`food-details/(\d+)/nutrients`)

// Prompter asks an operator for the FDC ID of a food.
// ok is false when the operator chose to skip the food.
type Prompter interface {
	Prompt(ctx context.Context, food *models.Food) (id int, ok bool, err error)
}

// Resolver derives the FDC ID of a catalog food.
type Resolver struct {
	prompter Prompter
	logger   *zap.Logger
}

// NewResolver creates a resolver. A nil prompter disables interactive input.
func NewResolver(prompter Prompter, logger *zap.Logger) *Resolver {
	return &Resolver{prompter: prompter, logger: logger}
}

// Resolve returns the FDC ID of food using, in order: the id embedded in the
// source URL, the stored FDC ID field, and the operator prompt.
// The URL wins even when the stored field holds a different id.
func (r *Resolver) Resolve(ctx context.Context, food *models.Food) (int, bool) {
	l := logger.WithFood(r.logger, food)

	if id, ok := FromURL(food.SourceURL); ok {
		if food.CrossRefID != nil && *food.CrossRefID != id {
			l.Debug("URL FDC ID overrides stored FDC ID", zap.Int("url_fdc_id", id), zap.Int("stored_fdc_id", *food.CrossRefID))
		}
		l.Debug("Found FDC ID in URL", zap.Int("fdc_id", id))
		return id, true
	}

	if food.CrossRefID != nil {
		l.Debug("Found FDC ID in FDC ID field", zap.Int("fdc_id", *food.CrossRefID))
		return *food.CrossRefID, true
	}

	if r.prompter == nil {
		return 0, false
	}

	id, ok, err := r.prompter.Prompt(ctx, food)
	if err != nil {
		l.Warn("Reading FDC ID from console failed", zap.Error(err))
		return 0, false
	}
	if ok {
		l.Debug("FDC ID entered by operator", zap.Int("fdc_id", id))
	}
	return id, ok
}

// FromURL extracts the FDC ID from an FDC detail page URL.
func FromURL(url *string) (int, bool) {
	if url == nil {
		return 0, false
	}
	m := detailsPattern.FindStringSubmatch(*url)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		// Digits that overflow int are not a usable id.
		return 0, false
	}
	return id, true
}
