package catalog

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"nutrient-sync/core/errors"
	"nutrient-sync/core/httpclient"
	"nutrient-sync/core/models"

	"go.uber.org/zap"
)

// page is one page of a paginated catalog listing.
type page[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// foodUpdate is the partial update body sent for a food.
type foodUpdate struct {
	Name       string           `json:"name"`
	CrossRefID *int             `json:"fdc_id,omitempty"`
	Properties []propertyUpdate `json:"properties"`
}

type propertyUpdate struct {
	Amount       models.Amount   `json:"property_amount"`
	PropertyType propertyTypeRef `json:"property_type"`
}

// propertyTypeRef references a property type by name, which is how the catalog resolves it.
type propertyTypeRef struct {
	Name string `json:"name"`
}

// Client talks to the catalog API.
type Client struct {
	http    *httpclient.Client
	baseURL string
	variant Variant
	header  http.Header
	logger  *zap.Logger
}

// NewClient creates a catalog client. The variant is validated here, once.
func NewClient(cfg Config, logger *zap.Logger, opts ...httpclient.Option) (*Client, error) {
	variant, err := ParseVariant(cfg.Variant)
	if err != nil {
		return nil, &errors.ConfigError{Field: "catalog.variant", Message: err.Error()}
	}
	if cfg.URL == "" {
		return nil, &errors.ConfigError{Field: "catalog.url", Message: "required"}
	}

	return &Client{
		http:    httpclient.New(time.Duration(cfg.TimeoutSeconds)*time.Second, opts...),
		baseURL: cfg.BaseURL(),
		variant: variant,
		header:  http.Header{"Authorization": {"Bearer " + cfg.Token}},
		logger:  logger,
	}, nil
}

// Variant returns the API variant the client was built for.
func (c *Client) Variant() Variant {
	return c.variant
}

// FetchPropertyTypes returns every property type defined in the catalog.
// Both a bare JSON array and paginated pages are accepted.
func (c *Client) FetchPropertyTypes(ctx context.Context) ([]models.PropertyType, error) {
	url := c.baseURL + c.variant.PropertyTypePath()
	c.logger.Debug("Loading property types", zap.String("url", url))

	resp, err := c.http.Get(ctx, url, c.header)
	if err != nil {
		return nil, fmt.Errorf("failed to load property types: %w", err)
	}

	if body := bytes.TrimSpace(resp.Body); len(body) > 0 && body[0] == '[' {
		var types []models.PropertyType
		if err := resp.Decode(url, &types); err != nil {
			return nil, fmt.Errorf("failed to decode property types: %w", err)
		}
		return types, nil
	}

	var first page[models.PropertyType]
	if err := resp.Decode(url, &first); err != nil {
		return nil, fmt.Errorf("failed to decode property types: %w", err)
	}
	types, err := collect(ctx, c, "property type", first)
	if err != nil {
		return nil, err
	}
	return types, nil
}

// FetchAllFoods follows the next links of the food listing and returns every food.
// If the accumulated number of foods differs from the declared count a
// ConsistencyError is returned and no foods.
func (c *Client) FetchAllFoods(ctx context.Context) ([]models.Food, error) {
	url := c.baseURL + "food/"
	c.logger.Debug("Loading foods", zap.String("url", url))

	var first page[models.Food]
	if _, err := c.http.GetJSON(ctx, url, c.header, &first); err != nil {
		return nil, fmt.Errorf("failed to load foods: %w", err)
	}
	return collect(ctx, c, "food", first)
}

// collect accumulates the results of first and every following page and
// checks the total against the count declared by the last page.
func collect[T any](ctx context.Context, c *Client, resource string, first page[T]) ([]T, error) {
	items := append([]T(nil), first.Results...)
	declared := first.Count
	next := first.Next
	visited := map[string]struct{}{}

	for next != nil && *next != "" {
		url := *next
		if _, seen := visited[url]; seen {
			return nil, &errors.ProtocolError{URL: url, Message: "pagination cycle detected"}
		}
		visited[url] = struct{}{}

		var p page[T]
		if _, err := c.http.GetJSON(ctx, url, c.header, &p); err != nil {
			return nil, fmt.Errorf("failed to load %s page: %w", resource, err)
		}
		items = append(items, p.Results...)
		declared = p.Count
		next = p.Next
		c.logger.Debug("Loaded page", zap.String("resource", resource), zap.Int("loaded", len(items)), zap.Int("count", declared))
	}

	if len(items) != declared {
		return nil, &errors.ConsistencyError{Resource: resource, Expected: declared, Actual: len(items)}
	}
	return items, nil
}

// PushFood sends a partial update of name and properties (and fdc_id on v2).
// Properties without an amount are sent as zero.
func (c *Client) PushFood(ctx context.Context, food *models.Food) error {
	url := fmt.Sprintf("%sfood/%d/", c.baseURL, food.ID)

	update := foodUpdate{
		Name:       food.Name,
		Properties: make([]propertyUpdate, 0, len(food.Properties)),
	}
	if c.variant.SendsCrossRefID() {
		update.CrossRefID = food.CrossRefID
	}
	for _, p := range food.Properties {
		update.Properties = append(update.Properties, propertyUpdate{
			Amount:       models.Amount(p.Amount.Float64()),
			PropertyType: propertyTypeRef{Name: p.PropertyType.Name},
		})
	}

	c.logger.Debug("Updating food", zap.String("url", url), zap.Int("properties", len(update.Properties)))
	if _, err := c.http.SendJSON(ctx, http.MethodPatch, url, c.header, update); err != nil {
		return &errors.UpdateError{FoodID: food.ID, Err: err}
	}
	return nil
}
