package fdc

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nutrient-sync/core/errors"
	"nutrient-sync/core/httpclient"
	"nutrient-sync/core/models"

	"go.uber.org/zap"
)

// RateLimitHeader carries the number of requests left before the key is rate limited.
const RateLimitHeader = "X-RateLimit-Remaining"

// food is the FDC wire shape of a food record.
type food struct {
	FDCID         int        `json:"fdcId"`
	FoodNutrients []nutrient `json:"foodNutrients"`
}

// nutrient accepts both the full shape ({"amount", "nutrient": {"id", "name"}})
// and the abridged shape ({"nutrientId", "nutrientName", "value"}).
type nutrient struct {
	Amount   *float64 `json:"amount"`
	Nutrient *struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"nutrient"`
	NutrientID   int      `json:"nutrientId"`
	NutrientName string   `json:"nutrientName"`
	Value        *float64 `json:"value"`
}

func (n nutrient) toModel() (models.ExternalNutrient, bool) {
	if n.Nutrient != nil {
		return models.ExternalNutrient{Amount: n.Amount, NutrientID: n.Nutrient.ID, NutrientName: n.Nutrient.Name}, true
	}
	if n.NutrientID != 0 {
		amount := n.Amount
		if amount == nil {
			amount = n.Value
		}
		return models.ExternalNutrient{Amount: amount, NutrientID: n.NutrientID, NutrientName: n.NutrientName}, true
	}
	return models.ExternalNutrient{}, false
}

// Client looks up foods in FoodData Central.
type Client struct {
	http    *httpclient.Client
	baseURL string
	header  http.Header
	dict    *models.Dictionary
	logger  *zap.Logger
}

// NewClient creates a lookup client. Fetched nutrients are filtered and renamed with dict.
func NewClient(cfg Config, dict *models.Dictionary, logger *zap.Logger, opts ...httpclient.Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &errors.ConfigError{Field: "provider.api_key", Message: "required"}
	}
	if dict == nil {
		return nil, fmt.Errorf("fdc client requires a nutrient dictionary")
	}

	return &Client{
		http:    httpclient.New(time.Duration(cfg.TimeoutSeconds)*time.Second, opts...),
		baseURL: strings.TrimRight(cfg.URL, "/"),
		header:  http.Header{"X-Api-Key": {cfg.APIKey}},
		dict:    dict,
		logger:  logger,
	}, nil
}

// FetchFood loads the food with the given FDC ID and returns it together with the
// remaining request budget. Only nutrients tracked by the dictionary are kept, under
// their catalog names. A missing budget header counts as zero requests left.
func (c *Client) FetchFood(ctx context.Context, crossRefID int) (*models.ExternalFood, int, error) {
	url := fmt.Sprintf("%s/food/%d", c.baseURL, crossRefID)
	c.logger.Debug("Loading food from FDC", zap.String("url", url))

	var f food
	header, err := c.http.GetJSON(ctx, url, c.header, &f)
	if err != nil {
		return nil, 0, &errors.LookupError{CrossRefID: crossRefID, Err: err}
	}

	remaining := c.remaining(header)

	nutrients := make([]models.ExternalNutrient, 0, len(f.FoodNutrients))
	for _, n := range f.FoodNutrients {
		if m, ok := n.toModel(); ok {
			nutrients = append(nutrients, m)
		}
	}

	result := &models.ExternalFood{
		CrossRefID: crossRefID,
		Nutrients:  c.dict.Filter(nutrients),
	}
	c.logger.Debug("Loaded food from FDC",
		zap.Int("fdc_id", crossRefID),
		zap.Int("nutrients", len(nutrients)),
		zap.Int("tracked", len(result.Nutrients)),
		zap.Int("requests_left", remaining),
	)
	return result, remaining, nil
}

func (c *Client) remaining(header http.Header) int {
	raw := header.Get(RateLimitHeader)
	if raw == "" {
		c.logger.Warn("Rate limit header not found, assuming no requests left", zap.String("header", RateLimitHeader))
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		c.logger.Warn("Rate limit header is not a number, assuming no requests left", zap.String("value", raw))
		return 0
	}
	return n
}
