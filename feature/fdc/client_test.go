package fdc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nutrient-sync/core/errors"
	"nutrient-sync/core/httpclient"
	"nutrient-sync/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testDictionary = models.NewDictionary([]models.PropertyType{
	{Name: "Protein", CrossRefID: models.IntPtr(203)},
	{Name: "Fat", CrossRefID: models.IntPtr(204)},
})

func newTestClient(t *testing.T, url string, logger *zap.Logger) *Client {
	t.Helper()
	c, err := NewClient(Config{URL: url, APIKey: "key"}, testDictionary, logger,
		httpclient.WithMaxTries(1),
		httpclient.WithInitialInterval(time.Millisecond),
	)
	require.NoError(t, err)
	return c
}

func TestFetchFood_FiltersAndRenames(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set(RateLimitHeader, "850")
		_, _ = w.Write([]byte(`{
			"fdcId": 12345,
			"foodNutrients": [
				{"amount": 12.5, "nutrient": {"id": 203, "name": "Protein, total"}},
				{"amount": 1, "nutrient": {"id": 999, "name": "Untracked"}},
				{"nutrient": {"id": 204, "name": "Total lipid (fat)"}}
			]
		}`))
	}))
	defer server.Close()

	f, remaining, err := newTestClient(t, server.URL, zap.NewNop()).FetchFood(context.Background(), 12345)

	require.NoError(t, err)
	assert.Equal(t, "/food/12345", gotPath)
	assert.Equal(t, "key", gotKey)
	assert.Equal(t, 850, remaining)
	assert.Equal(t, 12345, f.CrossRefID)
	require.Len(t, f.Nutrients, 2)
	assert.Equal(t, "Protein", f.Nutrients[0].NutrientName)
	assert.Equal(t, 203, f.Nutrients[0].NutrientID)
	require.NotNil(t, f.Nutrients[0].Amount)
	assert.InDelta(t, 12.5, *f.Nutrients[0].Amount, 1e-9)
	assert.Equal(t, "Fat", f.Nutrients[1].NutrientName)
	assert.Nil(t, f.Nutrients[1].Amount)
}

func TestFetchFood_AbridgedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(RateLimitHeader, "100")
		_, _ = w.Write([]byte(`{"fdcId": 1, "foodNutrients": [{"nutrientId": 203, "nutrientName": "Protein", "value": 3.2}, {}]}`))
	}))
	defer server.Close()

	f, _, err := newTestClient(t, server.URL, zap.NewNop()).FetchFood(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, f.Nutrients, 1)
	assert.InDelta(t, 3.2, *f.Nutrients[0].Amount, 1e-9)
}

func TestFetchFood_RateLimitHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
		warns  int
	}{
		{"Present", "19", 19, 0},
		{"Missing", "", 0, 1},
		{"Garbage", "lots", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.header != "" {
					w.Header().Set(RateLimitHeader, tt.header)
				}
				_, _ = w.Write([]byte(`{"fdcId": 1, "foodNutrients": []}`))
			}))
			defer server.Close()

			core, logs := observer.New(zap.WarnLevel)
			_, remaining, err := newTestClient(t, server.URL, zap.New(core)).FetchFood(context.Background(), 1)

			require.NoError(t, err)
			assert.Equal(t, tt.want, remaining)
			assert.Equal(t, tt.warns, logs.Len())
		})
	}
}

func TestFetchFood_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f, _, err := newTestClient(t, server.URL, zap.NewNop()).FetchFood(context.Background(), 5)

	require.Error(t, err)
	assert.Nil(t, f)
	assert.True(t, errors.Is(err, errors.ErrLookup))
	var lookupErr *errors.LookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, 5, lookupErr.CrossRefID)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{URL: "http://fdc"}, testDictionary, zap.NewNop())
	assert.True(t, errors.Is(err, errors.ErrConfig))
}
