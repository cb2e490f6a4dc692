package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
		err   bool
	}{
		{"Number", `{"property_amount": 12.5}`, floatPtr(12.5), false},
		{"String", `{"property_amount": "12.500"}`, floatPtr(12.5), false},
		{"Null", `{"property_amount": null}`, nil, false},
		{"Garbage", `{"property_amount": "abc"}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p FoodProperty
			err := json.Unmarshal([]byte(tt.input), &p)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, p.Amount)
				return
			}
			require.NotNil(t, p.Amount)
			assert.InDelta(t, *tt.want, p.Amount.Float64(), 1e-9)
		})
	}
}

func TestAmount_MarshalAsString(t *testing.T) {
	data, err := json.Marshal(FoodProperty{
		Amount:       NewAmount(12.5),
		PropertyType: PropertyType{Name: "Protein"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"property_amount":"12.5","property_type":{"name":"Protein"}}`, string(data))
}

func TestFood_Decode(t *testing.T) {
	body := `{
		"id": 7,
		"name": "Egg",
		"fdc_id": null,
		"url": "https://fdc.nal.usda.gov/food-details/12345/nutrients",
		"properties": [{"property_amount": "1.0", "property_type": {"name": "Protein", "fdc_id": 203}}]
	}`

	var f Food
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	assert.Equal(t, 7, f.ID)
	assert.Nil(t, f.CrossRefID)
	require.NotNil(t, f.SourceURL)
	assert.True(t, f.HasProperty(203))
	assert.False(t, f.HasProperty(204))
}

func TestDictionary(t *testing.T) {
	d := NewDictionary([]PropertyType{
		{Name: "Protein", CrossRefID: IntPtr(203)},
		{Name: "Fat", CrossRefID: IntPtr(204)},
		{Name: "Price"},
		{Name: "Protein (dup)", CrossRefID: IntPtr(203)},
	})

	assert.Equal(t, 4, d.Total())
	assert.Equal(t, 2, d.Tracked())

	name, ok := d.Name(203)
	assert.True(t, ok)
	assert.Equal(t, "Protein", name)

	in := []ExternalNutrient{
		{NutrientID: 203, NutrientName: "Protein, total", Amount: floatPtr(12.5)},
		{NutrientID: 999, NutrientName: "Other", Amount: floatPtr(1)},
	}
	out := d.Filter(in)

	require.Len(t, out, 1)
	assert.Equal(t, "Protein", out[0].NutrientName)
	assert.Equal(t, "Protein, total", in[0].NutrientName, "input must not be mutated")
}

func floatPtr(v float64) *float64 {
	return &v
}
