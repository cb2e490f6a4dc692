package reconcile

import "nutrient-sync/core/models"

// Merge computes the new property set of a food.
//
// With override, the result is the external nutrient set only. Without it, every
// current property is kept unchanged and a nutrient is added only if no current
// property is linked to the same FDC nutrient id. In both modes the first
// nutrient seen for an id wins.
func Merge(current []models.FoodProperty, nutrients []models.ExternalNutrient, override bool) []models.FoodProperty {
	seen := make(map[int]struct{}, len(current)+len(nutrients))

	var merged []models.FoodProperty
	if override {
		merged = make([]models.FoodProperty, 0, len(nutrients))
	} else {
		merged = make([]models.FoodProperty, 0, len(current)+len(nutrients))
		merged = append(merged, current...)
		for _, p := range current {
			if p.PropertyType.CrossRefID != nil {
				seen[*p.PropertyType.CrossRefID] = struct{}{}
			}
		}
	}

	for _, n := range nutrients {
		if _, exists := seen[n.NutrientID]; exists {
			continue
		}
		seen[n.NutrientID] = struct{}{}
		merged = append(merged, propertyFromNutrient(n))
	}

	return merged
}

func propertyFromNutrient(n models.ExternalNutrient) models.FoodProperty {
	var amount *models.Amount
	if n.Amount != nil {
		amount = models.NewAmount(*n.Amount)
	}
	return models.FoodProperty{
		Amount: amount,
		PropertyType: models.PropertyType{
			Name:       n.NutrientName,
			CrossRefID: models.IntPtr(n.NutrientID),
		},
	}
}
