package models

// PropertyType is a nutrient definition tracked by the catalog.
type PropertyType struct {
	// Name is the catalog's own name for the property.
	Name string `json:"name"`
	// CrossRefID is the FDC nutrient id linked to this property, if any.
	CrossRefID *int `json:"fdc_id,omitempty"`
}

// FoodProperty is the amount of one property in a catalog food.
type FoodProperty struct {
	Amount       *Amount      `json:"property_amount"`
	PropertyType PropertyType `json:"property_type"`
}

// Food is a catalog food record as fetched from the catalog.
type Food struct {
	// ID is catalog-assigned and used as the update target.
	ID int `json:"id"`
	// Name is the display name of the food.
	Name string `json:"name"`
	// CrossRefID is the FDC ID stored in the dedicated field.
	CrossRefID *int `json:"fdc_id"`
	// SourceURL may point at the FDC detail page and encode the FDC ID.
	SourceURL *string `json:"url"`
	// Properties is the catalog state at fetch time.
	Properties []FoodProperty `json:"properties"`
}

// HasProperty reports whether a property with the given cross-reference id is present.
func (f *Food) HasProperty(crossRefID int) bool {
	for _, p := range f.Properties {
		if p.PropertyType.CrossRefID != nil && *p.PropertyType.CrossRefID == crossRefID {
			return true
		}
	}
	return false
}

// ExternalNutrient is a single nutrient value reported by the external provider.
type ExternalNutrient struct {
	Amount       *float64
	NutrientID   int
	NutrientName string
}

// ExternalFood is a food record of the external provider.
type ExternalFood struct {
	CrossRefID int
	Nutrients  []ExternalNutrient
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}
