package models

// Dictionary maps FDC nutrient ids to catalog property names.
// It is built once per run and only read afterwards, so it is shared between
// pipelines without locking.
type Dictionary struct {
	names map[int]string
	total int
}

// NewDictionary builds the dictionary from the catalog's property types.
// Types without a cross-reference id still count toward Total.
func NewDictionary(types []PropertyType) *Dictionary {
	d := &Dictionary{
		names: make(map[int]string, len(types)),
		total: len(types),
	}
	for _, t := range types {
		if t.CrossRefID == nil {
			continue
		}
		// First definition wins when two property types share an id.
		if _, exists := d.names[*t.CrossRefID]; !exists {
			d.names[*t.CrossRefID] = t.Name
		}
	}
	return d
}

// Name returns the catalog name for the given nutrient id.
func (d *Dictionary) Name(crossRefID int) (string, bool) {
	name, ok := d.names[crossRefID]
	return name, ok
}

// Total is the number of known property types.
func (d *Dictionary) Total() int {
	return d.total
}

// Tracked is the number of property types linked to a nutrient id.
func (d *Dictionary) Tracked() int {
	return len(d.names)
}

// Filter drops nutrients the catalog does not track and renames the rest to the
// catalog's names. The input slice is not modified.
func (d *Dictionary) Filter(nutrients []ExternalNutrient) []ExternalNutrient {
	kept := make([]ExternalNutrient, 0, len(nutrients))
	for _, n := range nutrients {
		name, ok := d.names[n.NutrientID]
		if !ok {
			continue
		}
		n.NutrientName = name
		kept = append(kept, n)
	}
	return kept
}
