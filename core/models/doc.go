// Package models holds the data model shared by the catalog client, the FDC client
// and the reconcile engine.
//
// Catalog types (Food, FoodProperty, PropertyType) carry their JSON wire shape.
// External types (ExternalFood, ExternalNutrient) are decoded by the fdc package
// and never sent anywhere.
//
// The Dictionary maps FDC nutrient ids to catalog property names. It is the only
// piece of domain state shared by concurrent pipelines and is read-only after
// construction.
package models
