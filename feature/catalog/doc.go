// Package catalog implements the client for the recipe catalog (Tandoor) API.
//
// # Operations
//
//   - FetchPropertyTypes: loads the property type definitions used to build the nutrient dictionary.
//   - FetchAllFoods: follows the "next" links of the food listing and checks the declared count.
//   - PushFood: sends a partial update (PATCH) of a food's name and properties.
//
// # API Variants
//
// Two catalog API revisions are supported and selected by configuration, never detected:
//
//   - v1: property types under food-property-type/, updates without fdc_id.
//   - v2: property types under property-type/, updates carry fdc_id.
//
// Every request carries the configured bearer token.
package catalog
