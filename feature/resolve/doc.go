// Package resolve derives the FDC ID of a catalog food.
//
// The Resolver applies a strict precedence:
//  1. An FDC detail page URL (".../food-details/<id>/nutrients") in the food's url field.
//  2. The food's fdc_id field.
//  3. The operator, when interactive mode is enabled.
//
// Console serializes prompts so concurrent pipelines never interleave on the terminal.
package resolve
