// Package fdc implements the lookup client for USDA FoodData Central (FDC).
//
// FetchFood loads one food by its FDC ID with the configured API key and reads
// the remaining request budget from the X-RateLimit-Remaining response header.
// A missing or unreadable header is treated as zero requests left so the
// reconcile engine throttles instead of risking a block.
//
// Nutrients not linked to a catalog property type are dropped; the remaining
// ones are renamed to the catalog's property names. The provider's own names
// never leave this package.
package fdc
