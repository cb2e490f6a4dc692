// Package reconcile provides the engine that enriches catalog foods with
// FoodData Central nutrients.
//
// # Pipeline
//
// Each food runs through a strictly sequential pipeline:
//
//  1. Skip-check: without override, a food that already has as many properties as
//     the catalog defines is AlreadyUpToDate. No network calls are made.
//  2. Resolve: the FDC ID comes from the source URL, the fdc_id field or the operator.
//  3. Lookup: the food is fetched from FDC. The id used is stored on the food so the
//     push persists it.
//  4. Merge: see Merge.
//  5. Push: the food is sent to the catalog (skipped in dry-run).
//  6. Throttle: if FDC reported fewer than LowWaterMark requests left, the pipeline
//     cools down before finishing.
//
// Failures never leave the pipeline: they are logged with the food's id and name
// and become the pipeline's Outcome.
//
// # Concurrency
//
// Run fans pipelines out with golang.org/x/sync/errgroup, bounded by
// Options.Concurrency. Results are written to per-food slots and folded with
// Summarize once every pipeline has finished, so no counter is shared.
//
// The FDC budget is shared through a Throttle: once a lookup reports a low budget,
// every pipeline waits for the cooldown window before its next lookup.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(catalogClient, fdcClient, resolver, dict, opts, log)
//	results := engine.Run(ctx, foods)
//	summary := reconcile.Summarize(results)
package reconcile
