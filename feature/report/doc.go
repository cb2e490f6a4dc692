// Package report turns the results of a sync run into a report.
//
// A Report carries the run id, timing, the options the run used, the folded
// Summary and every per-food result. Render prints it as tables for the
// operator; Archive uploads it as JSON to object storage under
// <report_prefix>/<run_id>.json.
package report
