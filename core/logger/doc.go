// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports console output for
// operators and JSON output for log shipping.
//
// # Context Awareness
//
// Every sync run gets a run id. WithRunID attaches it to the logger so all
// lines of one run can be correlated, and WithFood adds the food id and name
// to the lines written by a single reconcile pipeline.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: trace, debug, info, warn, error (trace is logged as debug)
//   - Encoding: console (default) or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log, runID)
//	logger.WithFood(log, &food).Warn("Lookup failed", zap.Error(err))
package logger
