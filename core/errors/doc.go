// Package errors provides the error taxonomy of the nutrient sync.
//
// Every failure raised by the HTTP clients and the reconcile engine is one of the
// typed errors declared here. Each type matches a sentinel through errors.Is and
// exposes its details through errors.As.
//
// # Taxonomy
//
//   - TransportError: the remote endpoint could not be reached.
//   - ProtocolError: non-success HTTP status or malformed body.
//   - ConsistencyError: a paginated listing delivered fewer or more records than declared. Fatal.
//   - LookupError / UpdateError: per-food failures. Never abort the run.
//   - InputError: malformed operator input. Recovered by prompting again.
//   - ConfigError: invalid configuration. Fatal before any network I/O.
//
// # Usage
//
//	if errors.Is(err, errors.ErrConsistency) {
//	    return err // abort the run
//	}
package errors
