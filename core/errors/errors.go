package errors

import (
	"errors"
	"fmt"
)

// Aliases for the standard library helpers so callers only import one errors package.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Sentinels matched through errors.Is by the typed errors below.
var (
	// ErrTransport indicates a network or connection failure.
	ErrTransport = errors.New("transport failure")

	// ErrProtocol indicates a non-success HTTP status or an undecodable body.
	ErrProtocol = errors.New("protocol failure")

	// ErrConsistency indicates the catalog delivered a different number of records than it declared.
	ErrConsistency = errors.New("consistency failure")

	// ErrLookup indicates the external provider lookup for one food failed.
	ErrLookup = errors.New("lookup failed")

	// ErrUpdate indicates the catalog rejected the update of one food.
	ErrUpdate = errors.New("update failed")

	// ErrInput indicates malformed operator input.
	ErrInput = errors.New("invalid input")

	// ErrConfig indicates invalid or missing configuration.
	ErrConfig = errors.New("invalid configuration")
)

// TransportError wraps a failure to reach a remote endpoint.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ProtocolError is returned when a response has a non-success status or a malformed body.
// StatusCode is zero for decode failures.
type ProtocolError struct {
	URL        string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d for URL %s: %s", e.StatusCode, e.URL, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("malformed response from %s: %s", e.URL, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}

// Temporary reports whether the status is worth retrying.
func (e *ProtocolError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// ConsistencyError reports a paginated listing whose declared total does not match
// the number of records actually delivered.
type ConsistencyError struct {
	Resource string
	Expected int
	Actual   int
}

// Error implements the error interface
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s listing declared %d records but delivered %d", e.Resource, e.Expected, e.Actual)
}

// Is implements errors.Is support
func (e *ConsistencyError) Is(target error) bool {
	return target == ErrConsistency
}

// LookupError wraps a failed external lookup for a single cross-reference id.
type LookupError struct {
	CrossRefID int
	Err        error
}

// Error implements the error interface
func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup of FDC ID %d failed: %v", e.CrossRefID, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// UpdateError wraps a failed partial update of a single catalog food.
type UpdateError struct {
	FoodID int
	Err    error
}

// Error implements the error interface
func (e *UpdateError) Error() string {
	return fmt.Sprintf("update of food %d failed: %v", e.FoodID, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *UpdateError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *UpdateError) Is(target error) bool {
	return target == ErrUpdate
}

// InputError describes operator input that could not be parsed.
type InputError struct {
	Input   string
	Message string
}

// Error implements the error interface
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Message)
}

// Is implements errors.Is support
func (e *InputError) Is(target error) bool {
	return target == ErrInput
}

// ConfigError describes a configuration value that failed validation.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Message)
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
