package source

import (
	"errors"
	"fmt"
)

// Common data source errors
var (
	// ErrConnectionFailed is returned when the accounting server cannot be
	// reached at all (dial failure, DNS failure, timeout).
	ErrConnectionFailed = errors.New("accounting server connection failed")

	// ErrUnexpectedStatus is returned when the server answers with a
	// non-success HTTP status.
	ErrUnexpectedStatus = errors.New("accounting server returned an unexpected status")

	// ErrInvalidResponse is returned when the server response body cannot be
	// decoded as the expected JSON export shape.
	ErrInvalidResponse = errors.New("invalid accounting server response")

	// ErrUnknownEntity is returned for an entity kind the export API does not
	// expose.
	ErrUnknownEntity = errors.New("unknown entity kind")
)

// SourceError wraps errors with additional context about a failed fetch.
type SourceError struct {
	// Op is the operation that failed (e.g., "Fetch", "TestConnection").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("source: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("source: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *SourceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newSourceError(op string, err error, details string) *SourceError {
	return &SourceError{Op: op, Err: err, Details: details}
}
