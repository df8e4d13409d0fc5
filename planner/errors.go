package planner

import (
	"errors"
	"fmt"
)

// ErrTripNotFound is returned by RecordStore.Get when no record exists for the id.
var ErrTripNotFound = errors.New("trip record not found")

// ValidationError reports a trip request that cannot be turned into a prompt.
// It is surfaced to the caller directly and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid trip request: %s %s", e.Field, e.Reason)
}

// ModelError reports a failed call against the generative model backend.
// Status carries the upstream HTTP status when one was received, 0 for
// transport failures.
type ModelError struct {
	Status int
	Err    error
}

func (e *ModelError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("model call failed (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("model call failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// SchemaError reports a model reply that did not decode into a valid trip
// plan. Raw keeps the unmodified reply text for diagnostics.
type SchemaError struct {
	Raw string
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("malformed model reply: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// PersistenceError reports a failed trip store operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("trip store %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
