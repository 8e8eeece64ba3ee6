package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	// barcode collision on insert; caller should regenerate and retry
	ErrDuplicateBarcode = errors.New("duplicate barcode")

	ErrZoneExists = errors.New("zone already exists")

	ErrEmailExists = errors.New("email already registered")

	// zone is full; retryable with a different zone or after capacity frees up
	ErrCapacityExceeded = errors.New("zone capacity exceeded")

	// hard rejection, the zone cannot physically hold this sample
	ErrTemperatureClassMismatch = errors.New("temperature class mismatch")

	// administrative misconfiguration, e.g. capacity below current occupancy
	ErrInvalidCapacity = errors.New("invalid capacity")

	// occupied_count would go negative. This is an integrity violation, not
	// a normal error: something else lost track of a sample.
	ErrUnderflow = errors.New("zone occupancy underflow")

	ErrIllegalTransition = errors.New("illegal transition")

	ErrValidation = errors.New("validation error")
)

// TransitionError rejects a lifecycle request with enough context for the
// caller to decide what to do next. It unwraps to ErrIllegalTransition.
type TransitionError struct {
	SampleID       string
	CurrentState   string
	RequestedState string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("sample %s: illegal transition %s -> %s",
		e.SampleID, e.CurrentState, e.RequestedState)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}
