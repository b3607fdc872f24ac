package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent the failure classes of a coverage run.
// They are returned wrapped and can be checked with errors.Is.
var (
	// ErrValidation is returned when a selection range is malformed or has
	// low >= high. It aborts the band being processed.
	ErrValidation = errors.New("contsel: invalid selection")

	// ErrMissingSelectionFile marks a field without a selection file for a
	// band. It is recovered locally and never aborts a run.
	ErrMissingSelectionFile = errors.New("contsel: missing selection file")

	// ErrInvariantViolation is returned when an aggregate sanity check fails.
	ErrInvariantViolation = errors.New("contsel: invariant violation")

	// ErrConfiguration is returned when static tables are unusable.
	ErrConfiguration = errors.New("contsel: invalid configuration")
)

// BandError reports the band whose pass was aborted.
type BandError struct {
	Band BandID
	Err  error
}

func (e *BandError) Error() string {
	return fmt.Sprintf("band %s: %v", e.Band, e.Err)
}

func (e *BandError) Unwrap() error { return e.Err }
