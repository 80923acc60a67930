package layer

import (
	"errors"
	"fmt"
)

// -------------------------------------------------------------------------
// Error Taxonomy
// -------------------------------------------------------------------------

// Sentinel errors for layer operations. Every error returned by this
// package wraps exactly one of these; classify with errors.Is.
var (
	// ErrIncomplete indicates the input buffer is too short for the layer.
	// Recoverable: streaming callers may buffer more data and retry.
	// Errors wrapping ErrIncomplete match *IncompleteError via errors.As,
	// which carries the number of bytes the layer requires.
	ErrIncomplete = errors.New("incomplete data")

	// ErrParse indicates a structural error in the input (bad option
	// length, invalid header-size field, declared size past the end).
	// Non-recoverable for this input.
	ErrParse = errors.New("parse error")

	// ErrFinalize indicates an arithmetic overflow, a failed integer
	// narrowing, or a serialization failure while recomputing dependent
	// fields. Aborts the enclosing packet finalize.
	ErrFinalize = errors.New("finalize error")
)

// IncompleteError reports that fewer than Needed bytes remained when a
// layer required Needed bytes to decode its fixed portion.
type IncompleteError struct {
	// Needed is the total byte count the layer requires.
	Needed int
}

// Error implements the error interface.
func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete data: need at least %d bytes", e.Needed)
}

// Unwrap makes the error match ErrIncomplete under errors.Is.
func (e *IncompleteError) Unwrap() error {
	return ErrIncomplete
}

// incomplete returns the canonical too-short-input error.
func incomplete(needed int) error {
	return &IncompleteError{Needed: needed}
}
