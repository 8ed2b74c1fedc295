package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput is returned when no result directory is given.
	ErrMissingInput = errors.New("no result directory provided")
	// ErrEmptySequence is returned when the sequence report holds no residues.
	ErrEmptySequence = errors.New("sequence report is empty")
)

// RetrievalError reports a failed report download. It aborts the whole build.
type RetrievalError struct {
	Stage string
	Err   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Stage, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
