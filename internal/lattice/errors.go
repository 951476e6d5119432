package lattice

import (
	"errors"
	"fmt"
)

// ErrLatticeMismatch indicates a frame whose samples do not cover its own
// lattice exactly once.
var ErrLatticeMismatch = errors.New("lattice: sample count does not match grid shape")

// MismatchError describes a non-rectangular, truncated or duplicated frame.
type MismatchError struct {
	Samples int
	Rows    int
	Cols    int
	Reason  string
}

func (e *MismatchError) Error() string {
	msg := fmt.Sprintf("lattice mismatch: %d samples for %d x %d grid (want %d)",
		e.Samples, e.Rows, e.Cols, e.Rows*e.Cols)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *MismatchError) Unwrap() error { return ErrLatticeMismatch }
