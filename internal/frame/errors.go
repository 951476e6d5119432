package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord indicates a record that is not five numeric fields.
	ErrMalformedRecord = errors.New("frame: malformed record")

	// ErrMissingInput indicates a frame or metadata file that does not exist.
	ErrMissingInput = errors.New("frame: missing input")
)

// RecordError reports the record that could not be parsed.
type RecordError struct {
	Path   string
	Line   int
	Reason string
	Err    error
}

func (e *RecordError) Error() string {
	msg := fmt.Sprintf("%s:%d: malformed record: %s", e.Path, e.Line, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RecordError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedRecord}
	}
	return []error{ErrMalformedRecord, e.Err}
}

// MissingInputError wraps the filesystem error for an absent input file.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input %s: %v", e.Path, e.Err)
}

func (e *MissingInputError) Unwrap() []error {
	return []error{ErrMissingInput, e.Err}
}
