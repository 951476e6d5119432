package anim

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFrames indicates a run declared with fewer than one frame.
	ErrNoFrames = errors.New("anim: frame count must be positive")

	// ErrInvalidDuration indicates a non-positive target duration.
	ErrInvalidDuration = errors.New("anim: duration must be positive")

	// ErrCanceled indicates a run stopped by the user before its last frame.
	ErrCanceled = errors.New("anim: run canceled")
)

// FrameError wraps the error that stopped a run at frame Index.
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
