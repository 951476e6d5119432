// Package encode turns an ordered stream of rendered frames into an
// animation artifact. The encoder is chosen by the output path:
//
//	*.avi  Motion-JPEG AVI
//	*.gif  animated GIF
//	other  directory of numbered PNG files
//
// Frames must be added in display order. Close finalizes the artifact;
// Abort discards whatever was written so a failed run leaves nothing behind.
package encode

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"
)

// Encoder consumes frames in order.
type Encoder interface {
	// AddFrame appends img. The encoder must not retain img after returning.
	AddFrame(img image.Image) error
	Close() error
	Abort() error
}

// New returns the encoder for path, sized to bounds and playing at fps.
func New(path string, bounds image.Rectangle, fps float64) (Encoder, error) {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return nil, fmt.Errorf("encode: invalid frame rate %v", fps)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".avi":
		return NewMJPEG(path, bounds.Dx(), bounds.Dy(), fps)
	case ".gif":
		return NewGIF(path, fps), nil
	default:
		return NewPNGSequence(path)
	}
}

// IntegerFPS rounds fps for containers that only store whole frame rates.
func IntegerFPS(fps float64) int {
	n := int(math.Round(fps))
	if n < 1 {
		return 1
	}
	return n
}

// gifDelay converts fps to a GIF frame delay in hundredths of a second.
func gifDelay(fps float64) int {
	d := int(math.Round(100 / fps))
	if d < 1 {
		return 1
	}
	return d
}
