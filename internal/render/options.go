package render

import (
	"fmt"
	"math"
)

// Kind selects how a frame is drawn.
type Kind string

const (
	// KindScalar draws a heatmap of the primary field.
	KindScalar Kind = "scalar"
	// KindVector draws (u, v) arrows colored by the primary field.
	KindVector Kind = "vector"
	// KindMagneticDirect draws (u, v) arrows colored by the field magnitude
	// with a color bar open at the top only.
	KindMagneticDirect Kind = "magnetic-direct"
	// KindMagnetic draws (u, v) weighted by the field magnitude, capped at
	// Options.MaxLength, in a single color.
	KindMagnetic Kind = "magnetic"
)

// Kinds lists every plot kind.
var Kinds = []Kind{KindScalar, KindVector, KindMagneticDirect, KindMagnetic}

// ParseKind validates a plot kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown plot kind: %s (available: %v)", s, Kinds)
}

// IsVector reports whether k draws arrow glyphs.
func (k Kind) IsVector() bool { return k != KindScalar }

// Options configures one render call. A nil bound means the data range.
type Options struct {
	ColorMap  string
	VMin      *float64
	VMax      *float64
	Stride    int
	Scale     float64
	MaxLength float64
	Title     string
	Label     string
}

// DefaultOptions mirrors the analysis defaults: RdBu, every vector, scale 2.
func DefaultOptions() Options {
	return Options{
		ColorMap:  "RdBu",
		Stride:    1,
		Scale:     2,
		MaxLength: 5,
	}
}

// Bound returns a pointer to v, for Options.VMin and Options.VMax.
func Bound(v float64) *float64 { return &v }

// Symmetric returns options bounded by [-clim, clim].
func (o Options) Symmetric(clim float64) Options {
	o.VMin = Bound(-clim)
	o.VMax = Bound(clim)
	return o
}

// Limits resolves the color limits against the data range. The upper limit
// is always above the lower one.
func (o Options) Limits(dataMin, dataMax float64) (lo, hi float64) {
	lo, hi = dataMin, dataMax
	if o.VMin != nil {
		lo = *o.VMin
	}
	if o.VMax != nil {
		hi = *o.VMax
	}
	if math.IsNaN(lo) || math.IsInf(lo, 0) {
		lo = 0
	}
	if math.IsNaN(hi) || math.IsInf(hi, 0) || hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}
