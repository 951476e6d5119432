package render

import (
	"math"

	"github.com/san-kum/fieldviz/internal/lattice"
)

// Arrow is one vector glyph: tail at (X, Y), direction (U, V) and the scalar
// C used for coloring.
type Arrow struct {
	X, Y float64
	U, V float64
	C    float64
}

// Glyphs selects every step-th row and column of the lattice and returns one
// arrow per selected point, row by row. c may be nil.
func Glyphs(l *lattice.Lattice, u, v, c *lattice.Field, step int) []Arrow {
	rows := lattice.Stride(l.Rows(), step)
	cols := lattice.Stride(l.Cols(), step)

	arrows := make([]Arrow, 0, len(rows)*len(cols))
	for _, r := range rows {
		for _, col := range cols {
			a := Arrow{X: l.X[col], Y: l.Y[r], U: u.At(r, col), V: v.At(r, col)}
			if c != nil {
				a.C = c.At(r, col)
			}
			arrows = append(arrows, a)
		}
	}
	return arrows
}

// capTolerance keeps a vector that was already capped from being rescaled
// again by rounding error.
const capTolerance = 1e-12

// lengthScale returns the factor that brings a vector of the given length
// down to maxLen. Shorter vectors and zero-length vectors get 1.
func lengthScale(length, maxLen float64) float64 {
	if length == 0 || length <= maxLen*(1+capTolerance) {
		return 1
	}
	return maxLen / length
}

// CapLength rescales (u, v) to maxLen when it is longer, keeping direction.
// A maxLen of zero or less disables the cap.
func CapLength(u, v, maxLen float64) (float64, float64) {
	if maxLen <= 0 {
		return u, v
	}
	s := lengthScale(math.Hypot(u, v), maxLen)
	return u * s, v * s
}

// CapFields applies CapLength point-wise to the fields u and v, which must
// share one shape.
func CapFields(u, v *lattice.Field, maxLen float64) (*lattice.Field, *lattice.Field, error) {
	rows, cols := u.Dims()
	fu, fv := u.Flatten(), v.Flatten()
	if len(fv) != len(fu) {
		return nil, nil, &lattice.MismatchError{Samples: len(fv), Rows: rows, Cols: cols, Reason: "v differs in shape from u"}
	}
	for i := range fu {
		fu[i], fv[i] = CapLength(fu[i], fv[i], maxLen)
	}
	cu, err := lattice.Reshape(fu, rows, cols)
	if err != nil {
		return nil, nil, err
	}
	cv, err := lattice.Reshape(fv, rows, cols)
	if err != nil {
		return nil, nil, err
	}
	return cu, cv, nil
}
