package lattice

import (
	"fmt"
	"slices"

	"github.com/san-kum/fieldviz/internal/frame"
)

// Lattice is the unique-coordinate grid of one frame.
type Lattice struct {
	X []float64
	Y []float64

	frame *frame.Frame
	cell  []int // sample index -> row*cols + col
}

// New derives the lattice of f and checks that every (x, y) pair of the
// grid appears exactly once. The frame is retained for Reshape.
func New(f *frame.Frame) (*Lattice, error) {
	xs := unique(f.X)
	ys := unique(f.Y)
	rows, cols := len(ys), len(xs)

	n := f.Len()
	if n == 0 || n != rows*cols {
		return nil, &MismatchError{Samples: n, Rows: rows, Cols: cols}
	}

	colOf := make(map[float64]int, cols)
	for i, x := range xs {
		colOf[x] = i
	}
	rowOf := make(map[float64]int, rows)
	for i, y := range ys {
		rowOf[y] = i
	}

	cell := make([]int, n)
	seen := make([]bool, n)
	for i := 0; i < n; i++ {
		idx := rowOf[f.Y[i]]*cols + colOf[f.X[i]]
		if seen[idx] {
			return nil, &MismatchError{
				Samples: n, Rows: rows, Cols: cols,
				Reason: fmt.Sprintf("duplicate sample at (%g, %g)", f.X[i], f.Y[i]),
			}
		}
		seen[idx] = true
		cell[i] = idx
	}

	return &Lattice{X: xs, Y: ys, frame: f, cell: cell}, nil
}

func unique(vals []float64) []float64 {
	out := slices.Clone(vals)
	slices.Sort(out)
	return slices.Compact(out)
}

// Rows returns the number of unique y values.
func (l *Lattice) Rows() int { return len(l.Y) }

// Cols returns the number of unique x values.
func (l *Lattice) Cols() int { return len(l.X) }

// Frame returns the frame the lattice was built from.
func (l *Lattice) Frame() *frame.Frame { return l.frame }

// Extent returns the axis ranges [min x, max x] x [min y, max y].
func (l *Lattice) Extent() (xmin, xmax, ymin, ymax float64) {
	return l.X[0], l.X[len(l.X)-1], l.Y[0], l.Y[len(l.Y)-1]
}

// Reshape reconstructs column c of the frame as a (rows, cols) field.
// Samples are placed by their coordinates, so for x-fastest input this is
// exactly Reshape(column, rows, cols).
func (l *Lattice) Reshape(c frame.Column) (*Field, error) {
	src := l.frame.Column(c)
	if src == nil {
		return nil, fmt.Errorf("lattice: unknown column %s", c)
	}
	placed := make([]float64, len(src))
	for i, v := range src {
		placed[l.cell[i]] = v
	}
	return Reshape(placed, l.Rows(), l.Cols())
}

// Stride returns the indices 0, step, 2*step, ... below n.
// A step below 1 selects every index.
func Stride(n, step int) []int {
	if step < 1 {
		step = 1
	}
	idx := make([]int, 0, (n+step-1)/step)
	for i := 0; i < n; i += step {
		idx = append(idx, i)
	}
	return idx
}
