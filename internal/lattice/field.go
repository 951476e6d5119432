package lattice

import (
	"gonum.org/v1/gonum/mat"
)

// Field is one reconstructed component with shape (rows, cols).
type Field struct {
	m *mat.Dense
}

// Reshape lays flat out row-major on a rows x cols array, so that the
// fastest-varying index of flat becomes the column (x) index. A length other
// than rows*cols, or an empty shape, is a *MismatchError. The data is copied.
func Reshape(flat []float64, rows, cols int) (*Field, error) {
	if rows < 1 || cols < 1 || len(flat) != rows*cols {
		return nil, &MismatchError{Samples: len(flat), Rows: rows, Cols: cols, Reason: "reshape"}
	}
	data := make([]float64, len(flat))
	copy(data, flat)
	return &Field{m: mat.NewDense(rows, cols, data)}, nil
}

// Dims returns the number of rows (y) and columns (x).
func (f *Field) Dims() (rows, cols int) { return f.m.Dims() }

// At returns the value at y index row and x index col.
func (f *Field) At(row, col int) float64 { return f.m.At(row, col) }

// Flatten returns the values in x-fastest order. It is the inverse of Reshape.
func (f *Field) Flatten() []float64 {
	rows, cols := f.m.Dims()
	out := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		out = append(out, f.m.RawRowView(r)...)
	}
	return out
}

// MulElem returns the element-wise product of f and g.
func (f *Field) MulElem(g *Field) *Field {
	var out mat.Dense
	out.MulElem(f.m, g.m)
	return &Field{m: &out}
}

// Min returns the smallest value.
func (f *Field) Min() float64 { return mat.Min(f.m) }

// Max returns the largest value.
func (f *Field) Max() float64 { return mat.Max(f.m) }
