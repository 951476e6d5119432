package frame

import "fmt"

// Column names one of the five fixed columns of a frame file.
type Column int

const (
	ColumnX Column = iota
	ColumnY
	ColumnField
	ColumnU
	ColumnV
)

// NumColumns is the number of values in every record.
const NumColumns = 5

func (c Column) String() string {
	switch c {
	case ColumnX:
		return "x"
	case ColumnY:
		return "y"
	case ColumnField:
		return "field"
	case ColumnU:
		return "u"
	case ColumnV:
		return "v"
	default:
		return fmt.Sprintf("column(%d)", int(c))
	}
}

// Sample is one grid point at one instant.
type Sample struct {
	X, Y  float64
	Value float64
	U, V  float64
}

// Frame holds the samples of one timestep as parallel columns.
// Frames are not modified after Read returns them.
type Frame struct {
	Index int
	Path  string
	Field string

	X     []float64
	Y     []float64
	Value []float64
	U     []float64
	V     []float64
}

// New builds a frame from samples, keeping their order.
func New(field string, samples []Sample) *Frame {
	f := &Frame{
		Index: -1,
		Field: field,
		X:     make([]float64, len(samples)),
		Y:     make([]float64, len(samples)),
		Value: make([]float64, len(samples)),
		U:     make([]float64, len(samples)),
		V:     make([]float64, len(samples)),
	}
	for i, s := range samples {
		f.X[i], f.Y[i], f.Value[i], f.U[i], f.V[i] = s.X, s.Y, s.Value, s.U, s.V
	}
	return f
}

// Len returns the number of samples.
func (f *Frame) Len() int { return len(f.X) }

// Sample returns the i-th record.
func (f *Frame) Sample(i int) Sample {
	return Sample{X: f.X[i], Y: f.Y[i], Value: f.Value[i], U: f.U[i], V: f.V[i]}
}

// Column returns the backing slice for c. Callers must not modify it.
func (f *Frame) Column(c Column) []float64 {
	switch c {
	case ColumnX:
		return f.X
	case ColumnY:
		return f.Y
	case ColumnField:
		return f.Value
	case ColumnU:
		return f.U
	case ColumnV:
		return f.V
	default:
		return nil
	}
}

func (f *Frame) append(s Sample) {
	f.X = append(f.X, s.X)
	f.Y = append(f.Y, s.Y)
	f.Value = append(f.Value, s.Value)
	f.U = append(f.U, s.U)
	f.V = append(f.V, s.V)
}
