package render

import (
	"fmt"

	"gonum.org/v1/plot/plotter"

	"github.com/san-kum/fieldviz/internal/lattice"
)

// gridXYZ adapts a field on its lattice to plotter.GridXYZ.
type gridXYZ struct {
	l *lattice.Lattice
	f *lattice.Field
}

func (g gridXYZ) Dims() (c, r int) { return g.l.Cols(), g.l.Rows() }
func (g gridXYZ) Z(c, r int) float64 { return g.f.At(r, c) }
func (g gridXYZ) X(c int) float64 { return g.l.X[c] }
func (g gridXYZ) Y(r int) float64 { return g.l.Y[r] }

// Scalar draws f as a heatmap over l. Values outside the color limits take
// the end colors, and the color bar is marked open at each fixed limit.
func Scalar(l *lattice.Lattice, f *lattice.Field, opts Options) (*Figure, error) {
	if l.Rows() < 2 || l.Cols() < 2 {
		return nil, fmt.Errorf("render: heatmap needs at least a 2 x 2 lattice, got %d x %d", l.Rows(), l.Cols())
	}

	cm, err := NewColorMap(opts.ColorMap)
	if err != nil {
		return nil, err
	}
	lo, hi := opts.Limits(f.Min(), f.Max())
	cm.SetMax(hi)
	cm.SetMin(lo)

	h := plotter.NewHeatMap(gridXYZ{l: l, f: f}, cm.Palette(paletteSize))
	h.Min, h.Max = lo, hi
	pal := h.Palette.Colors()
	h.Underflow = pal[0]
	h.Overflow = pal[len(pal)-1]

	p := newPlot()
	p.Add(h)
	frameAxes(p, l, opts.Title)

	return &Figure{
		Plot: p,
		Bar:  colorBar(cm, opts.Label, opts.VMin != nil, opts.VMax != nil),
	}, nil
}
