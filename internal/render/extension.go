package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// extensionRatio is the height of an open-end triangle relative to the bar.
const extensionRatio = 0.05

// extension draws triangles past the ends of a vertical color bar to show
// that values beyond the limits are clamped to the end colors.
type extension struct {
	cm       palette.ColorMap
	min, max bool
}

func (e *extension) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	lo, hi := e.cm.Min(), e.cm.Max()
	tip := (hi - lo) * extensionRatio

	if e.max {
		c.FillPolygon(ColorAt(e.cm, hi), []vg.Point{
			{X: trX(0), Y: trY(hi)},
			{X: trX(1), Y: trY(hi)},
			{X: trX(0.5), Y: trY(hi + tip)},
		})
	}
	if e.min {
		c.FillPolygon(ColorAt(e.cm, lo), []vg.Point{
			{X: trX(0), Y: trY(lo)},
			{X: trX(1), Y: trY(lo)},
			{X: trX(0.5), Y: trY(lo - tip)},
		})
	}
}

func (e *extension) DataRange() (xmin, xmax, ymin, ymax float64) {
	lo, hi := e.cm.Min(), e.cm.Max()
	tip := (hi - lo) * extensionRatio
	ymin, ymax = lo, hi
	if e.min {
		ymin -= tip
	}
	if e.max {
		ymax += tip
	}
	return 0, 1, ymin, ymax
}
