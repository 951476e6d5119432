package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	headAngle  = 0.45 // radians either side of the shaft
	headRatio  = 0.3
	maxHeadLen = 8 // points
)

// Quiver is a plot.Plotter drawing arrows in data coordinates. An arrow of
// length L is drawn L/Scale data units long, like matplotlib's
// units='xy', scale_units='xy'.
type Quiver struct {
	Arrows    []Arrow
	Scale     float64
	LineStyle draw.LineStyle

	// Color maps Arrow.C to a color. Nil draws every arrow in
	// LineStyle.Color.
	Color func(c float64) color.Color
}

// NewQuiver returns a quiver with a thin black line style.
func NewQuiver(arrows []Arrow, scale float64) *Quiver {
	if scale <= 0 {
		scale = 1
	}
	return &Quiver{
		Arrows: arrows,
		Scale:  scale,
		LineStyle: draw.LineStyle{
			Color: color.Black,
			Width: vg.Points(1),
		},
	}
}

// Plot implements plot.Plotter.
func (q *Quiver) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)

	for _, a := range q.Arrows {
		sty := q.LineStyle
		if q.Color != nil {
			sty.Color = q.Color(a.C)
		}

		tail := vg.Point{X: trX(a.X), Y: trY(a.Y)}
		head := vg.Point{X: trX(a.X + a.U/q.Scale), Y: trY(a.Y + a.V/q.Scale)}
		c.StrokeLines(sty, c.ClipLinesXY([]vg.Point{tail, head})...)

		dx, dy := float64(head.X-tail.X), float64(head.Y-tail.Y)
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		headLen := math.Min(length*headRatio, maxHeadLen)
		back := math.Atan2(-dy, -dx)
		for _, side := range []float64{-headAngle, headAngle} {
			barb := vg.Point{
				X: head.X + vg.Length(headLen*math.Cos(back+side)),
				Y: head.Y + vg.Length(headLen*math.Sin(back+side)),
			}
			c.StrokeLines(sty, c.ClipLinesXY([]vg.Point{head, barb})...)
		}
	}
}

// DataRange implements plot.DataRanger over the arrow tails.
func (q *Quiver) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, a := range q.Arrows {
		xmin, xmax = math.Min(xmin, a.X), math.Max(xmax, a.X)
		ymin, ymax = math.Min(ymin, a.Y), math.Max(ymax, a.Y)
	}
	return xmin, xmax, ymin, ymax
}
