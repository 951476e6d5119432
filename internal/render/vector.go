package render

import (
	"image/color"

	"github.com/san-kum/fieldviz/internal/lattice"
)

// Vector draws arrows along (u, v) at every opts.Stride-th lattice point,
// colored by c through opts.ColorMap. extendMin controls whether a fixed
// lower limit is marked open on the color bar.
func Vector(l *lattice.Lattice, u, v, c *lattice.Field, opts Options, extendMin bool) (*Figure, error) {
	cm, err := NewColorMap(opts.ColorMap)
	if err != nil {
		return nil, err
	}

	arrows := Glyphs(l, u, v, c, opts.Stride)
	cmin, cmax := arrowRange(arrows)
	lo, hi := opts.Limits(cmin, cmax)
	cm.SetMax(hi)
	cm.SetMin(lo)

	q := NewQuiver(arrows, opts.scale())
	q.Color = func(val float64) color.Color { return ColorAt(cm, val) }

	p := newPlot()
	p.Add(q)
	frameAxes(p, l, opts.Title)

	return &Figure{
		Plot:   p,
		Bar:    colorBar(cm, opts.Label, extendMin && opts.VMin != nil, opts.VMax != nil),
		Arrows: arrows,
	}, nil
}

// Magnitude weights (u, v) by the magnitude field b, caps every resulting
// arrow at opts.MaxLength and draws them in black without a color bar.
func Magnitude(l *lattice.Lattice, u, v, b *lattice.Field, opts Options) (*Figure, error) {
	wu, wv, err := CapFields(u.MulElem(b), v.MulElem(b), opts.MaxLength)
	if err != nil {
		return nil, err
	}

	arrows := Glyphs(l, wu, wv, nil, opts.Stride)
	q := NewQuiver(arrows, opts.scale())

	p := newPlot()
	p.Add(q)
	frameAxes(p, l, opts.Title)
	return &Figure{Plot: p, Arrows: arrows}, nil
}

func arrowRange(arrows []Arrow) (lo, hi float64) {
	if len(arrows) == 0 {
		return 0, 1
	}
	lo, hi = arrows[0].C, arrows[0].C
	for _, a := range arrows[1:] {
		if a.C < lo {
			lo = a.C
		}
		if a.C > hi {
			hi = a.C
		}
	}
	return lo, hi
}
