// Package preview prints a frame to the terminal when no output file is
// requested: vector kinds as Braille line art, scalar fields as colored
// blocks.
package preview

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fieldviz/internal/frame"
	"github.com/san-kum/fieldviz/internal/lattice"
	"github.com/san-kum/fieldviz/internal/render"
)

// Frame previews l the way render.Render would draw it for kind.
func Frame(kind render.Kind, l *lattice.Lattice, opts render.Options, width, height int) (string, error) {
	field, err := l.Reshape(frame.ColumnField)
	if err != nil {
		return "", err
	}
	if kind == render.KindScalar {
		return Scalar(l, field, opts, width, height)
	}

	u, err := l.Reshape(frame.ColumnU)
	if err != nil {
		return "", err
	}
	v, err := l.Reshape(frame.ColumnV)
	if err != nil {
		return "", err
	}
	if kind == render.KindMagnetic {
		u, v, err = render.CapFields(u.MulElem(field), v.MulElem(field), opts.MaxLength)
		if err != nil {
			return "", err
		}
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	return Vectors(l, render.Glyphs(l, u, v, nil, opts.Stride), scale, width, height), nil
}

// Vectors draws arrows as Braille lines, each with its tail dot, on a
// width x height character canvas spanning the lattice extent.
func Vectors(l *lattice.Lattice, arrows []render.Arrow, scale float64, width, height int) string {
	c := NewCanvas(width, height)
	dotsW, dotsH := c.Dots()
	xmin, xmax, ymin, ymax := l.Extent()

	toDot := func(x, y float64) (int, int) {
		px := span(x, xmin, xmax) * float64(dotsW-1)
		py := (1 - span(y, ymin, ymax)) * float64(dotsH-1)
		return int(math.Round(px)), int(math.Round(py))
	}

	for _, a := range arrows {
		x0, y0 := toDot(a.X, a.Y)
		x1, y1 := toDot(a.X+a.U/scale, a.Y+a.V/scale)
		c.DrawLine(x0, y0, x1, y1)
	}
	return c.String()
}

// Scalar paints one colored block per character cell using the nearest
// lattice point. The top row is the largest y.
func Scalar(l *lattice.Lattice, f *lattice.Field, opts render.Options, width, height int) (string, error) {
	cm, err := render.NewColorMap(opts.ColorMap)
	if err != nil {
		return "", err
	}
	lo, hi := opts.Limits(f.Min(), f.Max())
	cm.SetMax(hi)
	cm.SetMin(lo)

	rows, cols := f.Dims()
	var b strings.Builder
	for cy := 0; cy < height; cy++ {
		r := rows - 1 - nearest(cy, height, rows)
		for cx := 0; cx < width; cx++ {
			col := nearest(cx, width, cols)
			block := lipgloss.NewStyle().Foreground(lipgloss.Color(hex(render.ColorAt(cm, f.At(r, col)))))
			b.WriteString(block.Render("█"))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// nearest maps cell i of n onto an index below size.
func nearest(i, n, size int) int {
	if n <= 1 || size <= 1 {
		return 0
	}
	return int(math.Round(float64(i) / float64(n-1) * float64(size-1)))
}

func span(v, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
