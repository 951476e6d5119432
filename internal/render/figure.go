package render

import (
	"fmt"
	"image"
	imgdraw "image/draw"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/fieldviz/internal/frame"
	"github.com/san-kum/fieldviz/internal/lattice"
)

// barFraction is the share of the figure width given to the color bar.
const barFraction = 0.16

// Figure is a main plot with an optional color bar to its right. Arrows
// holds the glyphs drawn by the vector kinds.
type Figure struct {
	Plot   *plot.Plot
	Bar    *plot.Plot
	Arrows []Arrow
}

// Render reconstructs the fields kind needs from l and draws them.
// The color bar label defaults to the frame's field name.
func Render(kind Kind, l *lattice.Lattice, opts Options) (*Figure, error) {
	if opts.Label == "" {
		opts.Label = l.Frame().Field
	}

	field, err := l.Reshape(frame.ColumnField)
	if err != nil {
		return nil, err
	}
	if kind == KindScalar {
		return Scalar(l, field, opts)
	}

	u, err := l.Reshape(frame.ColumnU)
	if err != nil {
		return nil, err
	}
	v, err := l.Reshape(frame.ColumnV)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindVector:
		return Vector(l, u, v, field, opts, true)
	case KindMagneticDirect:
		return Vector(l, u, v, field, opts, false)
	case KindMagnetic:
		return Magnitude(l, u, v, field, opts)
	default:
		return nil, fmt.Errorf("unknown plot kind: %s", kind)
	}
}

func frameAxes(p *plot.Plot, l *lattice.Lattice, title string) {
	p.Title.Text = title
	p.X.Label.Text = label("x")
	p.Y.Label.Text = label("y")
	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = l.Extent()
}

func colorBar(cm palette.ColorMap, name string, openMin, openMax bool) *plot.Plot {
	p := newPlot()
	p.HideX()
	p.Y.Label.Text = label(name)
	p.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: paletteSize})
	if openMin || openMax {
		p.Add(&extension{cm: cm, min: openMin, max: openMax})
	}
	return p
}

// compose lays the figure out on c.
func compose(c draw.Canvas, fig *Figure) {
	if fig.Bar == nil {
		fig.Plot.Draw(c)
		return
	}
	barWidth := c.Rectangle.Size().X * barFraction
	fig.Plot.Draw(draw.Crop(c, 0, -barWidth, 0, 0))
	fig.Bar.Draw(draw.Crop(c, c.Rectangle.Size().X-barWidth, 0, 0, 0))
}

// Save writes fig to path. The format follows the extension
// (png, jpg, svg, pdf, eps, tif).
func Save(path string, fig *Figure, width, height vg.Length) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return err
	}
	compose(draw.New(c), fig)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Surface is a raster drawing surface reused across animation frames.
type Surface struct {
	canvas *vgimg.Canvas
}

// NewSurface allocates a width x height surface at dpi.
func NewSurface(width, height vg.Length, dpi int) *Surface {
	return &Surface{canvas: vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))}
}

// Bounds returns the pixel bounds of the surface.
func (s *Surface) Bounds() image.Rectangle { return s.canvas.Image().Bounds() }

// Draw clears the surface and draws fig on it. The returned image is owned
// by the surface and is overwritten by the next Draw.
func (s *Surface) Draw(fig *Figure) image.Image {
	img := s.canvas.Image()
	imgdraw.Draw(img, img.Bounds(), image.White, image.Point{}, imgdraw.Src)
	compose(draw.New(s.canvas), fig)
	return img
}
