package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

const DefaultFontSize = 16

// Style holds the global plotting configuration.
type Style struct {
	FontSize float64 // points
	LaTeX    bool
}

var current = Style{FontSize: DefaultFontSize}

// Setup installs st for all subsequent plots. It is not safe to call while
// another goroutine is rendering.
func Setup(st Style) {
	if st.FontSize <= 0 {
		st.FontSize = DefaultFontSize
	}
	if st.LaTeX {
		plot.DefaultTextHandler = text.Latex{Fonts: font.DefaultCache}
	} else {
		plot.DefaultTextHandler = text.Plain{Fonts: font.DefaultCache}
	}
	current = st
}

// CurrentStyle returns the style installed by Setup.
func CurrentStyle() Style { return current }

// newPlot returns a plot in the current style. Titles carry file names and
// other free text, so they are always drawn plain; only labels go through
// the LaTeX handler.
func newPlot() *plot.Plot {
	p := plot.New()
	size := vg.Points(current.FontSize)
	p.Title.TextStyle.Handler = text.Plain{Fonts: font.DefaultCache}
	p.Title.TextStyle.Font.Size = size
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Size = size
		ax.Tick.Label.Font.Size = size * 0.75
	}
	return p
}

// label formats an axis or color bar label for the current text handler.
func label(s string) string {
	if current.LaTeX && s != "" {
		return "$" + s + "$"
	}
	return s
}
