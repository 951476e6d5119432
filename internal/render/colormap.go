package render

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

const paletteSize = 255

var colorMaps = map[string]func() (palette.ColorMap, error){
	"RdBu": func() (palette.ColorMap, error) { return reverse(moreland.SmoothBlueRed()), nil },
	"BuRd": func() (palette.ColorMap, error) { return moreland.SmoothBlueRed(), nil },
	"Greys": func() (palette.ColorMap, error) {
		cm, err := moreland.NewLuminance([]color.Color{color.Black, color.White})
		if err != nil {
			return nil, err
		}
		return reverse(cm), nil
	},
	"gray": func() (palette.ColorMap, error) {
		return moreland.NewLuminance([]color.Color{color.Black, color.White})
	},
	"blackbody": func() (palette.ColorMap, error) { return moreland.ExtendedBlackBody(), nil },
	"kindlmann": func() (palette.ColorMap, error) { return moreland.ExtendedKindlmann(), nil },
}

// NewColorMap returns a fresh color map by name.
func NewColorMap(name string) (palette.ColorMap, error) {
	fn, ok := colorMaps[name]
	if !ok {
		return nil, fmt.Errorf("unknown color map: %s (available: %v)", name, ColorMapNames())
	}
	return fn()
}

// ColorMapNames lists the registered color maps.
func ColorMapNames() []string {
	names := make([]string, 0, len(colorMaps))
	for name := range colorMaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// reversed flips a color map end for end.
type reversed struct {
	palette.ColorMap
}

func reverse(cm palette.ColorMap) palette.ColorMap { return reversed{cm} }

func (r reversed) At(v float64) (color.Color, error) {
	return r.ColorMap.At(r.Max() - (v - r.Min()))
}

func (r reversed) Palette(n int) palette.Palette {
	src := r.ColorMap.Palette(n).Colors()
	out := make(colors, len(src))
	for i, c := range src {
		out[len(src)-1-i] = c
	}
	return out
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }

// ColorAt maps v onto cm, clamping to the range of cm.
func ColorAt(cm palette.ColorMap, v float64) color.Color {
	if v < cm.Min() {
		v = cm.Min()
	}
	if v > cm.Max() {
		v = cm.Max()
	}
	c, err := cm.At(v)
	if err != nil {
		return color.Gray{Y: 128}
	}
	return c
}
