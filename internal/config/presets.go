package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/fieldviz/internal/render"
)

func bound(v float64) *float64 { return &v }

// Presets holds the render settings used for the simulator's field outputs.
var Presets = map[string]RenderConfig{
	"vector": {
		Kind: string(render.KindVector), ColorMap: "RdBu",
		VMin: bound(-0.1), VMax: bound(0.1), Stride: 6, Scale: 2,
	},
	"scalar": {
		Kind: string(render.KindScalar), ColorMap: "RdBu",
		VMin: bound(-1), VMax: bound(1), Stride: 1, Scale: 2,
	},
	"magnetic-direct": {
		Kind: string(render.KindMagneticDirect), ColorMap: "Greys",
		VMin: bound(0), VMax: bound(0.08), Stride: 5, Scale: 4,
	},
	"magnetic": {
		Kind: string(render.KindMagnetic), ColorMap: "Greys",
		Stride: 1, Scale: 2, MaxLength: 5,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *RenderConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset replaces the render section with the named preset.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Render = *p
	return nil
}
