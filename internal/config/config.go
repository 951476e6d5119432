package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldviz/internal/render"
)

const (
	DefaultColorMap  = "RdBu"
	DefaultStride    = 1
	DefaultScale     = 2.0
	DefaultMaxLength = 5.0
	DefaultFontSize  = 16.0
	DefaultWidth     = 6.0 // inches
	DefaultHeight    = 5.0 // inches
	DefaultDPI       = 100
	DefaultDuration  = 10.0 // seconds
)

type Config struct {
	Style     StyleConfig     `yaml:"style"`
	Render    RenderConfig    `yaml:"render"`
	Animation AnimationConfig `yaml:"animation"`
}

type StyleConfig struct {
	FontSize float64 `yaml:"font_size"`
	LaTeX    bool    `yaml:"latex"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	DPI      int     `yaml:"dpi"`
}

type RenderConfig struct {
	Kind      string   `yaml:"kind"`
	ColorMap  string   `yaml:"colormap"`
	VMin      *float64 `yaml:"vmin,omitempty"`
	VMax      *float64 `yaml:"vmax,omitempty"`
	Stride    int      `yaml:"stride"`
	Scale     float64  `yaml:"scale"`
	MaxLength float64  `yaml:"max_length"`
}

type AnimationConfig struct {
	Field    string  `yaml:"field"`
	Pattern  string  `yaml:"pattern"`
	Duration float64 `yaml:"duration"`
	Output   string  `yaml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		Style: StyleConfig{
			FontSize: DefaultFontSize,
			Width:    DefaultWidth,
			Height:   DefaultHeight,
			DPI:      DefaultDPI,
		},
		Render: RenderConfig{
			Kind:      string(render.KindVector),
			ColorMap:  DefaultColorMap,
			Stride:    DefaultStride,
			Scale:     DefaultScale,
			MaxLength: DefaultMaxLength,
		},
		Animation: AnimationConfig{
			Field:    "E",
			Duration: DefaultDuration,
			Output:   "animation.avi",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options converts the render section to render options.
func (c *Config) Options() render.Options {
	return render.Options{
		ColorMap:  c.Render.ColorMap,
		VMin:      c.Render.VMin,
		VMax:      c.Render.VMax,
		Stride:    c.Render.Stride,
		Scale:     c.Render.Scale,
		MaxLength: c.Render.MaxLength,
	}
}

// RenderStyle converts the style section for render.Setup.
func (c *Config) RenderStyle() render.Style {
	return render.Style{FontSize: c.Style.FontSize, LaTeX: c.Style.LaTeX}
}
