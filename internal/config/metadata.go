package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldviz/internal/frame"
)

// RunMetadata is the simulator's input document. Only NumSteps is required
// for an animation run.
type RunMetadata struct {
	OutputFilename string     `json:"output filename" yaml:"output filename"`
	Dim            int        `json:"dim" yaml:"dim"`
	Bound          float64    `json:"bound" yaml:"bound"`
	NumPoints      int        `json:"numPoints" yaml:"numPoints"`
	NumSteps       int        `json:"numSteps" yaml:"numSteps"`
	Dt             float64    `json:"dt" yaml:"dt"`
	Particles      []Particle `json:"particles,omitempty" yaml:"particles,omitempty"`
	Wires          []Wire     `json:"wires,omitempty" yaml:"wires,omitempty"`
}

type Particle struct {
	Charge float64 `json:"charge" yaml:"charge"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
}

type Wire struct {
	Current   float64   `json:"current" yaml:"current"`
	X         float64   `json:"x" yaml:"x"`
	Y         float64   `json:"y" yaml:"y"`
	Direction Direction `json:"direction" yaml:"direction"`
}

type Direction struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// LoadMetadata reads run metadata from a JSON file, or YAML for .yaml/.yml.
// A missing file yields a *frame.MissingInputError.
func LoadMetadata(path string) (*RunMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &frame.MissingInputError{Path: path, Err: err}
		}
		return nil, err
	}

	var meta RunMetadata
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &meta)
	default:
		err = json.Unmarshal(data, &meta)
	}
	if err != nil {
		return nil, fmt.Errorf("metadata %s: %w", path, err)
	}
	if meta.NumSteps <= 0 {
		return nil, fmt.Errorf("metadata %s: numSteps must be positive, got %d", path, meta.NumSteps)
	}
	return &meta, nil
}

// FramePattern returns the frame file pattern the simulator writes into dir:
// <dir>/<output filename>_<index>.txt.
func (m *RunMetadata) FramePattern(dir string) string {
	name := m.OutputFilename
	if name == "" {
		name = "output"
	}
	return filepath.Join(dir, strings.ReplaceAll(name, "%", "%%")+"_%d.txt")
}
