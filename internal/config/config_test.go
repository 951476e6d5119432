package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fieldviz/internal/frame"
	"github.com/san-kum/fieldviz/internal/render"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Render.Kind != "vector" {
		t.Errorf("expected kind vector, got %s", cfg.Render.Kind)
	}
	if cfg.Render.Stride <= 0 {
		t.Error("stride should be positive")
	}
	if cfg.Animation.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Render.VMin != nil || cfg.Render.VMax != nil {
		t.Error("default color limits should be automatic")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldviz.yaml")

	cfg := DefaultConfig()
	cfg.Render.VMax = bound(0.5)
	cfg.Style.LaTeX = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Render.VMax == nil || *loaded.Render.VMax != 0.5 {
		t.Errorf("vmax = %v, want 0.5", loaded.Render.VMax)
	}
	if loaded.Render.VMin != nil {
		t.Errorf("vmin = %v, want nil", *loaded.Render.VMin)
	}
	if !loaded.Style.LaTeX {
		t.Error("latex flag lost")
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("render:\n  stride: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Render.Stride != 4 {
		t.Errorf("stride = %d, want 4", cfg.Render.Stride)
	}
	if cfg.Style.FontSize != DefaultFontSize {
		t.Errorf("font size = %v, want default", cfg.Style.FontSize)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		p := GetPreset(name)
		if p == nil {
			t.Fatalf("preset %s missing", name)
		}
		if _, err := render.ParseKind(p.Kind); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
		if _, err := render.NewColorMap(p.ColorMap); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyPreset("magnetic"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if cfg.Options().MaxLength != 5 {
		t.Errorf("max length = %v, want 5", cfg.Options().MaxLength)
	}
	if err := cfg.ApplyPreset("nonexistent"); err == nil {
		t.Error("expected error for nonexistent preset")
	}
}

func TestPresetIsCopy(t *testing.T) {
	p := GetPreset("vector")
	p.Stride = 99
	if Presets["vector"].Stride == 99 {
		t.Error("GetPreset must return a copy")
	}
}

func TestLoadMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
	"output filename": "negative_test",
	"dim": 2,
	"bound": 5.0,
	"numPoints": 100,
	"numSteps": 3,
	"dt": 0.01,
	"particles": [{"charge": 1, "x": 0.0, "y": 0.0}]
}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	meta, err := LoadMetadata(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.NumSteps != 3 || meta.OutputFilename != "negative_test" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if len(meta.Particles) != 1 {
		t.Errorf("particles = %v", meta.Particles)
	}
	if got, want := meta.FramePattern("outputs"), filepath.Join("outputs", "negative_test_%d.txt"); got != want {
		t.Errorf("pattern = %s, want %s", got, want)
	}
	if _, err := frame.NewPattern(meta.FramePattern("outputs"), "E"); err != nil {
		t.Errorf("pattern rejected: %v", err)
	}
}

func TestLoadMetadata_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("numSteps: 12\noutput filename: wires\n"), 0644); err != nil {
		t.Fatal(err)
	}
	meta, err := LoadMetadata(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.NumSteps != 12 || meta.OutputFilename != "wires" {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestLoadMetadata_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMetadata(filepath.Join(dir, "absent.json"))
	if !errors.Is(err, frame.ErrMissingInput) {
		t.Errorf("expected ErrMissingInput, got %v", err)
	}

	tests := map[string]string{
		"malformed.json": `{"numSteps": `,
		"zero.json":      `{"numSteps": 0}`,
		"negative.json":  `{"numSteps": -4}`,
	}
	for name, body := range tests {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadMetadata(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
