package encode

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
)

const frameGlob = "frame_*.png"

// PNGSequence writes each frame to dir/frame_00000.png, dir/frame_00001.png, ...
type PNGSequence struct {
	dir     string
	created bool
	written []string
}

// NewPNGSequence creates dir if needed. A dir that already holds frame files
// is refused so two runs never mix into one sequence.
func NewPNGSequence(dir string) (*PNGSequence, error) {
	entries, err := os.ReadDir(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		return &PNGSequence{dir: dir, created: true}, nil
	case err != nil:
		return nil, err
	}

	for _, e := range entries {
		if ok, _ := filepath.Match(frameGlob, e.Name()); ok && !e.IsDir() {
			return nil, fmt.Errorf("encode: %s already holds frame files (%s)", dir, e.Name())
		}
	}
	return &PNGSequence{dir: dir}, nil
}

// FramePath returns the file name of frame i inside dir.
func FramePath(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))
}

func (p *PNGSequence) AddFrame(img image.Image) error {
	path := FramePath(p.dir, len(p.written))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	p.written = append(p.written, path)
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (p *PNGSequence) Close() error { return nil }

// Abort removes every frame written so far, and dir itself when this
// sequence created it.
func (p *PNGSequence) Abort() error {
	var errs []error
	for _, path := range p.written {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	p.written = nil
	if p.created && len(errs) == 0 {
		if err := os.Remove(p.dir); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
