package encode

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// GIF buffers paletted frames and writes the file on Close.
type GIF struct {
	path  string
	delay int
	anim  gif.GIF
}

func NewGIF(path string, fps float64) *GIF {
	return &GIF{path: path, delay: gifDelay(fps), anim: gif.GIF{LoopCount: 0}}
}

func (g *GIF) AddFrame(img image.Image) error {
	frame := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(frame, img.Bounds(), img, img.Bounds().Min)
	g.anim.Image = append(g.anim.Image, frame)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	return nil
}

func (g *GIF) Close() error {
	f, err := os.Create(g.path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &g.anim); err != nil {
		f.Close()
		if rmErr := os.Remove(g.path); rmErr != nil {
			return errors.Join(err, rmErr)
		}
		return err
	}
	return f.Close()
}

// Abort drops the buffered frames; nothing has been written yet.
func (g *GIF) Abort() error {
	g.anim = gif.GIF{}
	return nil
}
