package encode

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"os"

	"github.com/icza/mjpeg"
)

// MJPEG writes frames as JPEG images into an AVI container.
type MJPEG struct {
	path    string
	w       mjpeg.AviWriter
	buf     bytes.Buffer
	options jpeg.Options
}

// NewMJPEG creates the AVI file at path. mjpeg stores an integer frame rate,
// so fps is rounded with IntegerFPS.
func NewMJPEG(path string, width, height int, fps float64) (*MJPEG, error) {
	w, err := mjpeg.New(path, int32(width), int32(height), int32(IntegerFPS(fps)))
	if err != nil {
		return nil, err
	}
	return &MJPEG{path: path, w: w, options: jpeg.Options{Quality: 90}}, nil
}

func (m *MJPEG) AddFrame(img image.Image) error {
	m.buf.Reset()
	if err := jpeg.Encode(&m.buf, img, &m.options); err != nil {
		return err
	}
	return m.w.AddFrame(m.buf.Bytes())
}

func (m *MJPEG) Close() error { return m.w.Close() }

// Abort closes and removes the partial AVI file.
func (m *MJPEG) Abort() error {
	closeErr := m.w.Close()
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return errors.Join(closeErr, err)
	}
	return nil
}
