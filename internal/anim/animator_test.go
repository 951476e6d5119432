package anim

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/fieldviz/internal/encode"
	"github.com/san-kum/fieldviz/internal/frame"
	"github.com/san-kum/fieldviz/internal/lattice"
	"github.com/san-kum/fieldviz/internal/render"
)

type fakeLoader struct {
	requested []int
	frames    map[int]*frame.Frame
}

func (l *fakeLoader) Load(index int) (*frame.Frame, error) {
	l.requested = append(l.requested, index)
	f, ok := l.frames[index]
	if !ok {
		return nil, &frame.MissingInputError{Path: "missing", Err: os.ErrNotExist}
	}
	f.Index = index
	return f, nil
}

type fakeEncoder struct {
	frames   []image.Rectangle
	closed   bool
	aborted  bool
	abortErr error
}

func (e *fakeEncoder) AddFrame(img image.Image) error {
	e.frames = append(e.frames, img.Bounds())
	return nil
}
func (e *fakeEncoder) Close() error { e.closed = true; return nil }
func (e *fakeEncoder) Abort() error { e.aborted = true; return e.abortErr }

var _ encode.Encoder = (*fakeEncoder)(nil)

// square returns an n x n x-fastest frame scaled by k.
func square(n int, k float64) *frame.Frame {
	samples := make([]frame.Sample, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			x, y := float64(i), float64(j)
			samples = append(samples, frame.Sample{X: x, Y: y, Value: k * (x + y), U: k * x, V: -k * y})
		}
	}
	return frame.New("E", samples)
}

var _ = Describe("FrameRate", func() {
	It("divides frame count by duration", func() {
		fps, err := FrameRate(3, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(fps).To(Equal(1.0))

		fps, err = FrameRate(50, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(fps).To(Equal(5.0))
	})

	It("rejects empty runs and non-positive durations", func() {
		_, err := FrameRate(0, 3)
		Expect(err).To(MatchError(ErrNoFrames))
		_, err = FrameRate(3, 0)
		Expect(err).To(MatchError(ErrInvalidDuration))
		_, err = FrameRate(3, -1)
		Expect(err).To(MatchError(ErrInvalidDuration))
	})
})

var _ = Describe("Animator", func() {
	var (
		loader  *fakeLoader
		enc     *fakeEncoder
		surface *render.Surface
		cfg     Config
	)

	BeforeEach(func() {
		loader = &fakeLoader{frames: map[int]*frame.Frame{
			0: square(3, 1),
			1: square(3, 2),
			2: square(3, 3),
		}}
		enc = &fakeEncoder{}
		surface = render.NewSurface(3*vg.Inch, 2*vg.Inch, 50)
		cfg = Config{
			Frames:   3,
			Duration: 3,
			Kind:     render.KindVector,
			Options:  render.DefaultOptions(),
		}
	})

	It("renders every frame once, in order, at frames/duration fps", func() {
		a, err := New(cfg, loader, surface, enc)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.FPS()).To(Equal(1.0))

		Expect(a.Run(context.Background())).To(Succeed())
		Expect(loader.requested).To(Equal([]int{0, 1, 2}))
		Expect(enc.frames).To(HaveLen(3))
		Expect(enc.frames[0]).To(Equal(surface.Bounds()))
		Expect(enc.closed).To(BeTrue())
		Expect(enc.aborted).To(BeFalse())
		Expect(a.Done()).To(BeTrue())
	})

	It("reports per-frame statistics to observers", func() {
		a, err := New(cfg, loader, surface, enc)
		Expect(err).NotTo(HaveOccurred())

		var seen []Stats
		a.AddObserver(ObserverFunc(func(s Stats) { seen = append(seen, s) }))
		Expect(a.Run(context.Background())).To(Succeed())

		Expect(seen).To(HaveLen(3))
		Expect(seen[2].Index).To(Equal(2))
		Expect(seen[2].Rows).To(Equal(3))
		Expect(seen[2].Cols).To(Equal(3))
		Expect(seen[2].Max).To(Equal(12.0))
		Expect(seen[1].Min).To(Equal(0.0))
	})

	It("renders frames independently of earlier frames", func() {
		first, err := New(cfg, loader, surface, enc)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Run(context.Background())).To(Succeed())

		solo := &fakeLoader{frames: map[int]*frame.Frame{0: square(3, 3)}}
		cfg.Frames = 1
		cfg.Duration = 1
		single, err := New(cfg, solo, render.NewSurface(3*vg.Inch, 2*vg.Inch, 50), &fakeEncoder{})
		Expect(err).NotTo(HaveOccurred())
		s, err := single.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Max).To(Equal(12.0))
	})

	It("aborts without rendering when a frame does not fill its lattice", func() {
		loader.frames[1] = frame.New("E", []frame.Sample{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})

		a, err := New(cfg, loader, surface, enc)
		Expect(err).NotTo(HaveOccurred())
		err = a.Run(context.Background())

		Expect(errors.Is(err, lattice.ErrLatticeMismatch)).To(BeTrue())
		var ferr *FrameError
		Expect(errors.As(err, &ferr)).To(BeTrue())
		Expect(ferr.Index).To(Equal(1))
		Expect(loader.requested).To(Equal([]int{0, 1}))
		Expect(enc.frames).To(HaveLen(1))
		Expect(enc.aborted).To(BeTrue())
		Expect(enc.closed).To(BeFalse())
	})

	It("aborts on the first lattice mismatch before any frame is encoded", func() {
		loader.frames[0] = frame.New("E", []frame.Sample{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})

		a, err := New(cfg, loader, surface, enc)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Run(context.Background())).To(MatchError(lattice.ErrLatticeMismatch))
		Expect(enc.frames).To(BeEmpty())
		Expect(loader.requested).To(Equal([]int{0}))
	})

	It("stops at a missing frame file", func() {
		cfg.Frames = 5
		cfg.Duration = 5
		a, err := New(cfg, loader, surface, enc)
		Expect(err).NotTo(HaveOccurred())

		err = a.Run(context.Background())
		Expect(err).To(MatchError(frame.ErrMissingInput))
		Expect(err.Error()).To(HavePrefix("frame 3:"))
		Expect(a.Next()).To(Equal(3))
		Expect(enc.aborted).To(BeTrue())
	})

	It("aborts when canceled between frames", func() {
		ctx, cancel := context.WithCancel(context.Background())
		a, err := New(cfg, loader, surface, enc)
		Expect(err).NotTo(HaveOccurred())
		a.AddObserver(ObserverFunc(func(s Stats) {
			if s.Index == 0 {
				cancel()
			}
		}))

		Expect(a.Run(ctx)).To(MatchError(context.Canceled))
		Expect(enc.frames).To(HaveLen(1))
		Expect(enc.aborted).To(BeTrue())
	})

	It("touches the encoder only on the first Finish", func() {
		a, err := New(cfg, loader, surface, enc)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Finish(ErrCanceled)).To(MatchError(ErrCanceled))
		Expect(a.Finish(nil)).To(Succeed())
		Expect(enc.aborted).To(BeTrue())
		Expect(enc.closed).To(BeFalse())
	})

	It("reports a failed abort together with the frame error", func() {
		errRemove := errors.New("remove animation.avi: permission denied")
		enc.abortErr = errRemove
		cfg.Frames = 5
		cfg.Duration = 5
		a, err := New(cfg, loader, surface, enc)
		Expect(err).NotTo(HaveOccurred())

		err = a.Run(context.Background())
		Expect(err).To(MatchError(frame.ErrMissingInput))
		Expect(err).To(MatchError(errRemove))
		var ferr *FrameError
		Expect(errors.As(err, &ferr)).To(BeTrue())
		Expect(ferr.Index).To(Equal(3))
	})

	It("rejects invalid run declarations", func() {
		cfg.Frames = 0
		_, err := New(cfg, loader, surface, enc)
		Expect(err).To(MatchError(ErrNoFrames))
	})
})

var _ = Describe("frame pattern runs", func() {
	It("reads numbered files from disk and writes a GIF", func() {
		dir := GinkgoT().TempDir()
		for i := 0; i < 2; i++ {
			var sb strings.Builder
			f := square(2, float64(i+1))
			for k := 0; k < f.Len(); k++ {
				s := f.Sample(k)
				sb.WriteString(strings.Join([]string{ftoa(s.X), ftoa(s.Y), ftoa(s.Value), ftoa(s.U), ftoa(s.V)}, ","))
				sb.WriteString("\n")
			}
			path := filepath.Join(dir, "run_"+itoa(i)+".txt")
			Expect(os.WriteFile(path, []byte(sb.String()), 0644)).To(Succeed())
		}

		pattern, err := frame.NewPattern(filepath.Join(dir, "run_%d.txt"), "E")
		Expect(err).NotTo(HaveOccurred())

		surface := render.NewSurface(2*vg.Inch, 2*vg.Inch, 40)
		out := filepath.Join(dir, "run.gif")
		enc, err := encode.New(out, surface.Bounds(), 2)
		Expect(err).NotTo(HaveOccurred())

		a, err := New(Config{Frames: 2, Duration: 1, Kind: render.KindScalar, Options: render.DefaultOptions()}, pattern, surface, enc)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Run(context.Background())).To(Succeed())
		Expect(out).To(BeAnExistingFile())
	})
})
