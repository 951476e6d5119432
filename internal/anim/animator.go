package anim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fieldviz/internal/encode"
	"github.com/san-kum/fieldviz/internal/frame"
	"github.com/san-kum/fieldviz/internal/lattice"
	"github.com/san-kum/fieldviz/internal/render"
)

// Loader supplies the frame with a given index. frame.Pattern implements it.
type Loader interface {
	Load(index int) (*frame.Frame, error)
}

type Config struct {
	Frames   int
	Duration float64 // seconds of playback
	Kind     render.Kind
	Options  render.Options
}

// Stats summarizes one rendered frame.
type Stats struct {
	Index      int
	Samples    int
	Rows, Cols int
	Min, Max   float64
	PeakVector float64
}

// Observer is notified after every rendered frame.
type Observer interface {
	OnFrame(s Stats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Stats)

func (f ObserverFunc) OnFrame(s Stats) { f(s) }

// FrameRate returns frames / duration.
func FrameRate(frames int, duration float64) (float64, error) {
	if frames < 1 {
		return 0, ErrNoFrames
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return 0, ErrInvalidDuration
	}
	return float64(frames) / duration, nil
}

// Animator drives one animation run. It is not safe for concurrent use.
type Animator struct {
	cfg       Config
	fps       float64
	loader    Loader
	surface   *render.Surface
	enc       encode.Encoder
	next      int
	finished  bool
	observers []Observer
}

func New(cfg Config, loader Loader, surface *render.Surface, enc encode.Encoder) (*Animator, error) {
	fps, err := FrameRate(cfg.Frames, cfg.Duration)
	if err != nil {
		return nil, err
	}
	return &Animator{
		cfg:       cfg,
		fps:       fps,
		loader:    loader,
		surface:   surface,
		enc:       enc,
		observers: make([]Observer, 0),
	}, nil
}

func (a *Animator) AddObserver(o Observer) { a.observers = append(a.observers, o) }

// FPS returns the playback frame rate of the run.
func (a *Animator) FPS() float64 { return a.fps }

// Total returns the number of frames in the run.
func (a *Animator) Total() int { return a.cfg.Frames }

// Next returns the index of the frame the next Step renders.
func (a *Animator) Next() int { return a.next }

// Done reports whether every frame has been rendered.
func (a *Animator) Done() bool { return a.next >= a.cfg.Frames }

// Step renders the next frame and passes it to the encoder. On failure the
// index does not advance and the error is a *FrameError.
func (a *Animator) Step() (Stats, error) {
	idx := a.next
	if a.Done() {
		return Stats{}, &FrameError{Index: idx, Err: fmt.Errorf("run has only %d frames", a.cfg.Frames)}
	}

	s, err := a.render(idx)
	if err != nil {
		return Stats{}, &FrameError{Index: idx, Err: err}
	}
	a.next++

	for _, o := range a.observers {
		o.OnFrame(s)
	}
	return s, nil
}

func (a *Animator) render(idx int) (Stats, error) {
	f, err := a.loader.Load(idx)
	if err != nil {
		return Stats{}, err
	}
	l, err := lattice.New(f)
	if err != nil {
		return Stats{}, err
	}

	opts := a.cfg.Options
	opts.Title = fmt.Sprintf("frame %d", idx)
	fig, err := render.Render(a.cfg.Kind, l, opts)
	if err != nil {
		return Stats{}, err
	}

	if err := a.enc.AddFrame(a.surface.Draw(fig)); err != nil {
		return Stats{}, fmt.Errorf("encode: %w", err)
	}
	return frameStats(idx, l), nil
}

func frameStats(idx int, l *lattice.Lattice) Stats {
	f := l.Frame()
	peak := 0.0
	for i := range f.U {
		peak = math.Max(peak, math.Hypot(f.U[i], f.V[i]))
	}
	return Stats{
		Index:      idx,
		Samples:    f.Len(),
		Rows:       l.Rows(),
		Cols:       l.Cols(),
		Min:        floats.Min(f.Value),
		Max:        floats.Max(f.Value),
		PeakVector: peak,
	}
}

// Finish closes the encoder after a complete run, or aborts it when runErr
// is non-nil. It returns runErr, joined with the abort error if discarding
// the partial artifact failed. Only the first call touches the encoder.
func (a *Animator) Finish(runErr error) error {
	if a.finished {
		return runErr
	}
	a.finished = true
	if runErr != nil {
		if err := a.enc.Abort(); err != nil {
			return errors.Join(runErr, fmt.Errorf("abort: %w", err))
		}
		return runErr
	}
	return a.enc.Close()
}

// Run renders every remaining frame in order. It stops at the first failing
// frame, or when ctx is canceled between frames.
func (a *Animator) Run(ctx context.Context) error {
	for !a.Done() {
		select {
		case <-ctx.Done():
			return a.Finish(ctx.Err())
		default:
		}

		if _, err := a.Step(); err != nil {
			return a.Finish(err)
		}
	}
	return a.Finish(nil)
}
