package tui

import (
	"errors"
	"image"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/fieldviz/internal/anim"
	"github.com/san-kum/fieldviz/internal/frame"
	"github.com/san-kum/fieldviz/internal/render"
)

type loader map[int]*frame.Frame

func (l loader) Load(i int) (*frame.Frame, error) {
	f, ok := l[i]
	if !ok {
		return nil, &frame.MissingInputError{Path: "missing", Err: os.ErrNotExist}
	}
	return f, nil
}

type recorder struct {
	frames          int
	closed, aborted bool
}

func (r *recorder) AddFrame(image.Image) error { r.frames++; return nil }
func (r *recorder) Close() error               { r.closed = true; return nil }
func (r *recorder) Abort() error               { r.aborted = true; return nil }

func grid(k float64) *frame.Frame {
	var s []frame.Sample
	for j := 0; j < 2; j++ {
		for i := 0; i < 2; i++ {
			s = append(s, frame.Sample{X: float64(i), Y: float64(j), Value: k, U: k, V: 0})
		}
	}
	return frame.New("E", s)
}

func newAnimator(t *testing.T, frames int, l loader, enc *recorder) *anim.Animator {
	t.Helper()
	a, err := anim.New(anim.Config{
		Frames:   frames,
		Duration: 1,
		Kind:     render.KindVector,
		Options:  render.DefaultOptions(),
	}, l, render.NewSurface(2*vg.Inch, 2*vg.Inch, 30), enc)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

// drive feeds commands back into the model until it quits. Tick commands
// are skipped so the loop does not sleep.
func drive(m *Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case tea.QuitMsg, tickMsg:
			continue
		}
		_, next := m.Update(msg)
		queue = append(queue, next)
	}
}

func TestModel_CompletesRun(t *testing.T) {
	g := NewWithT(t)
	enc := &recorder{}
	a := newAnimator(t, 3, loader{0: grid(1), 1: grid(2), 2: grid(3)}, enc)

	m := NewModel(a, "out.avi")
	drive(m, m.step())

	g.Expect(m.Err()).NotTo(HaveOccurred())
	g.Expect(m.Stats()).To(HaveLen(3))
	g.Expect(enc.frames).To(Equal(3))
	g.Expect(enc.closed).To(BeTrue())
	g.Expect(m.View()).To(ContainSubstring("done"))
	g.Expect(m.View()).To(ContainSubstring("3/3"))
}

func TestModel_FailingFrameAborts(t *testing.T) {
	g := NewWithT(t)
	enc := &recorder{}
	a := newAnimator(t, 3, loader{0: grid(1)}, enc)

	m := NewModel(a, "out.avi")
	drive(m, m.step())

	var ferr *anim.FrameError
	g.Expect(errors.As(m.Err(), &ferr)).To(BeTrue())
	g.Expect(ferr.Index).To(Equal(1))
	g.Expect(enc.aborted).To(BeTrue())
	g.Expect(enc.closed).To(BeFalse())
	g.Expect(m.View()).To(ContainSubstring("frame 1"))
}

func TestModel_CancelWaitsForFrameInFlight(t *testing.T) {
	g := NewWithT(t)
	enc := &recorder{}
	a := newAnimator(t, 3, loader{0: grid(1), 1: grid(2), 2: grid(3)}, enc)

	m := NewModel(a, "out.avi")
	inFlight := m.step()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	g.Expect(cmd).To(BeNil())
	g.Expect(enc.aborted).To(BeFalse())

	drive(m, inFlight)
	g.Expect(m.Err()).To(MatchError(anim.ErrCanceled))
	g.Expect(enc.frames).To(Equal(1))
	g.Expect(enc.aborted).To(BeTrue())
}

func TestProgressBar(t *testing.T) {
	g := NewWithT(t)
	g.Expect(strings.Count(ProgressBar(0.5, 10), "█")).To(Equal(5))
	g.Expect(strings.Count(ProgressBar(2, 10), "█")).To(Equal(10))
	g.Expect(strings.Count(ProgressBar(-1, 10), "░")).To(Equal(10))
}

func TestPeakOf(t *testing.T) {
	g := NewWithT(t)
	g.Expect(peakOf(anim.Stats{PeakVector: 2, Max: 5})).To(Equal(2.0))
	g.Expect(peakOf(anim.Stats{Max: 5})).To(Equal(5.0))
}
