// Package tui shows the progress of an animation run in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fieldviz/internal/anim"
)

const (
	barWidth   = 40
	plotWidth  = 50
	plotHeight = 8
	tickEvery  = 100 * time.Millisecond
)

type (
	stepMsg struct {
		stats anim.Stats
		err   error
	}
	finishMsg struct{ err error }
	tickMsg   time.Time
)

// Model renders one frame per update so the view stays live during long runs.
type Model struct {
	a        *anim.Animator
	output   string
	stats    []anim.Stats
	peaks    []float64
	spin     int
	start    time.Time
	elapsed  time.Duration
	busy     bool
	canceled bool
	done     bool
	err      error
}

func NewModel(a *anim.Animator, output string) *Model {
	return &Model{a: a, output: output, start: time.Now()}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.step(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) step() tea.Cmd {
	m.busy = true
	return func() tea.Msg {
		s, err := m.a.Step()
		return stepMsg{stats: s, err: err}
	}
}

func (m *Model) finish(runErr error) tea.Cmd {
	return func() tea.Msg {
		return finishMsg{err: m.a.Finish(runErr)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.done {
				return m, nil
			}
			m.done = true
			if m.busy {
				// the frame in flight still owns the encoder
				m.canceled = true
				return m, nil
			}
			return m, m.finish(anim.ErrCanceled)
		}

	case tickMsg:
		if m.done {
			return m, nil
		}
		m.spin++
		m.elapsed = time.Since(m.start)
		return m, tick()

	case stepMsg:
		m.busy = false
		if m.canceled {
			return m, m.finish(anim.ErrCanceled)
		}
		if msg.err != nil {
			m.done = true
			return m, m.finish(msg.err)
		}
		m.stats = append(m.stats, msg.stats)
		m.peaks = append(m.peaks, peakOf(msg.stats))
		if m.a.Done() {
			m.done = true
			return m, m.finish(nil)
		}
		return m, m.step()

	case finishMsg:
		m.err = msg.err
		m.elapsed = time.Since(m.start)
		return m, tea.Quit
	}
	return m, nil
}

// peakOf is the value plotted for a frame: the largest vector magnitude,
// or the field maximum when the frame carries no vectors.
func peakOf(s anim.Stats) float64 {
	if s.PeakVector > 0 {
		return s.PeakVector
	}
	return s.Max
}

func (m *Model) View() string {
	var b strings.Builder

	total := m.a.Total()
	n := len(m.stats)
	status := StatusRunning.Render(Spinner(m.spin) + " rendering")
	switch {
	case m.err != nil:
		status = StatusFailed.Render("✗ " + m.err.Error())
	case m.done && n == total:
		status = StatusDone.Render("✓ done")
	}

	b.WriteString(Title.Render("fieldviz") + "  " + Subtle.Render(m.output) + "\n\n")
	b.WriteString(status + "\n\n")
	b.WriteString(ProgressBar(float64(n)/float64(total), barWidth))
	b.WriteString(fmt.Sprintf("  %d/%d\n\n", n, total))
	b.WriteString(Metric("fps", fmt.Sprintf("%.2f", m.a.FPS())) + "   ")
	b.WriteString(Metric("elapsed", m.elapsed.Round(time.Millisecond).String()) + "\n")

	if len(m.peaks) > 1 {
		b.WriteString("\n" + asciigraph.Plot(m.peaks,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("peak per frame")) + "\n")
	}

	b.WriteString("\n" + KeyHint.Render("q: abort") + "\n")
	return Panel.Render(b.String())
}

// Stats returns the stats of every frame rendered so far.
func (m *Model) Stats() []anim.Stats { return m.stats }

// Err returns the outcome of the run once the program has exited.
func (m *Model) Err() error { return m.err }

// Run drives a to completion inside a bubbletea program.
func Run(a *anim.Animator, output string) ([]anim.Stats, error) {
	m := NewModel(a, output)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return m.Stats(), a.Finish(err)
	}
	return m.Stats(), m.Err()
}
