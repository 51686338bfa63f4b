package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/scrollsim/internal/config"
	"github.com/san-kum/scrollsim/internal/dynamo"
	"github.com/san-kum/scrollsim/internal/interpolator"
	"github.com/san-kum/scrollsim/internal/logging"
	"github.com/san-kum/scrollsim/internal/scrollview"
	"github.com/san-kum/scrollsim/internal/source"
)

const (
	// ReleaseAfterMs is how long a keyboard drag may go without a pan before
	// it is released.
	ReleaseAfterMs = 120.0

	PanStep       = 40.0
	trailCapacity = 240
	trackRows     = 16
)

type TickMsg time.Time

// Playground is a live scrollview driven by the keyboard on a simulated
// frame clock. Each TickMsg advances the clock by one frame.
type Playground struct {
	sv      *scrollview.Scrollview
	store   *config.Store
	opts    []interpolator.Option
	sim     config.SimConfig
	sources []source.Source
	srcIdx  int

	frameMs   float64
	clock     float64
	lastInput float64
	dragging  bool
	paused    bool
	showHelp  bool

	pos   scrollview.AxisVector
	vel   scrollview.AxisVector
	trail []float64

	spring   harmonica.Spring
	thumb    float64
	thumbVel float64

	err error
}

// NewPlayground builds a playground for sim. When store is not nil both axes
// read their tunables from it, so updates to the store apply on the next
// frame.
func NewPlayground(sim config.SimConfig, store *config.Store, opts ...interpolator.Option) (Playground, error) {
	if sim.FrameRate <= 0 {
		return Playground{}, fmt.Errorf("frame rate must be positive, got %d", sim.FrameRate)
	}

	start := source.Touchscreen
	if sim.Source != "" {
		s, err := source.Parse(sim.Source)
		if err != nil {
			return Playground{}, err
		}
		start = s
	}

	sources := make([]source.Source, 0)
	srcIdx := 0
	for _, s := range source.All() {
		if s == source.Undefined || s == source.Previous {
			continue
		}
		if s == start {
			srcIdx = len(sources)
		}
		sources = append(sources, s)
	}

	if store != nil {
		opts = append([]interpolator.Option{interpolator.WithTunables(store)}, opts...)
	}

	m := Playground{
		store:   store,
		opts:    opts,
		sim:     sim,
		sources: sources,
		srcIdx:  srcIdx,
		frameMs: 1000 / float64(sim.FrameRate),
		spring:  harmonica.NewSpring(harmonica.FPS(sim.FrameRate), 6.0, 0.8),
	}
	m.reset()
	return m, nil
}

func (m *Playground) reset() {
	m.sv = scrollview.New(m.opts...)
	m.sv.SetGeometry(m.sim.ContentHeight, m.sim.ContentWidth, m.sim.ViewportHeight, m.sim.ViewportWidth)
	m.sv.SetSource(m.sources[m.srcIdx])

	// zero is not a valid event time
	m.clock = m.frameMs
	m.lastInput = 0
	m.dragging = false
	m.pos = scrollview.AxisVector{}
	m.vel = scrollview.AxisVector{}
	m.trail = make([]float64, 0, trailCapacity)
	m.thumb, m.thumbVel = 0, 0
	m.err = nil
}

func (m Playground) Init() tea.Cmd {
	return m.tick()
}

func (m Playground) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.frameMs*float64(time.Millisecond)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Playground) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.pan(scrollview.Vertical, -PanStep)
		case "down", "j":
			m.pan(scrollview.Vertical, PanStep)
		case "left", "h":
			m.pan(scrollview.Horizontal, -PanStep)
		case "right", "l":
			m.pan(scrollview.Horizontal, PanStep)
		case "pgup":
			m.pan(scrollview.Vertical, -5*PanStep)
		case "pgdown":
			m.pan(scrollview.Vertical, 5*PanStep)
		case "f", "enter":
			m.release()
		case " ":
			m.interrupt()
		case "s":
			m.srcIdx = (m.srcIdx + 1) % len(m.sources)
			m.sv.SetSource(m.sources[m.srcIdx])
		case "p":
			m.paused = !m.paused
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.paused {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// inputTime returns a timestamp for a new input that is strictly after the
// previous one.
func (m *Playground) inputTime() dynamo.Time {
	ts := m.clock
	if ts <= m.lastInput {
		ts = m.lastInput + 0.5
	}
	m.lastInput = ts
	return ts
}

func (m *Playground) pan(axis scrollview.Axis, amount float64) {
	if m.err != nil {
		return
	}
	m.guard(func() {
		if !m.dragging {
			m.sv.PushInterrupt(m.inputTime())
			m.dragging = true
		}
		m.sv.PushPan(axis, amount, m.inputTime())
	})
}

func (m *Playground) release() {
	if !m.dragging || m.err != nil {
		return
	}
	m.dragging = false
	m.guard(func() { m.sv.PushFling(m.inputTime()) })
}

func (m *Playground) interrupt() {
	if m.err != nil {
		return
	}
	m.dragging = false
	m.guard(func() { m.sv.PushInterrupt(m.inputTime()) })
}

func (m *Playground) advance() {
	if m.err != nil {
		return
	}
	m.clock += m.frameMs
	if m.dragging && m.clock-m.lastInput >= ReleaseAfterMs {
		m.release()
	}

	m.guard(func() {
		pos := m.sv.Sample(m.clock)
		m.vel = pos.Add(m.pos.Scale(-1)).Scale(1 / m.frameMs)
		m.pos = pos
	})

	m.trail = append(m.trail, m.pos.Y)
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}

	m.thumb, m.thumbVel = m.spring.Update(m.thumb, m.thumbVel, m.thumbTarget())
}

// guard runs fn and turns a physics invariant violation into a stopped
// playground instead of a crashed terminal.
func (m *Playground) guard(fn func()) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		inv, ok := dynamo.AsInvariant(rec)
		if !ok {
			panic(rec)
		}
		logging.Logger().Warn("playground stopped", "time", m.clock, "error", inv)
		m.err = inv
	}()
	fn()
}

func (m *Playground) thumbTarget() float64 {
	_, bounds := scrollview.Geometry{
		ContentHeight:  m.sim.ContentHeight,
		ViewportHeight: m.sim.ViewportHeight,
	}.Bounds()
	if bounds.Upper <= bounds.Lower {
		return 0
	}
	frac := (m.pos.Y - bounds.Lower) / (bounds.Upper - bounds.Lower)
	return math.Max(0, math.Min(1, frac)) * (trackRows - 1)
}

func (m Playground) Position() scrollview.AxisVector { return m.pos }
func (m Playground) Velocity() scrollview.AxisVector { return m.vel }
func (m Playground) Clock() float64                  { return m.clock }
func (m Playground) Dragging() bool                  { return m.dragging }
func (m Playground) Paused() bool                    { return m.paused }
func (m Playground) Source() source.Source           { return m.sources[m.srcIdx] }
func (m Playground) Thumb() float64                  { return m.thumb }
func (m Playground) Trail() []float64                { return m.trail }
func (m Playground) Err() error                      { return m.err }
func (m Playground) Scrollview() *scrollview.Scrollview {
	return m.sv
}

func (m Playground) status() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("STOPPED")
	case m.paused:
		return statusPaused.Render("PAUSED")
	case m.dragging:
		return statusDragging.Render("DRAGGING")
	case m.sv.Animating():
		return statusAnimating.Render("ANIMATING")
	default:
		return statusIdle.Render("IDLE")
	}
}

func (m Playground) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("SCROLL PLAYGROUND") + "\n")
	s.WriteString(m.status() + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Source", m.Source().String())
	row("Time", fmt.Sprintf("%.0fms", m.clock))
	row("Position", m.pos.String())
	row("Velocity", fmt.Sprintf("(%.3f, %.3f) px/ms", m.vel.X, m.vel.Y))
	row("Phase", m.sv.Y().Phase().String())
	row("Bounce", m.sv.Y().BounceState().String())
	row("Input/frame", fmt.Sprintf("%.2f", m.sv.InputRate()))
	if m.store != nil {
		row("Config", fmt.Sprintf("v%d", m.store.Version()))
	}

	if len(m.trail) > 1 {
		chart := asciigraph.Plot(m.trail, asciigraph.Height(6), asciigraph.Width(40), asciigraph.Caption("y"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.err != nil {
		s.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(keyHint.Render("↑↓←→:Pan F:Fling SP:Stop S:Source P:Pause R:Reset Q:Quit ?:Help"))

	_, yb := scrollview.Geometry{
		ContentHeight:  m.sim.ContentHeight,
		ViewportHeight: m.sim.ViewportHeight,
	}.Bounds()
	bar := Scrollbar(trackRows, m.thumb, m.pos.Y < yb.Lower, m.pos.Y > yb.Upper)

	body := lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(s.String()), " ", bar)
	if m.showHelp {
		return panelStyle.Render(helpText) + "\n" + body
	}
	return body
}

const helpText = `Up/Down  J/K    pan vertically
Left/Right H/L  pan horizontally
PgUp/PgDn       pan five steps
F / Enter       fling
Space           stop (finger down)
S               next input source
P               pause the clock
R               reset
Q               quit`
