// Package viz renders a running simulation in the terminal: the surface
// profile and sliding mass on a braille canvas next to a live stats
// panel. It only consumes StepResults; all physics stays in the driver.
package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/shardul-317/slidesim/internal/physics"
	"github.com/shardul-317/slidesim/internal/sim"
	"github.com/shardul-317/slidesim/internal/surface"
)

const (
	canvasWidth     = 72
	canvasHeight    = 22
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	phaseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type point struct{ x, y float64 }

// Model drives one simulation at a fixed tick rate and renders it.
type Model struct {
	sim    *sim.Simulator
	canvas *Canvas
	fps    int

	trail  []point
	energy []float64
	last   physics.StepResult
	seen   bool

	ymin, ymax float64
}

func NewModel(s *sim.Simulator, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	d := s.Domain()
	surf := s.Stepper().Surface()

	// Sample the profile to size the viewport, leaving headroom for
	// ballistic flight above the surface.
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for i := 0; i <= 200; i++ {
		x := d.XMin + (d.XMax-d.XMin)*float64(i)/200
		y := surf.Height(x)
		ymin = math.Min(ymin, y)
		ymax = math.Max(ymax, y)
	}
	span := ymax - ymin
	if span == 0 {
		span = 1
	}
	ymin -= 0.1 * span
	ymax += 0.6 * span

	return Model{
		sim:    s,
		canvas: NewCanvas(canvasWidth, canvasHeight, d.XMin, d.XMax, ymin, ymax),
		fps:    fps,
		trail:  make([]point, 0, historyCapacity),
		energy: make([]float64, 0, historyCapacity),
		ymin:   ymin,
		ymax:   ymax,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.sim.Running() {
				m.sim.Pause()
			} else {
				m.sim.Resume()
			}
		case "r":
			m.sim.Restart()
			m.trail = m.trail[:0]
			m.energy = m.energy[:0]
			m.seen = false
		}
	case TickMsg:
		if r, ok := m.sim.Tick(); ok {
			m.last, m.seen = r, true
			m.trail = append(m.trail, point{r.X, r.Y})
			if len(m.trail) > historyCapacity {
				m.trail = m.trail[1:]
			}
			m.energy = append(m.energy, r.Energy())
			if len(m.energy) > historyCapacity {
				m.energy = m.energy[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) status() string {
	switch {
	case m.sim.State().Phase == physics.PhaseStopped:
		return "STOPPED"
	case m.sim.Done():
		return "COMPLETE"
	case !m.sim.Running():
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

func (m Model) draw() string {
	m.canvas.Clear()

	surf := m.sim.Stepper().Surface()
	d := m.sim.Domain()

	// Surface profile.
	steps := canvasWidth * 2
	prevX := d.XMin
	prevY := surf.Height(prevX)
	for i := 1; i <= steps; i++ {
		x := d.XMin + (d.XMax-d.XMin)*float64(i)/float64(steps)
		y := surf.Height(x)
		m.canvas.Line(prevX, prevY, x, y)
		prevX, prevY = x, y
	}

	for _, p := range m.trail {
		m.canvas.Mark(p.x, p.y)
	}

	// Liftoff marker: a short vertical dash above the separation point.
	if st := m.sim.State(); st.Lifted() {
		lx := st.LiftoffX
		ly := surf.Height(lx)
		m.canvas.Line(lx, ly, lx, ly+0.15*(m.ymax-m.ymin))
	}

	// The mass itself, drawn as a small cluster so it stands out.
	st := m.sim.State()
	m.canvas.Mark(st.X, st.Y)
	eps := (m.ymax - m.ymin) / float64(canvasHeight*4)
	m.canvas.Mark(st.X, st.Y+eps)
	m.canvas.Mark(st.X, st.Y-eps)

	return m.canvas.String()
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.draw())

	var s strings.Builder
	surf := m.sim.Stepper().Surface()
	s.WriteString(headerStyle.Render(strings.ToUpper(surf.Name())) + "\n")
	s.WriteString(phaseStyle.Render(m.status()) + "\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("mechanical energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	st := m.sim.State()
	rows := []struct {
		label string
		value string
	}{
		{"Phase", st.Phase.String()},
		{"x", fmt.Sprintf("%.3f", st.X)},
		{"v", fmt.Sprintf("%.3f", st.V)},
		{"W", fmt.Sprintf("%.3f", st.W)},
	}
	for _, row := range rows {
		s.WriteString(labelStyle.Render(row.label) + valueStyle.Render(row.value) + "\n")
	}
	if m.seen {
		s.WriteString(labelStyle.Render("E") + valueStyle.Render(fmt.Sprintf("%.3f", m.last.Energy())) + "\n")
		s.WriteString(labelStyle.Render("N") + valueStyle.Render(fmt.Sprintf("%.3f", m.last.Normal)) + "\n")
	}
	if st.Lifted() {
		s.WriteString(labelStyle.Render("Liftoff x") + valueStyle.Render(fmt.Sprintf("%.3f", st.LiftoffX)) + "\n")
	}

	if desc, ok := surf.(surface.Describable); ok {
		s.WriteString("\nSURFACE\n")
		params := desc.Params()
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.WriteString(labelStyle.Render(k) + valueStyle.Render(fmt.Sprintf("%.2f", params[k])) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\nSP:Pause  R:Reset  Q:Quit"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
