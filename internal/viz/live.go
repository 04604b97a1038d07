// Package viz renders prescribed body motion as a live terminal
// animation: foil chords heave and pitch, undulator backbones ripple,
// and a side panel tracks the heave-rate history.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/flapsim/internal/body"
	"github.com/san-kum/flapsim/internal/kinematics"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailCapacity   = 200
)

type TickMsg time.Time

// Model animates a registry of kinematic bodies at a fixed playback step.
type Model struct {
	bodies *body.Registry
	t, dt  float64
	speed  float64

	canvas    *Canvas
	trail     []struct{ x, y int }
	heaveHist []float64
	running   bool
	title     string
}

// NewModel sets up the animation. dt is the time advanced per frame at
// unit speed.
func NewModel(bodies *body.Registry, dt float64, title string) Model {
	return Model{
		bodies:    bodies,
		dt:        dt,
		speed:     1.0,
		canvas:    NewCanvas(width, height),
		trail:     make([]struct{ x, y int }, 0, trailCapacity),
		heaveHist: make([]float64, 0, historyCapacity),
		running:   true,
		title:     title,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.t = 0
			m.trail = m.trail[:0]
			m.heaveHist = m.heaveHist[:0]
		case "+", "=":
			m.speed *= 1.5
		case "-", "_":
			m.speed /= 1.5
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the animation clock and refreshes every body's cached
// kinematics at the new time.
func (m *Model) step() {
	m.t += m.dt * m.speed
	m.bodies.ForEach(func(b kinematics.Model) error {
		if err := b.SetVelocity(m.t, nil, nil, nil); err != nil {
			return err
		}
		return b.SetShape(m.t, nil)
	})

	if foil := m.firstFoil(); foil != nil {
		_, hDot := foil.Heave(m.t)
		m.heaveHist = append(m.heaveHist, hDot)
		if len(m.heaveHist) > historyCapacity {
			m.heaveHist = m.heaveHist[1:]
		}
	}
}

func (m *Model) firstFoil() *kinematics.FlappingFoil {
	var foil *kinematics.FlappingFoil
	m.bodies.ForEach(func(b kinematics.Model) error {
		if f, ok := b.(*kinematics.FlappingFoil); ok && foil == nil {
			foil = f
		}
		return nil
	})
	return foil
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.heaveHist) > 1 {
		chart := asciigraph.Plot(m.heaveHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Heave rate"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.2fx", m.speed)) + "\n")

	s.WriteString("\nBODIES\n")
	m.bodies.ForEach(func(b kinematics.Model) error {
		switch t := b.(type) {
		case *kinematics.FlappingFoil:
			h, _ := t.Heave(m.t)
			theta, _ := t.Pitch(m.t)
			s.WriteString(labelStyle.Render(t.Name()) +
				valueStyle.Render(fmt.Sprintf("h=%+.3f  θ=%+.1f°", h, theta*180/math.Pi)) + "\n")
		case *kinematics.Undulator:
			s.WriteString(labelStyle.Render(t.Name()) +
				valueStyle.Render(fmt.Sprintf("tail=%+.3f", t.Midline(1, m.t))) + "\n")
		default:
			s.WriteString(labelStyle.Render(b.Name()) + valueStyle.Render("-") + "\n")
		}
		return nil
	})

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Speed"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// draw renders every body into the canvas: foils as pitched chord lines
// offset by heave, undulators as their backbone polyline.
func (m *Model) draw() {
	m.canvas.Clear()
	cw, ch := width*2, height*4
	cx, cy := cw/2, ch/2

	n := m.bodies.Len()
	if n == 0 {
		return
	}

	i := 0
	m.bodies.ForEach(func(b kinematics.Model) error {
		// Stack bodies vertically when animating more than one.
		rowY := cy
		if n > 1 {
			rowY = (i + 1) * ch / (n + 1)
		}
		switch t := b.(type) {
		case *kinematics.FlappingFoil:
			m.drawFoil(t, cx, rowY, ch)
		case *kinematics.Undulator:
			m.drawUndulator(t, cx, rowY, cw)
		}
		i++
		return nil
	})
}

func (m *Model) drawFoil(f *kinematics.FlappingFoil, cx, cy, ch int) {
	h, _ := f.Heave(m.t)
	theta, _ := f.Pitch(m.t)

	chord := float64(ch) * 0.35
	heaveScale := float64(ch) * 0.3 / math.Max(f.Params().HeaveAmplitude, 1e-9)

	py := cy - int(h*heaveScale)
	pivot := f.Params().PivotX

	// Chord endpoints about the pivot, rotated by the pitch angle. Screen
	// y grows downward, so positive pitch drops the leading edge.
	lex := cx - int(pivot*chord*math.Cos(theta))
	ley := py + int(pivot*chord*math.Sin(theta))
	tex := cx + int((1-pivot)*chord*math.Cos(theta))
	tey := py - int((1-pivot)*chord*math.Sin(theta))

	m.trail = append(m.trail, struct{ x, y int }{tex, tey})
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}
	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}

	m.canvas.DrawLine(lex, ley, tex, tey)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			m.canvas.Set(lex+dx, ley+dy)
		}
	}
}

func (m *Model) drawUndulator(u *kinematics.Undulator, cx, cy, cw int) {
	shape := u.Shape(0)
	if len(shape) < 2 {
		return
	}

	bodyLen := float64(cw) * 0.5
	lateralScale := bodyLen * 2.0

	prevX, prevY := 0, 0
	for i, pt := range shape {
		px := cx + int(pt.X*bodyLen)
		py := cy - int(pt.Y*lateralScale)
		if i > 0 {
			m.canvas.DrawLine(prevX, prevY, px, py)
		}
		prevX, prevY = px, py
	}
	// Head marker at the first backbone point.
	hx := cx + int(shape[0].X*bodyLen)
	hy := cy - int(shape[0].Y*lateralScale)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			m.canvas.Set(hx+dx, hy+dy)
		}
	}
}
