package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/threebody/internal/engine"
	"github.com/san-kum/threebody/internal/metrics"
	"github.com/san-kum/threebody/internal/trail"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 45
	historyCapacity = 600
	fadeSteps       = 4
	maxSpeed        = 64
	secondsPerDay   = 86400
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type TickMsg time.Time

// Option configures a Model.
type Option func(*Model)

// WithFPS sets the frame rate of the viewer clock.
func WithFPS(fps int) Option {
	return func(m *Model) {
		if fps > 0 {
			m.frame = time.Second / time.Duration(fps)
		}
	}
}

// WithTheme selects the initial theme by name.
func WithTheme(name string) Option { return func(m *Model) { m.theme = GetTheme(name) } }

// WithSpeed sets the number of engine ticks per frame.
func WithSpeed(n int) Option { return func(m *Model) { m.speed = clampSpeed(n) } }

// Model drives an engine from the bubbletea clock and draws its trails.
// The engine must already be initialised.
type Model struct {
	eng      *engine.Engine
	set      *metrics.Set
	energy   *metrics.EnergyHistory
	drift    *metrics.EnergyDrift
	minSep   *metrics.MinSeparation
	canvas   *Canvas
	theme    Theme
	frame    time.Duration
	speed    int
	running  bool
	showHelp bool
	err      error
}

// NewModel wraps eng and registers the viewer's metrics as an observer.
func NewModel(eng *engine.Engine, opts ...Option) Model {
	g := eng.Gravity()
	m := Model{
		eng:     eng,
		energy:  metrics.NewEnergyHistory(g, historyCapacity),
		drift:   metrics.NewEnergyDrift(g),
		minSep:  metrics.NewMinSeparation(),
		canvas:  NewCanvas(width, height),
		theme:   Themes[0],
		frame:   time.Second / 60,
		speed:   1,
		running: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.set = metrics.NewSet(m.energy, m.drift, m.minSep)
	eng.AddObserver(m.set)
	return m
}

// Run starts the viewer in the alternate screen and blocks until it quits.
func Run(eng *engine.Engine, opts ...Option) error {
	p := tea.NewProgram(NewModel(eng, opts...), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func (m Model) Init() tea.Cmd { return m.next() }

func (m Model) next() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events. Each TickMsg advances the engine by speed
// ticks unless paused; the clock keeps running either way.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.eng.Restart(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.set.Reset()
		case "t":
			m.theme = m.theme.next()
		case "+", "=":
			m.speed = clampSpeed(m.speed * 2)
		case "-", "_":
			m.speed = clampSpeed(m.speed / 2)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w := (msg.Width - statsWidth - 6)
		h := msg.Height - 3
		if w > 10 && h > 5 {
			m.canvas.Resize(w, h)
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.speed; i++ {
				m.eng.Tick()
			}
		}
		return m, m.next()
	}
	return m, nil
}

func clampSpeed(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxSpeed {
		return maxSpeed
	}
	return n
}

// toCanvas maps a viewport pixel to a canvas sub-pixel.
func (m *Model) toCanvas(p trail.Point, vp trail.Projector) (int, int) {
	return p.X * m.canvas.SubWidth() / vp.Width, p.Y * m.canvas.SubHeight() / vp.Height
}

func (m *Model) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.canvas.SubWidth() && y < m.canvas.SubHeight()
}

// draw renders every trail, oldest segments dimmest, then a dot at each
// body's newest point.
func (m *Model) draw() {
	m.canvas.Clear()
	vp := m.eng.Projector()
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	bodies := m.eng.Bodies()
	for i, b := range bodies {
		pts := m.eng.Trail(i)
		if len(pts) == 0 {
			continue
		}
		base := Readable(TagColor(b.Tag, i, m.theme))
		shades := Shades(base, m.theme.Background, fadeSteps)
		px, py := m.toCanvas(pts[0], vp)
		for k := 1; k < len(pts); k++ {
			x, y := m.toCanvas(pts[k], vp)
			ink := shades[k*fadeSteps/len(pts)]
			if m.inside(px, py) && m.inside(x, y) {
				m.canvas.DrawLine(px, py, x, y, ink)
			} else {
				m.canvas.Set(x, y, ink)
			}
			px, py = x, y
		}
		m.canvas.Dot(px, py, 1, base.Hex())
	}
}

// View renders the canvas beside a stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render())

	header := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).MarginBottom(1)
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.eng.Scenario())) + "\n")
	status := "RUNNING"
	if !m.running {
		status = lipgloss.NewStyle().Foreground(m.theme.Warning).Render("PAUSED")
	}
	s.WriteString(fmt.Sprintf("%s  x%d\n\n", status, m.speed))

	if samples := m.energy.Samples(); len(samples) > 1 {
		chart := asciigraph.Plot(samples, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Primary).Padding(1, 0).Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Ticks", fmt.Sprintf("%d", m.eng.Ticks()))
	row("Time", fmt.Sprintf("%.1f d", m.eng.Time()/secondsPerDay))
	row("Energy", fmt.Sprintf("%.4e J", m.drift.Current()))
	row("Drift", fmt.Sprintf("%.3e", m.drift.Value()))
	row("Min sep", fmt.Sprintf("%.3e m", m.minSep.Value()))
	row("Theme", m.theme.Name)

	s.WriteString("\nBODIES\n")
	for i, b := range m.eng.Bodies() {
		c := lipgloss.Color(Readable(TagColor(b.Tag, i, m.theme)).Hex())
		mark := lipgloss.NewStyle().Foreground(c).Render("●")
		s.WriteString(fmt.Sprintf("%s %.3e kg  %.2f km/s\n", mark, b.Mass, b.Velocity.Length()/1000))
	}

	s.WriteString(muted.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\nT:Theme  +/-:Speed ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Restart scenario         ║
║  T        - Cycle themes             ║
║  + / -    - Double/halve speed       ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
