package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/metrics"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/scene"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	frameTime       = time.Second / 60

	minTimeScale = 0.125
	maxTimeScale = 8
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameTime, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is a read-only view of a running scene. The world is stepped by a
// dynamo.Clock from wall-clock frame times.
type Model struct {
	cfg      *config.Config
	title    string
	log      logr.Logger
	scene    *scene.Scene
	clock    *dynamo.Clock
	canvas   *Canvas
	view     Viewport
	theme    Theme
	style    styles
	energy   []float64
	last     time.Time
	showHelp bool
	err      error
}

// NewModel builds cfg into a world and frames the camera on its initial
// bodies.
func NewModel(cfg *config.Config, title string, log logr.Logger) (Model, error) {
	m := Model{
		cfg:    cfg,
		title:  title,
		log:    log,
		canvas: NewCanvas(width, height),
		theme:  Themes[0],
		style:  newStyles(Themes[0]),
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// reset rebuilds the scene from its config, keeping the clock's scale and
// pause state.
func (m *Model) reset() error {
	sc, err := scene.Build(m.cfg, physics.WithLogger(m.log))
	if err != nil {
		return err
	}
	clock := dynamo.NewClock()
	clock.MaxFrameTime = sc.Config.World.MaxFrameTime
	clock.TimeScale = sc.Config.World.TimeScale
	if m.clock != nil {
		clock.TimeScale = m.clock.TimeScale
		if m.clock.Paused() {
			clock.Pause()
		}
	}
	m.scene, m.clock = sc, clock
	m.view = Fit(m.canvas, Extent(dynamo.Snapshot(sc.World, 0), 1))
	m.energy = m.energy[:0]
	m.last = time.Time{}
	return nil
}

func (m Model) Init() tea.Cmd { return tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.clock.Toggle()
		case ".":
			if m.clock.Paused() {
				m.scene.World.Step(m.scene.Config.Dt)
				m.record()
			}
		case "+", "=":
			m.scale(2)
		case "-", "_":
			m.scale(0.5)
		case "0":
			m.clock.TimeScale = dynamo.DefaultTimeScale
		case "r":
			m.err = m.reset()
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.style = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		now := time.Time(msg)
		frame := frameTime.Seconds()
		if !m.last.IsZero() {
			frame = now.Sub(m.last).Seconds()
		}
		m.last = now
		if m.clock.Advance(m.scene.World, frame) > 0 {
			m.record()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) scale(f float64) {
	s := min(max(m.clock.TimeScale*f, minTimeScale), maxTimeScale)
	if err := m.clock.SetTimeScale(s); err != nil {
		m.err = err
	}
}

func (m *Model) record() {
	m.energy = append(m.energy, metrics.Kinetic(m.scene.World))
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	w := m.scene.World
	DrawWorld(m.canvas, m.view, w)
	canvasView := m.style.canvas.Render(m.canvas.String())

	st := w.Stats()
	var s strings.Builder
	s.WriteString(m.style.title.Render(strings.ToUpper(m.title)) + "\n")
	if m.clock.Paused() {
		s.WriteString(m.style.paused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(m.style.running.Render("RUNNING") + "\n\n")
	}
	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(m.style.graph.Render(chart) + "\n\n")
	}
	row := func(label, value string) {
		s.WriteString(m.style.label.Render(label) + m.style.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", st.Time))
	row("Scale", fmt.Sprintf("%gx %s", m.clock.TimeScale, ProgressBar(m.clock.TimeScale/maxTimeScale, 10)))
	row("Bodies", fmt.Sprintf("%d/%d", st.ActiveBodies, st.Bodies))
	row("Pairs", fmt.Sprintf("%d", st.CandidatePairs))
	row("Contacts", fmt.Sprintf("%d (%d triggers)", st.Manifolds, st.Triggers))
	row("Joints", fmt.Sprintf("%d", st.Constraints))
	row("Particles", fmt.Sprintf("%d", st.Particles))

	speed := 0.0
	for _, b := range w.Bodies() {
		if b.Dynamic() {
			speed = max(speed, b.Rigid.Velocity.Len())
		}
	}
	speedStyle := lipgloss.NewStyle().Foreground(SpeedColor(m.theme, speed, metrics.DefaultSpeedLimit/4))
	s.WriteString(m.style.label.Render("Top speed") + speedStyle.Render(fmt.Sprintf("%.2f", speed)) + "\n")

	if len(m.scene.Counters) > 0 {
		names := make([]string, 0, len(m.scene.Counters))
		for name := range m.scene.Counters {
			names = append(names, name)
		}
		sort.Strings(names)
		s.WriteString("\nSENSORS\n")
		for _, name := range names {
			row(name, fmt.Sprintf("%d", m.scene.Counters[name].Count))
		}
	}
	if m.err != nil {
		s.WriteString("\n" + m.style.paused.Render(m.err.Error()) + "\n")
	}
	s.WriteString(m.style.help.Render("SP:Pause .:Step R:Reset Q:Quit\n+/-:Speed 0:1x T:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.style.panel.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  .        - Single step while paused ║
║  R        - Rebuild the scene        ║
║  + / -    - Double/halve time scale  ║
║  0        - Reset time scale         ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the live view in the alternate screen.
func Run(cfg *config.Config, title string, log logr.Logger) error {
	m, err := NewModel(cfg, title, log)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
