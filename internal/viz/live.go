// Package viz renders the simulation live in the terminal: a braille-canvas
// projection of the scene with a stats panel and kinetic-energy sparkline.
package viz

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/scene"
	"github.com/san-kum/ballsim/internal/sim"
)

const (
	canvasWidth     = 56
	canvasHeight    = 26
	frameRate       = 60
	historyCapacity = 240
	maxStepsPerTick = 64
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statsStyle  = lipgloss.NewStyle().Padding(0, 2).Width(34)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).MarginTop(1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the bubbletea model around one live scene.
type Model struct {
	cfg     *config.Config
	sc      *scene.Scene
	acc     *sim.Accumulator
	canvas  *Canvas
	running bool
	speed   float64
	t       float64
	energy  []float64
}

func NewModel(cfg *config.Config) (Model, error) {
	sc, err := cfg.BuildScene()
	if err != nil {
		return Model{}, err
	}
	return Model{
		cfg:     cfg,
		sc:      sc,
		acc:     sim.NewAccumulator(cfg.Dt, maxStepsPerTick),
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		running: true,
		speed:   1.0,
		energy:  make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
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
			if sc, err := m.cfg.BuildScene(); err == nil {
				m.sc = sc
				m.acc = sim.NewAccumulator(m.cfg.Dt, maxStepsPerTick)
				m.t = 0
				m.energy = m.energy[:0]
			}
		case "+", "=":
			m.speed = math.Min(m.speed*2, 16)
		case "-", "_":
			m.speed = math.Max(m.speed/2, 0.125)
		}
	case TickMsg:
		if m.running {
			steps := m.acc.Advance(m.speed/frameRate, m.sc.Step)
			m.t += float64(steps) * m.cfg.Dt
			m.energy = append(m.energy, m.sc.World().TotalKineticEnergy())
			if len(m.energy) > historyCapacity {
				m.energy = m.energy[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

// draw projects the x/y plane of the scene onto the canvas: border circle
// plus one filled circle per body, to scale.
func (m Model) draw() {
	m.canvas.Clear()

	world := m.sc.World()
	cfg := world.Config()

	cx := m.canvas.SubWidth() / 2
	cy := m.canvas.SubHeight() / 2
	extent := float64(min(m.canvas.SubWidth(), m.canvas.SubHeight())) / 2
	scale := (extent - 1) / cfg.BorderRadius

	m.canvas.Circle(cx, cy, int(cfg.BorderRadius*scale))

	for _, b := range world.Bodies() {
		rel := b.Pos.Sub(cfg.BorderCenter)
		x := cx + int(rel.X*scale)
		y := cy - int(rel.Y*scale)
		m.canvas.FillCircle(x, y, int(b.Radius*scale))
	}
}

func (m Model) View() string {
	m.draw()

	world := m.sc.World()
	status := pausedStyle.Render("paused")
	if m.running {
		status = valueStyle.Render(fmt.Sprintf("%gx", m.speed))
	}

	stats := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("ballsim"),
		labelStyle.Render("time")+valueStyle.Render(fmt.Sprintf("%.3f s", m.t)),
		labelStyle.Render("bodies")+valueStyle.Render(fmt.Sprintf("%d", world.Len())),
		labelStyle.Render("kinetic")+valueStyle.Render(fmt.Sprintf("%.5f", world.TotalKineticEnergy())),
		labelStyle.Render("penetration")+valueStyle.Render(fmt.Sprintf("%.2e", world.MaxPenetration())),
		labelStyle.Render("status")+status,
	)

	if len(m.energy) > 1 {
		graph := asciigraph.Plot(m.energy,
			asciigraph.Height(6),
			asciigraph.Width(30),
			asciigraph.Caption("kinetic energy"),
		)
		stats = lipgloss.JoinVertical(lipgloss.Left, stats, graphStyle.Render(graph))
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats),
	)

	return view + helpStyle.Render("\n space pause · r reset · +/- speed · q quit\n")
}

// Run starts the live TUI for the given configuration.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}
