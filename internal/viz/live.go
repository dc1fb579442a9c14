package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/okalex/rebound"
	"github.com/okalex/rebound/internal/config"
)

const (
	graphWidth      = 70
	graphHeight     = 12
	historyCapacity = 600
	velocityKick    = 80.0
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// frameScheduler queues animation frame callbacks and replays them when the
// terminal tick arrives, bridging the spring system's frame demand to
// bubbletea's clock.
type frameScheduler struct {
	pending []func(nowMillis float64)
}

func (f *frameScheduler) RequestFrame(callback func(nowMillis float64)) {
	f.pending = append(f.pending, callback)
}

func (f *frameScheduler) pump(nowMillis float64) {
	callbacks := f.pending
	f.pending = nil
	for _, cb := range callbacks {
		cb(nowMillis)
	}
}

// Model drives one interactive spring in the terminal.
type Model struct {
	cfg       *config.Config
	scheduler *frameScheduler
	system    *rebound.SpringSystem
	spring    *rebound.Spring
	start     time.Time
	history   []float64
	target    float64
	clamping  bool
}

func NewModel(cfg *config.Config) Model {
	scheduler := &frameScheduler{}
	system := rebound.NewSpringSystem(rebound.NewAnimationLooper(scheduler))

	spring := system.CreateSpringWithConfig(cfg.SpringConfig())
	spring.SetOvershootClampingEnabled(cfg.OvershootClamping)
	spring.SetCurrentValue(cfg.From, false)

	m := Model{
		cfg:       cfg,
		scheduler: scheduler,
		system:    system,
		spring:    spring,
		start:     time.Now(),
		history:   make([]float64, 0, historyCapacity),
		target:    cfg.To,
		clamping:  cfg.OvershootClamping,
	}
	spring.SetEndValue(m.target)
	if cfg.Velocity != 0 {
		spring.SetVelocity(cfg.Velocity)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.target == m.cfg.To {
				m.target = m.cfg.From
			} else {
				m.target = m.cfg.To
			}
			m.spring.SetEndValue(m.target)
		case "v":
			m.spring.SetVelocity(m.spring.Velocity() + velocityKick)
		case "c":
			m.clamping = !m.clamping
			m.spring.SetOvershootClampingEnabled(m.clamping)
		case "r":
			m.spring.SetCurrentValue(m.cfg.From, false)
			m.target = m.cfg.To
			m.spring.SetEndValue(m.target)
			m.history = m.history[:0]
		}
	case TickMsg:
		now := time.Since(m.start).Seconds() * 1000
		m.scheduler.pump(now)
		m.history = append(m.history, m.spring.CurrentValue())
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("REBOUND LIVE") + "\n")

	if len(m.history) > 1 {
		window := m.history
		if len(window) > graphWidth {
			window = window[len(window)-graphWidth:]
		}
		chart := asciigraph.Plot(window,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("position"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(m.renderTrack() + "\n\n")

	status := "AT REST"
	style := valueStyle
	if !m.system.GetIsIdle() {
		status = "ACTIVE"
		style = activeStyle
	}
	s.WriteString(labelStyle.Render("State") + style.Render(status) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("%.4f", m.spring.CurrentValue())) + "\n")
	s.WriteString(labelStyle.Render("Velocity") + valueStyle.Render(fmt.Sprintf("%.4f", m.spring.Velocity())) + "\n")
	s.WriteString(labelStyle.Render("Target") + valueStyle.Render(fmt.Sprintf("%.4f", m.target)) + "\n")

	sc := m.spring.Config()
	s.WriteString(labelStyle.Render("Tension") + valueStyle.Render(fmt.Sprintf("%.2f", sc.Tension)) + "\n")
	s.WriteString(labelStyle.Render("Friction") + valueStyle.Render(fmt.Sprintf("%.2f", sc.Friction)) + "\n")

	clamp := "off"
	if m.clamping {
		clamp = "on"
	}
	s.WriteString(labelStyle.Render("Clamping") + valueStyle.Render(clamp) + "\n")

	s.WriteString(helpStyle.Render("SP:Retarget V:Kick C:Clamp R:Reset Q:Quit"))
	return s.String()
}

// renderTrack draws the spring as a mass on a 1-D rail between the from and
// to values, with a third of the rail as overshoot headroom on each side.
func (m Model) renderTrack() string {
	lo, hi := m.cfg.From, m.cfg.To
	if lo > hi {
		lo, hi = hi, lo
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	margin := span / 3
	lo -= margin
	hi += margin

	track := []rune(strings.Repeat("─", graphWidth))
	mark := func(value float64, r rune) {
		i := int(float64(graphWidth-1) * (value - lo) / (hi - lo))
		if i >= 0 && i < graphWidth {
			track[i] = r
		}
	}
	mark(m.cfg.From, '├')
	mark(m.cfg.To, '┤')
	mark(m.target, '|')
	mark(m.spring.CurrentValue(), '●')
	return valueStyle.Render(string(track))
}
