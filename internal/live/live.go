// Package live drives a transient solve interactively: each UI tick
// advances the stepper a few steps and replots the selected signal, so
// slow models can be watched while they solve.
package live

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"phynet/internal/solver"
)

const (
	graphWidth      = 70
	graphHeight     = 14
	historyCapacity = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

type TickMsg time.Time

// Model is the bubbletea model of the live view.
type Model struct {
	name    string
	stepper *solver.Stepper
	labels  []string

	selected     int
	running      bool
	stepsPerTick int
	history      [][]float64
	err          error
}

// New returns a live view over a prepared stepper. The model name heads
// the display.
func New(name string, stepper *solver.Stepper) Model {
	return Model{
		name:         name,
		stepper:      stepper,
		labels:       stepper.Labels(),
		running:      true,
		stepsPerTick: 1,
		history:      make([][]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
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
		case "tab", "right", "l":
			m.selected = (m.selected + 1) % len(m.labels)
		case "shift+tab", "left", "h":
			m.selected = (m.selected + len(m.labels) - 1) % len(m.labels)
		case "+", "=":
			if m.stepsPerTick < 256 {
				m.stepsPerTick *= 2
			}
		case "-", "_":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		}
	case TickMsg:
		if m.running && m.err == nil && !m.stepper.Done() {
			for i := 0; i < m.stepsPerTick; i++ {
				if m.stepper.Done() {
					break
				}
				if err := m.stepper.Step(); err != nil {
					m.err = err
					break
				}
				m.history = append(m.history, m.stepper.Values())
				if len(m.history) > historyCapacity {
					m.history = m.history[1:]
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  t=%.4gs", m.name, m.stepper.Time())))
	b.WriteString("\n")

	label := m.labels[m.selected]
	sig := make([]float64, len(m.history))
	for i, row := range m.history {
		sig[i] = row[m.selected]
	}

	if len(sig) > 1 {
		graph := asciigraph.Plot(sig,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(label),
		)
		b.WriteString(graphStyle.Render(graph))
	} else {
		b.WriteString(graphStyle.Render("waiting for samples..."))
	}
	b.WriteString("\n")

	values := m.stepper.Values()
	for i, l := range m.labels {
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(labelStyle.Render(l))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%12.6g", values[i])))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("solve failed: %v", m.err)))
		b.WriteString("\n")
	case m.stepper.Done():
		b.WriteString(headerStyle.Render("done"))
		b.WriteString("\n")
	case !m.running:
		b.WriteString(headerStyle.Render("paused"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(
		fmt.Sprintf("space pause • tab signal • +/- speed (%dx) • q quit", m.stepsPerTick)))
	b.WriteString("\n")

	return b.String()
}
