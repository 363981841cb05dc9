package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"phynet/internal/solver"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// PlotOptions controls terminal plot geometry.
type PlotOptions struct {
	Width  int
	Height int
}

// DefaultPlotOptions fits an 80-column terminal.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 72, Height: 10}
}

// PlotTraces renders each labeled signal as an asciigraph plot under a
// styled header. Unknown labels produce an error naming the label.
func PlotTraces(res *solver.Result, opts PlotOptions, labels ...string) (string, error) {
	if len(labels) == 0 {
		labels = res.Labels
	}

	var b strings.Builder
	for i, label := range labels {
		sig, err := res.Signal(label)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(headerStyle.Render(label))
		b.WriteString("\n")
		graph := asciigraph.Plot(sig,
			asciigraph.Height(opts.Height),
			asciigraph.Width(opts.Width),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
		if n := len(res.Times); n > 1 {
			b.WriteString(captionStyle.Render(
				fmt.Sprintf("t = %g .. %g s, %d samples", res.Times[0], res.Times[n-1], n)))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// Panel wraps rendered content in a bordered panel with a title.
func Panel(title, content string) string {
	return panelStyle.Render(headerStyle.Render(title) + "\n" + content)
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline compresses a signal into a one-row unicode graph of the
// given width.
func Sparkline(sig []float64, width int) string {
	if len(sig) == 0 || width <= 0 {
		return ""
	}

	lo, hi := sig[0], sig[0]
	for _, v := range sig {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		return strings.Repeat(string(sparkRunes[0]), width)
	}

	out := make([]rune, width)
	for i := range out {
		idx := i * (len(sig) - 1) / max(width-1, 1)
		level := int((sig[idx] - lo) / span * float64(len(sparkRunes)-1))
		out[i] = sparkRunes[level]
	}
	return string(out)
}
