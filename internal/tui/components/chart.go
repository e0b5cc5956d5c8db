package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/theirongolddev/chatwrap/internal/theme"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3) // block chars are 3 bytes in UTF-8
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// LineChart plots values with asciigraph. Charts narrower than 20 cells or
// lower than 3 rows fall back to a sparkline.
func LineChart(values []float64, caption string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 20 || height < 3 {
		return Sparkline(values, color)
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width-8), // y-axis labels
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)

	style := lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface)
	lines := strings.Split(graph, "\n")
	for i, l := range lines {
		lines[i] = style.Render(l)
	}
	return strings.Join(lines, "\n")
}

// HourBars renders 24 vertical bars, one per hour, with the peak hour drawn
// in the highlight color and hour ticks every six hours underneath.
func HourBars(counts []int, peak int, color, highlight lipgloss.Color, height int) string {
	if len(counts) == 0 {
		return ""
	}
	height = max(height, 1)
	t := theme.Active

	top := 1
	for _, c := range counts {
		top = max(top, c)
	}

	base := lipgloss.NewStyle().Background(t.Surface)
	bar := base.Foreground(color)
	hot := base.Foreground(highlight).Bold(true)
	axis := base.Foreground(t.TextDim)

	// Each bar is two cells wide with a one cell gap.
	rows := make([]string, 0, height+1)
	for row := height; row >= 1; row-- {
		var b strings.Builder
		for h, c := range counts {
			filled := float64(c) / float64(top) * float64(height)
			cell := "  "
			switch {
			case filled >= float64(row):
				cell = "██"
			case filled > float64(row-1) && c > 0:
				frac := filled - float64(row-1)
				r := blocks[min(int(frac*float64(len(blocks))), len(blocks)-1)]
				cell = string([]rune{r, r})
			}
			if h == peak {
				b.WriteString(hot.Render(cell))
			} else {
				b.WriteString(bar.Render(cell))
			}
			b.WriteString(base.Render(" "))
		}
		rows = append(rows, b.String())
	}

	var ticks strings.Builder
	for h := range counts {
		switch {
		case h%6 == 0:
			ticks.WriteString(axis.Render(fmt.Sprintf("%02d ", h)))
		default:
			ticks.WriteString(axis.Render("   "))
		}
	}
	rows = append(rows, ticks.String())
	return strings.Join(rows, "\n")
}

