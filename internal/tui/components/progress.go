package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/chatwrap/internal/theme"
)

// ShareBar renders "label ████░░░░ value" using a solid progress bar.
// pct is 0-1 relative to the largest row. label is padded to labelW cells.
func ShareBar(label, value string, pct float64, labelW, barWidth int, color lipgloss.Color) string {
	t := theme.Active
	pct = min(max(pct, 0), 1)
	barWidth = max(barWidth, 4)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.Border)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	label = Truncate(label, labelW)
	if gap := labelW - lipgloss.Width(label); gap > 0 {
		label += fmt.Sprintf("%*s", gap, "")
	}

	return labelStyle.Render(label) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		valueStyle.Render(value)
}
