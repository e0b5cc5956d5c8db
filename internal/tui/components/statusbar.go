package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/chatwrap/internal/theme"
)

// RenderStatusBar renders the bottom status bar. message, when set, replaces
// the data age on the right.
func RenderStatusBar(width int, dataAge, message string, refreshing bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [?]help  [r]efresh  [e]xport  [q]uit"
	right := ""
	switch {
	case refreshing:
		right = "Refreshing… "
	case message != "":
		right = message + " "
	case dataAge != "":
		right = "Data: " + dataAge + " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
