package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/chatwrap/internal/cli"
	"github.com/theirongolddev/chatwrap/internal/model"
	"github.com/theirongolddev/chatwrap/internal/theme"
	"github.com/theirongolddev/chatwrap/internal/tui/components"
)

func (a App) renderTopicsTab(cw int) string {
	t := theme.Active
	v := a.view

	body := a.topicRows(v.TopTopics, cw)

	total := 0
	for _, tb := range v.TopTopics {
		total += tb.Value
	}
	if total > 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		body += "\n\n" + dim.Render("Top "+cli.FormatCount(int64(len(v.TopTopics)))+
			" topics cover "+cli.FormatCount(int64(total))+" conversations, noise excluded")
	}
	return components.ContentCard("话题", body, cw)
}

// topicRows renders one share bar per topic, sized relative to the largest.
func (a App) topicRows(topics []model.TopicBar, cw int) string {
	t := theme.Active
	if len(topics) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("暂无话题")
	}

	inner := components.CardInnerWidth(cw)
	labelW := min(28, inner/3)
	valueW := 0
	for _, tb := range topics {
		valueW = max(valueW, len(cli.FormatCount(int64(tb.Value))))
	}
	barW := max(inner-labelW-valueW-2, 10)

	colors := []lipgloss.Color{t.Accent, t.Blue, t.Magenta, t.Orange, t.Green}
	rows := make([]string, len(topics))
	for i, tb := range topics {
		rows[i] = components.ShareBar(tb.Name, cli.FormatCount(int64(tb.Value)),
			tb.WidthPercent/100, labelW, barW, colors[i%len(colors)])
	}
	return strings.Join(rows, "\n")
}
