package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/chatwrap/internal/cli"
	"github.com/theirongolddev/chatwrap/internal/theme"
	"github.com/theirongolddev/chatwrap/internal/tui/components"
)

func (a App) renderRhythmTab(cw int) string {
	t := theme.Active
	v := a.view

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)

	counts := make([]int, len(v.Hourly))
	values := make([]float64, len(v.Hourly))
	for i, h := range v.Hourly {
		counts[i] = h.Count
		values[i] = float64(h.Count)
	}

	var b strings.Builder

	hourBody := components.HourBars(counts, v.MostActive.Hour, t.Accent, t.Orange, 6) + "\n\n" +
		muted.Render("最活跃的时刻是 ") + accent.Render(v.MostActive.Label) +
		muted.Render("，"+v.MostActive.Phrase)
	b.WriteString(components.ContentCard("一天中的节奏", hourBody, cw))
	b.WriteString("\n")

	if !a.isCompactLayout() {
		chart := components.LineChart(values, "conversations by hour", t.Blue, components.CardInnerWidth(cw), 6)
		b.WriteString(components.ContentCard("", chart, cw))
		b.WriteString("\n")
	}

	b.WriteString(components.ContentCard("四季", a.seasonRows(cw), cw))
	return b.String()
}

func (a App) seasonRows(cw int) string {
	t := theme.Active
	v := a.view

	inner := components.CardInnerWidth(cw)
	peak := float64(v.MaxSeasonValue())

	rows := make([]string, 0, len(v.Seasonal)+2)
	for i, s := range v.Seasonal {
		c := t.Seasons[i%len(t.Seasons)]
		rows = append(rows, components.ShareBar(s.Name, cli.FormatCount(int64(s.Value)),
			float64(s.Value)/peak, 8, max(inner-8-10, 10), c))
	}
	if v.RichestSeason.Name != "" {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		hl := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
		rows = append(rows, "", muted.Render("最充实的季节 ")+hl.Render(v.RichestSeason.Name))
	}
	return strings.Join(rows, "\n")
}
