package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/chatwrap/internal/cli"
	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/theme"
	"github.com/theirongolddev/chatwrap/internal/tui/components"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	v := a.view

	var b strings.Builder

	// Row 1: headline metrics
	b.WriteString(components.MetricCardRow(overviewMetrics(v), cw))
	b.WriteString("\n")

	// Row 2: most active hour and richest season side by side
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	hourly := make([]float64, len(v.Hourly))
	for i, h := range v.Hourly {
		hourly[i] = float64(h.Count)
	}
	hourBody := value.Render(v.MostActive.Label) + muted.Render("  "+v.MostActive.Phrase) + "\n" +
		muted.Render(fmt.Sprintf("%s conversations at peak", cli.FormatCount(int64(v.MostActive.Count)))) + "\n" +
		components.Sparkline(hourly, t.Accent)

	seasons := make([]float64, len(v.Seasonal))
	for i, s := range v.Seasonal {
		seasons[i] = float64(s.Value)
	}
	seasonBody := muted.Render("暂无数据")
	if v.RichestSeason.Name != "" {
		seasonBody = value.Render(v.RichestSeason.Name) + "\n" +
			muted.Render(cli.FormatCount(int64(v.RichestSeason.Value))+" conversations") + "\n" +
			components.Sparkline(seasons, t.Green)
	}

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("最活跃的时刻", hourBody, cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("最充实的季节", seasonBody, cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("最活跃的时刻", hourBody, widths[0]),
			components.ContentCard("最充实的季节", seasonBody, widths[1]),
		}))
	}
	b.WriteString("\n")

	// Row 3: the three largest topics
	topics := v.TopTopics
	if len(topics) > 3 {
		topics = topics[:3]
	}
	b.WriteString(components.ContentCard("话题", a.topicRows(topics, cw), cw))

	return b.String()
}

func overviewMetrics(v dashboard.View) []components.Metric {
	s := v.Summary

	avgNote := ""
	if s.AverageTurns != nil {
		avgNote = "平均 " + dashboard.NumberDisplay(*s.AverageTurns) + " 轮"
	}

	tokenNote := ""
	if v.Tokens.TotalTokens > 0 {
		tokenNote = fmt.Sprintf("in %s · out %s",
			cli.FormatNumber(v.Tokens.InputTokens), cli.FormatNumber(v.Tokens.OutputTokens))
	}

	return []components.Metric{
		{Label: "总时长", Value: dashboard.NumberDisplay(s.TotalHours) + " 小时"},
		{Label: "平均时长", Value: dashboard.NumberDisplay(s.AverageHours) + " 小时", Note: avgNote},
		{Label: "最长对话", Value: dashboard.NumberDisplay(s.LongestChatHours) + " 小时", Note: s.LongestChatName},
		{Label: "Tokens", Value: cli.FormatNumber(v.Tokens.TotalTokens), Note: tokenNote},
	}
}
