package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/theme"
)

// RenderSummary renders the headline numbers of the year.
func RenderSummary(v dashboard.View) string {
	st := currentStyles()
	var b strings.Builder

	b.WriteString(RenderTitle(fmt.Sprintf("Claude 年度总结 · %d", v.Year)))
	b.WriteString("\n\n")

	rows := [][]string{
		{"对话总数", FormatCount(int64(v.Conversations))},
		{"总时长 (小时)", FormatHours(v.Summary.TotalHours)},
		{"平均时长 (小时)", FormatHours(v.Summary.AverageHours)},
	}
	if v.Summary.AverageTurns != nil {
		rows = append(rows, []string{"平均轮次", fmt.Sprintf("%.2f", *v.Summary.AverageTurns)})
	}
	rows = append(rows,
		[]string{"最长对话 (小时)", FormatHours(v.Summary.LongestChatHours)},
		[]string{"---"},
		[]string{"输入 Tokens", FormatNumber(v.Tokens.InputTokens)},
		[]string{"输出 Tokens", FormatNumber(v.Tokens.OutputTokens)},
		[]string{"总 Tokens", FormatNumber(v.Tokens.TotalTokens)},
		[]string{"---"},
		[]string{"最活跃时段", fmt.Sprintf("%s · %s", v.MostActive.Label, v.MostActive.Phrase)},
	)
	if v.RichestSeason.Name != "" {
		rows = append(rows, []string{"最丰富的季节", v.RichestSeason.Name})
	}

	b.WriteString(RenderTable(Table{Rows: rows}))
	if v.Summary.LongestChatName != "" {
		b.WriteString("  ")
		b.WriteString(st.muted.Render("最长对话: "))
		b.WriteString(st.value.Render(v.Summary.LongestChatName))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderHourly renders 24 hourly bars.
func RenderHourly(v dashboard.View) string {
	st := currentStyles()
	peak := float64(v.MaxHourlyCount())

	var b strings.Builder
	b.WriteString(st.header.Render("  对话时段分布"))
	b.WriteString("\n\n")
	for _, bucket := range v.Hourly {
		label := st.muted.Render(bucket.Hour)
		if bucket.Hour == v.MostActive.Label && bucket.Count > 0 {
			label = st.accent.Render(bucket.Hour)
		}
		fmt.Fprintf(&b, "  %s %s %s\n",
			label,
			padRight(RenderHorizontalBar(float64(bucket.Count), peak, 40, theme.Active.Accent), 40),
			st.dim.Render(FormatCount(int64(bucket.Count))),
		)
	}
	b.WriteString("\n  ")
	b.WriteString(st.value.Render(fmt.Sprintf("%s 最活跃 · %s · %d 次对话", v.MostActive.Label, v.MostActive.Phrase, v.MostActive.Count)))
	b.WriteString("\n")
	return b.String()
}

// RenderSeasons renders the four season bars.
func RenderSeasons(v dashboard.View) string {
	st := currentStyles()
	peak := float64(v.MaxSeasonValue())

	var b strings.Builder
	b.WriteString(st.header.Render("  四季分布"))
	b.WriteString("\n\n")
	for i, s := range v.Seasonal {
		fmt.Fprintf(&b, "  %s %s %s\n",
			padRight(st.muted.Render(s.Name), 8),
			padRight(RenderHorizontalBar(float64(s.Value), peak, 36, theme.Active.Seasons[i%4]), 36),
			st.dim.Render(FormatCount(int64(s.Value))),
		)
	}
	return b.String()
}

// RenderHeatmap renders the contribution calendar, one column per week.
func RenderHeatmap(v dashboard.View, loc *time.Location) string {
	st := currentStyles()
	weeks := v.CalendarWeeks(loc)

	cellStyles := make([]lipgloss.Style, len(theme.Active.Heatmap))
	for i, c := range theme.Active.Heatmap {
		cellStyles[i] = lipgloss.NewStyle().Foreground(c)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n\n", st.header.Render(fmt.Sprintf("%d 对话日历", v.Year)))

	// Month labels sit above the first week that contains the 1st.
	var monthRow strings.Builder
	col := 0
	for i, w := range weeks {
		for _, d := range w {
			if d.InYear && d.Date.Day() == 1 {
				for col < i*2 {
					monthRow.WriteByte(' ')
					col++
				}
				label := d.Date.Format("Jan")
				monthRow.WriteString(label)
				col += len(label)
			}
		}
	}
	b.WriteString("      ")
	b.WriteString(st.dim.Render(monthRow.String()))
	b.WriteString("\n")

	for day := 0; day < 7; day++ {
		label := "    "
		if day%2 == 1 {
			label = FormatDayOfWeek(day) + " "
		}
		b.WriteString("  ")
		b.WriteString(st.dim.Render(label))
		for _, w := range weeks {
			d := w[day]
			if !d.InYear {
				b.WriteString("  ")
				continue
			}
			b.WriteString(cellStyles[d.Level].Render("■ "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n      ")
	b.WriteString(st.dim.Render("少 "))
	for _, s := range cellStyles {
		b.WriteString(s.Render("■ "))
	}
	b.WriteString(st.dim.Render("多"))
	b.WriteString("\n")
	return b.String()
}

// RenderTopics renders the ranked topic bars.
func RenderTopics(v dashboard.View) string {
	st := currentStyles()
	var b strings.Builder
	b.WriteString(st.header.Render("  热门话题"))
	b.WriteString("\n\n")
	if len(v.TopTopics) == 0 {
		b.WriteString(st.muted.Render("  暂无话题数据"))
		b.WriteString("\n")
		return b.String()
	}

	nameWidth := 0
	for _, t := range v.TopTopics {
		nameWidth = max(nameWidth, lipgloss.Width(t.Name))
	}
	nameWidth = min(nameWidth, 40)

	for i, t := range v.TopTopics {
		name := t.Name
		if lipgloss.Width(name) > nameWidth {
			name = truncate(name, nameWidth)
		}
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			st.dim.Render(fmt.Sprintf("%d.", i+1)),
			padRight(st.value.Render(name), nameWidth),
			padRight(RenderHorizontalBar(t.WidthPercent, 100, 30, theme.Active.Accent), 30),
			st.muted.Render(fmt.Sprintf("%d 次", t.Value)),
		)
	}
	return b.String()
}

// RenderTokens renders token totals.
func RenderTokens(v dashboard.View) string {
	return RenderTable(Table{
		Title:   "Token 统计",
		Headers: []string{"类型", "数量", "精确值"},
		Rows: [][]string{
			{"输入", FormatNumber(v.Tokens.InputTokens), FormatCount(v.Tokens.InputTokens)},
			{"输出", FormatNumber(v.Tokens.OutputTokens), FormatCount(v.Tokens.OutputTokens)},
			{"---"},
			{"总计", FormatNumber(v.Tokens.TotalTokens), FormatCount(v.Tokens.TotalTokens)},
		},
	})
}

// truncate shortens s to at most w display cells, ending in "…".
func truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > w-1 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "…"
}
