package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/chatwrap/internal/cli"
	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/theme"
	"github.com/theirongolddev/chatwrap/internal/tui/components"
)

func (a App) renderCalendarTab(cw int) string {
	v := a.view
	loc := a.opts.Loc
	if loc == nil {
		loc = time.UTC
	}

	weeks := v.CalendarWeeks(loc)
	// Two cells per day when there is room, one otherwise.
	cellW := 2
	if len(weeks)*2+4 > components.CardInnerWidth(cw) {
		cellW = 1
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(
		fmt.Sprintf("%d 年的每一天", v.Year),
		heatmapGrid(weeks, cellW),
		cw))
	b.WriteString("\n")
	b.WriteString(components.MetricCardRow(calendarMetrics(v), cw))
	return b.String()
}

// heatmapGrid draws weeks as columns, Sunday on top, with month labels above
// the week holding each month's first day.
func heatmapGrid(weeks [][7]dashboard.CalendarDay, cellW int) string {
	t := theme.Active
	surface := lipgloss.NewStyle().Background(t.Surface)
	dim := surface.Foreground(t.TextDim)

	const gutter = "    "

	// Month labels
	labels := []rune(strings.Repeat(" ", len(weeks)*cellW))
	for i, week := range weeks {
		for _, d := range week {
			if d.InYear && d.Date.Day() == 1 {
				for j, r := range fmt.Sprintf("%d", int(d.Date.Month())) {
					if pos := i*cellW + j; pos < len(labels) {
						labels[pos] = r
					}
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString(dim.Render(gutter + string(labels)))
	b.WriteString("\n")

	dayLabels := [7]string{"", "Mon", "", "Wed", "", "Fri", ""}
	glyph := "■" + strings.Repeat(" ", cellW-1)
	for row := 0; row < 7; row++ {
		b.WriteString(dim.Render(fmt.Sprintf("%-4s", dayLabels[row])))
		for _, week := range weeks {
			d := week[row]
			if !d.InYear {
				b.WriteString(surface.Render(strings.Repeat(" ", cellW)))
				continue
			}
			level := min(max(d.Level, 0), len(t.Heatmap)-1)
			b.WriteString(surface.Foreground(t.Heatmap[level]).Render(glyph))
		}
		b.WriteString("\n")
	}

	// Legend
	b.WriteString(dim.Render(gutter + "少 "))
	for _, c := range t.Heatmap {
		b.WriteString(surface.Foreground(c).Render("■ "))
	}
	b.WriteString(dim.Render("多"))
	return b.String()
}

func calendarMetrics(v dashboard.View) []components.Metric {
	active := 0
	for _, c := range v.Contributions {
		if c.Value > 0 {
			active++
		}
	}
	streak := longestStreak(v)

	return []components.Metric{
		{Label: "活跃天数", Value: cli.FormatCount(int64(active))},
		{Label: "最长连续", Value: cli.FormatCount(int64(streak)) + " 天"},
		{Label: "对话总数", Value: cli.FormatCount(int64(v.Conversations))},
	}
}

// longestStreak counts the longest run of consecutive days with activity.
// Contributions are sorted by date.
func longestStreak(v dashboard.View) int {
	best, run := 0, 0
	var prev time.Time
	for _, c := range v.Contributions {
		if c.Value <= 0 {
			run = 0
			continue
		}
		day, err := time.Parse("2006-01-02", c.Date)
		if err != nil {
			continue
		}
		if run > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		prev = day
		best = max(best, run)
	}
	return best
}
