// Package web renders the year-in-review dashboard as a self-contained HTML page.
package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/chatwrap/internal/cli"
	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/theme"
)

// FontURL is the stylesheet exported pages import so snapshots render in
// the same typeface as the live page.
const FontURL = "https://fonts.googleapis.com/css2?family=JetBrains+Mono:wght@400;700&display=swap"

// Page is the template input.
type Page struct {
	View   dashboard.View
	Theme  theme.Theme
	Themes []string
	Loc    *time.Location
	// Export drops the interactive controls and inlines the font import.
	Export bool
}

var funcMap = template.FuncMap{
	"css":   func(c lipgloss.Color) template.CSS { return template.CSS(theme.Hex(c)) },
	"num":   func(n int64) string { return cli.FormatNumber(n) },
	"count": func(n int) string { return cli.FormatCount(int64(n)) },
	"hours": dashboard.NumberDisplay,
	"width": func(pct float64) template.CSS { return template.CSS(fmt.Sprintf("%.2f%%", pct)) },
	"ratio": func(v, peak int) template.CSS {
		return template.CSS(fmt.Sprintf("%.2f%%", float64(v)/float64(max(peak, 1))*100))
	},
	"heat": func(t theme.Theme, level int) template.CSS {
		level = min(max(level, 0), len(t.Heatmap)-1)
		return template.CSS(theme.Hex(t.Heatmap[level]))
	},
	"seasonColor": func(t theme.Theme, i int) template.CSS {
		return template.CSS(theme.Hex(t.Seasons[i%len(t.Seasons)]))
	},
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	"stamp": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"add":   func(a, b int) int { return a + b },
	"monthLabel": func(week [7]dashboard.CalendarDay) string {
		for _, d := range week {
			if d.InYear && d.Date.Day() == 1 {
				return fmt.Sprintf("%d月", int(d.Date.Month()))
			}
		}
		return ""
	},
}

var pageTmpl = template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplDashboard))

// Render writes the dashboard page.
func Render(w io.Writer, p Page) error {
	if p.Loc == nil {
		p.Loc = time.UTC
	}
	if p.Theme.Name == "" {
		p.Theme = theme.Dawn
	}
	if len(p.Themes) == 0 {
		p.Themes = theme.Names()
	}

	data := struct {
		Page
		Weeks      [][7]dashboard.CalendarDay
		FontImport template.CSS
		PeakHour   int
		PeakSeason int
	}{
		Page:       p,
		Weeks:      p.View.CalendarWeeks(p.Loc),
		PeakHour:   p.View.MaxHourlyCount(),
		PeakSeason: p.View.MaxSeasonValue(),
	}
	if p.Export {
		data.FontImport = template.CSS("@import url('" + FontURL + "');")
	}

	if err := pageTmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}
