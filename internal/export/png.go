package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/theme"
)

// Scale is the device pixel ratio of PNG exports.
const Scale = 2

// Background is the page color of every export.
const Background = lipgloss.Color("#F9FAFB")

// Layout in unscaled pixels.
const (
	pad        = 24
	gap        = 16
	cell       = 11
	cellGap    = 2
	hourArea   = 120
	barHeight  = 12
	barSpacing = 8
	maxWeeks   = 54
)

// Width is the unscaled image width: a full calendar plus padding.
const Width = pad*2 + pad*2 + maxWeeks*(cell+cellGap)

type canvas struct {
	img *image.RGBA
}

// fill paints an unscaled rectangle.
func (c canvas) fill(x, y, w, h int, col color.Color) {
	r := image.Rect(x*Scale, y*Scale, (x+w)*Scale, (y+h)*Scale)
	draw.Draw(c.img, r, &image.Uniform{C: col}, image.Point{}, draw.Src)
}

// panel draws a bordered surface and returns the inner origin.
func (c canvas) panel(t theme.Theme, y, h int) (int, int) {
	c.fill(pad, y, Width-pad*2, h, theme.RGBA(t.Border))
	c.fill(pad+1, y+1, Width-pad*2-2, h-2, theme.RGBA(t.Surface))
	return pad * 2, y + pad
}

func panelHeight(inner int) int { return inner + pad*2 }

// Height returns the unscaled image height for v.
func Height(v dashboard.View) int {
	h := pad
	h += panelHeight(7*(cell+cellGap)) + gap
	h += panelHeight(hourArea) + gap
	h += panelHeight(barRows(len(v.Seasonal))) + gap
	h += panelHeight(barRows(len(v.TopTopics)))
	return h + pad
}

func barRows(n int) int {
	if n == 0 {
		return barHeight
	}
	return n*barHeight + (n-1)*barSpacing
}

// PNG draws the calendar, hourly bars, season bars and topic bars at Scale.
func PNG(w io.Writer, v dashboard.View, t theme.Theme, loc *time.Location) error {
	img := image.NewRGBA(image.Rect(0, 0, Width*Scale, Height(v)*Scale))
	c := canvas{img: img}
	c.fill(0, 0, Width, Height(v), theme.RGBA(Background))

	y := pad
	y = drawCalendar(c, v, t, loc, y) + gap
	y = drawHourly(c, v, t, y) + gap
	y = drawSeasons(c, v, t, y) + gap
	drawTopics(c, v, t, y)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func drawCalendar(c canvas, v dashboard.View, t theme.Theme, loc *time.Location, y int) int {
	h := panelHeight(7 * (cell + cellGap))
	x0, y0 := c.panel(t, y, h)
	for wi, week := range v.CalendarWeeks(loc) {
		if wi >= maxWeeks {
			break
		}
		for di, day := range week {
			if !day.InYear {
				continue
			}
			level := min(max(day.Level, 0), len(t.Heatmap)-1)
			c.fill(x0+wi*(cell+cellGap), y0+di*(cell+cellGap), cell, cell, theme.RGBA(t.Heatmap[level]))
		}
	}
	return y + h
}

func drawHourly(c canvas, v dashboard.View, t theme.Theme, y int) int {
	h := panelHeight(hourArea)
	x0, y0 := c.panel(t, y, h)
	if len(v.Hourly) == 0 {
		return y + h
	}
	inner := Width - pad*4
	slot := inner / len(v.Hourly)
	peak := v.MaxHourlyCount()
	for i, b := range v.Hourly {
		bh := b.Count * hourArea / peak
		col := t.Accent
		if b.Hour == v.MostActive.Label && b.Count > 0 {
			col = t.AccentBright
		}
		c.fill(x0+i*slot+1, y0+hourArea-bh, slot-2, bh, theme.RGBA(col))
	}
	return y + h
}

func drawBars(c canvas, t theme.Theme, y int, rows int, value func(int) (float64, lipgloss.Color)) int {
	h := panelHeight(barRows(rows))
	x0, y0 := c.panel(t, y, h)
	inner := Width - pad*4
	for i := 0; i < rows; i++ {
		frac, col := value(i)
		ry := y0 + i*(barHeight+barSpacing)
		c.fill(x0, ry, inner, barHeight, theme.RGBA(t.SurfaceHover))
		if bw := int(frac * float64(inner)); bw > 0 {
			c.fill(x0, ry, min(bw, inner), barHeight, theme.RGBA(col))
		}
	}
	return y + h
}

func drawSeasons(c canvas, v dashboard.View, t theme.Theme, y int) int {
	peak := float64(v.MaxSeasonValue())
	return drawBars(c, t, y, len(v.Seasonal), func(i int) (float64, lipgloss.Color) {
		return float64(v.Seasonal[i].Value) / peak, t.Seasons[i%len(t.Seasons)]
	})
}

func drawTopics(c canvas, v dashboard.View, t theme.Theme, y int) int {
	return drawBars(c, t, y, len(v.TopTopics), func(i int) (float64, lipgloss.Color) {
		return v.TopTopics[i].WidthPercent / 100, t.Accent
	})
}
