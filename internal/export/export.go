// Package export renders the dashboard to a downloadable PNG image or a
// self-contained HTML page.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/theme"
	"github.com/theirongolddev/chatwrap/internal/web"
)

// Format names accepted by Write.
const (
	FormatPNG  = "png"
	FormatHTML = "html"
)

// Filename returns the download name for an export taken at now, with the
// date read in loc: Claude年度总结-2006年01月02日.<ext>.
func Filename(now time.Time, loc *time.Location, ext string) string {
	if loc == nil {
		loc = time.UTC
	}
	return "Claude年度总结-" + now.In(loc).Format("2006年01月02日") + "." + ext
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if format == FormatHTML {
		return "text/html; charset=utf-8"
	}
	return "image/png"
}

// Write renders v in the requested format.
func Write(w io.Writer, format string, v dashboard.View, t theme.Theme, loc *time.Location) error {
	switch format {
	case FormatPNG:
		return PNG(w, v, t, loc)
	case FormatHTML:
		return HTML(w, v, t, loc)
	default:
		return fmt.Errorf("unknown export format %q (want png or html)", format)
	}
}

// HTML writes the dashboard page with the font import inlined and the
// interactive controls removed. The export background is always #F9FAFB.
func HTML(w io.Writer, v dashboard.View, t theme.Theme, loc *time.Location) error {
	t.Background = Background
	return web.Render(w, web.Page{View: v, Theme: t, Loc: loc, Export: true})
}
