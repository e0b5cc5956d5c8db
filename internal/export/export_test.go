package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/model"
	"github.com/theirongolddev/chatwrap/internal/theme"
)

func shanghai(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func testView(t *testing.T) dashboard.View {
	loc := shanghai(t)
	start := time.Date(2024, 1, 7, 10, 0, 0, 0, loc) // a Sunday
	records := make([]model.ConversationRecord, 5)
	for i := range records {
		records[i] = model.ConversationRecord{UUID: "u", StartTime: start}
	}
	return dashboard.Derive(dashboard.Inputs{
		Records:  records,
		Clusters: model.ClusterSummaries{{ID: "0", Name: "a", Nums: 4}, {ID: "1", Name: "b", Nums: 2}},
		Patterns: model.TimePatterns{
			HourlyPattern:   map[string]int{"10": 5},
			SeasonalPattern: map[string]int{"4": 5},
		},
	}, dashboard.Options{Loc: loc})
}

func TestFilename(t *testing.T) {
	// 2026-10-16 20:00 UTC is already the 17th in Shanghai.
	now := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)
	got := Filename(now, shanghai(t), "png")
	if want := "Claude年度总结-2026年10月17日.png"; got != want {
		t.Fatalf("Filename = %q, want %q", got, want)
	}
	if got := Filename(now, nil, "html"); got != "Claude年度总结-2026年10月16日.html" {
		t.Fatalf("Filename(nil loc) = %q", got)
	}
}

func TestPNG(t *testing.T) {
	v := testView(t)
	var buf bytes.Buffer
	if err := PNG(&buf, v, theme.Dawn, shanghai(t)); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != Width*Scale || b.Dy() != Height(v)*Scale {
		t.Fatalf("bounds = %v, want %dx%d", b, Width*Scale, Height(v)*Scale)
	}

	r, g, bl, _ := img.At(0, 0).RGBA()
	if r>>8 != 0xF9 || g>>8 != 0xFA || bl>>8 != 0xFB {
		t.Fatalf("background = %02X%02X%02X, want F9FAFB", r>>8, g>>8, bl>>8)
	}

	// 2024-01-07 sits in the second week column, Sunday row, at level 4.
	x := (pad*2 + (cell + cellGap)) * Scale
	y := (pad + pad) * Scale
	want := theme.RGBA(theme.Dawn.Heatmap[4])
	r, g, bl, _ = img.At(x+1, y+1).RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(bl>>8) != want.B {
		t.Fatalf("calendar cell color = %02X%02X%02X, want %v", r>>8, g>>8, bl>>8, want)
	}
}

func TestWrite_HTMLUsesExportBackground(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatHTML, testView(t), theme.FlexokiDark, shanghai(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "--bg:#F9FAFB") {
		t.Error("export page should use the export background")
	}
	if !strings.Contains(out, "JetBrains+Mono") {
		t.Error("export page should import JetBrains Mono")
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, "gif", dashboard.View{}, theme.Dawn, nil); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestContentType(t *testing.T) {
	if ContentType(FormatPNG) != "image/png" {
		t.Error("png content type")
	}
	if !strings.HasPrefix(ContentType(FormatHTML), "text/html") {
		t.Error("html content type")
	}
}
