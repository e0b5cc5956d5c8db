package theme

import (
	"image/color"
	"testing"
)

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("no-such-theme").Name; got != "flexoki-dark" {
		t.Fatalf("ByName fallback = %q, want flexoki-dark", got)
	}
	if got := ByName("dawn").Name; got != "dawn" {
		t.Fatalf("ByName(dawn) = %q", got)
	}
}

func TestHexAndRGBA(t *testing.T) {
	if got := Hex("#4f46e5"); got != "#4F46E5" {
		t.Fatalf("Hex = %q, want #4F46E5", got)
	}
	if got := Hex("12"); got != "#5C5CFF" {
		t.Fatalf("Hex(12) = %q, want #5C5CFF", got)
	}
	want := color.RGBA{R: 0xF9, G: 0xFA, B: 0xFB, A: 0xFF}
	if got := RGBA(Dawn.Background); got != want {
		t.Fatalf("RGBA = %v, want %v", got, want)
	}
}

func TestEveryThemeHasPalettes(t *testing.T) {
	for _, th := range All {
		for i, c := range th.Heatmap {
			if c == "" {
				t.Fatalf("%s: Heatmap[%d] empty", th.Name, i)
			}
		}
		for i, c := range th.Seasons {
			if c == "" {
				t.Fatalf("%s: Seasons[%d] empty", th.Name, i)
			}
		}
	}
}
