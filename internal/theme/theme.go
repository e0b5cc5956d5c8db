// Package theme defines the named visual variants shared by the terminal
// dashboard, the web page and exports.
package theme

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color roles used by every renderer.
type Theme struct {
	Name          string
	Light         bool
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (active tab)
	Border        lipgloss.Color // Subtle borders
	BorderBright  lipgloss.Color // Prominent borders (cards, focus)
	BorderAccent  lipgloss.Color // Accent-colored borders for focus states
	TextDim       lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted     lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary   lipgloss.Color // Primary content text
	Accent        lipgloss.Color // Primary accent (links, active states)
	AccentBright  lipgloss.Color
	Green         lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	Yellow        lipgloss.Color
	Magenta       lipgloss.Color

	// Heatmap holds the calendar palette, index 0 for empty days and 1-4
	// for contribution levels.
	Heatmap [5]lipgloss.Color
	// Seasons colors the four season bars, spring first.
	Seasons [4]lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// Dawn is the light page theme used by the web dashboard and exports.
var Dawn = Theme{
	Name:         "dawn",
	Light:        true,
	Background:   lipgloss.Color("#F9FAFB"),
	Surface:      lipgloss.Color("#FFFFFF"),
	SurfaceHover: lipgloss.Color("#F1F5F9"),
	Border:       lipgloss.Color("#E5E7EB"),
	BorderBright: lipgloss.Color("#CBD5E1"),
	BorderAccent: lipgloss.Color("#6366F1"),
	TextDim:      lipgloss.Color("#9CA3AF"),
	TextMuted:    lipgloss.Color("#6B7280"),
	TextPrimary:  lipgloss.Color("#111827"),
	Accent:       lipgloss.Color("#4F46E5"),
	AccentBright: lipgloss.Color("#6366F1"),
	Green:        lipgloss.Color("#10B981"),
	Orange:       lipgloss.Color("#F59E0B"),
	Red:          lipgloss.Color("#EF4444"),
	Blue:         lipgloss.Color("#3B82F6"),
	Yellow:       lipgloss.Color("#EAB308"),
	Magenta:      lipgloss.Color("#EC4899"),
	Heatmap: [5]lipgloss.Color{
		"#F1F5F9", "#C7D2FE", "#818CF8", "#6366F1", "#4F46E5",
	},
	Seasons: [4]lipgloss.Color{"#34D399", "#F472B6", "#FBBF24", "#60A5FA"},
}

// FlexokiDark is the default terminal theme, a warm paper-inspired dark palette.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderBright: lipgloss.Color("#575653"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Green:        lipgloss.Color("#879A39"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
	Blue:         lipgloss.Color("#4385BE"),
	Yellow:       lipgloss.Color("#D0A215"),
	Magenta:      lipgloss.Color("#CE5D97"),
	Heatmap: [5]lipgloss.Color{
		"#282726", "#1A3533", "#24837B", "#3AA99F", "#5BC8BE",
	},
	Seasons: [4]lipgloss.Color{"#879A39", "#CE5D97", "#DA702C", "#4385BE"},
}

// CatppuccinMocha is a warm pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	SurfaceHover: lipgloss.Color("#45475A"),
	Border:       lipgloss.Color("#585B70"),
	BorderBright: lipgloss.Color("#7F849C"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	Green:        lipgloss.Color("#A6E3A1"),
	Orange:       lipgloss.Color("#FAB387"),
	Red:          lipgloss.Color("#F38BA8"),
	Blue:         lipgloss.Color("#89B4FA"),
	Yellow:       lipgloss.Color("#F9E2AF"),
	Magenta:      lipgloss.Color("#F5C2E7"),
	Heatmap: [5]lipgloss.Color{
		"#313244", "#45475A", "#7287C6", "#89B4FA", "#B4D0FB",
	},
	Seasons: [4]lipgloss.Color{"#A6E3A1", "#F5C2E7", "#FAB387", "#89B4FA"},
}

// TokyoNight is a cool blue and purple theme.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   lipgloss.Color("#1A1B26"),
	Surface:      lipgloss.Color("#24283B"),
	SurfaceHover: lipgloss.Color("#343A52"),
	Border:       lipgloss.Color("#565F89"),
	BorderBright: lipgloss.Color("#7982A9"),
	BorderAccent: lipgloss.Color("#7AA2F7"),
	TextDim:      lipgloss.Color("#565F89"),
	TextMuted:    lipgloss.Color("#A9B1D6"),
	TextPrimary:  lipgloss.Color("#C0CAF5"),
	Accent:       lipgloss.Color("#7AA2F7"),
	AccentBright: lipgloss.Color("#A9C1FF"),
	Green:        lipgloss.Color("#9ECE6A"),
	Orange:       lipgloss.Color("#FF9E64"),
	Red:          lipgloss.Color("#F7768E"),
	Blue:         lipgloss.Color("#7AA2F7"),
	Yellow:       lipgloss.Color("#E0AF68"),
	Magenta:      lipgloss.Color("#BB9AF7"),
	Heatmap: [5]lipgloss.Color{
		"#24283B", "#2F3B63", "#3D59A1", "#7AA2F7", "#A9C1FF",
	},
	Seasons: [4]lipgloss.Color{"#9ECE6A", "#BB9AF7", "#FF9E64", "#7DCFFF"},
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderBright: lipgloss.Color("7"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Green:        lipgloss.Color("2"),
	Orange:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
	Blue:         lipgloss.Color("4"),
	Yellow:       lipgloss.Color("3"),
	Magenta:      lipgloss.Color("5"),
	Heatmap:      [5]lipgloss.Color{"8", "4", "12", "6", "14"},
	Seasons:      [4]lipgloss.Color{"2", "5", "3", "4"},
}

// All available themes.
var All = []Theme{Dawn, FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	return FlexokiDark
}

// Lookup returns the theme with the given name.
func Lookup(name string) (Theme, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Names lists theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// ansi16 approximates the xterm defaults for the first 16 palette entries.
var ansi16 = [16]string{
	"#000000", "#CD0000", "#00CD00", "#CDCD00", "#0000EE", "#CD00CD", "#00CDCD", "#E5E5E5",
	"#7F7F7F", "#FF0000", "#00FF00", "#FFFF00", "#5C5CFF", "#FF00FF", "#00FFFF", "#FFFFFF",
}

// Hex returns c as a #RRGGBB string. ANSI palette indexes are mapped to
// their xterm defaults so every theme can style HTML and images.
func Hex(c lipgloss.Color) string {
	s := string(c)
	if strings.HasPrefix(s, "#") {
		return strings.ToUpper(s)
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(ansi16) {
		return ansi16[n]
	}
	return "#000000"
}

// RGBA converts c to an opaque image color.
func RGBA(c lipgloss.Color) color.RGBA {
	h := Hex(c)
	n, err := strconv.ParseUint(h[1:], 16, 32)
	if err != nil || len(h) != 7 {
		return color.RGBA{A: 0xFF}
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xFF}
}
