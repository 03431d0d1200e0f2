package styles

import (
	"image/color"
	"maps"
	"slices"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes. "report" mirrors the default
// report canvas colours of the host BI tool.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"report": {
		Primary:    lipgloss.Color("#118dff"),
		Secondary:  lipgloss.Color("#12239e"),
		Foreground: lipgloss.Color("#252423"),
		Muted:      lipgloss.Color("#605e5c"),
		Background: lipgloss.Color("#ffffff"),
		Surface:    lipgloss.Color("#f3f2f1"),
		Success:    lipgloss.Color("#1aab40"),
		Warning:    lipgloss.Color("#d9b300"),
		Error:      lipgloss.Color("#d64550"),
	},
	"paper": {
		Primary:    lipgloss.Color("#2f6fbd"),
		Secondary:  lipgloss.Color("#1c8a8a"),
		Foreground: lipgloss.Color("#333333"),
		Muted:      lipgloss.Color("#a6a6a6"),
		Background: lipgloss.Color("#ffffff"),
		Surface:    lipgloss.Color("#eaeaea"),
		Success:    lipgloss.Color("#3a8a3a"),
		Warning:    lipgloss.Color("#b07a00"),
		Error:      lipgloss.Color("#c0392b"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	return slices.Sorted(maps.Keys(themes))
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// Hex returns c as a "#rrggbb" string, or "" when c is nil.
func Hex(c color.Color) string {
	if c == nil {
		return ""
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return cc.Hex()
}
