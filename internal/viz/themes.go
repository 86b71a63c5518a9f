package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme of the live view. Trails is the palette
// used for bodies whose tag is not a colour.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Background string
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Trails     []string
}

var (
	ThemeDeepSpace = Theme{
		Name:       "deep-space",
		Primary:    lipgloss.Color("#00ffff"),
		Background: "#0a0a0a",
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Warning:    lipgloss.Color("#ff8800"),
		Trails:     []string{"#ffff00", "#4488ff", "#ff4444", "#44ff88"},
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"),
		Background: "#001100",
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Warning:    lipgloss.Color("#ffff00"),
		Trails:     []string{"#88ff88", "#00cc00", "#ccffcc", "#55aa55"},
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"),
		Background: "#2d1b2e",
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Warning:    lipgloss.Color("#ffc048"),
		Trails:     []string{"#feca57", "#ff9ff3", "#48dbfb", "#5fd068"},
	}

	Themes = []Theme{
		ThemeDeepSpace,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// next returns the theme after t in Themes, wrapping around.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
