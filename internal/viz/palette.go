package viz

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/threebody/internal/physics"
)

var namedColors = map[string]string{
	"yellow":  "#ffff00",
	"blue":    "#0000ff",
	"red":     "#ff0000",
	"green":   "#00ff00",
	"white":   "#ffffff",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"orange":  "#ffc800",
}

// TagColor resolves a body tag to a colour. Tags may be "#rrggbb" or one of
// a few colour names; anything else takes the theme palette entry for the
// body index.
func TagColor(tag physics.Tag, index int, theme Theme) colorful.Color {
	s := strings.ToLower(strings.TrimSpace(string(tag)))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if c, err := colorful.Hex(s); err == nil {
		return c
	}
	fallback, _ := colorful.Hex(theme.Trails[index%len(theme.Trails)])
	return fallback
}

// Shades returns n colours fading from the background toward c, for
// drawing older trail segments dimmer. The last entry is c itself.
func Shades(c colorful.Color, background string, n int) []string {
	bg, err := colorful.Hex(background)
	if err != nil {
		bg = colorful.Color{}
	}
	out := make([]string, n)
	for i := range out {
		t := float64(i+1) / float64(n)
		out[i] = bg.BlendLab(c, 0.25+0.75*t).Clamped().Hex()
	}
	return out
}

// Readable lifts very dark colours so pure blue stays visible on a black
// terminal.
func Readable(c colorful.Color) colorful.Color {
	h, s, l := c.Hsl()
	if l < 0.55 {
		l = 0.55
	}
	return colorful.Hsl(h, s, l)
}
