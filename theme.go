package folio

import (
	"fmt"
	"strconv"
	"strings"
)

// Theme is the handful of colors the page applies for the centered project.
type Theme struct {
	Background Color
	Accent     Color
}

// ThemeFunc maps a project identifier to its theme.
type ThemeFunc func(projectID string) Theme

// baseBackground is the near-black every project background is mixed into.
var baseBackground = Color{R: 10.0 / 255, G: 10.0 / 255, B: 15.0 / 255, A: 1}

// backgroundTint is how much of the project color shows through.
const backgroundTint = 0.15

// CatalogTheme returns a ThemeFunc built from the catalog's color fields:
// the background is the project color mixed 15% over the base background.
// Unknown ids and unparsable colors fall back to the base background and
// a white accent.
func CatalogTheme(projects []Project) ThemeFunc {
	themes := make(map[string]Theme, len(projects))
	for _, p := range projects {
		th := Theme{Background: baseBackground, Accent: ColorWhite}
		if c, err := ParseHexColor(p.Color); err == nil {
			th.Background = c.Mix(baseBackground, backgroundTint)
		}
		if c, err := ParseHexColor(p.Accent); err == nil {
			th.Accent = c
		}
		themes[p.ID] = th
	}
	return func(id string) Theme {
		if th, ok := themes[id]; ok {
			return th
		}
		return Theme{Background: baseBackground, Accent: ColorWhite}
	}
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
