package service

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/wricardo/tile-pattern-game/game/engine"
)

// ResolveRGBA converts a colour to #rrggbb. It accepts CSS/SVG colour names
// and #rgb or #rrggbb literals; anything else returns false.
func ResolveRGBA(c engine.Color) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(string(c)))
	if s == "" {
		return "", false
	}

	if rgba, ok := colornames.Map[s]; ok {
		return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B), true
	}

	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", false
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", false
	}
	return "#" + hex, true
}

// resolveAll resolves every colour of a sequence; unresolvable entries are "".
// It returns nil when no entry resolves.
func resolveAll(colors engine.TileColors) []string {
	seq := colors.Colors()
	if len(seq) == 0 {
		return nil
	}

	out := make([]string, len(seq))
	resolved := false
	for i, c := range seq {
		if rgba, ok := ResolveRGBA(c); ok {
			out[i] = rgba
			resolved = true
		}
	}
	if !resolved {
		return nil
	}
	return out
}
