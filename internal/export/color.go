package export

import (
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.NRGBA{
	"black":  {0, 0, 0, 255},
	"white":  {255, 255, 255, 255},
	"red":    {255, 0, 0, 255},
	"green":  {0, 128, 0, 255},
	"blue":   {0, 0, 255, 255},
	"yellow": {255, 255, 0, 255},
	"gray":   {128, 128, 128, 255},
	"grey":   {128, 128, 128, 255},
	"orange": {255, 165, 0, 255},
	"brown":  {165, 42, 42, 255},
}

// parseColor understands #rgb, #rrggbb, #rrggbbaa and a few colour names.
// ok is false for empty, "none", "transparent" and unparseable values.
func parseColor(s string, alpha float64) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" || s == "transparent" {
		return nil, false
	}

	c, ok := namedColors[s]
	if !ok {
		c, ok = parseHex(s)
		if !ok {
			return nil, false
		}
	}
	c.A = uint8(float64(c.A)*opacity(alpha) + 0.5)
	return c, true
}

func parseHex(s string) (color.NRGBA, bool) {
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, false
	}
	s = s[1:]
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}
