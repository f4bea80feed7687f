package render

import (
	"image/color"
	"strconv"
	"strings"
)

var black = color.RGBA{A: 0xff}

var namedColors = map[string]color.RGBA{
	"black": black,
	"white": {0xff, 0xff, 0xff, 0xff},
	"red":   {0xff, 0, 0, 0xff},
	"green": {0, 0x80, 0, 0xff},
	"blue":  {0, 0, 0xff, 0xff},
	"gray":  {0x80, 0x80, 0x80, 0xff},
	"grey":  {0x80, 0x80, 0x80, 0xff},
}

// parseColor understands #rgb, #rrggbb, #rrggbbaa, rgb(), rgba() and a few names.
// Anything else is black. Translucent colors come back alpha-premultiplied.
func parseColor(s string) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb") {
		return parseFunc(s)
	}
	return black
}

func parseHex(h string) color.RGBA {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6, 8:
	default:
		return black
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return black
	}
	if len(h) == 6 {
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
	}
	return premultiply(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v))
}

func parseFunc(s string) color.RGBA {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end <= open {
		return black
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return black
	}
	var c [4]uint8
	c[3] = 0xff
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return black
		}
		if i == 3 {
			f *= 255
		}
		c[i] = uint8(clamp(f, 0, 255))
	}
	return premultiply(c[0], c[1], c[2], c[3])
}

func premultiply(r, g, b, a uint8) color.RGBA {
	mul := func(v uint8) uint8 { return uint8((uint32(v)*uint32(a) + 127) / 255) }
	return color.RGBA{mul(r), mul(g), mul(b), a}
}

// straight undoes premultiply for writers that take plain RGB plus a separate opacity.
func straight(c color.RGBA) (r, g, b int, alpha float64) {
	if c.A == 0 {
		return 0, 0, 0, 0
	}
	if c.A == 0xff {
		return int(c.R), int(c.G), int(c.B), 1
	}
	div := func(v uint8) int { return min(255, int((uint32(v)*255+uint32(c.A)/2)/uint32(c.A))) }
	return div(c.R), div(c.G), div(c.B), float64(c.A) / 255
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
