package core

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrInvalidColor is returned when a hex color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid hex color")

// ParseHex parses "#rrggbb" or "#rgb" (case-insensitive) into an opaque RGBA.
func ParseHex(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	hex := s[1:]

	switch len(hex) {
	case 3:
		r, okR := nibble(hex[0])
		g, okG := nibble(hex[1])
		b, okB := nibble(hex[2])

		if !okR || !okG || !okB {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}

		return color.RGBA{R: r*16 + r, G: g*16 + g, B: b*16 + b, A: 255}, nil
	case 6:
		var out [3]uint8

		for i := range out {
			hi, okHi := nibble(hex[2*i])
			lo, okLo := nibble(hex[2*i+1])

			if !okHi || !okLo {
				return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}

			out[i] = hi*16 + lo
		}

		return color.RGBA{R: out[0], G: out[1], B: out[2], A: 255}, nil
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}

// MustParseHex is like ParseHex but panics on error. Intended for constants.
func MustParseHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic("core: " + err.Error())
	}

	return c
}

// FormatHex renders c as "#rrggbb", ignoring alpha.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes c1 and c2 by ratio in [0, 1]. Ratio 0 returns c1 exactly and
// ratio 1 returns c2 exactly; values outside [0, 1] are clamped.
func Blend(c1, c2 color.RGBA, ratio float64) color.RGBA {
	switch {
	case ratio <= 0:
		return c1
	case ratio >= 1:
		return c2
	}

	return color.RGBA{
		R: blendChannel(c1.R, c2.R, ratio),
		G: blendChannel(c1.G, c2.G, ratio),
		B: blendChannel(c1.B, c2.B, ratio),
		A: blendChannel(c1.A, c2.A, ratio),
	}
}

// HSVToRGB converts hue [0, 360), saturation and value [0, 1] to RGBA.
func HSVToRGB(h, s, v float64) color.RGBA {
	h = Wrap(h, 360)
	s = Clamp01(s)
	v = Clamp01(v)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64

	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

func blendChannel(a, b uint8, ratio float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*ratio))
}

func nibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
