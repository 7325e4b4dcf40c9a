// Package render formats analysis results for the terminal: colored
// hexdumps, entropy maps, byte histograms, and periodicity reports. The
// analysis core stays presentation-free; everything ANSI lives here.
package render

import (
	"fmt"
	"math"
)

// RGB is a 24-bit color packed as 0xRRGGBB.
type RGB uint32

// colorizer renders text with ANSI truecolor escapes and memoizes the
// escaped strings. Byte values and entropy buckets repeat constantly in
// a dump, so the cache keyed by (text, color) stays small and hot.
type colorizer struct {
	enabled bool
	cache   map[colorKey]string
}

type colorKey struct {
	text  string
	color RGB
}

func newColorizer(enabled bool) *colorizer {
	return &colorizer{
		enabled: enabled,
		cache:   make(map[colorKey]string),
	}
}

// colorize wraps text in a foreground escape for the given color, or
// returns it unchanged when color output is disabled.
func (c *colorizer) colorize(text string, color RGB) string {
	if !c.enabled {
		return text
	}
	key := colorKey{text: text, color: color}
	if s, ok := c.cache[key]; ok {
		return s
	}
	s := fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m",
		(color>>16)&0xff, (color>>8)&0xff, color&0xff, text)
	c.cache[key] = s
	return s
}

// ByteColor maps a byte value onto the hue circle: 0x00 and 0xff land
// near red, with the full spectrum in between. Lightness and saturation
// are fixed at 0.5 and 1.
func ByteColor(v byte) RGB {
	r, g, b := hlsToRGB(float64(v)/255.0, 0.5, 1.0)
	return RGB(r)<<16 | RGB(g)<<8 | RGB(b)
}

// EntropyColor maps a normalized entropy in [0, 1] onto a red-to-green
// gradient: low entropy renders red, high entropy green.
func EntropyColor(normalized float64) RGB {
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}
	g := RGB(math.Round(normalized * 255))
	return (255-g)<<16 | g<<8
}

// hlsToRGB converts hue/lightness/saturation (each in [0, 1]) to 8-bit
// RGB components.
func hlsToRGB(h, l, s float64) (uint8, uint8, uint8) {
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return v, v, v
	}

	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2

	conv := func(hue float64) uint8 {
		hue = math.Mod(hue+1, 1)
		var v float64
		switch {
		case hue < 1.0/6.0:
			v = m1 + (m2-m1)*hue*6
		case hue < 0.5:
			v = m2
		case hue < 2.0/3.0:
			v = m1 + (m2-m1)*(2.0/3.0-hue)*6
		default:
			v = m1
		}
		return uint8(math.Round(v * 255))
	}

	return conv(h + 1.0/3.0), conv(h), conv(h - 1.0/3.0)
}
