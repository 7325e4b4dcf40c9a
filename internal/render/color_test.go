package render

import "testing"

func TestEntropyColor(t *testing.T) {
	tests := []struct {
		name       string
		normalized float64
		expected   RGB
	}{
		{name: "minimum is red", normalized: 0, expected: 0xff0000},
		{name: "maximum is green", normalized: 1, expected: 0x00ff00},
		{name: "below range clamps to red", normalized: -0.5, expected: 0xff0000},
		{name: "above range clamps to green", normalized: 1.5, expected: 0x00ff00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntropyColor(tt.normalized); got != tt.expected {
				t.Errorf("EntropyColor(%v) = %06x, want %06x", tt.normalized, got, tt.expected)
			}
		})
	}
}

func TestEntropyColor_ChannelsComplement(t *testing.T) {
	for _, norm := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		c := EntropyColor(norm)
		r := (c >> 16) & 0xff
		g := (c >> 8) & 0xff
		if r+g != 255 {
			t.Errorf("EntropyColor(%v): red %d + green %d != 255", norm, r, g)
		}
		if c&0xff != 0 {
			t.Errorf("EntropyColor(%v) has blue component", norm)
		}
	}
}

func TestByteColor(t *testing.T) {
	// Hue 0 with lightness 0.5 and full saturation is pure red.
	if got := ByteColor(0); got != 0xff0000 {
		t.Errorf("ByteColor(0) = %06x, want ff0000", got)
	}

	// Distinct values get distinct hues extremely often; spot-check a
	// few pairs rather than all 256.
	pairs := [][2]byte{{0, 85}, {85, 170}, {10, 200}}
	for _, p := range pairs {
		if ByteColor(p[0]) == ByteColor(p[1]) {
			t.Errorf("ByteColor(%d) == ByteColor(%d)", p[0], p[1])
		}
	}
}

func TestHLSToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, l, s float64
		r, g, b uint8
	}{
		{name: "red", h: 0, l: 0.5, s: 1, r: 255, g: 0, b: 0},
		{name: "green", h: 1.0 / 3.0, l: 0.5, s: 1, r: 0, g: 255, b: 0},
		{name: "blue", h: 2.0 / 3.0, l: 0.5, s: 1, r: 0, g: 0, b: 255},
		{name: "grey when unsaturated", h: 0.3, l: 0.5, s: 0, r: 128, g: 128, b: 128},
		{name: "white", h: 0, l: 1, s: 1, r: 255, g: 255, b: 255},
		{name: "black", h: 0, l: 0, s: 1, r: 0, g: 0, b: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := hlsToRGB(tt.h, tt.l, tt.s)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("hlsToRGB(%v, %v, %v) = (%d, %d, %d), want (%d, %d, %d)",
					tt.h, tt.l, tt.s, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestColorizer(t *testing.T) {
	c := newColorizer(true)
	got := c.colorize("ab", 0xff8000)
	want := "\x1b[38;2;255;128;0mab\x1b[0m"
	if got != want {
		t.Errorf("colorize = %q, want %q", got, want)
	}

	// Same key must come from the cache and be identical.
	if again := c.colorize("ab", 0xff8000); again != got {
		t.Errorf("cached colorize differs: %q != %q", again, got)
	}
	if len(c.cache) != 1 {
		t.Errorf("cache has %d entries, want 1", len(c.cache))
	}
}

func TestColorizer_Disabled(t *testing.T) {
	c := newColorizer(false)
	if got := c.colorize("text", 0x123456); got != "text" {
		t.Errorf("disabled colorize = %q, want plain text", got)
	}
}
