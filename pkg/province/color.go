package province

import (
	"fmt"
	"hash/fnv"
)

// Color is an RGB display color, engine-agnostic so the same province
// records serve the terminal renderer and the gob cache.
type Color struct {
	R, G, B uint8
}

// Hex renders the color as "#RRGGBB" for lipgloss.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend moves the color toward other by ratio t in [0, 1].
func (c Color) Blend(other Color, t float64) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return Color{R: lerp(c.R, other.R), G: lerp(c.G, other.G), B: lerp(c.B, other.B)}
}

// White is the highlight blend target.
var White = Color{R: 255, G: 255, B: 255}

// Palette assigns base colors to provinces. Known owners get a fixed
// registry color; everything else gets a deterministic pick from the
// fallback ramp so reloads reproduce the same map.
type Palette struct {
	owners   map[string]Color
	fallback []Color
}

// DefaultPalette returns a palette with a small owner registry and a
// terminal-friendly fallback ramp.
func DefaultPalette() *Palette {
	return &Palette{
		owners: map[string]Color{
			DefaultOwner: {R: 0x6B, G: 0x72, B: 0x80},
		},
		fallback: []Color{
			{R: 0x50, G: 0xFA, B: 0x7B},
			{R: 0x8B, G: 0xE9, B: 0xFD},
			{R: 0xFF, G: 0xB8, B: 0x6C},
			{R: 0xFF, G: 0x79, B: 0xC6},
			{R: 0xBD, G: 0x93, B: 0xF9},
			{R: 0xF1, G: 0xFA, B: 0x8C},
			{R: 0xFF, G: 0x55, B: 0x55},
		},
	}
}

// Register pins a color to an owner name.
func (p *Palette) Register(owner string, c Color) {
	if p.owners == nil {
		p.owners = make(map[string]Color)
	}
	p.owners[owner] = c
}

// ColorFor returns the registry color for the owner, or a deterministic
// fallback derived from the province name.
func (p *Palette) ColorFor(owner, name string) Color {
	if c, ok := p.owners[owner]; ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return p.fallback[h.Sum32()%uint32(len(p.fallback))]
}
