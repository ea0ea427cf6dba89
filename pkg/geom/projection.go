package geom

import "math"

// Transform maps geographic coordinates into viewport pixels with a
// uniform scale and a translation. The zero value is the "no transform"
// sentinel returned when bounds cannot be projected.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Valid reports whether the transform was solved from usable bounds.
func (t Transform) Valid() bool { return t.Scale > 0 }

// Project converts a geographic point to viewport pixels. Latitude is
// negated so that north maps to decreasing screen Y.
func (t Transform) Project(lon, lat float64) Point {
	return Point{
		X: lon*t.Scale + t.OffsetX,
		Y: -lat*t.Scale + t.OffsetY,
	}
}

// ProjectRing converts a whole geographic ring to viewport pixels.
func (t Transform) ProjectRing(ring Ring) Ring {
	out := make(Ring, len(ring))
	for i, p := range ring {
		out[i] = t.Project(p.X, p.Y)
	}
	return out
}

// Solve derives the transform that fits the bounds into the viewport,
// leaving a padding margin on every side, and centers the projected
// rectangle. The smaller of the two axis scales is chosen so the whole
// bounds fits without distortion.
//
// Returns the zero Transform when the bounds have non-positive width or
// height; callers must leave their previous transform in place.
func Solve(b Bounds, viewportW, viewportH, padding float64) Transform {
	if !b.Valid() {
		return Transform{}
	}

	drawW := viewportW - 2*padding
	drawH := viewportH - 2*padding
	if drawW <= 0 || drawH <= 0 {
		return Transform{}
	}

	scale := math.Min(drawW/b.Width(), drawH/b.Height())

	projectedW := b.Width() * scale
	projectedH := b.Height() * scale

	// The +MaxLat term pairs with the latitude negation in Project to
	// flip the Y axis: screen Y grows downward, north stays up.
	return Transform{
		Scale:   scale,
		OffsetX: (viewportW-projectedW)/2 - b.MinLon*scale,
		OffsetY: (viewportH-projectedH)/2 + b.MaxLat*scale,
	}
}
