// Package geom holds the planar geometry used by the province map:
// geographic bounds folding, the fit-and-center viewport projection,
// and polygon containment tests for hit detection.
package geom

import "math"

// Point is a 2D coordinate. In geographic space X is longitude and Y is
// latitude; after projection X/Y are screen pixels.
type Point struct {
	X float64
	Y float64
}

// Ring is an ordered sequence of points. A ring with fewer than 3 points
// is degenerate and produces no drawable polygon.
type Ring []Point

// Bounds is a geographic bounding rectangle.
type Bounds struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Width returns the longitude extent of the bounds.
func (b Bounds) Width() float64 { return b.MaxLon - b.MinLon }

// Height returns the latitude extent of the bounds.
func (b Bounds) Height() float64 { return b.MaxLat - b.MinLat }

// Valid reports whether at least one coordinate was folded into the bounds.
// Empty bounds have non-positive width or height and cannot be projected.
func (b Bounds) Valid() bool {
	return b.Width() > 0 && b.Height() > 0
}

// Center returns the geographic centroid of the bounds.
func (b Bounds) Center() Point {
	return Point{
		X: (b.MinLon + b.MaxLon) / 2,
		Y: (b.MinLat + b.MaxLat) / 2,
	}
}

// EmptyBounds returns bounds initialized with infinity sentinels so that
// any real coordinate replaces them on the first fold.
func EmptyBounds() Bounds {
	return Bounds{
		MinLon: math.Inf(1),
		MinLat: math.Inf(1),
		MaxLon: math.Inf(-1),
		MaxLat: math.Inf(-1),
	}
}

// Extend folds a single coordinate into the bounds.
func (b *Bounds) Extend(lon, lat float64) {
	b.MinLon = math.Min(b.MinLon, lon)
	b.MaxLon = math.Max(b.MaxLon, lon)
	b.MinLat = math.Min(b.MinLat, lat)
	b.MaxLat = math.Max(b.MaxLat, lat)
}

// BoundsOf folds every point of every ring into a single bounding
// rectangle. Rings that are empty or degenerate still contribute their
// points; if no point was seen at all the result is not Valid.
func BoundsOf(rings []Ring) Bounds {
	b := EmptyBounds()
	for _, ring := range rings {
		for _, p := range ring {
			b.Extend(p.X, p.Y)
		}
	}
	return b
}

// PointInRing reports whether (x, y) lies inside the polygon outlined by
// the ring, using the even-odd crossing rule. Works for concave polygons;
// points exactly on an edge may land on either side.
func PointInRing(ring Ring, x, y float64) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		yi, yj := ring[i].Y, ring[j].Y
		if (yi > y) != (yj > y) {
			xi, xj := ring[i].X, ring[j].X
			if x < (xj-xi)*(y-yi)/(yj-yi)+xi {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// RingBounds returns the axis-aligned bounding box of a ring in whatever
// space the ring lives in (used for screen-space index rectangles).
func RingBounds(ring Ring) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range ring {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}
