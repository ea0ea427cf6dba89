package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveWorkedExample(t *testing.T) {
	// bounds 20x10 degrees, viewport 1000x600, padding 50:
	// draw area 900x500, scaleX=45, scaleY=50 -> scale 45.
	b := Bounds{MinLon: -10, MinLat: -5, MaxLon: 10, MaxLat: 5}

	tr := Solve(b, 1000, 600, 50)
	require.True(t, tr.Valid())
	assert.InDelta(t, 45.0, tr.Scale, 1e-9)

	topLeft := tr.Project(-10, 5)
	assert.InDelta(t, 50.0, topLeft.X, 1e-9)
	assert.InDelta(t, 75.0, topLeft.Y, 1e-9)

	bottomRight := tr.Project(10, -5)
	assert.InDelta(t, 950.0, bottomRight.X, 1e-9)
	assert.InDelta(t, 525.0, bottomRight.Y, 1e-9)
}

func TestSolveFitProperty(t *testing.T) {
	cases := []struct {
		name       string
		b          Bounds
		w, h, pad  float64
	}{
		{"wide bounds", Bounds{MinLon: -120, MinLat: 20, MaxLon: -60, MaxLat: 50}, 800, 600, 20},
		{"tall bounds", Bounds{MinLon: 5, MinLat: -60, MaxLon: 15, MaxLat: 70}, 1024, 768, 32},
		{"square", Bounds{MinLon: 0, MinLat: 0, MaxLon: 10, MaxLat: 10}, 500, 500, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := Solve(tc.b, tc.w, tc.h, tc.pad)
			require.True(t, tr.Valid())

			projW := tc.b.Width() * tr.Scale
			projH := tc.b.Height() * tr.Scale
			drawW := tc.w - 2*tc.pad
			drawH := tc.h - 2*tc.pad

			// Each axis fits; the limiting axis achieves equality.
			assert.LessOrEqual(t, projW, drawW+1e-9)
			assert.LessOrEqual(t, projH, drawH+1e-9)
			limiting := projW > drawW-1e-9 || projH > drawH-1e-9
			assert.True(t, limiting, "no axis reached the draw area")
		})
	}
}

func TestSolveCenteringProperty(t *testing.T) {
	b := Bounds{MinLon: 2, MinLat: -40, MaxLon: 38, MaxLat: 15}

	tr := Solve(b, 900, 700, 25)
	require.True(t, tr.Valid())

	topLeft := tr.Project(b.MinLon, b.MaxLat)
	bottomRight := tr.Project(b.MaxLon, b.MinLat)

	centerX := (topLeft.X + bottomRight.X) / 2
	centerY := (topLeft.Y + bottomRight.Y) / 2
	assert.InDelta(t, 450.0, centerX, 1e-9)
	assert.InDelta(t, 350.0, centerY, 1e-9)
}

func TestProjectYFlip(t *testing.T) {
	b := Bounds{MinLon: -10, MinLat: -10, MaxLon: 10, MaxLat: 10}
	tr := Solve(b, 400, 400, 10)
	require.True(t, tr.Valid())

	// Higher latitude maps to smaller screen Y.
	north := tr.Project(0, 8)
	south := tr.Project(0, -8)
	assert.Less(t, north.Y, south.Y)
}

func TestSolveInvalidBounds(t *testing.T) {
	assert.False(t, Solve(BoundsOf(nil), 800, 600, 50).Valid())

	// Zero-width bounds cannot be projected either.
	flat := Bounds{MinLon: 5, MinLat: 0, MaxLon: 5, MaxLat: 10}
	assert.False(t, Solve(flat, 800, 600, 50).Valid())
}

func TestSolvePaddingSwallowsViewport(t *testing.T) {
	b := Bounds{MinLon: 0, MinLat: 0, MaxLon: 10, MaxLat: 10}
	assert.False(t, Solve(b, 80, 60, 50).Valid())
}

func TestProjectRing(t *testing.T) {
	tr := Transform{Scale: 2, OffsetX: 100, OffsetY: 50}
	ring := Ring{{X: 1, Y: 1}, {X: 3, Y: -2}}

	out := tr.ProjectRing(ring)
	require.Len(t, out, 2)
	assert.Equal(t, Point{X: 102, Y: 48}, out[0])
	assert.Equal(t, Point{X: 106, Y: 54}, out[1])
}
