package mapview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kass/go-province-map/pkg/config"
	"github.com/kass/go-province-map/pkg/province"
)

// Two rectangular provinces covering the worked bounds (-10..10, -5..5).
const twoProvinceDoc = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [
				[[-10, -5], [0, -5], [0, 5], [-10, 5], [-10, -5]]
			]},
			"properties": {"name": "Westmark", "owner": "Arvand", "supply": 4}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [
				[[0, -5], [10, -5], [10, 5], [0, 5], [0, -5]]
			]},
			"properties": {"name": "Ostmark"}
		}
	]
}`

func newView(t *testing.T) *MapView {
	t.Helper()
	return New(config.Default(), nil)
}

func TestLoadBytesBuildsProvinces(t *testing.T) {
	mv := newView(t)
	mv.SetViewport(1000, 600)

	require.NoError(t, mv.LoadBytes([]byte(twoProvinceDoc)))

	assert.Equal(t, int64(2), mv.Index().Count())
	assert.InDelta(t, 45.0, mv.Transform().Scale, 1e-9)

	byName := make(map[string]*province.Province)
	for _, p := range mv.Provinces() {
		byName[p.Name] = p
	}
	require.Contains(t, byName, "Westmark")
	assert.Equal(t, "Arvand", byName["Westmark"].Owner)
	assert.Equal(t, 4, byName["Westmark"].Supply)
	assert.Equal(t, "Ostmark", byName["Ostmark"].Owner)
	assert.Equal(t, province.DefaultSupply, byName["Ostmark"].Supply)
}

func TestWorkedExampleCorners(t *testing.T) {
	mv := newView(t)
	mv.SetViewport(1000, 600)
	require.NoError(t, mv.LoadBytes([]byte(twoProvinceDoc)))

	// Geographic (-10, 5) lands at screen (50, 75), (10, -5) at (950, 525).
	tl := mv.Transform().Project(-10, 5)
	assert.InDelta(t, 50.0, tl.X, 1e-9)
	assert.InDelta(t, 75.0, tl.Y, 1e-9)

	br := mv.Transform().Project(10, -5)
	assert.InDelta(t, 950.0, br.X, 1e-9)
	assert.InDelta(t, 525.0, br.Y, 1e-9)
}

func TestFallbackViewport(t *testing.T) {
	mv := newView(t)

	// No viewport yet: the configured fallback (1000x600) applies and the
	// document still projects.
	require.NoError(t, mv.LoadBytes([]byte(twoProvinceDoc)))

	assert.InDelta(t, 45.0, mv.Transform().Scale, 1e-9)
	assert.Equal(t, int64(2), mv.Index().Count())
}

func TestHitTestThroughView(t *testing.T) {
	mv := newView(t)
	mv.SetViewport(1000, 600)
	require.NoError(t, mv.LoadBytes([]byte(twoProvinceDoc)))

	p := mv.Click(200, 300, true, time.Now())
	require.NotNil(t, p)
	assert.Equal(t, "Westmark", p.Name)

	assert.Nil(t, mv.Click(10, 10, true, time.Now()))
}

func TestClickSuppressedDuringPan(t *testing.T) {
	mv := newView(t)
	mv.SetViewport(1000, 600)
	require.NoError(t, mv.LoadBytes([]byte(twoProvinceDoc)))

	mv.Camera().StartPan(0, 0)
	p := mv.Click(200, 300, true, time.Now())
	require.NotNil(t, p) // the hit still resolves
	assert.Equal(t, 0, mv.Selector().Pending())
	assert.Equal(t, p.Base, p.Color)
}

func TestHighlightLifecycle(t *testing.T) {
	mv := newView(t)
	mv.SetViewport(1000, 600)
	require.NoError(t, mv.LoadBytes([]byte(twoProvinceDoc)))
	now := time.Now()

	p := mv.Click(200, 300, true, now)
	require.NotNil(t, p)
	assert.NotEqual(t, p.Base, p.Color)

	mv.Update(now.Add(mv.cfg.Selection.HighlightDuration()))
	assert.Equal(t, p.Base, p.Color)
}

func TestReloadCancelsHighlights(t *testing.T) {
	mv := newView(t)
	mv.SetViewport(1000, 600)
	require.NoError(t, mv.LoadBytes([]byte(twoProvinceDoc)))
	now := time.Now()

	old := mv.Click(200, 300, true, now)
	require.NotNil(t, old)
	stale := old.Color

	require.NoError(t, mv.LoadBytes([]byte(twoProvinceDoc)))
	assert.Equal(t, 0, mv.Selector().Pending())

	// The revert deadline passing must not touch the destroyed province.
	mv.Update(now.Add(time.Second))
	assert.Equal(t, stale, old.Color)
}

func TestBadDocumentKeepsPreviousMap(t *testing.T) {
	mv := newView(t)
	mv.SetViewport(1000, 600)
	require.NoError(t, mv.LoadBytes([]byte(twoProvinceDoc)))

	err := mv.LoadBytes([]byte(`{"type": "Feature"}`))
	require.Error(t, err)

	assert.Equal(t, int64(2), mv.Index().Count())
	assert.InDelta(t, 45.0, mv.Transform().Scale, 1e-9)
}

func TestEmptyCollectionLeavesCameraUsable(t *testing.T) {
	mv := newView(t)
	mv.SetViewport(1000, 600)

	require.NoError(t, mv.LoadBytes([]byte(`{"type": "FeatureCollection", "features": []}`)))

	assert.Equal(t, int64(0), mv.Index().Count())
	assert.False(t, mv.Transform().Valid())

	cam := mv.Camera()
	cam.StartPan(0, 0)
	cam.MoveTo(10, 10)
	cam.EndPan()
	assert.InDelta(t, -10.0, cam.X, 1e-9)
	cam.ZoomIn()
	mv.Update(time.Now())
}

func TestProjectionFailureAfterSuccessKeepsTransform(t *testing.T) {
	mv := newView(t)
	mv.SetViewport(1000, 600)
	require.NoError(t, mv.LoadBytes([]byte(twoProvinceDoc)))

	// Valid document, but nothing projectable in it.
	require.NoError(t, mv.LoadBytes([]byte(`{"type": "FeatureCollection", "features": [
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 2]}, "properties": {}}
	]}`)))

	assert.Equal(t, int64(0), mv.Index().Count())
	assert.InDelta(t, 45.0, mv.Transform().Scale, 1e-9)
}

func TestPaletteRegistryAppliesOnLoad(t *testing.T) {
	mv := newView(t)
	mv.SetViewport(1000, 600)
	pinned := province.Color{R: 9, G: 8, B: 7}
	mv.Palette().Register("Arvand", pinned)

	require.NoError(t, mv.LoadBytes([]byte(twoProvinceDoc)))

	for _, p := range mv.Provinces() {
		if p.Owner == "Arvand" {
			assert.Equal(t, pinned, p.Base)
		}
	}
}
