package geojson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kass/go-province-map/pkg/geom"
)

func TestParseRejectsWrongTopLevel(t *testing.T) {
	_, err := Parse([]byte(`{"type":"Feature","geometry":null}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"type":"FeatureCollection"}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`not json at all`))
	assert.Error(t, err)
}

func TestParseEmptyCollection(t *testing.T) {
	fc, err := Parse([]byte(`{"type":"FeatureCollection","features":[]}`))
	require.NoError(t, err)
	assert.Empty(t, fc.Features)
}

func TestExtractPolygonExteriorOnly(t *testing.T) {
	fc, err := Parse([]byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {"name": "Bohemia"},
			"geometry": {
				"type": "Polygon",
				"coordinates": [
					[[0,0],[4,0],[4,4],[0,4],[0,0]],
					[[1,1],[2,1],[2,2],[1,2],[1,1]]
				]
			}
		}]
	}`))
	require.NoError(t, err)

	groups := NewExtractor(nil).ExtractRings(fc)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Ring, 5)
	assert.Equal(t, "Bohemia", groups[0].Properties["name"])

	// The interior ring (hole) was discarded entirely.
	for _, p := range groups[0].Ring {
		assert.True(t, p.X == 0 || p.X == 4 || p.Y == 0 || p.Y == 4)
	}
}

func TestExtractMultiPolygon(t *testing.T) {
	fc, err := Parse([]byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {"name": "Denmark"},
			"geometry": {
				"type": "MultiPolygon",
				"coordinates": [
					[[[8,54],[10,54],[10,57],[8,54]]],
					[[[12,55],[13,55],[13,56],[12,55]]]
				]
			}
		}]
	}`))
	require.NoError(t, err)

	groups := NewExtractor(nil).ExtractRings(fc)
	require.Len(t, groups, 2)
	// Both parts share the feature's properties.
	assert.Equal(t, "Denmark", groups[0].Properties["name"])
	assert.Equal(t, "Denmark", groups[1].Properties["name"])
}

func TestExtractSkipsMalformedFeatures(t *testing.T) {
	fc, err := Parse([]byte(`{
		"type": "FeatureCollection",
		"features": [
			null,
			{"type": "Feature", "properties": {}, "geometry": null},
			{"type": "Feature", "properties": {}, "geometry": "not an object"},
			{"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [1, 2]}},
			{"type": "Feature", "properties": {"name": "Valid"}, "geometry": {
				"type": "Polygon",
				"coordinates": [[[0,0],[1,0],[1,1],[0,0]]]
			}}
		]
	}`))
	require.NoError(t, err)

	groups := NewExtractor(nil).ExtractRings(fc)
	require.Len(t, groups, 1)
	assert.Equal(t, "Valid", groups[0].Properties["name"])
}

func TestExtractSkipsBadCoordinatesNotWholeRing(t *testing.T) {
	fc, err := Parse([]byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[
					[0,0],
					null,
					[1],
					["x","y"],
					[1,0],
					[1,1]
				]]
			}
		}]
	}`))
	require.NoError(t, err)

	groups := NewExtractor(nil).ExtractRings(fc)
	require.Len(t, groups, 1)
	// The three bad entries were dropped, the three good ones kept.
	assert.Equal(t, geom.Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, groups[0].Ring)
}

func TestExtractBadRingNotWholeFeature(t *testing.T) {
	fc, err := Parse([]byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {"name": "Archipelago"},
			"geometry": {
				"type": "MultiPolygon",
				"coordinates": [
					["garbage"],
					[[[0,0],[1,0],[1,1],[0,0]]]
				]
			}
		}]
	}`))
	require.NoError(t, err)

	groups := NewExtractor(nil).ExtractRings(fc)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Ring, 4)
}

func TestExtractBoundsCorrectness(t *testing.T) {
	// Bounds fold only coordinates reachable via exterior rings;
	// the hole vertex at (100, 100) must not count.
	fc, err := Parse([]byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {},
			"geometry": {
				"type": "Polygon",
				"coordinates": [
					[[-10,-5],[10,-5],[10,5],[-10,5],[-10,-5]],
					[[100,100],[101,100],[101,101],[100,100]]
				]
			}
		}]
	}`))
	require.NoError(t, err)

	b := geom.BoundsOf(NewExtractor(nil).Rings(fc))
	assert.Equal(t, -10.0, b.MinLon)
	assert.Equal(t, 10.0, b.MaxLon)
	assert.Equal(t, -5.0, b.MinLat)
	assert.Equal(t, 5.0, b.MaxLat)
}

func TestExtractRepeatable(t *testing.T) {
	fc, err := Parse([]byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {},
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}
		}]
	}`))
	require.NoError(t, err)

	e := NewExtractor(nil)
	first := e.ExtractRings(fc)
	second := e.ExtractRings(fc)
	assert.Equal(t, first, second)
}
