package geojson

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/kass/go-province-map/pkg/geom"
)

// RingGroup is one exterior ring paired with the properties of the
// feature it came from. A MultiPolygon emits one group per part, all
// sharing the same properties.
type RingGroup struct {
	Ring       geom.Ring
	Properties map[string]interface{}
}

// Extractor walks a feature collection and yields exterior rings.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor returns an extractor that reports skipped geometry at
// warn level. A nil logger disables diagnostics.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// ExtractRings makes a single pass over the collection and returns one
// RingGroup per polygon part. Features with missing geometry or a
// geometry kind other than Polygon/MultiPolygon contribute nothing.
// Interior rings (holes) are intentionally ignored. Re-running on the
// same collection yields the same result.
func (e *Extractor) ExtractRings(fc *FeatureCollection) []RingGroup {
	var groups []RingGroup
	if fc == nil {
		return groups
	}

	for i, raw := range fc.Features {
		var f *Feature
		if err := json.Unmarshal(raw, &f); err != nil {
			e.logger.Warn("skipping malformed feature",
				zap.Int("index", i), zap.Error(err))
			continue
		}
		if f == nil || f.Geometry == nil {
			e.logger.Warn("skipping feature without geometry", zap.Int("index", i))
			continue
		}

		switch f.Geometry.Type {
		case "Polygon":
			// coordinates: [ring, ring, ...]; ring 0 is the exterior.
			rings, ok := f.Geometry.Coordinates.([]interface{})
			if !ok || len(rings) == 0 {
				e.logger.Warn("skipping polygon without rings", zap.Int("index", i))
				continue
			}
			if ring := e.parseRing(rings[0], i); ring != nil {
				groups = append(groups, RingGroup{Ring: ring, Properties: f.Properties})
			}

		case "MultiPolygon":
			// coordinates: [polygon, polygon, ...]; each part stands alone.
			parts, ok := f.Geometry.Coordinates.([]interface{})
			if !ok {
				e.logger.Warn("skipping multipolygon without parts", zap.Int("index", i))
				continue
			}
			for _, part := range parts {
				rings, ok := part.([]interface{})
				if !ok || len(rings) == 0 {
					continue
				}
				if ring := e.parseRing(rings[0], i); ring != nil {
					groups = append(groups, RingGroup{Ring: ring, Properties: f.Properties})
				}
			}

		default:
			e.logger.Warn("skipping unsupported geometry kind",
				zap.Int("index", i), zap.String("kind", f.Geometry.Type))
		}
	}

	return groups
}

// parseRing converts one raw coordinate ring, dropping coordinates that
// are not arrays of at least two numbers. A bad coordinate never
// discards the rest of its ring.
func (e *Extractor) parseRing(v interface{}, featureIdx int) geom.Ring {
	coords, ok := v.([]interface{})
	if !ok {
		e.logger.Warn("skipping non-array ring", zap.Int("index", featureIdx))
		return nil
	}

	ring := make(geom.Ring, 0, len(coords))
	for _, c := range coords {
		pair, ok := c.([]interface{})
		if !ok || len(pair) < 2 {
			e.logger.Warn("skipping malformed coordinate", zap.Int("index", featureIdx))
			continue
		}
		lon, okLon := pair[0].(float64)
		lat, okLat := pair[1].(float64)
		if !okLon || !okLat {
			e.logger.Warn("skipping non-numeric coordinate", zap.Int("index", featureIdx))
			continue
		}
		ring = append(ring, geom.Point{X: lon, Y: lat})
	}
	return ring
}

// Rings is a convenience that extracts only the geometry, for bounds
// computation where properties are irrelevant.
func (e *Extractor) Rings(fc *FeatureCollection) []geom.Ring {
	groups := e.ExtractRings(fc)
	rings := make([]geom.Ring, len(groups))
	for i, g := range groups {
		rings[i] = g.Ring
	}
	return rings
}
