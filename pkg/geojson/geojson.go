// Package geojson parses GeoJSON feature collections and extracts
// drawable exterior rings from them. Parsing is strict at the top level
// (a document that is not a FeatureCollection is a load error) and
// tolerant below it: malformed features, geometries, rings and
// coordinates are skipped at the finest possible granularity.
package geojson

import (
	"encoding/json"
	"fmt"
	"os"
)

// FeatureCollection is the decoded top level of a GeoJSON document.
// Individual features stay raw so one malformed feature cannot fail the
// whole document.
type FeatureCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

// Feature is a single decoded GeoJSON feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   *Geometry              `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry keeps its coordinates loosely typed; the extractor walks them
// and drops whatever does not conform.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// Parse decodes a GeoJSON document. A document that does not decode, is
// not typed "FeatureCollection", or carries no features array is a fatal
// load error; no partial collection is returned.
func Parse(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("unexpected top-level type %q, want FeatureCollection", fc.Type)
	}
	if fc.Features == nil {
		return nil, fmt.Errorf("document has no features array")
	}
	return &fc, nil
}

// Load reads and parses a GeoJSON file.
func Load(path string) (*FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}
