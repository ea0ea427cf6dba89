package main

import (
	"fmt"
	"log"

	"github.com/kass/go-province-map/pkg/geojson"
	"github.com/kass/go-province-map/pkg/geom"
	"github.com/kass/go-province-map/pkg/index"
	"github.com/kass/go-province-map/pkg/province"
)

// A tiny four-province map covering lon -10..10, lat -5..5.
const sampleMap = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [
			[[-10, 0], [0, 0], [0, 5], [-10, 5], [-10, 0]]
		]}, "properties": {"name": "Nordmark", "owner": "Arvand", "supply": 6}},
		{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [
			[[0, 0], [10, 0], [10, 5], [0, 5], [0, 0]]
		]}, "properties": {"name": "Ostmark", "owner": "Arvand"}},
		{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [
			[[-10, -5], [0, -5], [0, 0], [-10, 0], [-10, -5]]
		]}, "properties": {"name": "Westmark", "country": "Belmont"}},
		{"type": "Feature", "geometry": {"type": "MultiPolygon", "coordinates": [
			[[[0, -5], [10, -5], [10, 0], [5, 0], [0, -5]]],
			[[[6, -1], [9, -1], [9, -0.2], [6, -0.2], [6, -1]]]
		]}, "properties": {"name": "Sudmark Isles"}}
	]
}`

func main() {
	// Parse the document and extract exterior rings
	fc, err := geojson.Parse([]byte(sampleMap))
	if err != nil {
		log.Fatal(err)
	}

	groups := geojson.NewExtractor(nil).ExtractRings(fc)
	fmt.Printf("Extracted %d rings\n\n", len(groups))

	// Fit the map into a 1000x600 viewport with 50px padding
	fmt.Println("=== Projection ===")
	rings := make([]geom.Ring, len(groups))
	for i, g := range groups {
		rings[i] = g.Ring
	}
	bounds := geom.BoundsOf(rings)
	transform := geom.Solve(bounds, 1000, 600, 50)
	fmt.Printf("Bounds: lon %.1f..%.1f lat %.1f..%.1f\n",
		bounds.MinLon, bounds.MaxLon, bounds.MinLat, bounds.MaxLat)
	fmt.Printf("Scale: %.2f px/degree\n", transform.Scale)

	// Build provinces and index them
	fmt.Println("\n=== Provinces ===")
	builder := province.NewBuilder(transform, nil, nil)
	provinces := make([]*province.Province, 0, len(groups))
	for _, g := range groups {
		if p, ok := builder.Build(g.Ring, g.Properties); ok {
			provinces = append(provinces, p)
		}
	}

	idx := index.NewProvinceIndex()
	idx.Insert(provinces)
	fmt.Printf("Indexed %d provinces:\n", idx.Count())
	for _, p := range idx.All() {
		fmt.Printf("  - %s (owner %s, supply %d, color %s)\n",
			p.Name, p.Owner, p.Supply, p.Color.Hex())
	}

	// Hit-test a few screen points
	fmt.Println("\n=== Hit Tests ===")
	for _, pt := range []geom.Point{{X: 250, Y: 150}, {X: 750, Y: 450}, {X: 5, Y: 5}} {
		if p := idx.HitTest(pt.X, pt.Y); p != nil {
			fmt.Printf("  (%.0f, %.0f) -> %s\n", pt.X, pt.Y, p.Name)
		} else {
			fmt.Printf("  (%.0f, %.0f) -> open water\n", pt.X, pt.Y)
		}
	}

	// Save the built provinces
	fmt.Println("\n=== Saving Cache ===")
	if err := idx.SaveToFile("provinces.gob"); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Provinces saved to provinces.gob")

	// Load them back
	fmt.Println("\n=== Loading Cache ===")
	loaded := index.NewProvinceIndex()
	if err := loaded.LoadFromFile("provinces.gob"); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Loaded cache with %d provinces\n", loaded.Count())
}
