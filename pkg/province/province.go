// Package province builds renderable, clickable province records from
// projected geometry and GeoJSON feature properties.
package province

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kass/go-province-map/pkg/geom"
)

// Defaults applied before feature properties are overlaid.
const (
	DefaultName   = "Unnamed Province"
	DefaultOwner  = "Neutral"
	DefaultSupply = 10
	DefaultUnits  = 0
)

// Province is one polygon part of a feature, projected to screen space
// and carrying merged display/game metadata. Provinces are created once
// per valid ring during load and destroyed together on reload.
type Province struct {
	ID      string
	Name    string
	Owner   string
	Supply  int
	Units   int
	Polygon geom.Ring // screen space, ≥3 points
	Color   Color     // current display color, mutated by selection
	Base    Color     // color assigned at creation

	// Extra keeps unrecognized GeoJSON properties.
	Extra map[string]interface{}
}

// Contains reports whether a screen point lies inside the province.
func (p *Province) Contains(x, y float64) bool {
	return geom.PointInRing(p.Polygon, x, y)
}

// Builder converts rings + properties into Province records through a
// solved transform.
type Builder struct {
	transform geom.Transform
	colors    *Palette
	logger    *zap.Logger
}

// NewBuilder returns a builder for the given transform. A nil palette
// falls back to the default owner palette, a nil logger disables
// diagnostics.
func NewBuilder(t geom.Transform, colors *Palette, logger *zap.Logger) *Builder {
	if colors == nil {
		colors = DefaultPalette()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{transform: t, colors: colors, logger: logger}
}

// Build projects the ring and merges metadata. Returns false when the
// transform is unresolved or the projected ring is degenerate (<3
// points); degenerate geometry is dropped, not an error.
func (b *Builder) Build(ring geom.Ring, props map[string]interface{}) (*Province, bool) {
	if !b.transform.Valid() {
		return nil, false
	}

	polygon := b.transform.ProjectRing(ring)
	if len(polygon) < 3 {
		b.logger.Warn("dropping degenerate ring", zap.Int("points", len(polygon)))
		return nil, false
	}

	p := &Province{
		ID:      uuid.New().String(),
		Name:    DefaultName,
		Owner:   DefaultOwner,
		Supply:  DefaultSupply,
		Units:   DefaultUnits,
		Polygon: polygon,
	}
	b.merge(p, props)

	p.Base = b.colors.ColorFor(p.Owner, p.Name)
	p.Color = p.Base
	return p, true
}

// merge overlays feature properties onto the defaults. Owner precedence:
// owner, then country, then name, then the default.
func (b *Builder) merge(p *Province, props map[string]interface{}) {
	if props == nil {
		return
	}

	if name, ok := stringProp(props, "name"); ok {
		p.Name = name
	}

	switch {
	case hasString(props, "owner"):
		p.Owner, _ = stringProp(props, "owner")
	case hasString(props, "country"):
		p.Owner, _ = stringProp(props, "country")
	case hasString(props, "name"):
		p.Owner, _ = stringProp(props, "name")
	}

	if supply, ok := intProp(props, "supply"); ok && supply >= 0 {
		p.Supply = supply
	}
	if units, ok := intProp(props, "units"); ok && units >= 0 {
		p.Units = units
	}

	for k, v := range props {
		switch k {
		case "name", "owner", "country", "supply", "units":
		default:
			if p.Extra == nil {
				p.Extra = make(map[string]interface{})
			}
			p.Extra[k] = v
		}
	}
}

func stringProp(props map[string]interface{}, key string) (string, bool) {
	s, ok := props[key].(string)
	return s, ok && s != ""
}

func hasString(props map[string]interface{}, key string) bool {
	_, ok := stringProp(props, key)
	return ok
}

func intProp(props map[string]interface{}, key string) (int, bool) {
	switch v := props[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}
