// Package mapview wires the projection pipeline to the interactive
// controllers: load a feature collection, fit it to the viewport, build
// the province index, and route input to camera and selection state.
package mapview

import (
	"time"

	"go.uber.org/zap"

	"github.com/kass/go-province-map/pkg/camera"
	"github.com/kass/go-province-map/pkg/config"
	"github.com/kass/go-province-map/pkg/geojson"
	"github.com/kass/go-province-map/pkg/geom"
	"github.com/kass/go-province-map/pkg/index"
	"github.com/kass/go-province-map/pkg/province"
	"github.com/kass/go-province-map/pkg/selection"
)

// MapView owns the loaded map state for its lifetime. All mutation
// happens on the event loop goroutine.
type MapView struct {
	cfg    config.Config
	logger *zap.Logger

	doc       *geojson.FeatureCollection
	extractor *geojson.Extractor
	palette   *province.Palette

	bounds    geom.Bounds
	transform geom.Transform

	viewportW float64
	viewportH float64

	idx      *index.ProvinceIndex
	cam      *camera.Camera
	selector *selection.Selector
}

// New returns an empty map view. The camera is usable immediately, even
// before a document loads or when a loaded document yields no provinces.
func New(cfg config.Config, logger *zap.Logger) *MapView {
	if logger == nil {
		logger = zap.NewNop()
	}

	mv := &MapView{
		cfg:       cfg,
		logger:    logger,
		extractor: geojson.NewExtractor(logger),
		palette:   province.DefaultPalette(),
		idx:       index.NewProvinceIndex(),
	}
	mv.cam = camera.New(0, 0, mv.cameraOptions())
	mv.selector = selection.New(mv.idx.Get, cfg.Selection.HighlightDuration(), cfg.Selection.BlendRatio)
	return mv
}

func (mv *MapView) cameraOptions() camera.Options {
	return camera.Options{
		MinZoom:    mv.cfg.Camera.MinZoom,
		MaxZoom:    mv.cfg.Camera.MaxZoom,
		ZoomFactor: mv.cfg.Camera.ZoomFactor,
		PanSpeed:   mv.cfg.Camera.PanSpeed,
		Smoothing:  mv.cfg.Camera.Smoothing,
	}
}

// LoadFile loads a GeoJSON file and rebuilds the map. Load errors are
// fatal to the operation: the previous map stays in place untouched.
func (mv *MapView) LoadFile(path string) error {
	fc, err := geojson.Load(path)
	if err != nil {
		return err
	}
	return mv.LoadCollection(fc)
}

// LoadBytes loads a GeoJSON document from memory.
func (mv *MapView) LoadBytes(data []byte) error {
	fc, err := geojson.Parse(data)
	if err != nil {
		return err
	}
	return mv.LoadCollection(fc)
}

// LoadCollection replaces the current document and rebuilds. All pending
// highlight reverts are invalidated before the old provinces go away.
func (mv *MapView) LoadCollection(fc *geojson.FeatureCollection) error {
	mv.doc = fc
	mv.rebuild()
	return nil
}

// SetViewport updates the viewport size and re-projects the loaded map.
// Screen-space polygons depend on the viewport, so provinces are rebuilt.
func (mv *MapView) SetViewport(w, h float64) {
	mv.viewportW, mv.viewportH = w, h
	if mv.doc != nil {
		mv.rebuild()
	}
}

// rebuild runs extract → bounds → solve → build → index on the stored
// document. On projection failure the previous transform stays in place
// and no provinces are built from the unresolved one.
func (mv *MapView) rebuild() {
	mv.selector.Reset()
	mv.idx.Clear()

	groups := mv.extractor.ExtractRings(mv.doc)
	rings := make([]geom.Ring, len(groups))
	for i, g := range groups {
		rings[i] = g.Ring
	}
	mv.bounds = geom.BoundsOf(rings)

	w, h := mv.viewportW, mv.viewportH
	if w <= 0 || h <= 0 {
		// Host layout not ready yet: substitute the fixed fallback.
		w, h = mv.cfg.Map.FallbackWidth, mv.cfg.Map.FallbackHeight
	}

	t := geom.Solve(mv.bounds, w, h, mv.cfg.Map.Padding)
	if !t.Valid() {
		mv.logger.Warn("cannot project map: empty or degenerate bounds",
			zap.Float64("width", mv.bounds.Width()),
			zap.Float64("height", mv.bounds.Height()))
		return
	}
	mv.transform = t

	builder := province.NewBuilder(t, mv.palette, mv.logger)
	provinces := make([]*province.Province, 0, len(groups))
	for _, g := range groups {
		if p, ok := builder.Build(g.Ring, g.Properties); ok {
			provinces = append(provinces, p)
		}
	}
	mv.idx.Insert(provinces)

	// Home camera policy: geographic centroid of the bounds, projected.
	home := t.Project(mv.bounds.Center().X, mv.bounds.Center().Y)
	mv.cam.MoveHome(home.X, home.Y)

	mv.logger.Info("map rebuilt",
		zap.Int("rings", len(groups)),
		zap.Int64("provinces", mv.idx.Count()))
}

// Click hit-tests a screen point (in projected map space) and forwards
// the result to the selection layer.
func (mv *MapView) Click(x, y float64, primaryButton bool, now time.Time) *province.Province {
	p := mv.idx.HitTest(x, y)
	mv.selector.Click(p, primaryButton, mv.cam.Panning(), now)
	return p
}

// Update advances camera smoothing and expires due highlights. Called
// once per host tick.
func (mv *MapView) Update(now time.Time) {
	mv.cam.Update()
	mv.selector.Update(now)
}

// Camera returns the camera controller.
func (mv *MapView) Camera() *camera.Camera { return mv.cam }

// Selector returns the selection controller.
func (mv *MapView) Selector() *selection.Selector { return mv.selector }

// Index returns the spatial province index.
func (mv *MapView) Index() *index.ProvinceIndex { return mv.idx }

// Provinces returns the currently built provinces.
func (mv *MapView) Provinces() []*province.Province { return mv.idx.All() }

// Bounds returns the geographic bounds of the loaded document.
func (mv *MapView) Bounds() geom.Bounds { return mv.bounds }

// Transform returns the solved projection transform. Invalid until a
// projectable document has loaded.
func (mv *MapView) Transform() geom.Transform { return mv.transform }

// Palette exposes the owner-color registry so hosts can pin colors
// before loading.
func (mv *MapView) Palette() *province.Palette { return mv.palette }
