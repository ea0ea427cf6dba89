// Package index implements an R-Tree backed spatial index over province
// polygons in screen space. Candidate lookup goes through the tree on
// bounding boxes; the exact polygon containment test decides the hit.
package index

import (
	"sync"
	"sync/atomic"

	"github.com/dhconnelly/rtreego"

	"github.com/kass/go-province-map/pkg/geom"
	"github.com/kass/go-province-map/pkg/province"
)

const (
	pointTolerance = 0.01
	minChildren    = 25
	maxChildren    = 50
	dimensions     = 2

	// Degenerate bounding boxes (vertical/horizontal slivers) get a
	// minimum extent so rtreego accepts them.
	minExtent = 1e-9
)

// spatialProvince wraps a province to implement rtreego.Spatial.
type spatialProvince struct {
	*province.Province
	rect *rtreego.Rect
}

func (sp *spatialProvince) Bounds() *rtreego.Rect { return sp.rect }

// ProvinceIndex is a thread-safe spatial index of province polygons.
// The interactive view only ever touches it from the event loop, but CLI
// subcommands build and query it from worker goroutines.
type ProvinceIndex struct {
	tree      *rtreego.Rtree
	byID      map[string]*province.Province
	mu        sync.RWMutex
	itemCount atomic.Int64
}

// NewProvinceIndex creates an empty index.
func NewProvinceIndex() *ProvinceIndex {
	return &ProvinceIndex{
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren),
		byID: make(map[string]*province.Province),
	}
}

// Insert adds provinces to the index. Nil entries and provinces with
// degenerate polygons are skipped.
func (idx *ProvinceIndex) Insert(provinces []*province.Province) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	count := int64(0)
	for _, p := range provinces {
		if p == nil || len(p.Polygon) < 3 {
			continue
		}
		rect, err := polygonRect(p)
		if err != nil {
			continue
		}
		idx.tree.Insert(&spatialProvince{p, rect})
		idx.byID[p.ID] = p
		count++
	}
	idx.itemCount.Add(count)
}

// HitTest returns the province whose polygon contains the screen point,
// or nil. Overlapping polygons resolve to the first candidate whose
// exact containment test passes.
func (idx *ProvinceIndex) HitTest(x, y float64) *province.Province {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	probe := rtreego.Point{x, y}.ToRect(pointTolerance)
	for _, result := range idx.tree.SearchIntersect(probe) {
		sp, ok := result.(*spatialProvince)
		if !ok || sp.Province == nil {
			continue
		}
		if sp.Contains(x, y) {
			return sp.Province
		}
	}
	return nil
}

// Get resolves a province by ID; the selection layer uses this to make
// stale highlight reverts inert.
func (idx *ProvinceIndex) Get(id string) (*province.Province, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	p, ok := idx.byID[id]
	return p, ok
}

// All returns the indexed provinces in unspecified order.
func (idx *ProvinceIndex) All() []*province.Province {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]*province.Province, 0, len(idx.byID))
	for _, p := range idx.byID {
		out = append(out, p)
	}
	return out
}

// Count returns the number of indexed provinces.
func (idx *ProvinceIndex) Count() int64 { return idx.itemCount.Load() }

// Clear removes all provinces. Called on map reload.
func (idx *ProvinceIndex) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
	idx.byID = make(map[string]*province.Province)
	idx.itemCount.Store(0)
}

func polygonRect(p *province.Province) (*rtreego.Rect, error) {
	minX, minY, maxX, maxY := geom.RingBounds(p.Polygon)
	w := maxX - minX
	h := maxY - minY
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	return rtreego.NewRect(rtreego.Point{minX, minY}, []float64{w, h})
}
