// Package selection manages transient click highlights on provinces:
// blend toward white on click, revert after a fixed duration, and stay
// inert when the province was destroyed before the revert fired.
package selection

import (
	"time"

	"github.com/kass/go-province-map/pkg/province"
)

const (
	DefaultDuration   = 150 * time.Millisecond
	DefaultBlendRatio = 0.5
)

// Lookup resolves a province by ID. It returns false when the province
// no longer exists, which makes every pending revert a safe no-op after
// a reload.
type Lookup func(id string) (*province.Province, bool)

// highlight is one armed revert task.
type highlight struct {
	original  province.Color
	expiresAt time.Time
}

// Selector owns the highlight state. Mutated only by the event loop
// goroutine; reverts are driven by Update rather than background timers
// so they are cancelable and ordered with input events.
type Selector struct {
	lookup   Lookup
	duration time.Duration
	blend    float64
	pending  map[string]highlight
}

// New returns a selector resolving provinces through lookup. Non-positive
// duration or blend fall back to the defaults.
func New(lookup Lookup, duration time.Duration, blend float64) *Selector {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if blend <= 0 || blend > 1 {
		blend = DefaultBlendRatio
	}
	return &Selector{
		lookup:   lookup,
		duration: duration,
		blend:    blend,
		pending:  make(map[string]highlight),
	}
}

// Click handles a pointer click on a province. It is a no-op unless the
// primary button was used and the camera is not panning — a click at the
// end of a drag gesture must never select.
//
// A second click on an already highlighted province re-arms its timer
// with the stored original color; highlights never stack.
func (s *Selector) Click(p *province.Province, primaryButton, cameraPanning bool, now time.Time) {
	if p == nil || !primaryButton || cameraPanning {
		return
	}

	original := p.Color
	if h, ok := s.pending[p.ID]; ok {
		// Already highlighted: keep the true original, not the blend.
		original = h.original
	}

	p.Color = original.Blend(province.White, s.blend)
	s.pending[p.ID] = highlight{
		original:  original,
		expiresAt: now.Add(s.duration),
	}
}

// Update expires due highlights. A highlight whose province was
// destroyed is dropped without touching anything.
func (s *Selector) Update(now time.Time) {
	for id, h := range s.pending {
		if now.Before(h.expiresAt) {
			continue
		}
		if p, ok := s.lookup(id); ok {
			p.Color = h.original
		}
		delete(s.pending, id)
	}
}

// Reset cancels every pending highlight. Called on map reload; colors
// are not restored because the provinces are being destroyed anyway.
func (s *Selector) Reset() {
	s.pending = make(map[string]highlight)
}

// Pending returns the number of armed highlights, for tests and the
// status line.
func (s *Selector) Pending() int { return len(s.pending) }
