// Package camera owns the interactive map camera: pan state machine,
// zoom clamping, and spring-smoothed zoom animation.
package camera

import "github.com/charmbracelet/harmonica"

// Tuning defaults; every value is overridable through Options.
const (
	DefaultMinZoom    = 0.25
	DefaultMaxZoom    = 8.0
	DefaultZoomFactor = 1.2
	DefaultPanSpeed   = 1.0

	// Critically damped spring: converges without overshooting the
	// zoom clamp.
	springFPS       = 30
	springFrequency = 8.0
	springDamping   = 1.0
)

// Options configures a Camera. Zero fields fall back to the defaults.
type Options struct {
	MinZoom    float64
	MaxZoom    float64
	ZoomFactor float64 // multiplicative wheel step
	PanSpeed   float64
	Smoothing  bool
}

// Camera holds the view position and zoom. It is mutated only by the
// event loop goroutine; no locking.
type Camera struct {
	X, Y       float64
	Zoom       float64
	TargetZoom float64

	panning      bool
	lastX, lastY float64

	opts    Options
	spring  harmonica.Spring
	zoomVel float64
}

// New returns an idle camera at the given home position with zoom 1.
func New(homeX, homeY float64, opts Options) *Camera {
	if opts.MinZoom <= 0 {
		opts.MinZoom = DefaultMinZoom
	}
	if opts.MaxZoom <= 0 {
		opts.MaxZoom = DefaultMaxZoom
	}
	if opts.ZoomFactor <= 1 {
		opts.ZoomFactor = DefaultZoomFactor
	}
	if opts.PanSpeed <= 0 {
		opts.PanSpeed = DefaultPanSpeed
	}
	return &Camera{
		X:          homeX,
		Y:          homeY,
		Zoom:       1.0,
		TargetZoom: 1.0,
		opts:       opts,
		spring:     harmonica.NewSpring(harmonica.FPS(springFPS), springFrequency, springDamping),
	}
}

// Panning reports whether a drag gesture is active. The selection layer
// consults this to suppress clicks delivered at the end of a drag.
func (c *Camera) Panning() bool { return c.panning }

// StartPan enters the panning state and records the pointer position.
func (c *Camera) StartPan(x, y float64) {
	c.panning = true
	c.lastX, c.lastY = x, y
}

// EndPan leaves the panning state. Safe to call when idle.
func (c *Camera) EndPan() { c.panning = false }

// MoveTo applies a pointer-move while panning. The delta is divided by
// the current zoom so perceived drag speed is constant at any zoom
// level. Ignored while idle.
func (c *Camera) MoveTo(x, y float64) {
	if !c.panning {
		return
	}
	c.X -= (x - c.lastX) * c.opts.PanSpeed / c.Zoom
	c.Y -= (y - c.lastY) * c.opts.PanSpeed / c.Zoom
	c.lastX, c.lastY = x, y
}

// ZoomIn multiplies the target zoom by the wheel factor, clamped.
func (c *Camera) ZoomIn() { c.setTarget(c.TargetZoom * c.opts.ZoomFactor) }

// ZoomOut divides the target zoom by the wheel factor, clamped.
func (c *Camera) ZoomOut() { c.setTarget(c.TargetZoom / c.opts.ZoomFactor) }

func (c *Camera) setTarget(z float64) {
	if z < c.opts.MinZoom {
		z = c.opts.MinZoom
	}
	if z > c.opts.MaxZoom {
		z = c.opts.MaxZoom
	}
	c.TargetZoom = z
	if !c.opts.Smoothing {
		c.Zoom = z
		c.zoomVel = 0
	}
}

// Update advances the zoom animation one tick. With smoothing on the
// actual zoom converges to the target through the spring; with it off
// zoom already tracks the target and this is a no-op.
func (c *Camera) Update() {
	if !c.opts.Smoothing {
		c.Zoom = c.TargetZoom
		return
	}
	c.Zoom, c.zoomVel = c.spring.Update(c.Zoom, c.zoomVel, c.TargetZoom)

	// The spring is critically damped, but clamp anyway so the
	// invariant holds no matter how the tuning changes.
	if c.Zoom < c.opts.MinZoom {
		c.Zoom = c.opts.MinZoom
	}
	if c.Zoom > c.opts.MaxZoom {
		c.Zoom = c.opts.MaxZoom
	}
}

// MoveHome recenters the camera on its home position.
func (c *Camera) MoveHome(x, y float64) {
	c.X, c.Y = x, y
	c.panning = false
}
