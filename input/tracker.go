// Package input turns key and wheel events into movement flags and a zoom
// factor.
package input

import "math"

type Direction int

const (
	DirForward Direction = iota
	DirBackward
	DirLeft
	DirRight
)

// MovementFlags are the four requested movement directions. Opposing flags
// may be set together; they cancel out when integrated.
type MovementFlags struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

func (f MovementFlags) Any() bool {
	return f.Forward || f.Backward || f.Left || f.Right
}

// Bindings maps DOM-style key codes ("KeyW", "ArrowUp") to directions.
type Bindings map[string]Direction

// DefaultBindings binds both the arrow keys and WASD.
func DefaultBindings() Bindings {
	return Bindings{
		"ArrowUp":    DirForward,
		"KeyW":       DirForward,
		"ArrowDown":  DirBackward,
		"KeyS":       DirBackward,
		"ArrowLeft":  DirLeft,
		"KeyA":       DirLeft,
		"ArrowRight": DirRight,
		"KeyD":       DirRight,
	}
}

func WASDBindings() Bindings {
	return Bindings{
		"KeyW": DirForward,
		"KeyS": DirBackward,
		"KeyA": DirLeft,
		"KeyD": DirRight,
	}
}

const (
	DefaultZoomSpeed = 0.95
	DefaultMinZoom   = 0.5
	DefaultMaxZoom   = 2.5
)

type ZoomConfig struct {
	Speed float64
	Min   float64
	Max   float64
}

func DefaultZoomConfig() ZoomConfig {
	return ZoomConfig{Speed: DefaultZoomSpeed, Min: DefaultMinZoom, Max: DefaultMaxZoom}
}

// Tracker holds the current movement flags and zoom factor. It is not safe
// for concurrent use; events and reads happen on the game loop.
type Tracker struct {
	bindings Bindings
	zoomCfg  ZoomConfig
	flags    MovementFlags
	zoom     float64
}

// NewTracker returns a tracker with no flags set and a zoom of 1. A nil
// bindings map uses DefaultBindings.
func NewTracker(bindings Bindings, zoom ZoomConfig) *Tracker {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	t := &Tracker{bindings: bindings, zoom: 1}
	t.SetZoomConfig(zoom)
	return t
}

// KeyDown sets the flag bound to code. Unknown codes are ignored.
func (t *Tracker) KeyDown(code string) {
	t.set(code, true)
}

// KeyUp clears the flag bound to code. Unknown codes are ignored.
func (t *Tracker) KeyUp(code string) {
	t.set(code, false)
}

func (t *Tracker) set(code string, pressed bool) {
	dir, ok := t.bindings[code]
	if !ok {
		return
	}
	switch dir {
	case DirForward:
		t.flags.Forward = pressed
	case DirBackward:
		t.flags.Backward = pressed
	case DirLeft:
		t.flags.Left = pressed
	case DirRight:
		t.flags.Right = pressed
	}
}

// Wheel scales the zoom factor: scrolling up (deltaY < 0) zooms in by
// 1/Speed, anything else zooms out by Speed. The result is clamped.
func (t *Tracker) Wheel(deltaY float64) {
	if deltaY < 0 {
		t.zoom *= 1 / t.zoomCfg.Speed
	} else {
		t.zoom *= t.zoomCfg.Speed
	}
	t.zoom = clamp(t.zoom, t.zoomCfg.Min, t.zoomCfg.Max)
}

// SetZoomConfig replaces the zoom step and bounds and re-clamps the current
// factor. Invalid values fall back to the defaults.
func (t *Tracker) SetZoomConfig(cfg ZoomConfig) {
	def := DefaultZoomConfig()
	if !(cfg.Speed > 0) || math.IsInf(cfg.Speed, 0) {
		cfg.Speed = def.Speed
	}
	if !(cfg.Min > 0) || !(cfg.Max >= cfg.Min) || math.IsInf(cfg.Max, 0) {
		cfg.Min, cfg.Max = def.Min, def.Max
	}
	t.zoomCfg = cfg
	t.zoom = clamp(t.zoom, cfg.Min, cfg.Max)
}

func (t *Tracker) Flags() MovementFlags {
	return t.flags
}

func (t *Tracker) Zoom() float64 {
	return t.zoom
}

// Reset clears every movement flag. The zoom factor is kept.
func (t *Tracker) Reset() {
	t.flags = MovementFlags{}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
