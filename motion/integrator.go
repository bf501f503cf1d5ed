// Package motion integrates keyboard movement into camera displacement
// with exponential velocity damping.
package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/smasonuk/walkabout"
	"github.com/smasonuk/walkabout/input"
)

const (
	DefaultDamping = 10.0
	DefaultSpeed   = 50.0
)

type Config struct {
	// Speed is the acceleration applied along the requested direction.
	Speed float64
	// Damping is the per-second decay coefficient of the velocity.
	Damping float64
}

func DefaultConfig() Config {
	return Config{Speed: DefaultSpeed, Damping: DefaultDamping}
}

var ErrInvalidConfig = errors.New("invalid motion config")

func (c Config) Validate() error {
	if !finiteNonNegative(c.Speed) {
		return fmt.Errorf("%w: speed %v", ErrInvalidConfig, c.Speed)
	}
	if !finiteNonNegative(c.Damping) {
		return fmt.Errorf("%w: damping %v", ErrInvalidConfig, c.Damping)
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Velocity is in camera-local axes. Lateral is positive to the left and
// Depth positive backwards; Displacement flips both.
type Velocity struct {
	Lateral float64
	Depth   float64
}

// Displacement is a relative camera move for one frame.
type Displacement struct {
	Right   float64
	Forward float64
}

// Mover is anything that can be moved in camera-local axes, such as a
// *walkabout.Camera.
type Mover interface {
	MoveRight(distance float64)
	MoveForward(distance float64)
}

var _ Mover = (*walkabout.Camera)(nil)

type Integrator struct {
	cfg      Config
	velocity Velocity
}

func NewIntegrator(cfg Config) *Integrator {
	return &Integrator{cfg: cfg}
}

func (it *Integrator) Config() Config {
	return it.cfg
}

// SetConfig changes the constants without touching the current velocity.
func (it *Integrator) SetConfig(cfg Config) {
	it.cfg = cfg
}

func (it *Integrator) Velocity() Velocity {
	return it.velocity
}

// Step advances the velocity by delta seconds and returns the displacement
// for the frame. A negative delta is treated as zero.
func (it *Integrator) Step(delta float64, flags input.MovementFlags) Displacement {
	if !(delta > 0) {
		delta = 0
	}
	v := &it.velocity

	// Past one full decay per step the velocity would overshoot zero.
	decay := math.Min(1, it.cfg.Damping*delta)
	v.Lateral -= v.Lateral * decay
	v.Depth -= v.Depth * decay

	dir := walkabout.Vector2{
		X: boolToFloat(flags.Right) - boolToFloat(flags.Left),
		Y: boolToFloat(flags.Forward) - boolToFloat(flags.Backward),
	}.Normalize()

	if flags.Forward || flags.Backward {
		v.Depth -= dir.Y * it.cfg.Speed * delta
	}
	if flags.Left || flags.Right {
		v.Lateral -= dir.X * it.cfg.Speed * delta
	}

	return Displacement{
		Right:   -v.Lateral * delta,
		Forward: -v.Depth * delta,
	}
}

// Advance steps the integrator and applies the displacement to m.
func (it *Integrator) Advance(delta float64, flags input.MovementFlags, m Mover) Displacement {
	d := it.Step(delta, flags)
	m.MoveRight(d.Right)
	m.MoveForward(d.Forward)
	return d
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
