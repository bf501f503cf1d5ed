package motion

import (
	"math"
	"testing"

	"github.com/smasonuk/walkabout"
	"github.com/smasonuk/walkabout/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepFromRest(t *testing.T) {
	tests := []struct {
		name  string
		flags input.MovementFlags
		want  Displacement
	}{
		{"idle", input.MovementFlags{}, Displacement{}},
		{"forward", input.MovementFlags{Forward: true}, Displacement{Forward: 0.5}},
		{"backward", input.MovementFlags{Backward: true}, Displacement{Forward: -0.5}},
		{"right", input.MovementFlags{Right: true}, Displacement{Right: 0.5}},
		{"left", input.MovementFlags{Left: true}, Displacement{Right: -0.5}},
		{"opposing cancel", input.MovementFlags{Forward: true, Backward: true, Left: true, Right: true}, Displacement{}},
		{"diagonal", input.MovementFlags{Forward: true, Right: true}, Displacement{Right: 0.5 / math.Sqrt2, Forward: 0.5 / math.Sqrt2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewIntegrator(Config{Speed: 50, Damping: 10})
			got := it.Step(0.1, tt.flags)
			assert.InDelta(t, tt.want.Right, got.Right, 1e-12)
			assert.InDelta(t, tt.want.Forward, got.Forward, 1e-12)
		})
	}
}

func TestStepForwardVelocity(t *testing.T) {
	it := NewIntegrator(DefaultConfig())
	d := it.Step(0.1, input.MovementFlags{Forward: true})

	assert.InDelta(t, -5, it.Velocity().Depth, 1e-12)
	assert.Zero(t, it.Velocity().Lateral)
	assert.InDelta(t, 0.5, d.Forward, 1e-12)
}

func TestStepDecays(t *testing.T) {
	it := NewIntegrator(DefaultConfig())
	it.velocity = Velocity{Lateral: 3, Depth: -7}

	prev := it.Velocity()
	for i := 0; i < 200; i++ {
		it.Step(1.0/60, input.MovementFlags{})
		v := it.Velocity()
		assert.Less(t, math.Abs(v.Lateral), math.Abs(prev.Lateral))
		assert.Less(t, math.Abs(v.Depth), math.Abs(prev.Depth))
		assert.GreaterOrEqual(t, v.Lateral, 0.0, "lateral changed sign")
		assert.LessOrEqual(t, v.Depth, 0.0, "depth changed sign")
		prev = v
	}
	assert.InDelta(t, 0, prev.Lateral, 1e-6)
	assert.InDelta(t, 0, prev.Depth, 1e-6)
}

func TestStepDecaysLongFrames(t *testing.T) {
	for _, delta := range []float64{0.15, 0.25, 1.0} {
		it := NewIntegrator(DefaultConfig())
		it.velocity = Velocity{Lateral: 3, Depth: -7}

		d := it.Step(delta, input.MovementFlags{})
		v := it.Velocity()
		assert.Equal(t, Velocity{}, v, "delta %v", delta)
		assert.Equal(t, Displacement{}, d, "delta %v", delta)

		it.Step(delta, input.MovementFlags{})
		assert.Equal(t, Velocity{}, it.Velocity(), "delta %v", delta)
	}

	// Below a full decay the velocity shrinks but keeps its sign.
	it := NewIntegrator(DefaultConfig())
	it.velocity = Velocity{Lateral: 3, Depth: -7}
	it.Step(0.05, input.MovementFlags{})
	v := it.Velocity()
	assert.InDelta(t, 1.5, v.Lateral, 1e-12)
	assert.InDelta(t, -3.5, v.Depth, 1e-12)
}

func TestStepNonPositiveDelta(t *testing.T) {
	it := NewIntegrator(DefaultConfig())
	it.velocity = Velocity{Lateral: 1, Depth: 1}

	for _, delta := range []float64{0, -0.5, math.NaN()} {
		d := it.Step(delta, input.MovementFlags{Forward: true})
		assert.Equal(t, Displacement{}, d)
		assert.Equal(t, Velocity{Lateral: 1, Depth: 1}, it.Velocity())
	}
}

func TestStepNeverProducesNaN(t *testing.T) {
	it := NewIntegrator(DefaultConfig())
	all := []input.MovementFlags{
		{},
		{Forward: true, Backward: true},
		{Left: true, Right: true},
		{Forward: true, Backward: true, Left: true, Right: true},
		{Forward: true, Left: true},
	}
	for i := 0; i < 100; i++ {
		d := it.Step(0.016, all[i%len(all)])
		require.False(t, math.IsNaN(d.Right) || math.IsNaN(d.Forward), "step %d", i)
	}
}

type recordingMover struct {
	right, forward float64
}

func (m *recordingMover) MoveRight(d float64)   { m.right += d }
func (m *recordingMover) MoveForward(d float64) { m.forward += d }

func TestAdvance(t *testing.T) {
	it := NewIntegrator(DefaultConfig())
	m := &recordingMover{}
	d := it.Advance(0.1, input.MovementFlags{Forward: true, Left: true}, m)

	assert.Equal(t, d.Right, m.right)
	assert.Equal(t, d.Forward, m.forward)
	assert.Less(t, m.right, 0.0)
	assert.Greater(t, m.forward, 0.0)
}

func TestAdvanceMovesCamera(t *testing.T) {
	cam := walkabout.NewCamera(75, 1, 0.1, 1000)
	cam.SetPosition(0, 2, 5)

	it := NewIntegrator(DefaultConfig())
	it.Advance(0.1, input.MovementFlags{Forward: true}, cam)

	pos := cam.Position()
	assert.InDelta(t, 0, pos.X, 1e-9)
	assert.InDelta(t, 2, pos.Y, 1e-9)
	assert.InDelta(t, 4.5, pos.Z, 1e-9)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{}.Validate())
	assert.ErrorIs(t, Config{Speed: -1, Damping: 10}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, Config{Speed: 1, Damping: math.Inf(1)}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, Config{Speed: math.NaN()}.Validate(), ErrInvalidConfig)
}

func TestSetConfigKeepsVelocity(t *testing.T) {
	it := NewIntegrator(DefaultConfig())
	it.Step(0.1, input.MovementFlags{Forward: true})
	v := it.Velocity()

	it.SetConfig(Config{Speed: 800, Damping: 10})
	assert.Equal(t, v, it.Velocity())
	assert.Equal(t, 800.0, it.Config().Speed)
}
