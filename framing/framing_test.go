package framing

import (
	"image/color"
	"math"
	"testing"

	"github.com/smasonuk/walkabout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grey = color.RGBA{R: 128, G: 128, B: 128, A: 255}

func assertVec(t *testing.T, want, got walkabout.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-9, "z")
}

func TestRescaleFactor(t *testing.T) {
	tests := []struct {
		name string
		size walkabout.Vector3
		max  float64
		want float64
	}{
		{"fits", walkabout.Vector3{X: 10, Y: 10, Z: 10}, 100, 1},
		{"exactly max", walkabout.Vector3{X: 100}, 100, 1},
		{"too big", walkabout.Vector3{X: 300, Y: 400}, 100, 100.0 / 500},
		{"disabled", walkabout.Vector3{X: 1e6}, 0, 1},
		{"empty", walkabout.Vector3{}, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RescaleFactor(tt.size, tt.max))
		})
	}
}

func TestFrameRecenterAndRescale(t *testing.T) {
	m := walkabout.NewBox(300, grey)
	m.Position = walkabout.Vector3{X: 50, Y: 20, Z: -10}

	res := Frame(m, Options{Recenter: true, MaxSize: 100})

	assertVec(t, walkabout.Vector3{X: 50, Y: 20, Z: -10}, res.Center)
	assert.InDelta(t, 300*math.Sqrt(3), res.Size.Length(), 1e-9)
	require.True(t, res.Rescaled)
	assert.InDelta(t, 100/(300*math.Sqrt(3)), res.Scale, 1e-12)

	bounds := m.WorldBounds()
	assert.InDelta(t, 100, bounds.Size().Length(), 1e-9)
	assertVec(t, walkabout.Vector3{}, bounds.Center())
	assert.Equal(t, bounds, res.Bounds)
	assert.False(t, res.Framed)
}

func TestFrameSmallModelOnlyRecentered(t *testing.T) {
	m := walkabout.NewBox(10, grey)
	m.Position = walkabout.Vector3{X: 5, Y: 5, Z: 5}

	res := Frame(m, Options{Recenter: true, MaxSize: 100})

	assert.False(t, res.Rescaled)
	assert.Equal(t, 1.0, res.Scale)
	assert.Equal(t, walkabout.Vector3{X: 1, Y: 1, Z: 1}, m.Scale)
	assertVec(t, walkabout.Vector3{}, m.Position)
}

func TestFrameWithoutRecenterKeepsPosition(t *testing.T) {
	m := walkabout.NewBox(2, grey)
	m.Position = walkabout.Vector3{X: 3}

	Frame(m, Options{MaxSize: 100})
	assert.Equal(t, walkabout.Vector3{X: 3}, m.Position)
}

func TestFrameCamera(t *testing.T) {
	m := walkabout.NewBox(2, grey)

	res := Frame(m, Options{PreScale: 10, FrameCamera: true})

	assert.Equal(t, walkabout.Vector3{X: 10, Y: 10, Z: 10}, m.Scale)
	require.True(t, res.Framed)
	assertVec(t, walkabout.Vector3{Y: 4, Z: 16}, res.CameraPosition)
	assertVec(t, walkabout.Vector3{}, res.LookAt)

	res = Frame(walkabout.NewBox(2, grey), Options{FrameCamera: true, HeightFactor: 1, DepthFactor: 2})
	assertVec(t, walkabout.Vector3{Y: 2, Z: 4}, res.CameraPosition)
}

func TestFrameEmptyModel(t *testing.T) {
	m := walkabout.NewModel("empty")
	res := Frame(m, Options{Recenter: true, MaxSize: 100, PreScale: 10, FrameCamera: true})

	assert.Equal(t, Result{Scale: 1}, res)
	assert.Equal(t, walkabout.Vector3{X: 1, Y: 1, Z: 1}, m.Scale)
	assert.Equal(t, walkabout.Vector3{}, m.Position)

	assert.Equal(t, Result{Scale: 1}, Frame(nil, Options{}))
}
