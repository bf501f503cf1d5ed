package walkabout

import (
	"math"
	"testing"
)

func TestCameraLookAtAndForward(t *testing.T) {
	c := NewCamera(75, 1, 0.1, 1000)
	c.LookAt(Vector3{Z: -5})
	if !almostEqual(c.Yaw(), 0) || !almostEqual(c.Pitch(), 0) {
		t.Fatalf("LookAt(-Z) gave yaw=%f pitch=%f", c.Yaw(), c.Pitch())
	}
	if !vecAlmostEqual(c.Forward(), Vector3{Z: -1}) {
		t.Errorf("Forward() = %v", c.Forward())
	}

	c.LookAt(Vector3{X: -3})
	if !almostEqual(c.Yaw(), math.Pi/2) {
		t.Errorf("LookAt(-X) yaw = %f, want pi/2", c.Yaw())
	}

	before := c.Yaw()
	c.LookAt(c.Position())
	if c.Yaw() != before {
		t.Errorf("LookAt(own position) changed orientation")
	}
}

func TestCameraMovement(t *testing.T) {
	testCases := []struct {
		name     string
		yaw      float64
		pitch    float64
		forward  float64
		right    float64
		expected Vector3
	}{
		{"forward at rest", 0, 0, 1, 0, Vector3{Z: -1}},
		{"forward ignores pitch", 0, 1.2, 2, 0, Vector3{Z: -2}},
		{"right at rest", 0, 0, 0, 3, Vector3{X: 3}},
		{"forward after quarter turn", math.Pi / 2, 0, 2, 0, Vector3{X: -2}},
		{"right after quarter turn", math.Pi / 2, 0, 0, 1, Vector3{Z: -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(75, 1, 0.1, 1000)
			c.SetRotation(tc.yaw, tc.pitch)
			c.MoveForward(tc.forward)
			c.MoveRight(tc.right)
			if !vecAlmostEqual(c.Position(), tc.expected) {
				t.Errorf("Position() = %v, want %v", c.Position(), tc.expected)
			}
		})
	}
}

func TestCameraRotatePitchClamp(t *testing.T) {
	c := NewCamera(75, 1, 0.1, 1000)
	c.Rotate(0, -1e6)
	if c.Pitch() > math.Pi/2 || !almostEqual(c.Pitch(), math.Pi/2) {
		t.Errorf("pitch not clamped at +pi/2: %f", c.Pitch())
	}
	c.Rotate(0, 2e6)
	if c.Pitch() < -math.Pi/2 || !almostEqual(c.Pitch(), -math.Pi/2) {
		t.Errorf("pitch not clamped at -pi/2: %f", c.Pitch())
	}

	c.SetRotation(0, 0)
	c.Rotate(100, 0)
	if !almostEqual(c.Yaw(), -0.2) {
		t.Errorf("yaw after 100px = %f, want -0.2", c.Yaw())
	}
}

func TestCameraViewMatrix(t *testing.T) {
	c := NewCamera(90, 1, 0.1, 1000)
	view := c.ViewMatrix()

	testCases := []struct {
		world, camera Vector3
	}{
		{Vector3{Z: -5}, Vector3{Z: 5}},
		{Vector3{X: 1, Z: -5}, Vector3{X: 1, Z: 5}},
		{Vector3{Y: 1, Z: -5}, Vector3{Y: 1, Z: 5}},
	}
	for _, tc := range testCases {
		if got := view.TransformPoint(tc.world); !vecAlmostEqual(got, tc.camera) {
			t.Errorf("view(%v) = %v, want %v", tc.world, got, tc.camera)
		}
	}

	c.SetPosition(0, 0, 10)
	if got := c.ViewMatrix().TransformPoint(Vector3{}); !vecAlmostEqual(got, Vector3{Z: 10}) {
		t.Errorf("view of origin from z=10 = %v", got)
	}
}

func TestCameraFocalLengthAndZoom(t *testing.T) {
	c := NewCamera(90, 2, 0.1, 1000)
	if got := c.FocalLength(100); !almostEqual(got, 50) {
		t.Errorf("FocalLength(100) = %f, want 50", got)
	}
	c.Zoom = 2
	c.UpdateProjection()
	if got := c.FocalLength(100); !almostEqual(got, 100) {
		t.Errorf("FocalLength(100) at zoom 2 = %f, want 100", got)
	}
}
