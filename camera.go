package walkabout

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// mouse look sensitivity in radians per pixel, before PointerSpeed.
const lookRadiansPerPixel = 0.002

// pitch stays strictly inside ±90° so the view basis never degenerates.
const maxPitch = math.Pi/2 - 1e-9

// Camera is a perspective camera oriented by yaw (about world Y) and pitch
// (about the camera's right axis). With zero yaw and pitch it looks down -Z
// with +Y up.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV    float64
	Aspect float64
	Near   float64
	Far    float64
	Zoom   float64

	PointerSpeed float64

	position Vector3
	yaw      float64
	pitch    float64

	focalScale float64
}

func NewCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		FOV:          fov,
		Aspect:       aspect,
		Near:         near,
		Far:          far,
		Zoom:         1,
		PointerSpeed: 1,
	}
	c.UpdateProjection()
	return c
}

// UpdateProjection must be called after FOV or Zoom change.
func (c *Camera) UpdateProjection() {
	half := degreesToRadians(c.FOV) / 2
	t := math.Tan(half)
	if t <= 0 || math.IsNaN(t) {
		t = 1
	}
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	c.focalScale = zoom / t
}

// FocalLength is the distance, in pixels, from the eye to a projection plane
// of the given height.
func (c *Camera) FocalLength(viewportHeight float64) float64 {
	return viewportHeight / 2 * c.focalScale
}

func (c *Camera) Position() Vector3 {
	return c.position
}

func (c *Camera) SetPosition(x, y, z float64) {
	c.position = Vector3{X: x, Y: y, Z: z}
}

func (c *Camera) Yaw() float64   { return c.yaw }
func (c *Camera) Pitch() float64 { return c.pitch }

func (c *Camera) SetRotation(yaw, pitch float64) {
	c.yaw = yaw
	c.pitch = clampPitch(pitch)
}

func (c *Camera) Forward() Vector3 {
	cp := math.Cos(c.pitch)
	return Vector3{
		X: -math.Sin(c.yaw) * cp,
		Y: math.Sin(c.pitch),
		Z: -math.Cos(c.yaw) * cp,
	}
}

func (c *Camera) Right() Vector3 {
	return Vector3{X: math.Cos(c.yaw), Z: -math.Sin(c.yaw)}
}

// LookAt turns the camera towards target. A target at the camera position
// leaves the orientation unchanged.
func (c *Camera) LookAt(target Vector3) {
	dir := target.Sub(c.position).Normalize()
	if dir == (Vector3{}) {
		return
	}
	c.pitch = clampPitch(math.Asin(dir.Y))
	c.yaw = math.Atan2(-dir.X, -dir.Z)
}

// Rotate applies a mouse movement of dx, dy pixels.
func (c *Camera) Rotate(dx, dy float64) {
	c.yaw -= dx * lookRadiansPerPixel * c.PointerSpeed
	c.pitch = clampPitch(c.pitch - dy*lookRadiansPerPixel*c.PointerSpeed)
}

// MoveForward moves parallel to the ground plane along the direction the
// camera faces.
func (c *Camera) MoveForward(distance float64) {
	forward := Vector3{Y: 1}.Cross(c.Right())
	c.position = c.position.Add(forward.Scale(distance))
}

func (c *Camera) MoveRight(distance float64) {
	c.position = c.position.Add(c.Right().Scale(distance))
}

// ViewMatrix maps world points into camera space where +X is right, +Y is up
// and +Z points away from the eye.
func (c *Camera) ViewMatrix() Matrix {
	eye := mgl64.Vec3{c.position.X, c.position.Y, c.position.Z}
	f := c.Forward()
	center := eye.Add(mgl64.Vec3{f.X, f.Y, f.Z})
	view := mgl64.LookAtV(eye, center, mgl64.Vec3{0, 1, 0})
	return FromMgl(view).MultiplyBy(ScaleMatrix(1, 1, -1))
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
