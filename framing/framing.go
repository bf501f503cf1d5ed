// Package framing recenters and rescales a freshly loaded model and works
// out where to put the camera to see it.
package framing

import "github.com/smasonuk/walkabout"

const (
	DefaultMaxSize      = 100.0
	DefaultHeightFactor = 0.2
	DefaultDepthFactor  = 0.8
)

type Options struct {
	// Recenter moves the model so its bounding box is centred on the origin.
	Recenter bool
	// MaxSize is the largest allowed bounding box diagonal. Larger models are
	// scaled down uniformly. Zero disables rescaling.
	MaxSize float64
	// PreScale, when positive, replaces the model scale before measuring.
	PreScale float64

	// FrameCamera computes a camera position in front of the model.
	FrameCamera  bool
	HeightFactor float64
	DepthFactor  float64
}

type Result struct {
	// Center and Size are measured before the model is moved or scaled.
	Center walkabout.Vector3
	Size   walkabout.Vector3
	// Bounds are the model's world bounds once framing is done.
	Bounds walkabout.Box3

	Scale    float64
	Rescaled bool

	Framed         bool
	CameraPosition walkabout.Vector3
	LookAt         walkabout.Vector3
}

// RescaleFactor returns the uniform scale that brings a box of the given
// size down to max, or 1 when it already fits.
func RescaleFactor(size walkabout.Vector3, max float64) float64 {
	l := size.Length()
	if max <= 0 || l <= max {
		return 1
	}
	return max / l
}

// Frame adjusts m in place. A model without vertices is left alone and the
// zero Result is returned.
func Frame(m *walkabout.Model, opts Options) Result {
	res := Result{Scale: 1}
	if m == nil || m.VertexCount() == 0 {
		return res
	}

	if opts.PreScale > 0 {
		m.SetScalar(opts.PreScale)
	}

	box := m.WorldBounds()
	res.Center = box.Center()
	res.Size = box.Size()

	if opts.Recenter {
		m.Position = m.Position.Sub(res.Center)
	}

	if s := RescaleFactor(res.Size, opts.MaxSize); s != 1 {
		// Scaling about the origin keeps a recentred model centred.
		m.Scale = m.Scale.Scale(s)
		m.Position = m.Position.Scale(s)
		res.Scale = s
		res.Rescaled = true
	}

	res.Bounds = m.WorldBounds()

	if opts.FrameCamera {
		hf, df := opts.HeightFactor, opts.DepthFactor
		if hf == 0 && df == 0 {
			hf, df = DefaultHeightFactor, DefaultDepthFactor
		}
		c, s := res.Bounds.Center(), res.Bounds.Size()
		res.CameraPosition = walkabout.Vector3{
			X: c.X,
			Y: c.Y + s.Y*hf,
			Z: c.Z + s.Z*df,
		}
		res.LookAt = c
		res.Framed = true
	}
	return res
}
