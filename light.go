package walkabout

import (
	"image/color"
	"math"
)

// Light contributes an RGB irradiance for a surface with the given world
// space normal.
type Light interface {
	Irradiance(normal Vector3) [3]float64
}

type AmbientLight struct {
	Color     color.RGBA
	Intensity float64
}

func (l AmbientLight) Irradiance(Vector3) [3]float64 {
	return scaleColor(l.Color, l.Intensity)
}

// DirectionalLight shines from Position towards the origin.
type DirectionalLight struct {
	Color     color.RGBA
	Intensity float64
	Position  Vector3
}

func (l DirectionalLight) Irradiance(normal Vector3) [3]float64 {
	dir := l.Position.Normalize()
	lambert := math.Max(0, normal.Dot(dir))
	return scaleColor(l.Color, l.Intensity*lambert)
}

// HemisphereLight blends between a sky and a ground color by how much the
// surface faces up.
type HemisphereLight struct {
	Sky       color.RGBA
	Ground    color.RGBA
	Intensity float64
	Position  Vector3
}

func (l HemisphereLight) Irradiance(normal Vector3) [3]float64 {
	up := l.Position.Normalize()
	if up == (Vector3{}) {
		up = Vector3{Y: 1}
	}
	w := 0.5*normal.Dot(up) + 0.5
	sky := scaleColor(l.Sky, l.Intensity*w)
	ground := scaleColor(l.Ground, l.Intensity*(1-w))
	return [3]float64{sky[0] + ground[0], sky[1] + ground[1], sky[2] + ground[2]}
}

// Shade lights a base color by every light in lights. With no lights the
// color is returned unchanged.
func Shade(base color.RGBA, normal Vector3, lights []Light) color.RGBA {
	if len(lights) == 0 {
		return base
	}
	var total [3]float64
	for _, l := range lights {
		irr := l.Irradiance(normal)
		total[0] += irr[0]
		total[1] += irr[1]
		total[2] += irr[2]
	}
	return color.RGBA{
		R: clampChannel(float64(base.R) * total[0]),
		G: clampChannel(float64(base.G) * total[1]),
		B: clampChannel(float64(base.B) * total[2]),
		A: base.A,
	}
}

func scaleColor(c color.RGBA, s float64) [3]float64 {
	return [3]float64{
		float64(c.R) / 255 * s,
		float64(c.G) / 255 * s,
		float64(c.B) / 255 * s,
	}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
