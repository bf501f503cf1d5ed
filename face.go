package walkabout

import "image/color"

// Face is a planar convex polygon referencing vertices of its model's mesh.
// Points are wound counter-clockwise when seen from the front.
type Face struct {
	Indices []int
	Col     color.RGBA
}

// faceNormal computes the unit normal of the face from its first three points
// after they have been transformed into some common space.
func faceNormal(points []Vector3) Vector3 {
	if len(points) < 3 {
		return Vector3{Z: 1}
	}
	u := points[1].Sub(points[0])
	v := points[2].Sub(points[0])
	return u.Cross(v).Normalize()
}

// midpoint of the face
func midPoint(points []Vector3) Vector3 {
	if len(points) == 0 {
		return Vector3{}
	}
	var sum Vector3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}
