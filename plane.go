package walkabout

import "math"

// Plane is the set of points where A*x + B*y + C*z + D = 0. The normal
// (A, B, C) points to the "inside" half-space.
type Plane struct {
	A, B, C, D float64
}

const planeThickness = 1e-9

func NewPlaneFromPoint(point Vector3, normal Vector3) Plane {
	n := normal.Normalize()
	return Plane{A: n.X, B: n.Y, C: n.Z, D: -n.Dot(point)}
}

// PointOnPlane returns the signed distance of p from the plane, snapping
// points within planeThickness to zero.
func (p Plane) PointOnPlane(v Vector3) float64 {
	num := p.A*v.X + p.B*v.Y + p.C*v.Z + p.D
	if math.Abs(num) < planeThickness {
		return 0.0
	}
	return num
}

// LineIntersect returns the point where the segment p1-p2 crosses the
// plane. The caller guarantees the endpoints lie on opposite sides.
func (p Plane) LineIntersect(p1, p2 Vector3) Vector3 {
	a := p.PointOnPlane(p1)
	b := p.PointOnPlane(p2)
	denom := a - b
	if denom == 0 {
		return p1
	}
	t := a / denom
	return p1.Add(p2.Sub(p1).Scale(t))
}

// ClipPolygon keeps the part of a convex polygon on the inside of the plane.
// Points on the plane are kept.
func (p Plane) ClipPolygon(points []Vector3, dst []Vector3) []Vector3 {
	dst = dst[:0]
	if len(points) == 0 {
		return dst
	}
	prev := points[len(points)-1]
	prevIn := p.PointOnPlane(prev) >= 0
	for _, cur := range points {
		curIn := p.PointOnPlane(cur) >= 0
		if curIn != prevIn {
			dst = append(dst, p.LineIntersect(prev, cur))
		}
		if curIn {
			dst = append(dst, cur)
		}
		prev, prevIn = cur, curIn
	}
	return dst
}
