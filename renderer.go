package walkabout

import (
	"image/color"
	"sort"
)

// PolygonSink receives projected screen-space polygons in back-to-front
// order.
type PolygonSink interface {
	AddPolygon(xp, yp []float32, clr color.RGBA)
	AddOutline(xp, yp []float32, clr color.RGBA, strokeWidth float32)
}

type projectedPoly struct {
	start, end int
	depth      float64
	col        color.RGBA
	outline    bool
}

// Renderer draws a scene with the painter's algorithm: every visible face is
// clipped against the near plane, projected, shaded and then emitted from
// the farthest to the nearest.
type Renderer struct {
	width  int
	height int

	BackfaceCulling bool

	polys    []projectedPoly
	xs, ys   []float32
	worldPts []Vector3
	camPts   []Vector3
	facePts  []Vector3
	faceCam  []Vector3
	clipped  []Vector3
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height, BackfaceCulling: true}
}

func (r *Renderer) SetSize(width, height int) {
	r.width = width
	r.height = height
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render projects scene through camera into sink and returns the number of
// polygons emitted.
func (r *Renderer) Render(sink PolygonSink, scene *Scene, camera *Camera) int {
	if r.width <= 0 || r.height <= 0 || scene == nil || camera == nil {
		return 0
	}

	r.polys = r.polys[:0]
	r.xs = r.xs[:0]
	r.ys = r.ys[:0]

	view := camera.ViewMatrix()
	eye := camera.Position()
	focal := camera.FocalLength(float64(r.height))
	cx := float64(r.width) / 2
	cy := float64(r.height) / 2
	near := NewPlaneFromPoint(Vector3{Z: camera.Near}, Vector3{Z: 1})
	lights := scene.Lights()

	for _, model := range scene.Nodes() {
		world := model.WorldMatrix()
		points := model.Points()
		r.worldPts = r.worldPts[:0]
		r.camPts = r.camPts[:0]
		for _, p := range points {
			wp := world.TransformPoint(p)
			r.worldPts = append(r.worldPts, wp)
			r.camPts = append(r.camPts, view.TransformPoint(wp))
		}

		for _, face := range model.Faces() {
			r.facePts = r.facePts[:0]
			r.faceCam = r.faceCam[:0]
			beyondFar := true
			for _, idx := range face.Indices {
				r.facePts = append(r.facePts, r.worldPts[idx])
				cp := r.camPts[idx]
				r.faceCam = append(r.faceCam, cp)
				if cp.Z <= camera.Far {
					beyondFar = false
				}
			}
			if beyondFar {
				continue
			}

			normal := faceNormal(r.facePts)
			cull := r.BackfaceCulling && !model.DoubleSided && !model.Wireframe
			if cull && normal.Dot(eye.Sub(r.facePts[0])) <= 0 {
				continue
			}

			r.clipped = near.ClipPolygon(r.faceCam, r.clipped)
			if len(r.clipped) < 3 {
				continue
			}

			poly := projectedPoly{
				start:   len(r.xs),
				depth:   midPoint(r.clipped).Z,
				outline: model.Wireframe,
			}
			for _, p := range r.clipped {
				r.xs = append(r.xs, float32(cx+focal*p.X/p.Z))
				r.ys = append(r.ys, float32(cy-focal*p.Y/p.Z))
			}
			poly.end = len(r.xs)
			if model.Wireframe {
				poly.col = face.Col
			} else {
				poly.col = Shade(face.Col, normal, lights)
			}
			r.polys = append(r.polys, poly)
		}
	}

	sort.SliceStable(r.polys, func(i, j int) bool {
		return r.polys[i].depth > r.polys[j].depth
	})

	for _, p := range r.polys {
		xp, yp := r.xs[p.start:p.end], r.ys[p.start:p.end]
		if p.outline {
			sink.AddOutline(xp, yp, p.col, 1.0)
		} else {
			sink.AddPolygon(xp, yp, p.col)
		}
	}
	return len(r.polys)
}
