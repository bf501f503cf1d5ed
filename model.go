package walkabout

import (
	"image/color"
)

// Model is a scene node: a mesh of faces plus a position, rotation and scale
// relative to the scene origin.
type Model struct {
	Name string

	mesh  *Mesh
	faces []Face

	Position Vector3
	// Rotation holds Euler angles in radians, applied X then Y then Z.
	Rotation Vector3
	Scale    Vector3

	// Wireframe models are drawn as outlines only.
	Wireframe bool
	// DoubleSided disables back-face culling for this model.
	DoubleSided bool
}

func NewModel(name string) *Model {
	return &Model{
		Name:  name,
		mesh:  NewMesh(),
		faces: make([]Face, 0, 16),
		Scale: Vector3{X: 1, Y: 1, Z: 1},
	}
}

// AddFace adds a polygon to the model. Repeated consecutive points are
// collapsed; polygons left with fewer than three points are dropped.
func (o *Model) AddFace(points []Vector3, col color.RGBA) bool {
	indices := make([]int, 0, len(points))
	for _, p := range points {
		idx := o.mesh.AddPoint(p)
		if len(indices) > 0 && indices[len(indices)-1] == idx {
			continue
		}
		indices = append(indices, idx)
	}
	if len(indices) > 1 && indices[0] == indices[len(indices)-1] {
		indices = indices[:len(indices)-1]
	}
	if len(indices) < 3 {
		return false
	}
	o.faces = append(o.faces, Face{Indices: indices, Col: col})
	return true
}

func (o *Model) Faces() []Face {
	return o.faces
}

func (o *Model) Points() []Vector3 {
	return o.mesh.Points
}

func (o *Model) FaceCount() int {
	return len(o.faces)
}

func (o *Model) VertexCount() int {
	return o.mesh.Len()
}

// SetScalar sets a uniform scale.
func (o *Model) SetScalar(s float64) {
	o.Scale = Vector3{X: s, Y: s, Z: s}
}

// WorldMatrix maps model-space points into the scene: scale, then rotate,
// then translate.
func (o *Model) WorldMatrix() Matrix {
	m := ScaleMatrix(o.Scale.X, o.Scale.Y, o.Scale.Z)
	if o.Rotation.X != 0 {
		m = m.MultiplyBy(NewRotationMatrix(ROTX, o.Rotation.X))
	}
	if o.Rotation.Y != 0 {
		m = m.MultiplyBy(NewRotationMatrix(ROTY, o.Rotation.Y))
	}
	if o.Rotation.Z != 0 {
		m = m.MultiplyBy(NewRotationMatrix(ROTZ, o.Rotation.Z))
	}
	return m.MultiplyBy(TransMatrix(o.Position.X, o.Position.Y, o.Position.Z))
}

// WorldBounds returns the axis-aligned box around every vertex of the model
// in scene space.
func (o *Model) WorldBounds() Box3 {
	m := o.WorldMatrix()
	box := EmptyBox()
	for _, p := range o.mesh.Points {
		box = box.ExpandByPoint(m.TransformPoint(p))
	}
	return box
}

// NewBox builds an axis-aligned cube of the given edge length centred on the
// origin.
func NewBox(size float64, col color.RGBA) *Model {
	h := size / 2
	box := NewModel("box")
	quads := [][4]Vector3{
		{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}},
		{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}},
		{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}},
		{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}},
		{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}},
		{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}},
	}
	for _, q := range quads {
		box.AddFace(q[:], col)
	}
	return box
}
