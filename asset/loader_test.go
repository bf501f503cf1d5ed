package asset

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/smasonuk/walkabout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadPLY = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`

const triangleDXF = `0
3DFACE
8
0
10
0.0
20
0.0
30
0.0
11
1.0
21
0.0
31
0.0
12
0.0
22
1.0
32
0.0
13
0.0
23
1.0
33
0.0
0
EOF
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPLY(t *testing.T) {
	path := writeFile(t, "quad.PLY", quadPLY)

	var calls int
	var lastRead, lastTotal int64
	l := &Loader{Progress: func(read, total int64) {
		calls++
		lastRead, lastTotal = read, total
	}}

	m, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "quad.PLY", m.Name)
	assert.Equal(t, 1, m.FaceCount())
	assert.Equal(t, 4, m.VertexCount())

	assert.Positive(t, calls)
	assert.Equal(t, int64(len(quadPLY)), lastTotal)
	assert.Equal(t, lastTotal, lastRead)
}

func TestLoadDXF(t *testing.T) {
	path := writeFile(t, "tri.dxf", triangleDXF)

	m, err := (&Loader{}).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.FaceCount())
	assert.Equal(t, 3, m.VertexCount())
}

func TestLoadErrors(t *testing.T) {
	l := &Loader{}

	_, err := l.Load(context.Background(), writeFile(t, "model.obj", "v 0 0 0\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	missing := filepath.Join(t.TempDir(), "missing.glb")
	_, err = l.Load(context.Background(), missing)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)

	_, err = l.Load(context.Background(), writeFile(t, "bad.ply", "ply\nformat binary_little_endian 1.0\n"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Load(ctx, writeFile(t, "quad.ply", quadPLY))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadAsync(t *testing.T) {
	l := &Loader{}
	path := writeFile(t, "quad.ply", quadPLY)

	res, ok := <-l.LoadAsync(context.Background(), path)
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, path, res.Path)
	assert.Equal(t, 1, res.Model.FaceCount())

	ch := l.LoadAsync(context.Background(), "nothing.fbx")
	res = <-ch
	assert.ErrorIs(t, res.Err, ErrUnsupportedFormat)
	assert.Nil(t, res.Model)
	_, ok = <-ch
	assert.False(t, ok, "channel closed after the single result")
}

func triangleDocument() *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Materials = []*gltf.Material{{
		Name:                 "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 0, 0, 1}},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "triangle",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "root", Translation: [3]float64{5, 0, 0}, Children: []int{1}},
		{Name: "triangle", Mesh: gltf.Index(0), Scale: [3]float64{2, 2, 2}},
	}
	doc.Scenes[0].Nodes = []int{0}
	return doc
}

func TestModelFromDocument(t *testing.T) {
	m, err := modelFromDocument(context.Background(), triangleDocument())
	require.NoError(t, err)

	assert.Equal(t, 1, m.FaceCount())
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, m.Faces()[0].Col)

	bounds := m.WorldBounds()
	assert.Equal(t, walkabout.Vector3{X: 5}, bounds.Min)
	assert.Equal(t, walkabout.Vector3{X: 7, Y: 2}, bounds.Max)
}

func TestModelFromDocumentWithoutTriangles(t *testing.T) {
	_, err := modelFromDocument(context.Background(), gltf.NewDocument())
	assert.Error(t, err)
}

func TestLoadGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.glb")
	require.NoError(t, gltf.SaveBinary(triangleDocument(), path))

	m, err := (&Loader{}).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "triangle.glb", m.Name)
	assert.Equal(t, 1, m.FaceCount())
}

func TestLocalMatrix(t *testing.T) {
	n := &gltf.Node{Translation: [3]float64{1, 2, 3}}
	p := localMatrix(n).Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.Equal(t, mgl64.Vec4{1, 2, 3, 1}, p)

	n = &gltf.Node{Matrix: [16]float64{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 1}}
	p = localMatrix(n).Mul4x1(mgl64.Vec4{1, 1, 1, 1})
	assert.Equal(t, mgl64.Vec4{2, 2, 2, 1}, p)
}

func TestTriangles(t *testing.T) {
	idx := []uint32{0, 1, 2, 3}
	tests := []struct {
		name string
		mode gltf.PrimitiveMode
		want [][3]uint32
	}{
		{"list", gltf.PrimitiveTriangles, [][3]uint32{{0, 1, 2}}},
		{"strip", gltf.PrimitiveTriangleStrip, [][3]uint32{{0, 1, 2}, {2, 1, 3}}},
		{"fan", gltf.PrimitiveTriangleFan, [][3]uint32{{0, 1, 2}, {0, 2, 3}}},
		{"lines", gltf.PrimitiveLines, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, triangles(tt.mode, idx))
		})
	}
}
