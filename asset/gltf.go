package asset

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/smasonuk/walkabout"
)

var defaultMaterialColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// max node nesting followed when walking a scene.
const maxNodeDepth = 64

func (l *Loader) loadGLTF(ctx context.Context, path string) (*walkabout.Model, error) {
	doc, err := l.decodeGLTF(path)
	if err != nil {
		return nil, err
	}
	return modelFromDocument(ctx, doc)
}

func (l *Loader) decodeGLTF(path string) (*gltf.Document, error) {
	// External buffers of a .gltf are resolved relative to the file.
	if strings.ToLower(filepath.Ext(path)) == ".gltf" {
		doc, err := gltf.Open(path)
		if err == nil && l.Progress != nil {
			if fi, serr := os.Stat(path); serr == nil {
				l.Progress(fi.Size(), fi.Size())
			}
		}
		return doc, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(l.progressReader(f)).Decode(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

type gltfBuilder struct {
	doc   *gltf.Document
	model *walkabout.Model
}

func modelFromDocument(ctx context.Context, doc *gltf.Document) (*walkabout.Model, error) {
	b := &gltfBuilder{doc: doc, model: walkabout.NewModel("gltf")}
	for _, n := range rootNodes(doc) {
		if err := b.addNode(ctx, n, mgl64.Ident4(), 0); err != nil {
			return nil, err
		}
	}
	if b.model.FaceCount() == 0 {
		return nil, errors.New("no triangles in document")
	}
	return b.model, nil
}

// rootNodes returns the nodes of the default scene, or every parentless node
// when the document has no scenes.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}

	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (b *gltfBuilder) addNode(ctx context.Context, idx int, parent mgl64.Mat4, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return fmt.Errorf("node %d out of range", idx)
	}
	if depth > maxNodeDepth {
		return fmt.Errorf("node %d nested deeper than %d", idx, maxNodeDepth)
	}

	node := b.doc.Nodes[idx]
	world := parent.Mul4(localMatrix(node))

	if node.Mesh != nil {
		if *node.Mesh >= len(b.doc.Meshes) {
			return fmt.Errorf("node %d: mesh %d out of range", idx, *node.Mesh)
		}
		for i, prim := range b.doc.Meshes[*node.Mesh].Primitives {
			if err := b.addPrimitive(prim, world); err != nil {
				return fmt.Errorf("mesh %d primitive %d: %w", *node.Mesh, i, err)
			}
		}
	}

	for _, c := range node.Children {
		if err := b.addNode(ctx, c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func localMatrix(node *gltf.Node) mgl64.Mat4 {
	if m := mgl64.Mat4(node.MatrixOrDefault()); m != mgl64.Ident4() {
		return m
	}
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	rot := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize().Mat4()
	return mgl64.Translate3D(t[0], t[1], t[2]).Mul4(rot).Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

func (b *gltfBuilder) addPrimitive(prim *gltf.Primitive, world mgl64.Mat4) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	if posIdx >= len(b.doc.Accessors) {
		return fmt.Errorf("position accessor %d out of range", posIdx)
	}
	positions, err := modeler.ReadPosition(b.doc, b.doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		if *prim.Indices >= len(b.doc.Accessors) {
			return fmt.Errorf("index accessor %d out of range", *prim.Indices)
		}
		indices, err = modeler.ReadIndices(b.doc, b.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	points := make([]walkabout.Vector3, len(positions))
	for i, p := range positions {
		v := world.Mul4x1(mgl64.Vec4{float64(p[0]), float64(p[1]), float64(p[2]), 1})
		points[i] = walkabout.Vector3{X: v[0], Y: v[1], Z: v[2]}
	}

	// A mirroring transform turns counter-clockwise triangles clockwise.
	mirrored := world.Det() < 0
	col := b.materialColor(prim.Material)
	tri := make([]walkabout.Vector3, 3)
	for _, t := range triangles(prim.Mode, indices) {
		if int(t[0]) >= len(points) || int(t[1]) >= len(points) || int(t[2]) >= len(points) {
			return fmt.Errorf("vertex index out of range")
		}
		tri[0], tri[1], tri[2] = points[t[0]], points[t[1]], points[t[2]]
		if mirrored {
			tri[1], tri[2] = tri[2], tri[1]
		}
		b.model.AddFace(tri, col)
	}
	return nil
}

// triangles expands strips and fans into a list. Point and line primitives
// yield nothing.
func triangles(mode gltf.PrimitiveMode, idx []uint32) [][3]uint32 {
	var out [][3]uint32
	switch mode {
	case gltf.PrimitiveTriangles:
		for i := 0; i+2 < len(idx); i += 3 {
			out = append(out, [3]uint32{idx[i], idx[i+1], idx[i+2]})
		}
	case gltf.PrimitiveTriangleStrip:
		for i := 0; i+2 < len(idx); i++ {
			if i%2 == 0 {
				out = append(out, [3]uint32{idx[i], idx[i+1], idx[i+2]})
			} else {
				out = append(out, [3]uint32{idx[i+1], idx[i], idx[i+2]})
			}
		}
	case gltf.PrimitiveTriangleFan:
		for i := 1; i+1 < len(idx); i++ {
			out = append(out, [3]uint32{idx[0], idx[i], idx[i+1]})
		}
	}
	return out
}

func (b *gltfBuilder) materialColor(material *int) color.RGBA {
	if material == nil || *material >= len(b.doc.Materials) {
		return defaultMaterialColor
	}
	pbr := b.doc.Materials[*material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return defaultMaterialColor
	}
	f := pbr.BaseColorFactor
	return color.RGBA{
		R: unitToByte(f[0]),
		G: unitToByte(f[1]),
		B: unitToByte(f[2]),
		A: 255,
	}
}

func unitToByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
