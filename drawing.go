package walkabout

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DrawTriangles takes uint16 indices.
const maxBatchVertices = 1<<16 - 1

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

func whiteSubImage() *ebiten.Image {
	whiteOnce.Do(func() {
		whiteImage := ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// Batcher is a PolygonSink that collects polygons into as few
// DrawTriangles calls as possible.
type Batcher struct {
	target   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	path     vector.Path
}

func NewBatcher() *Batcher {
	return &Batcher{
		vertices: make([]ebiten.Vertex, 0, 4096),
		indices:  make([]uint16, 0, 8192),
	}
}

// Begin starts a batch drawing into target. Call Flush when done.
func (b *Batcher) Begin(target *ebiten.Image) {
	b.target = target
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func (b *Batcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}
	b.reserve(len(xp))

	base := uint16(len(b.vertices))
	cr, cg, cb, ca := colorComponents(clr)
	for i := range xp {
		b.vertices = append(b.vertices, ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 2; i < len(xp); i++ {
		b.indices = append(b.indices, base, base+uint16(i-1), base+uint16(i))
	}
}

// AddOutline strokes the closed outline of a polygon.
func (b *Batcher) AddOutline(xp, yp []float32, clr color.RGBA, strokeWidth float32) {
	if len(xp) < 2 {
		return
	}

	b.path = vector.Path{}
	b.path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		b.path.LineTo(xp[i], yp[i])
	}
	b.path.Close()

	vs, is := b.path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: strokeWidth})
	if len(vs) == 0 || len(vs) > maxBatchVertices {
		return
	}
	b.reserve(len(vs))

	base := uint16(len(b.vertices))
	cr, cg, cb, ca := colorComponents(clr)
	for i := range vs {
		vs[i].ColorR = cr
		vs[i].ColorG = cg
		vs[i].ColorB = cb
		vs[i].ColorA = ca
		vs[i].SrcX = 1
		vs[i].SrcY = 1
	}
	b.vertices = append(b.vertices, vs...)
	for _, idx := range is {
		b.indices = append(b.indices, base+idx)
	}
}

func (b *Batcher) Flush() {
	if b.target == nil || len(b.indices) == 0 {
		b.vertices = b.vertices[:0]
		b.indices = b.indices[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	b.target.DrawTriangles(b.vertices, b.indices, whiteSubImage(), op)
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func (b *Batcher) reserve(n int) {
	if len(b.vertices)+n > maxBatchVertices {
		b.Flush()
	}
}

func colorComponents(clr color.RGBA) (r, g, b, a float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}
