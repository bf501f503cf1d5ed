package viewer

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const overlayFontSize = 24

// Overlay is the "click to start" prompt shown while the pointer is free.
type Overlay struct {
	Text string
	// Dim is the opacity of the black layer behind the text.
	Dim float64

	visible bool
	face    *text.GoTextFace
}

func NewOverlay(label string, dim float64) (*Overlay, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load overlay font: %w", err)
	}
	return &Overlay{
		Text:    label,
		Dim:     dim,
		visible: true,
		face:    &text.GoTextFace{Source: src, Size: overlayFontSize},
	}, nil
}

func (o *Overlay) Visible() bool {
	return o != nil && o.visible
}

func (o *Overlay) SetVisible(v bool) {
	if o != nil {
		o.visible = v
	}
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.Visible() {
		return
	}
	b := screen.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())

	if o.Dim > 0 {
		vector.DrawFilledRect(screen, 0, 0, w, h, color.RGBA{A: uint8(o.Dim * 255)}, false)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(w)/2, float64(h)/2)
	op.ColorScale.ScaleWithColor(color.White)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, o.Text, o.face, op)
}
