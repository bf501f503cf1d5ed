package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyCode returns the DOM-style code for an ebiten key, so that letter keys
// become "KeyW" and arrows become "ArrowUp".
func KeyCode(k ebiten.Key) string {
	switch k {
	case ebiten.KeyArrowUp:
		return "ArrowUp"
	case ebiten.KeyArrowDown:
		return "ArrowDown"
	case ebiten.KeyArrowLeft:
		return "ArrowLeft"
	case ebiten.KeyArrowRight:
		return "ArrowRight"
	}
	s := k.String()
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		return "Key" + s
	}
	return s
}

// Poller forwards ebiten's per-tick key transitions and wheel movement to a
// Tracker.
type Poller struct {
	// Wheel enables zoom through the mouse wheel.
	Wheel bool

	keys []ebiten.Key
}

func (p *Poller) Poll(t *Tracker) {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		t.KeyDown(KeyCode(k))
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		t.KeyUp(KeyCode(k))
	}

	if !p.Wheel {
		return
	}
	// ebiten reports scrolling up as a positive y offset; the tracker takes
	// DOM deltaY where up is negative.
	if _, dy := ebiten.Wheel(); dy != 0 {
		t.Wheel(-dy)
	}
}
