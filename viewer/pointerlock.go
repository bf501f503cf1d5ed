package viewer

import "github.com/hajimehoshi/ebiten/v2"

// Cursor captures and releases the system pointer.
type Cursor interface {
	SetCaptured(captured bool)
	Captured() bool
}

type ebitenCursor struct{}

func (ebitenCursor) SetCaptured(captured bool) {
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

func (ebitenCursor) Captured() bool {
	return ebiten.CursorMode() == ebiten.CursorModeCaptured
}

// PointerLock tracks whether mouse look is active and notifies listeners on
// every transition.
type PointerLock struct {
	cursor    Cursor
	locked    bool
	confirmed bool
	listeners []func(locked bool)
}

func NewPointerLock(c Cursor) *PointerLock {
	if c == nil {
		c = ebitenCursor{}
	}
	return &PointerLock{cursor: c}
}

func (p *PointerLock) Locked() bool {
	return p.locked
}

func (p *PointerLock) OnChange(fn func(locked bool)) {
	p.listeners = append(p.listeners, fn)
}

func (p *PointerLock) Lock() {
	if p.locked {
		return
	}
	p.cursor.SetCaptured(true)
	p.set(true)
}

func (p *PointerLock) Unlock() {
	if !p.locked {
		return
	}
	p.cursor.SetCaptured(false)
	p.set(false)
}

// Sync notices when the platform has released the pointer on its own, for
// example after the window lost focus. Capture can take a few frames to
// apply, so the lock is only dropped once it has been seen to hold.
func (p *PointerLock) Sync() {
	if !p.locked {
		return
	}
	if p.cursor.Captured() {
		p.confirmed = true
		return
	}
	if p.confirmed {
		p.set(false)
	}
}

func (p *PointerLock) set(locked bool) {
	p.locked = locked
	p.confirmed = false
	for _, fn := range p.listeners {
		fn(locked)
	}
}
