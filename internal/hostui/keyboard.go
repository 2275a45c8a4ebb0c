package hostui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyEvent is one pending make/break transition, scan-code encoded the
// way host.Keyboard.Poll reports it.
type keyEvent struct {
	code    byte
	isBreak bool
}

// keyboard buffers key transitions detected during Update into a FIFO
// Poll drains one event at a time from, matching the PIA0 contract of
// one scan per PB write.
type keyboard struct {
	pending []keyEvent
}

// Scan records every mapped key's just-pressed/just-released transition
// this frame. Call once per ebiten Update.
func (k *keyboard) Scan() {
	for key, code := range scanCodes {
		if inpututil.IsKeyJustPressed(key) {
			k.pending = append(k.pending, keyEvent{code: code, isBreak: false})
		}
		if inpututil.IsKeyJustReleased(key) {
			k.pending = append(k.pending, keyEvent{code: code, isBreak: true})
		}
	}
}

// Poll implements host.Keyboard.
func (k *keyboard) Poll() (code byte, isBreak bool) {
	if len(k.pending) == 0 {
		return 0, false
	}
	ev := k.pending[0]
	k.pending = k.pending[1:]
	return ev.code, ev.isBreak
}

// joystick reports the right joystick as keyboard-emulated: comparator
// tracks an analog stick substitute via arrow keys (right/up bias), and
// the fire button maps to the Control key.
type joystick struct{}

func (joystick) Comparator() bool {
	return ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
}

func (joystick) RightButton() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
}
