package hostui

import "github.com/hajimehoshi/ebiten/v2"

// scanCodes maps ebiten key constants to their standard AT Set-1 scan
// codes, the same numbering internal/pia's keyTable indexes by.
var scanCodes = map[ebiten.Key]byte{
	ebiten.KeyEscape:    1,
	ebiten.Key1:         2,
	ebiten.Key2:         3,
	ebiten.Key3:         4,
	ebiten.Key4:         5,
	ebiten.Key5:         6,
	ebiten.Key6:         7,
	ebiten.Key7:         8,
	ebiten.Key8:         9,
	ebiten.Key9:         10,
	ebiten.Key0:         11,
	ebiten.KeyBackspace: 14,
	ebiten.KeyQ:         16,
	ebiten.KeyW:         17,
	ebiten.KeyE:         18,
	ebiten.KeyR:         19,
	ebiten.KeyT:         20,
	ebiten.KeyY:         21,
	ebiten.KeyU:         22,
	ebiten.KeyI:         23,
	ebiten.KeyO:         24,
	ebiten.KeyP:         25,
	ebiten.KeyEnter:     28,
	ebiten.KeyA:         30,
	ebiten.KeyS:         31,
	ebiten.KeyD:         32,
	ebiten.KeyF:         33,
	ebiten.KeyG:         34,
	ebiten.KeyH:         35,
	ebiten.KeyJ:         36,
	ebiten.KeyK:         37,
	ebiten.KeyL:         38,
	ebiten.KeySemicolon: 39,
	ebiten.KeyShiftLeft: 42,
	ebiten.KeyShiftRight: 42,
	ebiten.KeyZ:         44,
	ebiten.KeyX:         45,
	ebiten.KeyC:         46,
	ebiten.KeyV:         47,
	ebiten.KeyB:         48,
	ebiten.KeyN:         49,
	ebiten.KeyM:         50,
	ebiten.KeyComma:     51,
	ebiten.KeyPeriod:    52,
	ebiten.KeySlash:     53,
	ebiten.KeySpace:     57,
	ebiten.KeyF1:        59,
	ebiten.KeyF2:        60,
	ebiten.KeyF3:        61,
	ebiten.KeyF4:        62,
	ebiten.KeyF5:        63,
	ebiten.KeyF6:        64,
	ebiten.KeyF7:        65,
	ebiten.KeyF8:        66,
	ebiten.KeyF9:        67,
	ebiten.KeyF10:       68,
	ebiten.KeyArrowUp:    72,
	ebiten.KeyArrowDown:  80,
	ebiten.KeyArrowLeft:  75,
	ebiten.KeyArrowRight: 77,
}
