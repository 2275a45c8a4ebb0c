// Package host defines the narrow interfaces the core consumes from its
// environment: framebuffer allocation, the system clock, keyboard/joystick
// polling, DAC/audio-mux output, and cassette file mounting. Every device
// in internal/sam, internal/vdg, and internal/pia holds only the sub-set
// of this contract it actually needs, rather than one fat environment
// object, so a test double can implement a single method.
package host

import "github.com/cocoemu/dragon64/internal/cassette"

// Display is the host-provided indexed framebuffer. Init and Resize both
// return the backing buffer the VDG paints into; Resize is called on a
// video mode change that alters resolution.
type Display interface {
	Init(w, h int) []byte
	Resize(w, h int) []byte
}

// Clock is a monotonically increasing microsecond counter. No component
// in this module consumes it: Machine.Tick does no real-time pacing, and
// the caller decides how often to tick.
type Clock interface {
	NowMicros() uint32
}

// Keyboard yields the next pending scan-code event. isBreak is true for a
// key-up (break) event, false for key-down (make). code is 0 when no
// event is pending.
type Keyboard interface {
	Poll() (code byte, isBreak bool)
}

// Joystick reports the right-joystick analog comparator level and its
// fire button state.
type Joystick interface {
	Comparator() bool
	RightButton() bool
}

// Audio receives the DAC sample stream and the 2-bit audio-mux selector
// PIA0/PIA1 compute from their control-register latches.
type Audio interface {
	SetMux(sel uint8)
	WriteDAC(v uint8)
}

// CassetteLoader hands PIA1 the currently mounted tape image when the ROM
// asserts cassette motor control. ok is false when no tape is mounted.
type CassetteLoader interface {
	Mount() (*cassette.Tape, bool)
}

// ResetButton reports the physical reset button's state to the main
// loop, which distinguishes a short press (warm reset) from a long press
// (forced cold reset).
type ResetButton interface {
	Pressed() bool
}
