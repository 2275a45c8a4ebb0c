package hostui

import (
	"io"

	"github.com/cocoemu/dragon64/internal/cassette"
)

// headlessDisplay implements host.Display without any window, for
// scripted conformance runs that only need the raw indexed framebuffer.
type headlessDisplay struct {
	w, h  int
	index []byte
}

func (d *headlessDisplay) Init(w, h int) []byte {
	d.w, d.h = w, h
	d.index = make([]byte, w*h)
	return d.index
}

func (d *headlessDisplay) Resize(w, h int) []byte { return d.Init(w, h) }

// Framebuffer returns the current indexed framebuffer contents.
func (d *headlessDisplay) Framebuffer() []byte { return d.index }

// headlessKeyboard serves a scripted queue of make/break events fed by
// Queue, instead of reading real hardware; a conformance run with no
// scripted input behaves as if no key were ever touched.
type headlessKeyboard struct {
	pending []keyEvent
}

func (k *headlessKeyboard) Poll() (byte, bool) {
	if len(k.pending) == 0 {
		return 0, false
	}
	ev := k.pending[0]
	k.pending = k.pending[1:]
	return ev.code, ev.isBreak
}

// Queue appends a make (isBreak=false) or break (isBreak=true) scan-code
// event for a scripted run to drain through PIA0 one read at a time.
func (k *headlessKeyboard) Queue(code byte, isBreak bool) {
	k.pending = append(k.pending, keyEvent{code: code, isBreak: isBreak})
}

type headlessJoystick struct{}

func (headlessJoystick) Comparator() bool  { return false }
func (headlessJoystick) RightButton() bool { return false }

// headlessAudio discards the DAC stream and mux selector, recording
// only the most recent sample for inspection by a conformance harness.
type headlessAudio struct {
	lastDAC uint8
	mux     uint8
}

func (a *headlessAudio) SetMux(sel uint8) { a.mux = sel }
func (a *headlessAudio) WriteDAC(v uint8) { a.lastDAC = v }

// HeadlessHost bundles a no-window implementation of every host.*
// interface internal/machine.Host needs, for cmd/cocorun's scripted,
// deterministic runs. A reset drives Machine.Restore or rebuilds a
// fresh Machine rather than going through a simulated reset button, so
// Pressed always reports released.
type HeadlessHost struct {
	Display  *headlessDisplay
	Keyboard *headlessKeyboard
	Joystick headlessJoystick
	Audio    *headlessAudio
	tape     *cassette.Tape
}

// NewHeadlessHost constructs a HeadlessHost with all fields ready to use.
func NewHeadlessHost() *HeadlessHost {
	return &HeadlessHost{Display: &headlessDisplay{}, Keyboard: &headlessKeyboard{}, Audio: &headlessAudio{}}
}

// Mount implements host.CassetteLoader.
func (h *HeadlessHost) Mount() (*cassette.Tape, bool) {
	if h.tape == nil {
		return nil, false
	}
	return h.tape, true
}

// LoadCassette attaches a tape image for the next motor-on.
func (h *HeadlessHost) LoadCassette(r io.ReadSeeker) { h.tape = cassette.New(r) }

// Pressed implements host.ResetButton; always released.
func (h *HeadlessHost) Pressed() bool { return false }
