package machine

import (
	"testing"

	"github.com/cocoemu/dragon64/internal/cassette"
)

type fakeDisplay struct{}

func (fakeDisplay) Init(w, h int) []byte   { return make([]byte, w*h) }
func (fakeDisplay) Resize(w, h int) []byte { return make([]byte, w*h) }

type fakeKeyboard struct{}

func (fakeKeyboard) Poll() (byte, bool) { return 0, false }

type fakeJoystick struct{}

func (fakeJoystick) Comparator() bool  { return false }
func (fakeJoystick) RightButton() bool { return true }

type fakeAudio struct{}

func (fakeAudio) SetMux(sel uint8) {}
func (fakeAudio) WriteDAC(v uint8) {}

type fakeLoader struct{}

func (fakeLoader) Mount() (*cassette.Tape, bool) { return nil, false }

type fakeResetButton struct{ pressed bool }

func (f *fakeResetButton) Pressed() bool { return f.pressed }

// testROM places the reset vector at 0xBFFE/0xBFFF, not 0xFFFE/0xFFFF:
// SAM's vector-redirect window serves CPU vector reads from 0x4000 lower,
// out of the ROM image, so that is where a real ROM's vector table lives.
func testROM() []byte {
	rom := make([]byte, romHi-romLo+1)
	vec := 0xBFFE - romLo
	rom[vec] = 0x90
	rom[vec+1] = 0x00
	return rom
}

func newTestMachine() *Machine {
	hi := Host{
		Display:        fakeDisplay{},
		Keyboard:       fakeKeyboard{},
		Joystick:       fakeJoystick{},
		Audio:          fakeAudio{},
		CassetteLoader: fakeLoader{},
		ResetButton:    &fakeResetButton{},
	}
	return New(testROM(), nil, hi)
}

func TestNewBootsToResetVector(t *testing.T) {
	m := newTestMachine()
	if m.CPU.PC != 0x9000 {
		t.Fatalf("got PC %#04x want 0x9000", m.CPU.PC)
	}
}

func TestTickStepsCPU(t *testing.T) {
	m := newTestMachine()
	before := m.CPU.PC
	m.Tick()
	if m.CPU.PC == before {
		t.Fatalf("expected PC to advance after Tick")
	}
}

func TestTickRendersOnFrameBoundary(t *testing.T) {
	m := newTestMachine()
	for i := 0; i < frameTicks; i++ {
		m.Tick()
	}
	if m.tickCount != 0 {
		t.Fatalf("expected tickCount to wrap to 0 at the frame boundary, got %d", m.tickCount)
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	m := newTestMachine()
	m.Tick()
	m.Tick()
	snap := m.Save()

	m2 := newTestMachine()
	m2.Restore(snap)

	if m2.CPU.PC != m.CPU.PC {
		t.Fatalf("PC mismatch after restore: got %#04x want %#04x", m2.CPU.PC, m.CPU.PC)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := newTestMachine()
	m.Tick()
	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	m2 := newTestMachine()
	if err := m2.Decode(data); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if m2.CPU.PC != m.CPU.PC {
		t.Fatalf("PC mismatch after decode: got %#04x want %#04x", m2.CPU.PC, m.CPU.PC)
	}
}

func TestResetButtonLongPressForcesColdStart(t *testing.T) {
	m := newTestMachine()
	btn := m.resetBtn.(*fakeResetButton)
	btn.pressed = true
	m.Mem.Write(0x0071, 0xFF)

	for i := 0; i < resetHoldTicks; i++ {
		m.Tick()
	}
	if m.Mem.Read(0x0071) != 0 {
		t.Fatalf("expected 0x0071 cleared after a long reset-button hold")
	}
}
