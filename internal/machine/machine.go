// Package machine wires the memory fabric, CPU core, SAM, VDG, and the
// two PIAs into one runnable system, and drives the main clocking loop
// the host calls once per scheduling quantum.
package machine

import (
	"bytes"
	"encoding/gob"

	"github.com/cocoemu/dragon64/internal/cpu"
	"github.com/cocoemu/dragon64/internal/host"
	"github.com/cocoemu/dragon64/internal/memory"
	"github.com/cocoemu/dragon64/internal/pia"
	"github.com/cocoemu/dragon64/internal/sam"
	"github.com/cocoemu/dragon64/internal/vdg"
)

// Memory map, fixed by the hardware this emulates.
const (
	ramLo, ramHi   = 0x0000, 0x7FFF
	romLo, romHi   = 0x8000, 0xFEFF
	cartLo, cartHi = 0xC000, 0xFEEF
	pia0Base       = 0xFF00
	pia1Base       = 0xFF20
)

// resetHoldTicks is how many consecutive Tick calls a held reset button
// must span before the main loop treats it as a long-press forced cold
// reset rather than a short-press warm reset.
const resetHoldTicks = 30

// frameTicks paces vdg.Render and pia0.VSyncIRQ to approximately 50Hz
// against a caller driving Tick once per emulated CPU instruction.
const frameTicks = 1000

// Machine is the complete emulated system: memory, CPU, and devices.
type Machine struct {
	Mem  *memory.Memory
	CPU  *cpu.CPU
	SAM  *sam.SAM
	VDG  *vdg.VDG
	PIA0 *pia.PIA0
	PIA1 *pia.PIA1

	audioMux *pia.AudioMux

	resetBtn host.ResetButton
	resetHold int

	tickCount int
}

// New builds a Machine with romImage installed at 0x8000 (optionally
// overlaid with a cartridge image at 0xC000) and every device wired to
// the host implementations supplied in hi.
func New(romImage, cartImage []byte, hi Host) *Machine {
	mem := memory.New()
	mem.Load(romLo, romImage)
	if len(cartImage) > 0 {
		mem.Load(cartLo, cartImage)
	}
	mem.DefineRAM(ramLo, ramHi)
	mem.DefineROM(romLo, romHi)

	m := &Machine{Mem: mem, resetBtn: hi.ResetButton}

	m.VDG = vdg.New(hi.Display)
	m.SAM = sam.New(mem, m.VDG)

	m.audioMux = pia.NewAudioMux(hi.Audio)
	irq := &irqAdapter{}
	m.CPU = cpu.New(mem)
	irq.cpu = m.CPU

	m.PIA0 = pia.NewPIA0(mem, pia0Base, hi.Keyboard, hi.Joystick, m.audioMux, irq)
	m.PIA1 = pia.NewPIA1(mem, pia1Base, m.audioMux, m.VDG, hi.CassetteLoader)

	m.CPU.SetReset(true)
	m.CPU.Step() // services the asserted reset line, vectoring PC

	return m
}

// Host bundles every host collaborator a Machine needs at construction.
type Host struct {
	Display        host.Display
	Keyboard       host.Keyboard
	Joystick       host.Joystick
	Audio          host.Audio
	CassetteLoader host.CassetteLoader
	ResetButton    host.ResetButton
}

// irqAdapter satisfies pia.IRQLine by forwarding to cpu.CPU.IRQ.
type irqAdapter struct {
	cpu *cpu.CPU
}

func (a *irqAdapter) IRQ(assert bool) { a.cpu.IRQ(assert) }

// TickResult reports what one Tick did, so the caller can react to a
// loader-escape request without Machine needing to know about the host's
// menu UI.
type TickResult struct {
	RunState    cpu.RunState
	FunctionKey byte // 0 if none; 1 requests the external loader
}

// Tick runs one main-loop iteration: step the CPU once, service the
// reset button, drain the function-key latch, and every frameTicks
// calls render the display and deliver a field-sync IRQ.
func (m *Machine) Tick() TickResult {
	st := m.CPU.Step()

	m.serviceResetButton()

	fk := m.PIA0.FunctionKey()

	m.tickCount++
	if m.tickCount >= frameTicks {
		m.tickCount = 0
		m.VDG.Render(m.Mem)
		m.PIA0.VSyncIRQ()
	}

	return TickResult{RunState: st, FunctionKey: fk}
}

func (m *Machine) serviceResetButton() {
	if m.resetBtn == nil {
		m.CPU.SetReset(false)
		return
	}
	if m.resetBtn.Pressed() {
		m.resetHold++
		if m.resetHold >= resetHoldTicks {
			m.Mem.Write(0x0071, 0) // force cold start on next boot
		}
		m.CPU.SetReset(true)
		return
	}
	m.resetHold = 0
	m.CPU.SetReset(false)
}

// State is the serializable snapshot of every component's register and
// latch state. Memory contents are included; host wiring (Display,
// Keyboard, Audio, ...) is not, since it is re-established by whoever
// reconstructs the Machine.
type State struct {
	Mem  memory.State
	CPU  cpu.State
	SAM  sam.State
	VDG  vdg.State
	PIA0 pia.PIA0State
	PIA1 pia.PIA1State
}

// Save returns a full snapshot of the machine.
func (m *Machine) Save() State {
	return State{
		Mem:  m.Mem.Save(),
		CPU:  m.CPU.Save(),
		SAM:  m.SAM.Save(),
		VDG:  m.VDG.Save(),
		PIA0: m.PIA0.Save(),
		PIA1: m.PIA1.Save(),
	}
}

// Restore installs a previously saved snapshot into every component.
func (m *Machine) Restore(st State) {
	m.Mem.Restore(st.Mem)
	m.CPU.Restore(st.CPU)
	m.SAM.Restore(st.SAM)
	m.VDG.Restore(st.VDG)
	m.PIA0.Restore(st.PIA0)
	m.PIA1.Restore(st.PIA1)
}

// Encode gob-encodes a full snapshot for persistence (save states).
func (m *Machine) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m.Save()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode restores a snapshot previously produced by Encode.
func (m *Machine) Decode(data []byte) error {
	var st State
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
		return err
	}
	m.Restore(st)
	return nil
}
