// Package pia implements the two MC6821 Peripheral Interface Adapters:
// PIA0 (keyboard row-scan, field-sync IRQ, joystick comparator) and PIA1
// (DAC output, cassette bitstream, VDG mode bits, motor control).
package pia

import (
	"github.com/cocoemu/dragon64/internal/host"
	"github.com/cocoemu/dragon64/internal/memory"
)

// IRQLine is the CPU's level-sensitive IRQ input, asserted and cleared by
// PIA0's field-sync logic.
type IRQLine interface {
	IRQ(assert bool)
}

// register offsets within a PIA's 4-byte IO window.
const (
	regPA  = 0
	regCRA = 1
	regPB  = 2
	regCRB = 3
)

// PIA0 drives the keyboard matrix, the ~20ms field-sync IRQ, and the
// joystick comparator/button bits.
type PIA0 struct {
	pa, pb   byte
	cra, crb byte

	irqA1     bool // field-sync pending flag, mirrored into CRB bit 7
	fsEnabled bool

	rowBitmap   [7]byte
	functionKey byte

	kbd   host.Keyboard
	joy   host.Joystick
	audio *AudioMux
	irq   IRQLine
}

// NewPIA0 wires a PIA0 to mem at base..base+3, to kbd/joy for host
// polling, to audio for its mux-bit-0 contribution, and to irq for
// field-sync delivery.
func NewPIA0(mem *memory.Memory, base uint16, kbd host.Keyboard, joy host.Joystick, audio *AudioMux, irq IRQLine) *PIA0 {
	p := &PIA0{kbd: kbd, joy: joy, audio: audio, irq: irq}
	for i := range p.rowBitmap {
		p.rowBitmap[i] = 0xFF // all keys released
	}
	mem.DefineIO(base, base+3, func(addr uint16, value byte, kind memory.AccessKind) byte {
		return p.access(addr-base, value, kind)
	})
	return p
}

func (p *PIA0) access(offset uint16, value byte, kind memory.AccessKind) byte {
	switch offset {
	case regPA:
		if kind == memory.Write {
			p.pa = value
			return value
		}
		return p.pa
	case regCRA:
		if kind == memory.Write {
			p.cra = value
			p.applyCRAWrite(value)
			return value
		}
		return p.cra
	case regPB:
		if kind == memory.Write {
			p.pb = value
			p.scanKeyboard(value)
			return value
		}
		p.acknowledgeFieldSync()
		return p.pb
	case regCRB:
		if kind == memory.Write {
			p.crb = value
			p.fsEnabled = value&0x01 != 0
			return value
		}
		return p.crb
	}
	return 0
}

// applyCRAWrite checks bits 3..5 for the CA2-set pattern (0b111) and, when
// matched, sets audio-mux bit 0.
func (p *PIA0) applyCRAWrite(v byte) {
	if (v>>3)&0x07 == 0b111 && p.audio != nil {
		p.audio.SetBit(0, true)
	}
}

// scanKeyboard runs the ROM's column-scan step: pull one keyboard event
// from the host, fold it into the row-bitmap cache (unless it is a
// function key), then recompute PA's reported row-match bits against the
// CPU's PB byte.
func (p *PIA0) scanKeyboard(pbByte byte) {
	if p.kbd != nil {
		if code, isBreak := p.kbd.Poll(); code != 0 {
			if fk, ok := functionKeyCodes[code]; ok {
				p.functionKey = fk
			} else if entry, ok := keyTable[code]; ok {
				if isBreak {
					p.rowBitmap[entry.row] |= entry.colMask
				} else {
					p.rowBitmap[entry.row] &^= entry.colMask
				}
			}
		}
	}

	var columnBits byte
	for row := 0; row < 7; row++ {
		rowBits := p.rowBitmap[row]
		if (^pbByte)&rowBits == ^pbByte {
			columnBits |= 1 << uint(row+1)
		}
	}

	var comparator, button byte
	if p.joy != nil {
		if p.joy.Comparator() {
			comparator = 0x80
		}
		if !p.joy.RightButton() {
			button = 0x01
		}
	} else {
		button = 0x01
	}

	p.pa = comparator | columnBits | button
}

func (p *PIA0) acknowledgeFieldSync() {
	p.irqA1 = false
	p.crb &^= 0x80
	if p.irq != nil {
		p.irq.IRQ(false)
	}
}

// VSyncIRQ is the host-driven ~20ms field-sync tick: it sets the pending
// flag and asserts IRQ, but only while field-sync delivery is enabled.
func (p *PIA0) VSyncIRQ() {
	if !p.fsEnabled {
		return
	}
	p.irqA1 = true
	p.crb |= 0x80
	if p.irq != nil {
		p.irq.IRQ(true)
	}
}

// FunctionKey returns the latched function-key value (1..10, 0 if none)
// and clears the latch.
func (p *PIA0) FunctionKey() byte {
	fk := p.functionKey
	p.functionKey = 0
	return fk
}

// PIA0State is the serializable PIA0 register snapshot.
type PIA0State struct {
	PA, PB      byte
	CRA, CRB    byte
	IRQA1       bool
	FSEnabled   bool
	RowBitmap   [7]byte
	FunctionKey byte
}

func (p *PIA0) Save() PIA0State {
	return PIA0State{
		PA: p.pa, PB: p.pb, CRA: p.cra, CRB: p.crb,
		IRQA1: p.irqA1, FSEnabled: p.fsEnabled,
		RowBitmap: p.rowBitmap, FunctionKey: p.functionKey,
	}
}

func (p *PIA0) Restore(st PIA0State) {
	p.pa, p.pb, p.cra, p.crb = st.PA, st.PB, st.CRA, st.CRB
	p.irqA1, p.fsEnabled = st.IRQA1, st.FSEnabled
	p.rowBitmap = st.RowBitmap
	p.functionKey = st.FunctionKey
}
