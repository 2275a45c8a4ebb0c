package pia

import (
	"github.com/cocoemu/dragon64/internal/cassette"
	"github.com/cocoemu/dragon64/internal/host"
	"github.com/cocoemu/dragon64/internal/memory"
)

// cassette bit-encoding sub-bit thresholds: a '1' bit half-cycles every
// bitThresholdHi PA reads, a '0' bit every bitThresholdLo reads.
const (
	bitThresholdHi = 4
	bitThresholdLo = 20

	shiftsPerByte = 9 // the ROM's sampling loop sees one extra shift per byte
)

// VDGModeSink receives PB's video-mode and color-set bits on every PB
// write. internal/vdg.VDG implements this via SetPIAMode/SetCSS.
type VDGModeSink interface {
	SetPIAMode(bits byte)
	SetCSS(css bool)
}

// PIA1 drives the DAC, synthesizes the cassette input bitstream, pushes
// VDG mode bits, and requests a cassette mount on motor-on. Motor-off
// leaves the mounted tape in place.
type PIA1 struct {
	pa, pb   byte
	cra, crb byte

	tape        *cassette.Tape
	curByte     byte
	bitPos      int // which of the 8 data bits of curByte is being shifted out
	subBitCount int
	shiftCount  int
	motorOn     bool

	audio  *AudioMux
	vdg    VDGModeSink
	loader host.CassetteLoader
}

// NewPIA1 wires a PIA1 to mem at base..base+3, to audio for its mux-bit-1
// contribution, to vdg for mode-bit pushes, and to loader for cassette
// mount requests on motor-on.
func NewPIA1(mem *memory.Memory, base uint16, audio *AudioMux, vdg VDGModeSink, loader host.CassetteLoader) *PIA1 {
	p := &PIA1{audio: audio, vdg: vdg, loader: loader}
	mem.DefineIO(base, base+3, func(addr uint16, value byte, kind memory.AccessKind) byte {
		return p.access(addr-base, value, kind)
	})
	return p
}

func (p *PIA1) access(offset uint16, value byte, kind memory.AccessKind) byte {
	switch offset {
	case regPA:
		if kind == memory.Write {
			p.pa = value
			p.writeDAC()
			return value
		}
		return p.sampleCassetteBit()
	case regCRA:
		if kind == memory.Write {
			prev := p.cra
			p.cra = value
			p.applyMotorControl(prev, value)
			return value
		}
		return p.cra
	case regPB:
		if kind == memory.Write {
			p.pb = value
			p.pushVDGMode(value)
			return value
		}
		return p.pb
	case regCRB:
		if kind == memory.Write {
			prev := p.crb
			p.crb = value
			p.applyAudioMuxBit1(prev, value)
			return value
		}
		return p.crb
	}
	return 0
}

// writeDAC drives the upper 6 bits of PA to the host DAC.
func (p *PIA1) writeDAC() {
	if p.audio != nil {
		p.audio.WriteDAC(p.pa >> 2)
	}
}

// sampleCassetteBit advances the cassette bit generator by one PA read
// and returns PA with bit 0 replaced by the synthesized cassette bit.
func (p *PIA1) sampleCassetteBit() byte {
	if p.tape == nil {
		return p.pa
	}
	threshold := bitThresholdLo
	if p.curByte&(1<<uint(p.bitPos)) != 0 {
		threshold = bitThresholdHi
	}

	p.subBitCount++
	bit := byte(0)
	if (p.subBitCount/threshold)%2 != 0 {
		bit = 1
	}

	if p.subBitCount >= threshold*2 {
		p.subBitCount = 0
		p.bitPos++
		p.shiftCount++
		if p.shiftCount >= shiftsPerByte {
			p.shiftCount = 0
			p.bitPos = 0
			p.nextByte()
		} else if p.bitPos >= 8 {
			p.bitPos = 0
		}
	}

	return (p.pa &^ 0x01) | bit
}

func (p *PIA1) nextByte() {
	b, ok := p.tape.NextByte()
	if !ok {
		b = 0x55
	}
	p.curByte = b
}

func (p *PIA1) pushVDGMode(pbByte byte) {
	if p.vdg == nil {
		return
	}
	p.vdg.SetPIAMode((pbByte >> 3) & 0x1F)
	p.vdg.SetCSS(pbByte&0x01 != 0)
}

// applyMotorControl watches for a CA2-asserted transition in CRA bits
//3..5; bit 3 (motor) then decides whether the cassette file handle is
// mounted or left untouched.
func (p *PIA1) applyMotorControl(prev, cur byte) {
	prevAsserted := (prev>>3)&0x07 == 0b111
	curAsserted := (cur>>3)&0x07 == 0b111
	if curAsserted && !prevAsserted {
		motorOn := cur&0x08 != 0
		p.motorOn = motorOn
		if motorOn && p.loader != nil {
			if tape, ok := p.loader.Mount(); ok {
				p.tape = tape
				p.bitPos, p.subBitCount, p.shiftCount = 0, 0, 0
				p.nextByte()
			}
		}
	}
}

func (p *PIA1) applyAudioMuxBit1(prev, cur byte) {
	prevAsserted := (prev>>3)&0x07 == 0b111
	curAsserted := (cur>>3)&0x07 == 0b111
	if curAsserted && !prevAsserted && p.audio != nil {
		p.audio.SetBit(1, true)
	}
}

// PIA1State is the serializable PIA1 register and cassette-generator
// snapshot. The tape handle itself is host-owned and not serialized;
// Restore leaves whatever tape is currently mounted in place.
type PIA1State struct {
	PA, PB      byte
	CRA, CRB    byte
	CurByte     byte
	BitPos      int
	SubBitCount int
	ShiftCount  int
	MotorOn     bool
}

func (p *PIA1) Save() PIA1State {
	return PIA1State{
		PA: p.pa, PB: p.pb, CRA: p.cra, CRB: p.crb,
		CurByte: p.curByte, BitPos: p.bitPos,
		SubBitCount: p.subBitCount, ShiftCount: p.shiftCount,
		MotorOn: p.motorOn,
	}
}

func (p *PIA1) Restore(st PIA1State) {
	p.pa, p.pb, p.cra, p.crb = st.PA, st.PB, st.CRA, st.CRB
	p.curByte, p.bitPos = st.CurByte, st.BitPos
	p.subBitCount, p.shiftCount = st.SubBitCount, st.ShiftCount
	p.motorOn = st.MotorOn
}
