// Package sam implements the MC6883 Synchronous Address Multiplexer's
// software-visible surface: the write-only pair-set register window at
// 0xFFC0-0xFFDF and the vector read-redirect window at 0xFFF0-0xFFFF.
// Every other SAM responsibility (DRAM refresh, CPU clock division) is
// invisible to software and out of scope for this emulation.
package sam

import "github.com/cocoemu/dragon64/internal/memory"

// VDGSink receives composed mode/offset updates whenever a SAM register
// write changes them. internal/vdg.VDG implements this.
type VDGSink interface {
	SetSAMMode(mode byte)
	SetDisplayOffset(offset byte)
}

// registerWindow is the write-only pair-set window: 0xFFC0-0xFFDF, 32
// addresses encoding 16 logical register bits two addresses apiece (even
// clears, odd sets).
const (
	registerWindowLo = 0xFFC0
	registerWindowHi = 0xFFDF
)

// vectorWindow is the read-redirect window: any read here is serviced
// from 0x4000 lower, so the CPU reads reset/interrupt vectors out of the
// ROM image mapped at 0xBFF0-0xBFFF.
const (
	vectorWindowLo = 0xFFF0
	vectorWindowHi = 0xFFFF
	vectorMask     = 0xBFFF
)

// SAM holds the six software-visible register fields and pushes composed
// mode/offset into vdg on every write.
type SAM struct {
	vdgMode       byte // 3 bits
	displayOffset byte // 7 bits
	page          bool
	mpuRate       byte // 2 bits
	memSize       byte // 2 bits
	mapType       bool

	mem *memory.Memory
	vdg VDGSink
}

// New wires a SAM to mem, installing its two IO windows, and to vdg, the
// sink for composed mode/offset pushes.
func New(mem *memory.Memory, vdg VDGSink) *SAM {
	s := &SAM{mem: mem, vdg: vdg}
	mem.DefineIO(registerWindowLo, registerWindowHi, s.registerIO)
	mem.DefineIO(vectorWindowLo, vectorWindowHi, s.vectorIO)
	return s
}

func (s *SAM) registerIO(addr uint16, value byte, kind memory.AccessKind) byte {
	if kind != memory.Write {
		return 0
	}
	idx := addr - registerWindowLo
	pairIndex := byte(idx / 2)
	set := idx%2 == 1
	s.applyBit(pairIndex, set)
	s.pushMode()
	return 0
}

func (s *SAM) vectorIO(addr uint16, value byte, kind memory.AccessKind) byte {
	if kind == memory.Write {
		return value // ROM-backed span: writes never stick
	}
	return s.mem.Read(addr & vectorMask)
}

// applyBit sets or clears one of the 16 logical register bits the
// pair-set window addresses: 0-2 select vdg_mode bits 0-2, 3-9 select
// display_offset bits 0-6, and 10-15 select page/mpu_rate/memory_size/
// map_type, which the VDG never consults but SAM still stores.
func (s *SAM) applyBit(pairIndex byte, set bool) {
	switch {
	case pairIndex < 3:
		setBit(&s.vdgMode, pairIndex, set)
	case pairIndex < 10:
		setBit(&s.displayOffset, pairIndex-3, set)
	case pairIndex == 10:
		s.page = set
	case pairIndex == 11:
		setBit(&s.mpuRate, 0, set)
	case pairIndex == 12:
		setBit(&s.mpuRate, 1, set)
	case pairIndex == 13:
		setBit(&s.memSize, 0, set)
	case pairIndex == 14:
		setBit(&s.memSize, 1, set)
	case pairIndex == 15:
		s.mapType = set
	}
}

func setBit(dst *byte, bit byte, set bool) {
	if set {
		*dst |= 1 << bit
	} else {
		*dst &^= 1 << bit
	}
}

func (s *SAM) pushMode() {
	if s.vdg == nil {
		return
	}
	s.vdg.SetSAMMode(s.vdgMode)
	s.vdg.SetDisplayOffset(s.displayOffset)
}

// VDGMode returns the current 3-bit SAM video mode, for tests and
// debuggers.
func (s *SAM) VDGMode() byte { return s.vdgMode }

// DisplayOffset returns the current 7-bit display-memory offset.
func (s *SAM) DisplayOffset() byte { return s.displayOffset }

// State is the serializable SAM register snapshot.
type State struct {
	VDGMode       byte
	DisplayOffset byte
	Page          bool
	MPURate       byte
	MemSize       byte
	MapType       bool
}

// Save returns a snapshot of SAM's register fields.
func (s *SAM) Save() State {
	return State{
		VDGMode:       s.vdgMode,
		DisplayOffset: s.displayOffset,
		Page:          s.page,
		MPURate:       s.mpuRate,
		MemSize:       s.memSize,
		MapType:       s.mapType,
	}
}

// Restore installs a previously saved snapshot and re-pushes the composed
// mode to the VDG.
func (s *SAM) Restore(st State) {
	s.vdgMode = st.VDGMode
	s.displayOffset = st.DisplayOffset
	s.page = st.Page
	s.mpuRate = st.MPURate
	s.memSize = st.MemSize
	s.mapType = st.MapType
	s.pushMode()
}
