package sam

import (
	"testing"

	"github.com/cocoemu/dragon64/internal/memory"
)

type fakeVDG struct {
	mode   byte
	offset byte
	calls  int
}

func (f *fakeVDG) SetSAMMode(m byte)       { f.mode = m; f.calls++ }
func (f *fakeVDG) SetDisplayOffset(o byte) { f.offset = o }

func TestPairSetModeBits(t *testing.T) {
	mem := memory.New()
	vdg := &fakeVDG{}
	New(mem, vdg)

	mem.Write(0xFFC1, 0) // set vdg_mode bit 0
	mem.Write(0xFFC2, 0) // clear vdg_mode bit 1 (already 0)

	if vdg.mode != 0b001 {
		t.Fatalf("vdg_mode got %03b want 001", vdg.mode)
	}
}

func TestPairSetClearAfterSet(t *testing.T) {
	mem := memory.New()
	vdg := &fakeVDG{}
	s := New(mem, vdg)

	mem.Write(0xFFC1, 0) // set bit 0
	mem.Write(0xFFC3, 0) // set bit 1
	if s.VDGMode() != 0b011 {
		t.Fatalf("vdg_mode got %03b want 011", s.VDGMode())
	}
	mem.Write(0xFFC0, 0) // clear bit 0
	if s.VDGMode() != 0b010 {
		t.Fatalf("vdg_mode after clear got %03b want 010", s.VDGMode())
	}
}

func TestDisplayOffsetBits(t *testing.T) {
	mem := memory.New()
	vdg := &fakeVDG{}
	s := New(mem, vdg)

	mem.Write(0xFFC7, 0) // set offset bit 0
	mem.Write(0xFFCB, 0) // set offset bit 2
	if s.DisplayOffset() != 0b0000101 {
		t.Fatalf("display_offset got %07b want 0000101", s.DisplayOffset())
	}
}

func TestRegisterWindowReadsReturnZero(t *testing.T) {
	mem := memory.New()
	New(mem, &fakeVDG{})
	if v := mem.Read(0xFFC0); v != 0 {
		t.Fatalf("reading the pair-set window got %#02x want 0", v)
	}
}

func TestVectorRedirectReadsFromLowerMirror(t *testing.T) {
	mem := memory.New()
	New(mem, &fakeVDG{})
	mem.Load(0xBFFE, []byte{0xC0, 0x00}) // reset vector mirror

	hi, lo := mem.Read(0xFFFE), mem.Read(0xFFFF)
	if hi != 0xC0 || lo != 0x00 {
		t.Fatalf("redirected read got %#02x %#02x want C0 00", hi, lo)
	}
}

func TestVectorWindowWritesDoNotStick(t *testing.T) {
	mem := memory.New()
	New(mem, &fakeVDG{})
	mem.Load(0xBFFE, []byte{0x11, 0x22})
	mem.Write(0xFFFE, 0x99)
	if v := mem.Read(0xFFFE); v != 0x11 {
		t.Fatalf("write through vector window got %#02x want 0x11 (unchanged)", v)
	}
}
