package pia

import (
	"testing"

	"github.com/cocoemu/dragon64/internal/memory"
)

type fakeKeyboard struct {
	code    byte
	isBreak bool
}

func (f *fakeKeyboard) Poll() (byte, bool) {
	c := f.code
	f.code = 0
	return c, f.isBreak
}

type fakeJoystick struct {
	comparator bool
	button     bool
}

func (f *fakeJoystick) Comparator() bool   { return f.comparator }
func (f *fakeJoystick) RightButton() bool  { return f.button }

type fakeIRQ struct {
	asserted bool
}

func (f *fakeIRQ) IRQ(assert bool) { f.asserted = assert }

func TestPIA0KeyPressClearsRowColumnBit(t *testing.T) {
	mem := memory.New()
	kbd := &fakeKeyboard{code: 30} // 'A', row 0, colMask 0x02
	irq := &fakeIRQ{}
	p := NewPIA0(mem, 0xFF00, kbd, &fakeJoystick{}, nil, irq)

	mem.Write(0xFF02, ^byte(0x02)) // PB selects the column 'A' occupies
	pa := mem.Read(0xFF00)

	if pa&0x02 != 0 {
		t.Fatalf("expected row-0 column bit clear (active-low press) in PA, got %#08b", pa)
	}
	_ = p
}

func TestPIA0NoKeyPressedLeavesColumnBitSet(t *testing.T) {
	mem := memory.New()
	p := NewPIA0(mem, 0xFF00, &fakeKeyboard{}, &fakeJoystick{}, nil, &fakeIRQ{})
	mem.Write(0xFF02, ^byte(0x02))
	pa := mem.Read(0xFF00)
	if pa&0x02 == 0 {
		t.Fatalf("expected column bit set when no key is pressed, got %#08b", pa)
	}
	_ = p
}

func TestPIA0FunctionKeyLatchAndClear(t *testing.T) {
	mem := memory.New()
	kbd := &fakeKeyboard{code: 59} // F1
	p := NewPIA0(mem, 0xFF00, kbd, &fakeJoystick{}, nil, &fakeIRQ{})
	mem.Write(0xFF02, 0xFF)

	if fk := p.FunctionKey(); fk != 1 {
		t.Fatalf("got function key %d want 1", fk)
	}
	if fk := p.FunctionKey(); fk != 0 {
		t.Fatalf("function key latch should clear after read, got %d", fk)
	}
}

func TestPIA0FieldSyncAssertsAndPBReadClears(t *testing.T) {
	mem := memory.New()
	irq := &fakeIRQ{}
	p := NewPIA0(mem, 0xFF00, &fakeKeyboard{}, &fakeJoystick{}, nil, irq)
	mem.Write(0xFF03, 0x01) // CRB bit 0: enable field-sync

	p.VSyncIRQ()
	if !irq.asserted {
		t.Fatalf("expected IRQ asserted after VSyncIRQ")
	}

	mem.Read(0xFF02) // PB read acknowledges
	if irq.asserted {
		t.Fatalf("expected IRQ cleared after PB read")
	}
}

func TestPIA0FieldSyncIgnoredWhenDisabled(t *testing.T) {
	mem := memory.New()
	irq := &fakeIRQ{}
	p := NewPIA0(mem, 0xFF00, &fakeKeyboard{}, &fakeJoystick{}, nil, irq)
	p.VSyncIRQ()
	if irq.asserted {
		t.Fatalf("field-sync must not assert IRQ unless CRB bit 0 is set")
	}
}

func TestPIA0PAReflectsComparatorAndButton(t *testing.T) {
	mem := memory.New()
	joy := &fakeJoystick{comparator: true, button: true}
	p := NewPIA0(mem, 0xFF00, &fakeKeyboard{}, joy, nil, &fakeIRQ{})
	mem.Write(0xFF02, 0xFF)
	pa := mem.Read(0xFF00)
	if pa&0x80 == 0 {
		t.Fatalf("expected comparator bit set")
	}
	if pa&0x01 != 0 {
		t.Fatalf("expected button-pressed bit clear (active-low)")
	}
	_ = p
}
