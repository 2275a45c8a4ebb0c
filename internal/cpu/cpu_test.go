package cpu

import (
	"testing"

	"github.com/cocoemu/dragon64/internal/memory"
)

func newCPU(t *testing.T, code []byte, loadAt uint16) (*CPU, *memory.Memory) {
	t.Helper()
	m := memory.New()
	m.Load(loadAt, code)
	m.Write(0xFFFE, byte(loadAt>>8))
	m.Write(0xFFFF, byte(loadAt))
	c := New(m)
	c.Init()
	return c, m
}

func TestInitLoadsResetVector(t *testing.T) {
	c, _ := newCPU(t, []byte{0x12}, 0xC000) // NOP
	if c.PC != 0xC000 {
		t.Fatalf("PC after Init got %#04x want 0xC000", c.PC)
	}
	if c.state != Exec {
		t.Fatalf("run state after Init got %v want Exec", c.state)
	}
}

func TestNOP(t *testing.T) {
	c, _ := newCPU(t, []byte{0x12}, 0xC000)
	if st := c.Step(); st != Exec {
		t.Fatalf("Step got %v want Exec", st)
	}
	if c.PC != 0xC001 {
		t.Fatalf("PC after NOP got %#04x want 0xC001", c.PC)
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, _ := newCPU(t, []byte{0x86, 0x00}, 0xC000) // LDA #0
	c.Step()
	if c.A != 0 {
		t.Fatalf("A got %#02x want 0", c.A)
	}
	if !c.cc.z {
		t.Fatalf("Z flag not set after LDA #0")
	}
	if c.cc.n {
		t.Fatalf("N flag should be clear after LDA #0")
	}
}

func TestADDASetsOverflowWithoutCarry(t *testing.T) {
	c, _ := newCPU(t, []byte{0x86, 0x7F, 0x8B, 0x01}, 0xC000) // LDA #$7F; ADDA #$01
	c.Step()
	c.Step()
	if c.A != 0x80 {
		t.Fatalf("A got %#02x want 0x80", c.A)
	}
	if !c.cc.v {
		t.Fatalf("V flag should be set: 0x7F+0x01 overflows signed byte range")
	}
	if c.cc.c {
		t.Fatalf("C flag should be clear: no unsigned carry out of bit7")
	}
	if !c.cc.n {
		t.Fatalf("N flag should be set: result 0x80 has bit7 set")
	}
}

func TestDirectAddressingUsesDP(t *testing.T) {
	c, m := newCPU(t, []byte{0x96, 0x10}, 0xC000) // LDA <$10
	c.DP = 0x02
	m.Write(0x0210, 0x5A)
	c.Step()
	if c.A != 0x5A {
		t.Fatalf("A got %#02x want 0x5A (DP-relative direct page)", c.A)
	}
}

func TestIndexedPostIncrementAdvancesRegister(t *testing.T) {
	// LDA ,X+ ; LDA ,X+
	c, m := newCPU(t, []byte{0xA6, 0x80, 0xA6, 0x80}, 0xC000)
	c.X = 0x3000
	m.Write(0x3000, 0x11)
	m.Write(0x3001, 0x22)
	c.Step()
	if c.A != 0x11 || c.X != 0x3001 {
		t.Fatalf("after first ,X+: A=%#02x X=%#04x, want A=11 X=3001", c.A, c.X)
	}
	if got := c.GetState().LastInstrCycles; got != 6 {
		t.Fatalf("LastInstrCycles got %d want 6 (table base 4 + 2 for ,X+)", got)
	}
	c.Step()
	if c.A != 0x22 || c.X != 0x3002 {
		t.Fatalf("after second ,X+: A=%#02x X=%#04x, want A=22 X=3002", c.A, c.X)
	}
}

func TestIndexedIndirectOnPostIncOnceIsIllegal(t *testing.T) {
	// postbyte 0x90 = indirect bit set with submode 0 (,R+): undefined form.
	c, _ := newCPU(t, []byte{0xA6, 0x90}, 0xC000)
	c.X = 0x3000
	if st := c.Step(); st != Exception {
		t.Fatalf("Step got %v want Exception for indirect ,X+ (undefined)", st)
	}
}

func TestBranchTakenAndNotTaken(t *testing.T) {
	// LDA #0 ; BEQ +2 (to the LDA #$42) ; LDA #$FF ; LDA #$42 ; BEQ +2
	c, _ := newCPU(t, []byte{0x86, 0x00, 0x27, 0x02, 0x86, 0xFF, 0x86, 0x42, 0x27, 0x02}, 0xC000)
	c.Step() // LDA #0, sets Z
	c.Step() // BEQ taken
	if c.PC != 0xC006 {
		t.Fatalf("PC after taken BEQ got %#04x want 0xC006", c.PC)
	}
	c.Step() // LDA #$42, clears Z
	if c.A != 0x42 {
		t.Fatalf("A got %#02x want 0x42", c.A)
	}
	c.Step() // BEQ not taken
	if c.PC != 0xC00A {
		t.Fatalf("PC after not-taken BEQ got %#04x want 0xC00A", c.PC)
	}
}

func TestJSRAndRTSRoundTrip(t *testing.T) {
	// at C000: JSR $C010 ; at C010: RTS
	code := make([]byte, 0x20)
	code[0], code[1], code[2] = 0xBD, 0xC0, 0x10
	code[0x10] = 0x39
	c, _ := newCPU(t, code, 0xC000)
	c.S = 0xC800
	c.Step() // JSR
	if c.PC != 0xC010 {
		t.Fatalf("PC after JSR got %#04x want 0xC010", c.PC)
	}
	c.Step() // RTS
	if c.PC != 0xC003 {
		t.Fatalf("PC after RTS got %#04x want 0xC003 (return address)", c.PC)
	}
	if c.S != 0xC800 {
		t.Fatalf("S after RTS got %#04x want 0xC800 (balanced)", c.S)
	}
}

func TestPSHSPULSRoundTrip(t *testing.T) {
	// PSHS A,B,X ; clobber A/B/X ; PULS A,B,X
	c, _ := newCPU(t, []byte{0x34, 0x16, 0x35, 0x16}, 0xC000)
	c.A, c.B, c.X = 0x11, 0x22, 0x3344
	c.S = 0xC800
	c.Step() // PSHS
	if c.S != 0xC800-2-1-1 {
		t.Fatalf("S after PSHS got %#04x want %#04x", c.S, 0xC800-4)
	}
	c.A, c.B, c.X = 0, 0, 0
	c.Step() // PULS
	if c.A != 0x11 || c.B != 0x22 || c.X != 0x3344 {
		t.Fatalf("registers after PULS: A=%#02x B=%#02x X=%#04x, want 11 22 3344", c.A, c.B, c.X)
	}
	if c.S != 0xC800 {
		t.Fatalf("S after PULS got %#04x want 0xC800 (balanced)", c.S)
	}
}

func TestSWIPushesFullFrameAndMasksIF(t *testing.T) {
	c, m := newCPU(t, []byte{0x3F}, 0xC000) // SWI
	c.S = 0xC800
	c.cc.i, c.cc.f = false, false
	m.Write(0xFFFA, 0xD0)
	m.Write(0xFFFB, 0x00)
	c.Step()
	if c.PC != 0xD000 {
		t.Fatalf("PC after SWI got %#04x want 0xD000 (vector fetch)", c.PC)
	}
	if !c.cc.i || !c.cc.f {
		t.Fatalf("SWI must mask both I and F")
	}
	if c.S != 0xC800-12 {
		t.Fatalf("S after SWI got %#04x want %#04x (12-byte full frame)", c.S, 0xC800-12)
	}
}

func TestIRQMaskedByI(t *testing.T) {
	c, _ := newCPU(t, []byte{0x12, 0x12}, 0xC000) // NOP; NOP
	c.cc.i = true
	c.IRQ(true)
	st := c.Step()
	if st != Exec || c.PC != 0xC001 {
		t.Fatalf("masked IRQ should fall through to normal fetch: state=%v PC=%#04x", st, c.PC)
	}
}

func TestIRQServicedWhenUnmasked(t *testing.T) {
	c, m := newCPU(t, []byte{0x12, 0x12}, 0xC000)
	c.cc.i, c.cc.f = false, false
	c.S = 0xC800
	m.Write(0xFFF8, 0xD1)
	m.Write(0xFFF9, 0x00)
	c.IRQ(true)
	st := c.Step()
	if st != Exec || c.PC != 0xD100 {
		t.Fatalf("IRQ should vector PC to 0xD100: state=%v PC=%#04x", st, c.PC)
	}
	if !c.cc.i {
		t.Fatalf("IRQ entry must mask I")
	}
	if c.cc.f {
		t.Fatalf("IRQ entry must not mask F")
	}
}

func TestFIRQPushesPartialFrame(t *testing.T) {
	c, m := newCPU(t, []byte{0x12}, 0xC000)
	c.cc.f = false
	c.S = 0xC800
	m.Write(0xFFF6, 0xD2)
	m.Write(0xFFF7, 0x00)
	c.FIRQ(true)
	c.Step()
	if c.PC != 0xD200 {
		t.Fatalf("PC after FIRQ got %#04x want 0xD200", c.PC)
	}
	if c.S != 0xC800-3 {
		t.Fatalf("S after FIRQ got %#04x want %#04x (3-byte partial frame)", c.S, 0xC800-3)
	}
	if !c.cc.f || !c.cc.i {
		t.Fatalf("FIRQ entry must mask both F and I")
	}
}

func TestNMIIgnoredBeforeFirstStep(t *testing.T) {
	// NOP never touches S, so nmi_armed stays false even after executing.
	c, m := newCPU(t, []byte{0x12, 0x12}, 0xC000)
	c.S = 0xC800
	m.Write(0xFFFC, 0xD3)
	m.Write(0xFFFD, 0x00)
	c.NMITrigger()
	st := c.Step()
	if st != Exec || c.PC != 0xC001 {
		t.Fatalf("NMI must be ignored before nmi_armed is set by an explicit S write: state=%v PC=%#04x", st, c.PC)
	}
}

func TestNMIServicedAfterArming(t *testing.T) {
	// LDS #$C800 explicitly writes S, arming nmi_armed.
	c, m := newCPU(t, []byte{0x10, 0xCE, 0xC8, 0x00, 0x12}, 0xC000)
	m.Write(0xFFFC, 0xD3)
	m.Write(0xFFFD, 0x00)
	c.Step() // LDS #$C800, arms nmi_armed
	c.NMITrigger()
	st := c.Step()
	if st != Exec || c.PC != 0xD300 {
		t.Fatalf("armed NMI should vector: state=%v PC=%#04x", st, c.PC)
	}
}

func TestHaltLineStallsExecution(t *testing.T) {
	c, _ := newCPU(t, []byte{0x12}, 0xC000)
	c.Halt(true)
	st := c.Step()
	if st != Halted || c.PC != 0xC000 {
		t.Fatalf("halted CPU must not advance PC: state=%v PC=%#04x", st, c.PC)
	}
}

func TestDisassembleMatchesExecutedOpcode(t *testing.T) {
	c, m := newCPU(t, []byte{0x86, 0x42}, 0xC000)
	text, n := Disassemble(m, c.PC)
	if n != 2 {
		t.Fatalf("Disassemble length got %d want 2", n)
	}
	if text != "LDA #$42" {
		t.Fatalf("Disassemble text got %q want %q", text, "LDA #$42")
	}
}

func TestUndefinedOpcodeRaisesException(t *testing.T) {
	c, _ := newCPU(t, []byte{0x01}, 0xC000) // undefined in page 1
	if st := c.Step(); st != Exception {
		t.Fatalf("Step got %v want Exception", st)
	}
}

func TestADCASetsHalfCarry(t *testing.T) {
	c, _ := newCPU(t, []byte{0x89, 0x11}, 0xC000) // ADCA #$11
	c.A = 0x2F
	c.cc.c = true
	c.Step()
	if c.A != 0x41 {
		t.Fatalf("A got %#02x want 0x41", c.A)
	}
	if !c.cc.h {
		t.Fatalf("H flag should be set: low nibbles 0xF+0x1+carry-in overflow into bit4")
	}
	if c.cc.c || c.cc.z || c.cc.n || c.cc.v {
		t.Fatalf("C/Z/N/V should all be clear: cc=%+v", c.cc)
	}
}

func TestDAACorrectsAfterAdd(t *testing.T) {
	c, _ := newCPU(t, []byte{0x19}, 0xC000) // DAA
	c.A = 0x9B
	c.cc.h, c.cc.c = false, false
	c.Step()
	if c.A != 0x01 {
		t.Fatalf("A got %#02x want 0x01", c.A)
	}
	if !c.cc.c {
		t.Fatalf("C flag should be set: 0x9B + 0x66 correction carries out of bit7")
	}
	if c.cc.n || c.cc.z {
		t.Fatalf("N/Z should both be clear for result 0x01")
	}
}

func TestLDAIndexedExtendedIndirect(t *testing.T) {
	// LDA [$3000] ; postbyte 0x9F selects the indexed submode 0xF form,
	// extended-indirect: the two bytes following are an address whose
	// contents are the actual effective address.
	c, m := newCPU(t, []byte{0xA6, 0x9F, 0x30, 0x00}, 0xC000)
	m.Write(0x3000, 0x12)
	m.Write(0x3001, 0x34)
	m.Write(0x1234, 0x77)
	c.Step()
	if c.A != 0x77 {
		t.Fatalf("A got %#02x want 0x77", c.A)
	}
}

func TestIRQStackFrameLayoutAndRTIRoundTrip(t *testing.T) {
	c, m := newCPU(t, []byte{0x12, 0x12}, 0xC000) // NOP; NOP
	c.cc.i = false
	c.cc.z, c.cc.n, c.cc.e = true, false, true
	c.S = 0xC800
	c.A, c.B, c.DP = 0x11, 0x22, 0x33
	c.X, c.Y, c.U = 0x4455, 0x6677, 0x8899
	ccBefore := c.cc.pack()
	m.Write(0xFFF8, 0xD1)
	m.Write(0xFFF9, 0x00)

	c.IRQ(true)
	if st := c.Step(); st != Exec || c.PC != 0xD100 {
		t.Fatalf("IRQ entry: state=%v PC=%#04x want Exec/0xD100", st, c.PC)
	}
	if c.S != 0xC800-12 {
		t.Fatalf("S after IRQ entry got %#04x want %#04x (12-byte full frame)", c.S, 0xC800-12)
	}

	frame := []byte{
		m.Read(0xC7F4), m.Read(0xC7F5), m.Read(0xC7F6), m.Read(0xC7F7),
		m.Read(0xC7F8), m.Read(0xC7F9), m.Read(0xC7FA), m.Read(0xC7FB),
		m.Read(0xC7FC), m.Read(0xC7FD), m.Read(0xC7FE), m.Read(0xC7FF),
	}
	want := []byte{ccBefore, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xC0, 0x00}
	for i := range want {
		if frame[i] != want[i] {
			t.Fatalf("stack byte %d (addr %#04x) got %#02x want %#02x", i, 0xC7F4+i, frame[i], want[i])
		}
	}

	c.IRQ(false)
	m.Write(0xD100, 0x3B) // RTI
	if st := c.Step(); st != Exec || c.PC != 0xC000 {
		t.Fatalf("RTI: state=%v PC=%#04x want Exec/0xC000", st, c.PC)
	}
	if c.S != 0xC800 {
		t.Fatalf("S after RTI got %#04x want 0xC800 (balanced)", c.S)
	}
	if c.A != 0x11 || c.B != 0x22 || c.DP != 0x33 || c.X != 0x4455 || c.Y != 0x6677 || c.U != 0x8899 {
		t.Fatalf("registers after RTI: A=%#02x B=%#02x DP=%#02x X=%#04x Y=%#04x U=%#04x", c.A, c.B, c.DP, c.X, c.Y, c.U)
	}
	if c.cc.pack() != ccBefore {
		t.Fatalf("CC after RTI got %#02x want %#02x (exact pre-IRQ restore, including I)", c.cc.pack(), ccBefore)
	}
}

func TestPSHSCycleCountReflectsPushedRegisters(t *testing.T) {
	// PSHS CC (mask 0x01, 1 byte) vs PSHS CC,A,B,X,PC (mask 0x97, 7 bytes:
	// CC/A/B each 1 cycle, X/PC each 2) must report different cycle counts
	// even though both share the table's static base.
	small, _ := newCPU(t, []byte{0x34, 0x01}, 0xC000)
	small.S = 0xC800
	small.Step()
	if got := small.GetState().LastInstrCycles; got != 5+1 {
		t.Fatalf("PSHS CC cycles got %d want %d", got, 5+1)
	}

	big, _ := newCPU(t, []byte{0x34, 0x97}, 0xC000)
	big.S = 0xC800
	big.Step()
	if got := big.GetState().LastInstrCycles; got != 5+2+2+1+1+1 {
		t.Fatalf("PSHS CC,A,B,X,PC cycles got %d want %d", got, 5+2+2+1+1+1)
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	c, _ := newCPU(t, []byte{0x12}, 0xC000)
	c.A, c.B, c.X, c.DP = 0x11, 0x22, 0x3344, 0x06
	snap := c.Save()

	other, _ := newCPU(t, []byte{0x12}, 0xD000)
	other.Restore(snap)
	if other.A != 0x11 || other.B != 0x22 || other.X != 0x3344 || other.DP != 0x06 || other.PC != 0xC000 {
		t.Fatalf("restored CPU state mismatch: %+v", other.GetState())
	}
}
