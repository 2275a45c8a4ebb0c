package memory

import "testing"

func TestRAMReadWrite(t *testing.T) {
	m := New()
	m.Write(0x2000, 0x99)
	if got := m.Read(0x2000); got != 0x99 {
		t.Fatalf("RAM read got %02x, want 99", got)
	}
}

func TestROMRejectsWrites(t *testing.T) {
	m := New()
	m.Load(0x8000, []byte{0x42})
	m.DefineROM(0x8000, 0xFEFF)

	if got := m.Read(0x8000); got != 0x42 {
		t.Fatalf("ROM read got %02x, want 42", got)
	}
	m.Write(0x8000, 0xFF)
	if got := m.Read(0x8000); got != 0x42 {
		t.Fatalf("ROM write should be discarded: got %02x, want 42", got)
	}
}

func TestDefineIOPreservesUnderlyingData(t *testing.T) {
	m := New()
	m.Write(0xFF00, 0x7A)
	m.DefineIO(0xFF00, 0xFF00, func(addr uint16, v byte, kind AccessKind) byte { return v })
	if got := m.Read(0xFF00); got != 0x7A {
		t.Fatalf("DefineIO lost prior data: got %02x, want 7a", got)
	}
}

func TestIOCallbackInvokedOnReadAndWrite(t *testing.T) {
	m := New()
	var lastKind AccessKind
	var lastAddr uint16
	var lastVal byte
	m.DefineIO(0xFF20, 0xFF20, func(addr uint16, v byte, kind AccessKind) byte {
		lastAddr, lastVal, lastKind = addr, v, kind
		return v + 1
	})

	got := m.Read(0xFF20)
	if lastKind != Read || lastAddr != 0xFF20 || got != 1 {
		t.Fatalf("read callback: got=%d kind=%v addr=%x", got, lastKind, lastAddr)
	}
	m.Write(0xFF20, 5)
	if lastKind != Write || lastVal != 5 {
		t.Fatalf("write callback: kind=%v val=%d", lastKind, lastVal)
	}
	if got := m.Peek(0xFF20); got != 6 {
		t.Fatalf("callback return value not stored: got %d want 6", got)
	}
}

func TestLoadIgnoresROMAttribute(t *testing.T) {
	m := New()
	m.DefineROM(0x8000, 0x8000)
	m.Load(0x8000, []byte{0x55})
	if got := m.Read(0x8000); got != 0x55 {
		t.Fatalf("Load must bypass ROM protection: got %02x, want 55", got)
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	m := New()
	m.Write(0x1234, 0xAB)
	s := m.Save()

	m2 := New()
	m2.Restore(s)
	if got := m2.Read(0x1234); got != 0xAB {
		t.Fatalf("restored memory got %02x, want ab", got)
	}
}
