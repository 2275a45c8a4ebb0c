// Package memory implements the 64 KiB byte-addressable memory fabric
// shared by the CPU core and the SAM/VDG/PIA devices: a flat array of
// cells, each carrying a data byte, an attribute (RAM/ROM/IO), and an
// optional IO callback invoked on every access to that address.
package memory

// Attribute classifies how a cell responds to reads and writes.
type Attribute uint8

const (
	RAM Attribute = iota
	ROM
	IO
)

// AccessKind tells an IO callback whether it is being invoked for a read
// or a write.
type AccessKind uint8

const (
	Read AccessKind = iota
	Write
)

// IOFunc is invoked on every access to a cell marked IO. It receives the
// address, the value (the stored byte on a read, the value being written
// on a write), and the access kind, and returns the byte to store/return.
// IO callbacks may freely read or write other addresses through the
// *Memory passed at registration time, but must not recurse into their
// own mapped range except where the component explicitly expects it
// (PIA1-PA's cassette bit synthesis is the one such case in this system).
type IOFunc func(addr uint16, value byte, kind AccessKind) byte

type cell struct {
	data byte
	attr Attribute
	io   IOFunc
}

// Memory is the 64 KiB address space: 65,536 cells, each independently
// RAM, ROM, or IO.
type Memory struct {
	cells [65536]cell
}

// New returns a Memory with every cell initialized to RAM, value zero.
func New() *Memory {
	return &Memory{}
}

// Read returns the byte at addr. IO cells invoke their callback after
// fetching the stored byte, and the callback's return value both becomes
// the result of the read and is restored into the cell (so a read can
// have a side effect visible to later reads of the same cell, such as
// PIA1-PA's cassette bit shifting). Reads never fail; there is no
// out-of-range address on a 16-bit bus.
func (m *Memory) Read(addr uint16) byte {
	c := &m.cells[addr]
	if c.attr == IO && c.io != nil {
		v := c.io(addr, c.data, Read)
		c.data = v
		return v
	}
	return c.data
}

// Write stores v at addr. Writes to ROM cells are silently discarded and
// never surfaced to the CPU. IO cells invoke their callback after the
// store, with the written value; the callback's return value is restored
// into the cell.
func (m *Memory) Write(addr uint16, v byte) {
	c := &m.cells[addr]
	if c.attr == ROM {
		return
	}
	c.data = v
	if c.attr == IO && c.io != nil {
		c.data = c.io(addr, v, Write)
	}
}

// Peek reads a cell's stored byte without invoking any IO callback, for
// disassembly and debugger use.
func (m *Memory) Peek(addr uint16) byte {
	return m.cells[addr].data
}

// DefineROM marks [lo, hi] (inclusive) as read-only. Existing data is
// preserved; any IO callback previously registered on the span is
// dropped, since ROM cells never invoke callbacks.
func (m *Memory) DefineROM(lo, hi uint16) {
	for addr := uint32(lo); addr <= uint32(hi); addr++ {
		c := &m.cells[addr]
		c.attr = ROM
		c.io = nil
	}
}

// DefineRAM marks [lo, hi] (inclusive) as read/write RAM, preserving data
// and dropping any IO callback.
func (m *Memory) DefineRAM(lo, hi uint16) {
	for addr := uint32(lo); addr <= uint32(hi); addr++ {
		c := &m.cells[addr]
		c.attr = RAM
		c.io = nil
	}
}

// DefineIO marks [lo, hi] (inclusive) as IO backed by cb, preserving
// whatever data the span already held (so installing IO over a RAM image
// does not lose the underlying bytes). Calling DefineIO again over an
// existing IO span replaces the attribute (a no-op) and the callback.
func (m *Memory) DefineIO(lo, hi uint16, cb IOFunc) {
	for addr := uint32(lo); addr <= uint32(hi); addr++ {
		c := &m.cells[addr]
		c.attr = IO
		c.io = cb
	}
}

// Load bulk-copies data into memory starting at start, ignoring the ROM
// attribute so a ROM image can be installed before DefineROM freezes it.
func (m *Memory) Load(start uint16, data []byte) {
	addr := uint32(start)
	for _, b := range data {
		if addr > 0xFFFF {
			break
		}
		m.cells[addr].data = b
		addr++
	}
}

// AttributeAt reports the attribute of the cell at addr, for tests and
// debuggers.
func (m *Memory) AttributeAt(addr uint16) Attribute {
	return m.cells[addr].attr
}

// State is the serializable snapshot of memory contents. Attributes and
// IO callbacks are re-established by the owning Machine on load (they are
// wiring, not state), so State carries only the 64 KiB of data bytes.
type State struct {
	Data [65536]byte
}

// Save returns a snapshot of every cell's stored byte.
func (m *Memory) Save() State {
	var s State
	for i := range m.cells {
		s.Data[i] = m.cells[i].data
	}
	return s
}

// Restore installs bytes from a snapshot without touching attributes or
// IO callbacks.
func (m *Memory) Restore(s State) {
	for i := range m.cells {
		m.cells[i].data = s.Data[i]
	}
}
