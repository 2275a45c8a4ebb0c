// Package cpu implements the MC6809E instruction set: registers, condition
// codes, addressing modes, the run-state machine, and interrupt servicing.
// It never touches a host or device directly — it talks to memory only
// through the Reader/Writer interfaces below, so it can be driven by
// internal/memory.Memory or by a bare test double.
package cpu

// Reader is the read half of the bus the CPU executes against.
type Reader interface {
	Read(addr uint16) byte
}

// Writer is the write half of the bus the CPU executes against.
type Writer interface {
	Write(addr uint16, v byte)
}

// Bus is the full memory interface the CPU requires.
type Bus interface {
	Reader
	Writer
}

// RunState reports what Step just did, for the owning Machine's loop body.
type RunState int

const (
	// Exec means the CPU fetched and executed an instruction normally.
	Exec RunState = iota
	// Halted means the CPU is under an asserted HALT line and did nothing.
	Halted
	// Sync means the CPU is parked in SYNC or CWAI, waiting for an interrupt.
	Sync
	// Reset means Step serviced a pending reset this call.
	Reset
	// Exception means Step decoded an illegal opcode or addressing form.
	Exception
)

// Vector addresses, fixed by the MC6809E for interrupt and reset entry.
const (
	vecSWI3  = 0xFFF2
	vecSWI2  = 0xFFF4
	vecFIRQ  = 0xFFF6
	vecIRQ   = 0xFFF8
	vecSWI   = 0xFFFA
	vecNMI   = 0xFFFC
	vecReset = 0xFFFE
)

// CPU is the MC6809E core: registers, condition codes, the run-state
// machine, and the async interrupt/halt/reset latches sampled once per
// Step.
type CPU struct {
	A, B byte
	X, Y uint16
	U, S uint16
	PC   uint16
	DP   byte
	cc   cc

	nmiArmed bool

	bus Bus

	state RunState

	haltLine  bool
	resetLine bool
	irqLine   bool
	firqLine  bool
	nmiLatch  bool // edge-latched: NMITrigger sets it, servicing clears it

	lastPC      uint16
	lastBytes   int
	lastCycles  int
	extraCycles int // set by execPSH/execPUL: popcount-dependent cycles added on top of the table's base cycles
}

// New returns a CPU wired to bus, starting in the Reset run-state. Call
// Init once the reset vector is in place to bring it out of reset.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.resetRegisters()
	c.state = Reset
	return c
}

func (c *CPU) resetRegisters() {
	c.A, c.B = 0, 0
	c.X, c.Y, c.U, c.S = 0, 0, 0, 0
	c.DP = 0
	c.cc = cc{i: true, f: true}
	c.nmiArmed = false
}

// Init loads PC from the reset vector at 0xFFFE and clears the Reset
// run-state: I and F masked, DP cleared, PC taken from the vector table
// rather than a caller-supplied start address, per the documented
// MC6809E reset sequence.
func (c *CPU) Init() {
	c.resetRegisters()
	c.PC = c.read16(vecReset)
	c.state = Exec
	c.resetLine = false
}

// Halt sets or clears the asserted HALT line.
func (c *CPU) Halt(assert bool) { c.haltLine = assert }

// SetReset sets or clears the asserted RESET line. Step observes an
// asserted line and re-runs Init on the next call.
func (c *CPU) SetReset(assert bool) { c.resetLine = assert }

// IRQ sets or clears the asserted IRQ line (level-sensitive).
func (c *CPU) IRQ(assert bool) { c.irqLine = assert }

// FIRQ sets or clears the asserted FIRQ line (level-sensitive).
func (c *CPU) FIRQ(assert bool) { c.firqLine = assert }

// NMITrigger latches an NMI edge. NMI is serviced once per edge, and only
// once the nmiArmed latch is set by an explicit program write to S (see
// armNMI); after reset, NMI is ignored until then.
func (c *CPU) NMITrigger() { c.nmiLatch = true }

// State is the serializable CPU snapshot.
type State struct {
	A, B     byte
	X, Y     uint16
	U, S     uint16
	PC       uint16
	DP       byte
	CC       byte
	NMIArmed bool
	RunState RunState
}

// Save returns a snapshot of CPU-visible state.
func (c *CPU) Save() State {
	return State{
		A: c.A, B: c.B,
		X: c.X, Y: c.Y,
		U: c.U, S: c.S,
		PC:       c.PC,
		DP:       c.DP,
		CC:       c.cc.pack(),
		NMIArmed: c.nmiArmed,
		RunState: c.state,
	}
}

// Restore installs a previously saved snapshot.
func (c *CPU) Restore(s State) {
	c.A, c.B = s.A, s.B
	c.X, c.Y = s.X, s.Y
	c.U, c.S = s.U, s.S
	c.PC = s.PC
	c.DP = s.DP
	c.cc = unpackCC(s.CC)
	c.nmiArmed = s.NMIArmed
	c.state = s.RunState
}

// DebugState is the debugger-facing register/flag snapshot plus cycle
// accounting for the most recently executed instruction.
type DebugState struct {
	A, B            byte
	D               uint16
	X, Y, U, S      uint16
	PC, DP          uint16
	CC              byte
	RunState        RunState
	LastPC          uint16
	LastInstrBytes  int
	LastInstrCycles int
}

// GetState returns the current debug-facing snapshot.
func (c *CPU) GetState() DebugState {
	return DebugState{
		A: c.A, B: c.B,
		D: c.D(),
		X: c.X, Y: c.Y, U: c.U, S: c.S,
		PC: c.PC, DP: uint16(c.DP),
		CC:              c.cc.pack(),
		RunState:        c.state,
		LastPC:          c.lastPC,
		LastInstrBytes:  c.lastBytes,
		LastInstrCycles: c.lastCycles,
	}
}

// D returns the virtual 16-bit accumulator, A concatenated with B.
func (c *CPU) D() uint16 { return uint16(c.A)<<8 | uint16(c.B) }

// SetD stores v across A (high byte) and B (low byte).
func (c *CPU) SetD(v uint16) { c.A, c.B = byte(v>>8), byte(v) }

func (c *CPU) read8(addr uint16) byte     { return c.bus.Read(addr) }
func (c *CPU) write8(addr uint16, v byte) { c.bus.Write(addr, v) }

func (c *CPU) read16(addr uint16) uint16 {
	hi := c.bus.Read(addr)
	lo := c.bus.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) write16(addr uint16, v uint16) {
	c.bus.Write(addr, byte(v>>8))
	c.bus.Write(addr+1, byte(v))
}

// fetch8 reads the byte at PC and advances PC.
func (c *CPU) fetch8() byte {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

// fetch16 reads the big-endian word at PC and advances PC by two.
func (c *CPU) fetch16() uint16 {
	hi := c.fetch8()
	lo := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

// Step advances the CPU by one unit of work: servicing a pending
// reset/interrupt, staying halted, staying parked in SYNC/CWAI, or
// fetching and executing one instruction.
//
// Sampling order: RESET line first, then HALT, then interrupt priority
// NMI > FIRQ > IRQ, then (if none pending and the CPU is parked in SYNC)
// stay parked, then a normal fetch/execute.
func (c *CPU) Step() RunState {
	if c.resetLine {
		c.Init()
		return Reset
	}
	if c.haltLine {
		return Halted
	}

	if c.nmiLatch && c.nmiArmed {
		c.nmiLatch = false
		c.state = Exec
		c.enterInterrupt(vecNMI, true, true)
		return Exec
	}
	if c.firqLine && !c.cc.f {
		c.state = Exec
		c.enterInterrupt(vecFIRQ, false, true)
		return Exec
	}
	if c.irqLine && !c.cc.i {
		c.state = Exec
		c.enterInterrupt(vecIRQ, true, false)
		return Exec
	}

	if c.state == Sync {
		return Sync
	}

	return c.execOne()
}

// armNMI records that S has been explicitly written by the running
// program (LDS, LEAS, TFR/EXG into S, PSHS/PULS touching PC), arming NMI
// per the documented MC6809E reset quirk. U-register forms never arm it.
// Interrupt/CWAI stack bookkeeping moves S too but never arms NMI itself,
// since that is the machinery NMI delivery depends on, not a
// program-visible register write.
func (c *CPU) armNMI() { c.nmiArmed = true }

// pushFrame pushes the interrupt stack frame: full 12-byte (PC/U/Y/X/DP/
// B/A/CC) if full is true, partial 3-byte (PC/CC) otherwise — the FIRQ
// case — and sets CC.E to record which shape was used.
func (c *CPU) pushFrame(full bool) {
	if full {
		c.cc.e = true
		c.S -= 2
		c.write16(c.S, c.PC)
		c.S -= 2
		c.write16(c.S, c.U)
		c.S -= 2
		c.write16(c.S, c.Y)
		c.S -= 2
		c.write16(c.S, c.X)
		c.S--
		c.write8(c.S, c.DP)
		c.S--
		c.write8(c.S, c.B)
		c.S--
		c.write8(c.S, c.A)
		c.S--
		c.write8(c.S, c.cc.pack())
		return
	}
	c.cc.e = false
	c.S -= 2
	c.write16(c.S, c.PC)
	c.S--
	c.write8(c.S, c.cc.pack())
}

// enterInterrupt pushes a stack frame (see pushFrame), masks I always and
// F only when maskF is true, and vectors PC to vecAddr.
func (c *CPU) enterInterrupt(vecAddr uint16, full, maskF bool) {
	c.pushFrame(full)
	c.cc.i = true
	if maskF {
		c.cc.f = true
	}
	c.PC = c.read16(vecAddr)
}

// execOne fetches and runs a single instruction, returning Exec on success
// or Exception if the opcode/addressing-mode combination is undefined.
func (c *CPU) execOne() RunState {
	start := c.PC
	c.lastPC = start

	op := c.fetch8()
	table := page1Table
	switch op {
	case 0x10:
		table = page2Table
		op = c.fetch8()
	case 0x11:
		table = page3Table
		op = c.fetch8()
	}

	entry := table[op]
	if entry.fn == nil {
		c.state = Exception
		c.lastBytes = int(c.PC - start)
		c.lastCycles = 0
		return Exception
	}

	var opnd operand
	extra := 0
	if entry.mode != modeInherent {
		opnd = c.resolveOperand(entry.mode)
		if !opnd.ok {
			c.state = Exception
			c.lastBytes = int(c.PC - start)
			c.lastCycles = 0
			return Exception
		}
		extra = opnd.extra
	}

	c.lastBytes = int(c.PC - start)
	c.extraCycles = 0
	entry.fn(c, entry.mode, opnd)

	c.lastCycles = entry.cycles + extra + c.extraCycles
	c.state = Exec
	return Exec
}

// Disassemble decodes the instruction at addr without executing it,
// returning its mnemonic/operand text and byte length. It shares the
// opcode table with execution, so the decode table is the single source
// of truth for both.
func Disassemble(mem Reader, addr uint16) (string, int) {
	return disassemble(mem, addr)
}

// MnemonicAt is a thin wrapper over Disassemble returning only the text,
// for debuggers that don't need the byte count.
func MnemonicAt(mem Reader, addr uint16) string {
	text, _ := disassemble(mem, addr)
	return text
}
