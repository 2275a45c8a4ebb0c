package cpu

import "math/bits"

// This file holds the instruction semantics the opcode table in
// opcodes.go dispatches to: the ALU/shift operand functions themselves
// (each named *Op, parametrized over an 8- or 16-bit value and the flags
// it sets) plus the instrFunc adapters that wire an *Op into a specific
// addressing-mode/register combination.

// --- read-modify-write family (NEG/COM/LSR/ROR/ASR/ASL/ROL/DEC/INC/TST/CLR) ---

type rmwOp func(c *CPU, v byte) byte

type rmwTarget int

const (
	targetMem rmwTarget = iota
	targetA
	targetB
)

func execRMW(op rmwOp, target rmwTarget) instrFunc {
	return func(c *CPU, mode addrMode, opnd operand) {
		switch target {
		case targetA:
			c.A = op(c, c.A)
		case targetB:
			c.B = op(c, c.B)
		default:
			c.write8(opnd.ea, op(c, c.read8(opnd.ea)))
		}
	}
}

func negOp(c *CPU, v byte) byte {
	r := -v
	c.setNZ8(r)
	c.cc.v = v == 0x80
	c.cc.c = r != 0
	return r
}

func comOp(c *CPU, v byte) byte {
	r := ^v
	c.setNZ8(r)
	c.cc.v = false
	c.cc.c = true
	return r
}

func lsrOp(c *CPU, v byte) byte {
	c.cc.c = v&0x01 != 0
	r := v >> 1
	c.cc.n = false
	c.cc.z = r == 0
	return r
}

func rorOp(c *CPU, v byte) byte {
	carryIn := byte(0)
	if c.cc.c {
		carryIn = 0x80
	}
	c.cc.c = v&0x01 != 0
	r := (v >> 1) | carryIn
	c.setNZ8(r)
	return r
}

func asrOp(c *CPU, v byte) byte {
	c.cc.c = v&0x01 != 0
	r := (v >> 1) | (v & 0x80)
	c.setNZ8(r)
	return r
}

func aslOp(c *CPU, v byte) byte {
	c.cc.c = v&0x80 != 0
	r := v << 1
	c.cc.v = (v^r)&0x80 != 0
	c.setNZ8(r)
	return r
}

func rolOp(c *CPU, v byte) byte {
	carryIn := byte(0)
	if c.cc.c {
		carryIn = 1
	}
	c.cc.c = v&0x80 != 0
	r := (v << 1) | carryIn
	c.cc.v = (v^r)&0x80 != 0
	c.setNZ8(r)
	return r
}

func decOp(c *CPU, v byte) byte {
	r := v - 1
	c.cc.v = v == 0x80
	c.setNZ8(r)
	return r
}

func incOp(c *CPU, v byte) byte {
	r := v + 1
	c.cc.v = v == 0x7F
	c.setNZ8(r)
	return r
}

func tstOp(c *CPU, v byte) byte {
	c.setNZ8(v)
	c.cc.v = false
	return v
}

func clrOp(c *CPU, v byte) byte {
	c.cc.n = false
	c.cc.z = true
	c.cc.v = false
	c.cc.c = false
	return 0
}

// --- 8-bit accumulator ALU family ---

// accSel reuses rmwTarget's targetA/targetB values so the table-builder
// helpers in opcodes.go share one enum across the RMW and ALU families;
// targetMem is never passed here.
type accSel = rmwTarget

type alu8Op func(c *CPU, acc, operand byte) byte

func execALU8(op alu8Op, acc accSel, store bool) instrFunc {
	return func(c *CPU, mode addrMode, opnd operand) {
		var v byte
		if mode == modeImmediate8 {
			v = opnd.val8
		} else {
			v = c.read8(opnd.ea)
		}
		var cur byte
		if acc == targetA {
			cur = c.A
		} else {
			cur = c.B
		}
		r := op(c, cur, v)
		if store {
			if acc == targetA {
				c.A = r
			} else {
				c.B = r
			}
		}
	}
}

func execST8(acc accSel) instrFunc {
	return func(c *CPU, mode addrMode, opnd operand) {
		var v byte
		if acc == targetA {
			v = c.A
		} else {
			v = c.B
		}
		c.write8(opnd.ea, v)
		c.setNZ8(v)
		c.cc.v = false
	}
}

func addOp(c *CPU, a, b byte) byte {
	r := uint16(a) + uint16(b)
	res := byte(r)
	c.cc.h = (a&0x0F)+(b&0x0F) > 0x0F
	c.cc.c = r > 0xFF
	c.cc.v = (^(a ^ b) & (a ^ res) & 0x80) != 0
	c.setNZ8(res)
	return res
}

func adcOp(c *CPU, a, b byte) byte {
	cin := byte(0)
	if c.cc.c {
		cin = 1
	}
	r := uint16(a) + uint16(b) + uint16(cin)
	res := byte(r)
	c.cc.h = (a&0x0F)+(b&0x0F)+cin > 0x0F
	c.cc.c = r > 0xFF
	c.cc.v = (^(a ^ b) & (a ^ res) & 0x80) != 0
	c.setNZ8(res)
	return res
}

func subOp(c *CPU, a, b byte) byte {
	r := int16(a) - int16(b)
	res := byte(r)
	c.cc.c = int16(a) < int16(b)
	c.cc.v = ((a ^ b) & (a ^ res) & 0x80) != 0
	c.setNZ8(res)
	return res
}

func sbcOp(c *CPU, a, b byte) byte {
	cin := int16(0)
	if c.cc.c {
		cin = 1
	}
	r := int16(a) - int16(b) - cin
	res := byte(r)
	c.cc.c = int16(a) < int16(b)+cin
	c.cc.v = ((a ^ b) & (a ^ res) & 0x80) != 0
	c.setNZ8(res)
	return res
}

func andOp(c *CPU, a, b byte) byte {
	r := a & b
	c.setNZ8(r)
	c.cc.v = false
	return r
}

func orOp(c *CPU, a, b byte) byte {
	r := a | b
	c.setNZ8(r)
	c.cc.v = false
	return r
}

func eorOp(c *CPU, a, b byte) byte {
	r := a ^ b
	c.setNZ8(r)
	c.cc.v = false
	return r
}

func ldOp(c *CPU, a, b byte) byte {
	c.setNZ8(b)
	c.cc.v = false
	return b
}

// --- 16-bit register ALU/load/store family ---

type reg16Sel int

const (
	reg16D reg16Sel = iota
	reg16X
	reg16Y
	reg16U
	reg16S
)

func (c *CPU) get16(reg reg16Sel) uint16 {
	switch reg {
	case reg16D:
		return c.D()
	case reg16X:
		return c.X
	case reg16Y:
		return c.Y
	case reg16U:
		return c.U
	default:
		return c.S
	}
}

func (c *CPU) set16(reg reg16Sel, v uint16) {
	switch reg {
	case reg16D:
		c.SetD(v)
	case reg16X:
		c.X = v
	case reg16Y:
		c.Y = v
	case reg16U:
		c.U = v
	default:
		c.S = v
	}
}

func execLD16(reg reg16Sel) instrFunc {
	return func(c *CPU, mode addrMode, opnd operand) {
		var v uint16
		if mode == modeImmediate16 {
			v = opnd.val16
		} else {
			v = c.read16(opnd.ea)
		}
		c.set16(reg, v)
		c.setNZ16(v)
		c.cc.v = false
		if reg == reg16S {
			c.armNMI()
		}
	}
}

func execST16(reg reg16Sel) instrFunc {
	return func(c *CPU, mode addrMode, opnd operand) {
		v := c.get16(reg)
		c.write16(opnd.ea, v)
		c.setNZ16(v)
		c.cc.v = false
	}
}

type alu16Op func(c *CPU, a, b uint16) uint16

func execALU16(op alu16Op, reg reg16Sel, store bool) instrFunc {
	return func(c *CPU, mode addrMode, opnd operand) {
		var v uint16
		if mode == modeImmediate16 {
			v = opnd.val16
		} else {
			v = c.read16(opnd.ea)
		}
		r := op(c, c.get16(reg), v)
		if store {
			c.set16(reg, r)
		}
	}
}

func add16Op(c *CPU, a, b uint16) uint16 {
	r := uint32(a) + uint32(b)
	res := uint16(r)
	c.cc.c = r > 0xFFFF
	c.cc.v = (^(a ^ b) & (a ^ res) & 0x8000) != 0
	c.setNZ16(res)
	return res
}

func sub16Op(c *CPU, a, b uint16) uint16 {
	r := int32(a) - int32(b)
	res := uint16(r)
	c.cc.c = int32(a) < int32(b)
	c.cc.v = ((a ^ b) & (a ^ res) & 0x8000) != 0
	c.setNZ16(res)
	return res
}

func cmp16Op(c *CPU, a, b uint16) uint16 {
	return sub16Op(c, a, b)
}

// --- control flow ---

func execJMP(c *CPU, mode addrMode, opnd operand) { c.PC = opnd.ea }

func execJSR(c *CPU, mode addrMode, opnd operand) {
	c.S -= 2
	c.write16(c.S, c.PC)
	c.PC = opnd.ea
}

func execBSR(c *CPU, mode addrMode, opnd operand) {
	c.S -= 2
	c.write16(c.S, c.PC)
	c.PC = opnd.ea
}

func execLBSR(c *CPU, mode addrMode, opnd operand) {
	c.S -= 2
	c.write16(c.S, c.PC)
	c.PC = opnd.ea
}

func execBranch(cond func(*CPU) bool) instrFunc {
	return func(c *CPU, mode addrMode, opnd operand) {
		if cond(c) {
			c.PC = opnd.ea
		}
	}
}

func execRTS(c *CPU, mode addrMode, opnd operand) {
	c.PC = c.read16(c.S)
	c.S += 2
}

func execRTI(c *CPU, mode addrMode, opnd operand) {
	c.cc = unpackCC(c.read8(c.S))
	c.S++
	if c.cc.e {
		c.A = c.read8(c.S)
		c.S++
		c.B = c.read8(c.S)
		c.S++
		c.DP = c.read8(c.S)
		c.S++
		c.X = c.read16(c.S)
		c.S += 2
		c.Y = c.read16(c.S)
		c.S += 2
		c.U = c.read16(c.S)
		c.S += 2
	}
	c.PC = c.read16(c.S)
	c.S += 2
}

func execSWI(vec uint16) instrFunc {
	return func(c *CPU, mode addrMode, opnd operand) {
		c.enterInterrupt(vec, true, vec == vecSWI)
	}
}

func execSYNC(c *CPU, mode addrMode, opnd operand) {
	c.state = Sync
}

func execCWAI(c *CPU, mode addrMode, opnd operand) {
	c.cc = unpackCC(c.cc.pack() & opnd.val8)
	c.pushFrame(true)
	c.state = Sync
}

func execABX(c *CPU, mode addrMode, opnd operand) {
	c.X += uint16(c.B)
}

func execMUL(c *CPU, mode addrMode, opnd operand) {
	r := uint16(c.A) * uint16(c.B)
	c.SetD(r)
	c.cc.z = r == 0
	c.cc.c = r&0x80 != 0
}

func execDAA(c *CPU, mode addrMode, opnd operand) {
	a := c.A
	var correction byte
	carry := c.cc.c
	if c.cc.h || a&0x0F > 0x09 {
		correction |= 0x06
	}
	if carry || a > 0x99 || (a > 0x8F && a&0x0F > 0x09) {
		correction |= 0x60
		carry = true
	}
	r := uint16(a) + uint16(correction)
	c.A = byte(r)
	c.cc.c = carry || r > 0xFF
	c.setNZ8(c.A)
}

func execSEX(c *CPU, mode addrMode, opnd operand) {
	d := int16(int8(c.B))
	c.SetD(uint16(d))
	c.setNZ16(uint16(d))
	c.cc.v = false
}

func execORCC(c *CPU, mode addrMode, opnd operand) {
	c.cc = unpackCC(c.cc.pack() | opnd.val8)
}

func execANDCC(c *CPU, mode addrMode, opnd operand) {
	c.cc = unpackCC(c.cc.pack() & opnd.val8)
}

// --- register-pair ops: EXG/TFR postbyte nibble selects a register ---

func regByPostbyteNibble(c *CPU, nibble byte) (get func() uint16, set func(uint16), is8 bool) {
	switch nibble {
	case 0x0:
		return c.D, c.SetD, false
	case 0x1:
		return func() uint16 { return c.X }, func(v uint16) { c.X = v }, false
	case 0x2:
		return func() uint16 { return c.Y }, func(v uint16) { c.Y = v }, false
	case 0x3:
		return func() uint16 { return c.U }, func(v uint16) { c.U = v }, false
	case 0x4:
		return func() uint16 { return c.S }, func(v uint16) { c.S = v }, false
	case 0x5:
		return func() uint16 { return c.PC }, func(v uint16) { c.PC = v }, false
	case 0x8:
		return func() uint16 { return uint16(c.A) }, func(v uint16) { c.A = byte(v) }, true
	case 0x9:
		return func() uint16 { return uint16(c.B) }, func(v uint16) { c.B = byte(v) }, true
	case 0xA:
		return func() uint16 { return uint16(c.cc.pack()) }, func(v uint16) { c.cc = unpackCC(byte(v)) }, true
	case 0xB:
		return func() uint16 { return uint16(c.DP) }, func(v uint16) { c.DP = byte(v) }, true
	default:
		return func() uint16 { return 0 }, func(uint16) {}, true
	}
}

func execEXG(c *CPU, mode addrMode, opnd operand) {
	pb := opnd.val8
	srcNibble, dstNibble := pb>>4, pb&0x0F
	srcGet, srcSet, _ := regByPostbyteNibble(c, srcNibble)
	dstGet, dstSet, _ := regByPostbyteNibble(c, dstNibble)
	s, d := srcGet(), dstGet()
	srcSet(d)
	dstSet(s)
	if srcNibble == 0x4 || dstNibble == 0x4 {
		c.armNMI()
	}
}

func execTFR(c *CPU, mode addrMode, opnd operand) {
	pb := opnd.val8
	dstNibble := pb & 0x0F
	srcGet, _, _ := regByPostbyteNibble(c, pb>>4)
	_, dstSet, _ := regByPostbyteNibble(c, dstNibble)
	dstSet(srcGet())
	if dstNibble == 0x4 {
		c.armNMI()
	}
}

// --- LEA/PSH/PUL ---

type idxRegSel int

const (
	regX idxRegSel = iota
	regY
	regU
	regS
)

func execLEA(reg idxRegSel) instrFunc {
	return func(c *CPU, mode addrMode, opnd operand) {
		switch reg {
		case regX:
			c.X = opnd.ea
			c.cc.z = c.X == 0
		case regY:
			c.Y = opnd.ea
			c.cc.z = c.Y == 0
		case regU:
			c.U = opnd.ea
		case regS:
			c.S = opnd.ea
			c.armNMI()
		}
	}
}

// stack-postbyte bits, shared by PSHS/PULS/PSHU/PULU: bit0=CC,1=A,2=B,
// 3=DP,4=X,5=Y,6=the other stack pointer (U from S-ops, S from U-ops),
// 7=PC.
const (
	stkCC = 1 << 0
	stkA  = 1 << 1
	stkB  = 1 << 2
	stkDP = 1 << 3
	stkX  = 1 << 4
	stkY  = 1 << 5
	stkUS = 1 << 6
	stkPC = 1 << 7
)

// stackExtraCycles counts the cycles PSH/PUL add on top of their table
// base cost: 2 per 16-bit register pair pushed/pulled (X, Y, the other
// stack pointer, PC), 1 per 8-bit register (CC, A, B, DP).
func stackExtraCycles(mask byte) int {
	wide := bits.OnesCount8(mask & (stkX | stkY | stkUS | stkPC))
	narrow := bits.OnesCount8(mask & (stkCC | stkA | stkB | stkDP))
	return 2*wide + narrow
}

func execPSH(which idxRegSel) instrFunc {
	return func(c *CPU, mode addrMode, opnd operand) {
		mask := opnd.val8
		sp := &c.S
		other := func() uint16 { return c.U }
		if which == regU {
			sp = &c.U
			other = func() uint16 { return c.S }
		}
		c.extraCycles += stackExtraCycles(mask)
		if which == regS && mask&stkPC != 0 {
			c.armNMI()
		}
		if mask&stkPC != 0 {
			*sp -= 2
			c.write16(*sp, c.PC)
		}
		if mask&stkUS != 0 {
			*sp -= 2
			c.write16(*sp, other())
		}
		if mask&stkY != 0 {
			*sp -= 2
			c.write16(*sp, c.Y)
		}
		if mask&stkX != 0 {
			*sp -= 2
			c.write16(*sp, c.X)
		}
		if mask&stkDP != 0 {
			*sp--
			c.write8(*sp, c.DP)
		}
		if mask&stkB != 0 {
			*sp--
			c.write8(*sp, c.B)
		}
		if mask&stkA != 0 {
			*sp--
			c.write8(*sp, c.A)
		}
		if mask&stkCC != 0 {
			*sp--
			c.write8(*sp, c.cc.pack())
		}
	}
}

func execPUL(which idxRegSel) instrFunc {
	return func(c *CPU, mode addrMode, opnd operand) {
		mask := opnd.val8
		sp := &c.S
		setOther := func(v uint16) { c.U = v }
		if which == regU {
			sp = &c.U
			setOther = func(v uint16) { c.S = v }
		}
		c.extraCycles += stackExtraCycles(mask)
		if which == regS && mask&stkPC != 0 {
			c.armNMI()
		}
		if mask&stkCC != 0 {
			c.cc = unpackCC(c.read8(*sp))
			*sp++
		}
		if mask&stkA != 0 {
			c.A = c.read8(*sp)
			*sp++
		}
		if mask&stkB != 0 {
			c.B = c.read8(*sp)
			*sp++
		}
		if mask&stkDP != 0 {
			c.DP = c.read8(*sp)
			*sp++
		}
		if mask&stkX != 0 {
			c.X = c.read16(*sp)
			*sp += 2
		}
		if mask&stkY != 0 {
			c.Y = c.read16(*sp)
			*sp += 2
		}
		if mask&stkUS != 0 {
			setOther(c.read16(*sp))
			*sp += 2
		}
		if mask&stkPC != 0 {
			c.PC = c.read16(*sp)
			*sp += 2
		}
	}
}
