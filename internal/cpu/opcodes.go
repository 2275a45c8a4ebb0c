package cpu

// instrFunc executes one decoded instruction. opnd is the zero value for
// modeInherent opcodes; otherwise it carries the resolved effective
// address or immediate value from resolveOperand.
type instrFunc func(c *CPU, mode addrMode, opnd operand)

// opcodeEntry is one row of the decode table: mnemonic (disassembly
// only), addressing mode, base cycle count (the indexed-mode extra is
// added on top at execution time), encoded byte length including the
// opcode byte(s) themselves, and the function that performs the work.
type opcodeEntry struct {
	mnemonic string
	mode     addrMode
	cycles   int
	bytes    int
	fn       instrFunc
}

// opcodeTable is a page of 256 possible opcodes; fn is nil for undefined
// encodings.
type opcodeTable [256]opcodeEntry

func rmw(mnemonic string, mode addrMode, cycles, bytes int, op rmwOp, target rmwTarget) opcodeEntry {
	return opcodeEntry{mnemonic, mode, cycles, bytes, execRMW(op, target)}
}

func alu8(mnemonic string, mode addrMode, cycles, bytes int, op alu8Op, acc accSel, store bool) opcodeEntry {
	return opcodeEntry{mnemonic, mode, cycles, bytes, execALU8(op, acc, store)}
}

func alu16(mnemonic string, mode addrMode, cycles, bytes int, op alu16Op, reg reg16Sel, store bool) opcodeEntry {
	return opcodeEntry{mnemonic, mode, cycles, bytes, execALU16(op, reg, store)}
}

func ld16(mnemonic string, mode addrMode, cycles, bytes int, reg reg16Sel) opcodeEntry {
	return opcodeEntry{mnemonic, mode, cycles, bytes, execLD16(reg)}
}

func st16(mnemonic string, mode addrMode, cycles, bytes int, reg reg16Sel) opcodeEntry {
	return opcodeEntry{mnemonic, mode, cycles, bytes, execST16(reg)}
}

func simple(mnemonic string, mode addrMode, cycles, bytes int, fn instrFunc) opcodeEntry {
	return opcodeEntry{mnemonic, mode, cycles, bytes, fn}
}

func branch(mnemonic string, short bool, cond func(*CPU) bool) opcodeEntry {
	if short {
		return opcodeEntry{mnemonic, modeRelative, 3, 2, execBranch(cond)}
	}
	return opcodeEntry{mnemonic, modeLRelative, 5, 4, execBranch(cond)}
}

// page1Table is the unprefixed opcode page.
var page1Table = buildPage1()

// page2Table holds opcodes reached via the 0x10 prefix byte.
var page2Table = buildPage2()

// page3Table holds opcodes reached via the 0x11 prefix byte.
var page3Table = buildPage3()

func buildPage1() opcodeTable {
	var t opcodeTable

	// Read-modify-write family: direct/indexed/extended memory forms plus
	// inherent A/B register forms.
	rmwRow := func(memOpcodeBase byte, aOp byte, bOp byte, mnem string, op rmwOp) {
		t[memOpcodeBase+0x00] = rmw(mnem, modeDirect, 6, 2, op, targetMem)
		t[memOpcodeBase+0x60] = rmw(mnem, modeIndexed, 6, 2, op, targetMem)
		t[memOpcodeBase+0x70] = rmw(mnem, modeExtended, 7, 3, op, targetMem)
		t[aOp] = rmw(mnem+"A", modeInherent, 2, 1, op, targetA)
		t[bOp] = rmw(mnem+"B", modeInherent, 2, 1, op, targetB)
	}
	rmwRow(0x00, 0x40, 0x50, "NEG", negOp)
	rmwRow(0x03, 0x43, 0x53, "COM", comOp)
	rmwRow(0x04, 0x44, 0x54, "LSR", lsrOp)
	rmwRow(0x06, 0x46, 0x56, "ROR", rorOp)
	rmwRow(0x07, 0x47, 0x57, "ASR", asrOp)
	rmwRow(0x08, 0x48, 0x58, "ASL", aslOp)
	rmwRow(0x09, 0x49, 0x59, "ROL", rolOp)
	rmwRow(0x0A, 0x4A, 0x5A, "DEC", decOp)
	rmwRow(0x0C, 0x4C, 0x5C, "INC", incOp)
	rmwRow(0x0D, 0x4D, 0x5D, "TST", tstOp)
	rmwRow(0x0F, 0x4F, 0x5F, "CLR", clrOp)

	t[0x0E] = simple("JMP", modeDirect, 3, 2, execJMP)
	t[0x6E] = simple("JMP", modeIndexed, 3, 2, execJMP)
	t[0x7E] = simple("JMP", modeExtended, 4, 3, execJMP)
	t[0x9D] = simple("JSR", modeDirect, 7, 2, execJSR)
	t[0xAD] = simple("JSR", modeIndexed, 7, 2, execJSR)
	t[0xBD] = simple("JSR", modeExtended, 8, 3, execJSR)

	t[0x12] = simple("NOP", modeInherent, 2, 1, func(*CPU, addrMode, operand) {})
	t[0x13] = simple("SYNC", modeInherent, 2, 1, execSYNC)
	t[0x16] = simple("LBRA", modeLRelative, 5, 3, execBranch(func(*CPU) bool { return true }))
	t[0x17] = simple("LBSR", modeLRelative, 9, 3, execLBSR)
	t[0x19] = simple("DAA", modeInherent, 2, 1, execDAA)
	t[0x1A] = simple("ORCC", modeImmediate8, 3, 2, execORCC)
	t[0x1C] = simple("ANDCC", modeImmediate8, 3, 2, execANDCC)
	t[0x1D] = simple("SEX", modeInherent, 2, 1, execSEX)
	t[0x1E] = simple("EXG", modeImmediate8, 8, 2, execEXG)
	t[0x1F] = simple("TFR", modeImmediate8, 6, 2, execTFR)

	branches := []struct {
		op       byte
		mnemonic string
		cond     func(*CPU) bool
	}{
		{0x20, "BRA", func(*CPU) bool { return true }},
		{0x21, "BRN", func(*CPU) bool { return false }},
		{0x22, "BHI", func(c *CPU) bool { return !c.cc.c && !c.cc.z }},
		{0x23, "BLS", func(c *CPU) bool { return c.cc.c || c.cc.z }},
		{0x24, "BHS", func(c *CPU) bool { return !c.cc.c }},
		{0x25, "BLO", func(c *CPU) bool { return c.cc.c }},
		{0x26, "BNE", func(c *CPU) bool { return !c.cc.z }},
		{0x27, "BEQ", func(c *CPU) bool { return c.cc.z }},
		{0x28, "BVC", func(c *CPU) bool { return !c.cc.v }},
		{0x29, "BVS", func(c *CPU) bool { return c.cc.v }},
		{0x2A, "BPL", func(c *CPU) bool { return !c.cc.n }},
		{0x2B, "BMI", func(c *CPU) bool { return c.cc.n }},
		{0x2C, "BGE", func(c *CPU) bool { return c.cc.n == c.cc.v }},
		{0x2D, "BLT", func(c *CPU) bool { return c.cc.n != c.cc.v }},
		{0x2E, "BGT", func(c *CPU) bool { return !c.cc.z && (c.cc.n == c.cc.v) }},
		{0x2F, "BLE", func(c *CPU) bool { return c.cc.z || (c.cc.n != c.cc.v) }},
	}
	for _, b := range branches {
		t[b.op] = branch(b.mnemonic, true, b.cond)
	}

	t[0x30] = simple("LEAX", modeIndexed, 4, 2, execLEA(regX))
	t[0x31] = simple("LEAY", modeIndexed, 4, 2, execLEA(regY))
	t[0x32] = simple("LEAS", modeIndexed, 4, 2, execLEA(regS))
	t[0x33] = simple("LEAU", modeIndexed, 4, 2, execLEA(regU))
	t[0x34] = simple("PSHS", modeImmediate8, 5, 2, execPSH(regS))
	t[0x35] = simple("PULS", modeImmediate8, 5, 2, execPUL(regS))
	t[0x36] = simple("PSHU", modeImmediate8, 5, 2, execPSH(regU))
	t[0x37] = simple("PULU", modeImmediate8, 5, 2, execPUL(regU))
	t[0x39] = simple("RTS", modeInherent, 5, 1, execRTS)
	t[0x3A] = simple("ABX", modeInherent, 3, 1, execABX)
	t[0x3B] = simple("RTI", modeInherent, 6, 1, execRTI)
	t[0x3C] = simple("CWAI", modeImmediate8, 20, 2, execCWAI)
	t[0x3D] = simple("MUL", modeInherent, 11, 1, execMUL)
	t[0x3F] = simple("SWI", modeInherent, 19, 1, execSWI(vecSWI))

	for _, acc := range []struct {
		sel  accSel
		base byte
	}{{targetA, 0x80}, {targetB, 0xC0}} {
		reg := acc.sel
		base := acc.base
		t[base+0x00] = alu8("SUB"+accName(reg), modeImmediate8, 2, 2, subOp, reg, true)
		t[base+0x01] = alu8("CMP"+accName(reg), modeImmediate8, 2, 2, subOp, reg, false)
		t[base+0x02] = alu8("SBC"+accName(reg), modeImmediate8, 2, 2, sbcOp, reg, true)
		t[base+0x04] = alu8("AND"+accName(reg), modeImmediate8, 2, 2, andOp, reg, true)
		t[base+0x05] = alu8("BIT"+accName(reg), modeImmediate8, 2, 2, andOp, reg, false)
		t[base+0x06] = alu8("LD"+accName(reg), modeImmediate8, 2, 2, ldOp, reg, true)
		t[base+0x08] = alu8("EOR"+accName(reg), modeImmediate8, 2, 2, eorOp, reg, true)
		t[base+0x09] = alu8("ADC"+accName(reg), modeImmediate8, 2, 2, adcOp, reg, true)
		t[base+0x0A] = alu8("OR"+accName(reg), modeImmediate8, 2, 2, orOp, reg, true)
		t[base+0x0B] = alu8("ADD"+accName(reg), modeImmediate8, 2, 2, addOp, reg, true)

		for _, m := range []struct {
			off   byte
			mode  addrMode
			cyc   int
			bytes int
		}{
			{0x10, modeDirect, 4, 2},
			{0x20, modeIndexed, 4, 2},
			{0x30, modeExtended, 5, 3},
		} {
			o := base + m.off
			t[o+0x00] = alu8("SUB"+accName(reg), m.mode, m.cyc, m.bytes, subOp, reg, true)
			t[o+0x01] = alu8("CMP"+accName(reg), m.mode, m.cyc, m.bytes, subOp, reg, false)
			t[o+0x02] = alu8("SBC"+accName(reg), m.mode, m.cyc, m.bytes, sbcOp, reg, true)
			// o+0x03 (SUBD for the A block, ADDD for the B block) is
			// assigned explicitly below, once per addressing mode.
			t[o+0x04] = alu8("AND"+accName(reg), m.mode, m.cyc, m.bytes, andOp, reg, true)
			t[o+0x05] = alu8("BIT"+accName(reg), m.mode, m.cyc, m.bytes, andOp, reg, false)
			t[o+0x06] = alu8("LD"+accName(reg), m.mode, m.cyc, m.bytes, ldOp, reg, true)
			t[o+0x07] = opcodeEntry{"ST" + accName(reg), m.mode, m.cyc, m.bytes, execST8(reg)}
			t[o+0x08] = alu8("EOR"+accName(reg), m.mode, m.cyc, m.bytes, eorOp, reg, true)
			t[o+0x09] = alu8("ADC"+accName(reg), m.mode, m.cyc, m.bytes, adcOp, reg, true)
			t[o+0x0A] = alu8("OR"+accName(reg), m.mode, m.cyc, m.bytes, orOp, reg, true)
			t[o+0x0B] = alu8("ADD"+accName(reg), m.mode, m.cyc, m.bytes, addOp, reg, true)
		}
	}
	// 0x87/0xC7 (STA/STB immediate) are undefined encodings; clear them
	// explicitly for readability.
	t[0x87] = opcodeEntry{}
	t[0xC7] = opcodeEntry{}
	t[0x8C] = alu16("CMPX", modeImmediate16, 4, 3, cmp16Op, reg16X, false)
	t[0x9C] = alu16("CMPX", modeDirect, 6, 2, cmp16Op, reg16X, false)
	t[0xAC] = alu16("CMPX", modeIndexed, 6, 2, cmp16Op, reg16X, false)
	t[0xBC] = alu16("CMPX", modeExtended, 7, 3, cmp16Op, reg16X, false)
	t[0x83] = alu16("SUBD", modeImmediate16, 4, 3, sub16Op, reg16D, true)
	t[0x93] = alu16("SUBD", modeDirect, 6, 2, sub16Op, reg16D, true)
	t[0xA3] = alu16("SUBD", modeIndexed, 6, 2, sub16Op, reg16D, true)
	t[0xB3] = alu16("SUBD", modeExtended, 7, 3, sub16Op, reg16D, true)

	t[0x8D] = simple("BSR", modeRelative, 7, 2, execBSR)
	t[0x8E] = ld16("LDX", modeImmediate16, 3, 3, reg16X)
	t[0x9E] = ld16("LDX", modeDirect, 5, 2, reg16X)
	t[0xAE] = ld16("LDX", modeIndexed, 5, 2, reg16X)
	t[0xBE] = ld16("LDX", modeExtended, 6, 3, reg16X)
	t[0x9F] = st16("STX", modeDirect, 5, 2, reg16X)
	t[0xAF] = st16("STX", modeIndexed, 5, 2, reg16X)
	t[0xBF] = st16("STX", modeExtended, 6, 3, reg16X)

	t[0xCC] = ld16("LDD", modeImmediate16, 3, 3, reg16D)
	t[0xDC] = ld16("LDD", modeDirect, 5, 2, reg16D)
	t[0xEC] = ld16("LDD", modeIndexed, 5, 2, reg16D)
	t[0xFC] = ld16("LDD", modeExtended, 6, 3, reg16D)
	t[0xDD] = st16("STD", modeDirect, 5, 2, reg16D)
	t[0xED] = st16("STD", modeIndexed, 5, 2, reg16D)
	t[0xFD] = st16("STD", modeExtended, 6, 3, reg16D)

	t[0xC3] = alu16("ADDD", modeImmediate16, 4, 3, add16Op, reg16D, true)
	t[0xD3] = alu16("ADDD", modeDirect, 6, 2, add16Op, reg16D, true)
	t[0xE3] = alu16("ADDD", modeIndexed, 6, 2, add16Op, reg16D, true)
	t[0xF3] = alu16("ADDD", modeExtended, 7, 3, add16Op, reg16D, true)

	t[0xCE] = ld16("LDU", modeImmediate16, 3, 3, reg16U)
	t[0xDE] = ld16("LDU", modeDirect, 5, 2, reg16U)
	t[0xEE] = ld16("LDU", modeIndexed, 5, 2, reg16U)
	t[0xFE] = ld16("LDU", modeExtended, 6, 3, reg16U)
	t[0xDF] = st16("STU", modeDirect, 5, 2, reg16U)
	t[0xEF] = st16("STU", modeIndexed, 5, 2, reg16U)
	t[0xFF] = st16("STU", modeExtended, 6, 3, reg16U)

	return t
}

func buildPage2() opcodeTable {
	var t opcodeTable

	longBranches := []struct {
		op   byte
		name string
		cond func(*CPU) bool
	}{
		{0x21, "LBRN", func(*CPU) bool { return false }},
		{0x22, "LBHI", func(c *CPU) bool { return !c.cc.c && !c.cc.z }},
		{0x23, "LBLS", func(c *CPU) bool { return c.cc.c || c.cc.z }},
		{0x24, "LBHS", func(c *CPU) bool { return !c.cc.c }},
		{0x25, "LBLO", func(c *CPU) bool { return c.cc.c }},
		{0x26, "LBNE", func(c *CPU) bool { return !c.cc.z }},
		{0x27, "LBEQ", func(c *CPU) bool { return c.cc.z }},
		{0x28, "LBVC", func(c *CPU) bool { return !c.cc.v }},
		{0x29, "LBVS", func(c *CPU) bool { return c.cc.v }},
		{0x2A, "LBPL", func(c *CPU) bool { return !c.cc.n }},
		{0x2B, "LBMI", func(c *CPU) bool { return c.cc.n }},
		{0x2C, "LBGE", func(c *CPU) bool { return c.cc.n == c.cc.v }},
		{0x2D, "LBLT", func(c *CPU) bool { return c.cc.n != c.cc.v }},
		{0x2E, "LBGT", func(c *CPU) bool { return !c.cc.z && (c.cc.n == c.cc.v) }},
		{0x2F, "LBLE", func(c *CPU) bool { return c.cc.z || (c.cc.n != c.cc.v) }},
	}
	for _, b := range longBranches {
		t[b.op] = branch(b.name, false, b.cond)
	}

	t[0x3F] = simple("SWI2", modeInherent, 20, 2, execSWI(vecSWI2))
	t[0x83] = alu16("CMPD", modeImmediate16, 5, 4, cmp16Op, reg16D, false)
	t[0x93] = alu16("CMPD", modeDirect, 7, 3, cmp16Op, reg16D, false)
	t[0xA3] = alu16("CMPD", modeIndexed, 7, 3, cmp16Op, reg16D, false)
	t[0xB3] = alu16("CMPD", modeExtended, 8, 4, cmp16Op, reg16D, false)
	t[0x8C] = alu16("CMPY", modeImmediate16, 5, 4, cmp16Op, reg16Y, false)
	t[0x9C] = alu16("CMPY", modeDirect, 7, 3, cmp16Op, reg16Y, false)
	t[0xAC] = alu16("CMPY", modeIndexed, 7, 3, cmp16Op, reg16Y, false)
	t[0xBC] = alu16("CMPY", modeExtended, 8, 4, cmp16Op, reg16Y, false)
	t[0x8E] = ld16("LDY", modeImmediate16, 4, 4, reg16Y)
	t[0x9E] = ld16("LDY", modeDirect, 6, 3, reg16Y)
	t[0xAE] = ld16("LDY", modeIndexed, 6, 3, reg16Y)
	t[0xBE] = ld16("LDY", modeExtended, 7, 4, reg16Y)
	t[0x9F] = st16("STY", modeDirect, 6, 3, reg16Y)
	t[0xAF] = st16("STY", modeIndexed, 6, 3, reg16Y)
	t[0xBF] = st16("STY", modeExtended, 7, 4, reg16Y)
	t[0xCE] = ld16("LDS", modeImmediate16, 4, 4, reg16S)
	t[0xDE] = ld16("LDS", modeDirect, 6, 3, reg16S)
	t[0xEE] = ld16("LDS", modeIndexed, 6, 3, reg16S)
	t[0xFE] = ld16("LDS", modeExtended, 7, 4, reg16S)
	t[0xDF] = st16("STS", modeDirect, 6, 3, reg16S)
	t[0xEF] = st16("STS", modeIndexed, 6, 3, reg16S)
	t[0xFF] = st16("STS", modeExtended, 7, 4, reg16S)

	return t
}

func buildPage3() opcodeTable {
	var t opcodeTable

	t[0x3F] = simple("SWI3", modeInherent, 20, 2, execSWI(vecSWI3))
	t[0x83] = alu16("CMPU", modeImmediate16, 5, 4, cmp16Op, reg16U, false)
	t[0x93] = alu16("CMPU", modeDirect, 7, 3, cmp16Op, reg16U, false)
	t[0xA3] = alu16("CMPU", modeIndexed, 7, 3, cmp16Op, reg16U, false)
	t[0xB3] = alu16("CMPU", modeExtended, 8, 4, cmp16Op, reg16U, false)
	t[0x8C] = alu16("CMPS", modeImmediate16, 5, 4, cmp16Op, reg16S, false)
	t[0x9C] = alu16("CMPS", modeDirect, 7, 3, cmp16Op, reg16S, false)
	t[0xAC] = alu16("CMPS", modeIndexed, 7, 3, cmp16Op, reg16S, false)
	t[0xBC] = alu16("CMPS", modeExtended, 8, 4, cmp16Op, reg16S, false)

	return t
}

func accName(a accSel) string {
	if a == targetA {
		return "A"
	}
	return "B"
}
