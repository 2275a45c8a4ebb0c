package cpu

// Condition-code bit positions, MC6809E layout (bit7 first): E F H I N Z V C.
const (
	bitC = 1 << 0
	bitV = 1 << 1
	bitZ = 1 << 2
	bitN = 1 << 3
	bitI = 1 << 4
	bitH = 1 << 5
	bitF = 1 << 6
	bitE = 1 << 7
)

// cc holds the eight condition-code flags as discrete booleans, packed
// into a byte only when pushed to the stack or read by TFR/EXG/PSH/PUL.
type cc struct {
	e, f, h, i, n, z, v, c bool
}

// pack folds the eight booleans into the CC byte pushed on the stack or
// read by TFR/EXG/PSH/PUL.
func (f cc) pack() byte {
	var b byte
	if f.e {
		b |= bitE
	}
	if f.f {
		b |= bitF
	}
	if f.h {
		b |= bitH
	}
	if f.i {
		b |= bitI
	}
	if f.n {
		b |= bitN
	}
	if f.z {
		b |= bitZ
	}
	if f.v {
		b |= bitV
	}
	if f.c {
		b |= bitC
	}
	return b
}

// unpackCC restores the eight flags from a CC byte, used by RTI/PUL/TFR/EXG,
// ORCC/ANDCC/CWAI, and Restore.
func unpackCC(b byte) cc {
	return cc{
		e: b&bitE != 0,
		f: b&bitF != 0,
		h: b&bitH != 0,
		i: b&bitI != 0,
		n: b&bitN != 0,
		z: b&bitZ != 0,
		v: b&bitV != 0,
		c: b&bitC != 0,
	}
}

func (c *CPU) setNZ8(v byte) {
	c.cc.n = v&0x80 != 0
	c.cc.z = v == 0
}

func (c *CPU) setNZ16(v uint16) {
	c.cc.n = v&0x8000 != 0
	c.cc.z = v == 0
}
