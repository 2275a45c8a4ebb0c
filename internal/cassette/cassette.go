// Package cassette wraps a .cas tape image as a byte source for PIA1's
// cassette-input bit-stream synthesizer. The core treats the file as an
// opaque octet sequence; end-of-file is padded with 0x55 rather than
// surfaced as an error, matching the original loader's behavior.
package cassette

import "io"

// eofFiller is substituted for bytes requested past end-of-file. Its
// alternating bit pattern keeps the cassette bit-stream generator's
// square wave running rather than flatlining on a read past the tape.
const eofFiller = 0x55

// Tape is a positioned read source over a mounted cassette image.
type Tape struct {
	r   io.ReadSeeker
	eof bool
}

// New wraps r as a Tape positioned at its current offset.
func New(r io.ReadSeeker) *Tape {
	return &Tape{r: r}
}

// NextByte returns the next octet from the tape. Once the underlying
// reader reaches EOF, NextByte keeps returning (0x55, false) without
// closing or rewinding the file, since PIA1 must keep driving its bit
// generator even with no more program data.
func (t *Tape) NextByte() (byte, bool) {
	if t.eof {
		return eofFiller, false
	}
	var buf [1]byte
	n, err := t.r.Read(buf[:])
	if n == 0 || err != nil {
		t.eof = true
		return eofFiller, false
	}
	return buf[0], true
}

// Rewind seeks the tape back to its start, for re-mounting the same
// image (the host loader UI, not the core, decides when to do this).
func (t *Tape) Rewind() error {
	_, err := t.r.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}
	t.eof = false
	return nil
}
