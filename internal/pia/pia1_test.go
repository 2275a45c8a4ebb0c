package pia

import (
	"bytes"
	"testing"

	"github.com/cocoemu/dragon64/internal/cassette"
	"github.com/cocoemu/dragon64/internal/memory"
)

type fakeVDGSink struct {
	piaMode byte
	css     bool
}

func (f *fakeVDGSink) SetPIAMode(bits byte) { f.piaMode = bits }
func (f *fakeVDGSink) SetCSS(css bool)      { f.css = css }

type fakeAudio struct {
	mux uint8
	dac uint8
}

func (f *fakeAudio) SetMux(sel uint8)   { f.mux = sel }
func (f *fakeAudio) WriteDAC(v uint8)   { f.dac = v }

type fakeLoader struct {
	tape *cassette.Tape
	ok   bool
}

func (f *fakeLoader) Mount() (*cassette.Tape, bool) { return f.tape, f.ok }

func TestPIA1PushesVideoModeOnPBWrite(t *testing.T) {
	mem := memory.New()
	sink := &fakeVDGSink{}
	NewPIA1(mem, 0xFF20, nil, sink, nil)

	mem.Write(0xFF22, 0b10101001) // G GM2 GM1 GM0 AINT=0b10101, CSS=1
	if sink.piaMode != 0b10101 {
		t.Fatalf("got pia mode %05b want 10101", sink.piaMode)
	}
	if !sink.css {
		t.Fatalf("expected css true")
	}
}

func TestPIA1WriteDACShiftsUpperSixBits(t *testing.T) {
	mem := memory.New()
	audio := &fakeAudio{}
	mux := NewAudioMux(audio)
	NewPIA1(mem, 0xFF20, mux, nil, nil)

	mem.Write(0xFF20, 0xFC) // upper 6 bits = 0x3F
	if audio.dac != 0x3F {
		t.Fatalf("got dac %#02x want 0x3F", audio.dac)
	}
}

func TestPIA1MotorOnMountsCassette(t *testing.T) {
	mem := memory.New()
	tape := cassette.New(bytes.NewReader([]byte{0xAB, 0xCD}))
	loader := &fakeLoader{tape: tape, ok: true}
	p := NewPIA1(mem, 0xFF20, nil, nil, loader)

	mem.Write(0xFF21, 0b00111000) // CA2 asserted pattern with motor bit set
	if !p.motorOn {
		t.Fatalf("expected motorOn true after CA2-asserted transition with motor bit set")
	}
	if p.tape == nil {
		t.Fatalf("expected tape mounted")
	}
}

func TestPIA1CassetteEOFPadsWith0x55(t *testing.T) {
	mem := memory.New()
	tape := cassette.New(bytes.NewReader(nil))
	loader := &fakeLoader{tape: tape, ok: true}
	p := NewPIA1(mem, 0xFF20, nil, nil, loader)
	mem.Write(0xFF21, 0b00111000)

	if p.curByte != 0x55 {
		t.Fatalf("got curByte %#02x want 0x55 at EOF", p.curByte)
	}
}

func TestPIA1AudioMuxBit1SetOnCRBTransition(t *testing.T) {
	mem := memory.New()
	audio := &fakeAudio{}
	mux := NewAudioMux(audio)
	NewPIA1(mem, 0xFF20, mux, nil, nil)

	mem.Write(0xFF23, 0b00111000)
	if mux.Bits()&0x02 == 0 {
		t.Fatalf("expected audio mux bit 1 set, got %02b", mux.Bits())
	}
}
