package pia

import "github.com/cocoemu/dragon64/internal/host"

// AudioMux holds the 2-bit audio source selector, whose bit 0 PIA0-CRA
// and bit 1 PIA1-CRB contribute, and forwards the combined
// value to the host on every change. Both PIAs share one AudioMux
// instance since neither owns the whole selector alone.
type AudioMux struct {
	bits  uint8
	audio host.Audio
}

// NewAudioMux returns a mux forwarding to audio. audio may be nil for a
// PIA pair with no sound output wired (tests, headless conformance runs).
func NewAudioMux(audio host.Audio) *AudioMux {
	return &AudioMux{audio: audio}
}

// SetBit sets or clears bit i (0 or 1) of the selector and pushes the
// combined value to the host.
func (m *AudioMux) SetBit(i uint8, set bool) {
	if set {
		m.bits |= 1 << i
	} else {
		m.bits &^= 1 << i
	}
	if m.audio != nil {
		m.audio.SetMux(m.bits)
	}
}

// Bits returns the current 2-bit selector value, for tests.
func (m *AudioMux) Bits() uint8 { return m.bits }

// WriteDAC forwards a 6-bit DAC sample to the host. PIA1-PA writes reach
// the DAC through the same mux instance PIA0/PIA1 share, since both the
// selector and the sample stream come from one host.Audio.
func (m *AudioMux) WriteDAC(v uint8) {
	if m.audio != nil {
		m.audio.WriteDAC(v)
	}
}
