package hostui

import (
	"encoding/binary"
	"sync"
)

// dacRingSize bounds how many pending DAC samples dacStream buffers
// before PIA1 writes start overwriting the oldest unread sample; this
// caps worst-case audio latency rather than growing unbounded.
const dacRingSize = 4096

// dacStream implements io.Reader by converting the 6-bit DAC sample
// stream PIA1 pushes via WriteDAC into 16-bit little-endian mono PCM
// frames, the format ebiten's audio.Player expects. Modeled on the
// teacher's apuStream, which performs the same pull-driven PCM
// conversion from a push-fed sample source.
type dacStream struct {
	mu      sync.Mutex
	ring    [dacRingSize]byte
	head    int
	tail    int
	count   int
	mux     uint8
	lastDAC uint8
}

// SetMux implements host.Audio; the 2-bit source selector is recorded
// but this single DAC channel doesn't distinguish sources.
func (s *dacStream) SetMux(sel uint8) {
	s.mu.Lock()
	s.mux = sel
	s.mu.Unlock()
}

// WriteDAC implements host.Audio, pushing one 6-bit sample.
func (s *dacStream) WriteDAC(v uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDAC = v
	s.ring[s.tail] = v
	s.tail = (s.tail + 1) % dacRingSize
	if s.count == dacRingSize {
		s.head = (s.head + 1) % dacRingSize // drop oldest on overflow
	} else {
		s.count++
	}
}

// Read implements io.Reader for ebiten's audio.Player: each 6-bit sample
// becomes one 16-bit PCM frame, scaled to fill the output range and
// repeated when the ring underruns so playback doesn't stall.
func (s *dacStream) Read(p []byte) (int, error) {
	if len(p) < 2 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for n+1 < len(p) {
		var sample uint8
		if s.count > 0 {
			sample = s.ring[s.head]
			s.head = (s.head + 1) % dacRingSize
			s.count--
			s.lastDAC = sample
		} else {
			sample = s.lastDAC // hold last value through underrun
		}
		pcm := int16(int32(sample)<<10 - 1<<15)
		binary.LittleEndian.PutUint16(p[n:], uint16(pcm))
		n += 2
	}
	return n, nil
}
