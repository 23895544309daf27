// Package audio implements the buzzer driven by the sound timer.
package audio

import (
	"encoding/binary"
	"math"
)

const (
	SampleRate = 44100
	Frequency  = 440
	Volume     = 0.02
)

// SquareWave is an endless mono float32 little endian square wave.
type SquareWave struct {
	phaseInc float32
	phase    float32
	volume   float32
}

// NewSquareWave returns a wave of the given frequency for sampleRate.
func NewSquareWave(frequency float32, sampleRate int, volume float32) *SquareWave {
	return &SquareWave{
		phaseInc: frequency / float32(sampleRate),
		phase:    0.5,
		volume:   volume,
	}
}

// Next returns the next sample.
func (s *SquareWave) Next() float32 {
	v := -s.volume
	if s.phase <= 0.5 {
		v = s.volume
	}
	s.phase = float32(math.Mod(float64(s.phase+s.phaseInc), 1))
	return v
}

// Read fills p with whole samples. Trailing bytes that do not form a
// complete sample are left untouched.
func (s *SquareWave) Read(p []byte) (int, error) {
	n := len(p) / 4 * 4
	for i := 0; i < n; i += 4 {
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(s.Next()))
	}
	return n, nil
}
