package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSquareWaveSamples(t *testing.T) {
	w := NewSquareWave(Frequency, SampleRate, Volume)

	// starting at half phase the first sample is high, then the wave drops
	assert.Equal(t, float32(Volume), w.Next())
	assert.Equal(t, float32(-Volume), w.Next())

	high, low := 0, 0
	for range SampleRate {
		if w.Next() > 0 {
			high++
		} else {
			low++
		}
	}
	// one second holds 440 periods of roughly equal halves
	assert.True(t, math.Abs(float64(high-low)) < float64(SampleRate)/100, "high=%d low=%d", high, low)
}

func TestSquareWaveTransitions(t *testing.T) {
	w := NewSquareWave(Frequency, SampleRate, Volume)

	rising := 0
	prev := w.Next()
	for range SampleRate {
		v := w.Next()
		if prev < 0 && v > 0 {
			rising++
		}
		prev = v
	}
	assert.True(t, rising >= Frequency-1 && rising <= Frequency+1, "rising edges: %d", rising)
}

func TestSquareWaveRead(t *testing.T) {
	w := NewSquareWave(Frequency, SampleRate, Volume)

	buf := make([]byte, 10)
	n, err := w.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 8, n)

	first := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:]))
	second := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:]))
	assert.Equal(t, float32(Volume), first)
	assert.Equal(t, float32(-Volume), second)
	assert.Equal(t, []byte{0, 0}, buf[8:])
}
