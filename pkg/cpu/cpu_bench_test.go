package cpu

import (
	"testing"
)

func newBenchCPU(b *testing.B, words ...uint16) *CPU {
	b.Helper()
	c, err := NewCPU(WithRandom(func() uint8 { return 0x5A }))
	if err != nil {
		b.Fatal(err)
	}
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	if err := c.LoadProgram(program); err != nil {
		b.Fatal(err)
	}
	return c
}

// BenchmarkCPU_Loop measures the raw dispatch overhead of the Step loop with
// a register load and a jump.
func BenchmarkCPU_Loop(b *testing.B) {
	c := newBenchCPU(b, 0x6001, 0x1200)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Step(nil); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCPU_ALU measures 8XY4 throughput.
func BenchmarkCPU_ALU(b *testing.B) {
	c := newBenchCPU(b, 0x8124, 0x8125, 0x812E, 0x1200)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Step(nil); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCPU_Draw measures a full height sprite draw followed by a clear.
func BenchmarkCPU_Draw(b *testing.B) {
	c := newBenchCPU(b, 0xA050, 0xD01F, 0xC10F, 0x00E0, 0x1200)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Step(nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFramebuffer_RGBA(b *testing.B) {
	var fb Framebuffer
	for y := range uint8(Height) {
		fb.DrawSprite(y, y, 0xAA)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = fb.Image()
	}
}
