package asm

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"

	"gochip8/pkg/cpu"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0x00E0, "cls"},
		{0x00EE, "ret"},
		{0x1200, "jp $200"},
		{0xB234, "jp V0, $234"},
		{0x2456, "call $456"},
		{0x3A05, "se VA, $05"},
		{0x4A05, "sne VA, $05"},
		{0x5230, "se V2, V3"},
		{0x9230, "sne V2, V3"},
		{0x6A05, "ld VA, $05"},
		{0x7A05, "add VA, $05"},
		{0x8230, "ld V2, V3"},
		{0x8231, "or V2, V3"},
		{0x8232, "and V2, V3"},
		{0x8233, "xor V2, V3"},
		{0x8234, "add V2, V3"},
		{0x8235, "sub V2, V3"},
		{0x8236, "shr V2, V3"},
		{0x8237, "subn V2, V3"},
		{0x823E, "shl V2, V3"},
		{0xA123, "ld I, $123"},
		{0xC20F, "rnd V2, $0F"},
		{0xD235, "drw V2, V3, $5"},
		{0xE29E, "skp V2"},
		{0xE2A1, "sknp V2"},
		{0xF207, "ld V2, DT"},
		{0xF20A, "ld V2, K"},
		{0xF215, "ld DT, V2"},
		{0xF218, "ld ST, V2"},
		{0xF21E, "add I, V2"},
		{0xF229, "ld F, V2"},
		{0xF233, "ld B, V2"},
		{0xF255, "ld [I], V2"},
		{0xF265, "ld V2, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			line, err := Disassemble(tt.word)
			assert.NoError(t, err)
			assert.True(t, line.Known)
			assert.Equal(t, tt.word, line.Word)
			assert.Equal(t, tt.want, line.String())
		})
	}
}

func TestDisassembleUnknown(t *testing.T) {
	for _, w := range []uint16{0xF0FF, 0xE0FF, 0x5121, 0x0123} {
		line, err := Disassemble(w)
		assert.False(t, line.Known, "word %04X", w)
		if err == nil {
			continue
		}
		var decodeErr *cpu.DecodeError
		assert.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, w, decodeErr.Word)
		assert.Equal(t, ".word", line.Name)
	}
}

func TestIsSkip(t *testing.T) {
	for _, w := range []uint16{0x3A05, 0x4A05, 0x5230, 0x9230, 0xE29E, 0xE2A1} {
		line, err := Disassemble(w)
		assert.NoError(t, err)
		assert.True(t, line.IsSkip(), "word %04X", w)
	}
	line, err := Disassemble(0x1200)
	assert.NoError(t, err)
	assert.False(t, line.IsSkip())
}

func TestLookup(t *testing.T) {
	tests := []struct {
		word uint16
		name string
	}{
		{0x00E0, chip8.ClsName},
		{0x1ABC, chip8.JpName},
		{0xB123, chip8.JpName},
		{0x8126, chip8.ShrName},
		{0xF21E, chip8.AddName},
		{0xF265, chip8.LdName},
	}

	for _, tt := range tests {
		op, ok := Lookup(tt.word)
		assert.True(t, ok, "word %04X", tt.word)
		assert.Equal(t, tt.name, op.Instruction.Name)
		assert.Equal(t, op.Info.Value, tt.word&op.Info.Mask)
	}

	_, ok := Lookup(0xF0FF)
	assert.False(t, ok)
}

func TestDisassembleProgram(t *testing.T) {
	lines := DisassembleProgram([]byte{0x00, 0xE0, 0x12, 0x00, 0xAB})
	assert.Len(t, lines, 3)

	assert.Equal(t, uint16(0x200), lines[0].Address)
	assert.Equal(t, "cls", lines[0].String())
	assert.Equal(t, uint16(0x202), lines[1].Address)
	assert.Equal(t, "jp $200", lines[1].String())
	assert.Equal(t, uint16(0x204), lines[2].Address)
	assert.Equal(t, ".byte $AB", lines[2].String())

	listing := Listing(lines)
	assert.Equal(t, "200  00E0  cls\n202  1200  jp $200\n204  00AB  .byte $AB\n", listing)
}

// TestRoundTrip feeds the disassembly of every instruction back into the
// assembler.
func TestRoundTrip(t *testing.T) {
	var words []uint16
	for x := uint16(0); x < 16; x++ {
		words = append(words,
			0x3000|x<<8|0x5A,
			0x6000|x<<8|0xFF,
			0x8004|x<<8|(15-x)<<4,
			0x8006|x<<8|x<<4,
			0xD000|x<<8|0x3F,
			0xE09E|x<<8,
			0xF033|x<<8,
			0xF065|x<<8,
		)
	}
	words = append(words, 0x00E0, 0x00EE, 0x1FFF, 0x2ABC, 0xB000, 0xA200)

	var sb strings.Builder
	var image []byte
	for _, w := range words {
		line, err := Disassemble(w)
		assert.NoError(t, err)
		sb.WriteString(line.String())
		sb.WriteByte('\n')
		image = append(image, byte(w>>8), byte(w))
	}

	program, _, err := Assemble(sb.String())
	assert.NoError(t, err)
	assert.Equal(t, image, program)
}

func TestRoundTripProgram(t *testing.T) {
	program, _, err := Assemble(mediumProgram)
	assert.NoError(t, err)

	// the code ends at the table label; only instructions round trip
	var sb strings.Builder
	for _, line := range DisassembleProgram(program[:len(program)-4]) {
		assert.True(t, line.Known, "address %03X", line.Address)
		sb.WriteString(line.String())
		sb.WriteByte('\n')
	}
	sb.WriteString(".byte $0A, $0B, $0C, $0D\n")

	again, _, err := Assemble(sb.String())
	assert.NoError(t, err)
	assert.Equal(t, program, again)
}
