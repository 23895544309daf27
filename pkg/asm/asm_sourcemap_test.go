package asm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestAssembleSourceMap(t *testing.T) {
	code := `
; Line 2: comment
ld V0, 10      ; Line 3: 0x200
               ; Line 4: empty
LABEL:         ; Line 5: label
add V0, V1     ; Line 6: 0x202
.org $210      ; Line 7: padding
cls            ; Line 8: 0x210
.byte 1, 2     ; Line 9: 0x212
jp LABEL       ; Line 10: 0x214
`

	program, sourceMap, err := Assemble(code)
	assert.NoError(t, err)
	assert.Len(t, program, 0x16)

	tests := []struct {
		addr uint16
		line int
	}{
		{0x200, 3},
		{0x202, 6},
		{0x210, 8},
		{0x212, 9},
		{0x214, 10},
	}
	for _, tt := range tests {
		line, ok := sourceMap[tt.addr]
		assert.True(t, ok, "address %03X missing", tt.addr)
		assert.Equal(t, tt.line, line)
	}
	assert.Len(t, sourceMap, len(tests))

	assert.Equal(t, byte(0x12), program[0x14])
	assert.Equal(t, byte(0x02), program[0x15])
}
