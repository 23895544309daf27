package cpu

import "fmt"

// Instruction holds the fields of one decoded 16-bit instruction word.
type Instruction struct {
	Word uint16
	I    uint8 // opcode family, bits 12-15
	X    uint8 // bits 8-11
	Y    uint8 // bits 4-7
	N    uint8 // bits 0-3
	NN   uint8
	NNN  uint16
}

// Decode splits w into its instruction fields. It performs no validation.
func Decode(w uint16) Instruction {
	return Instruction{
		Word: w,
		I:    uint8(w >> 12),
		X:    uint8(w>>8) & 0xF,
		Y:    uint8(w>>4) & 0xF,
		N:    uint8(w) & 0xF,
		NN:   uint8(w),
		NNN:  w & 0xFFF,
	}
}

func (in Instruction) String() string {
	return fmt.Sprintf("%04X", in.Word)
}
