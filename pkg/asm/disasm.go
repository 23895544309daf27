package asm

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"

	"gochip8/pkg/cpu"
)

// Line is one disassembled instruction.
type Line struct {
	Address uint16
	Word    uint16
	Name    string
	Params  string
	Known   bool
}

func (l Line) String() string {
	if l.Params == "" {
		return l.Name
	}
	return l.Name + " " + l.Params
}

// IsSkip reports whether the instruction conditionally skips the next one.
func (l Line) IsSkip() bool {
	return chip8.SkipInstructions.Contains(l.Name)
}

// Lookup finds the opcode table entry matching w.
func Lookup(w uint16) (chip8.Opcode, bool) {
	firstNibble := (w & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&w == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8.Opcode{}, false
}

// Disassemble renders the instruction word w. Known is false for words the
// interpreter does not execute. A word missing from the opcode table as well
// is rendered as a .word directive together with a *cpu.DecodeError.
func Disassemble(w uint16) (Line, error) {
	in := cpu.Decode(w)
	line := Line{Word: w, Known: true}

	ins, params := decodeParams(in)
	if ins == nil {
		if op, ok := Lookup(w); ok {
			line.Name = op.Instruction.Name
			line.Params = fmt.Sprintf("$%03X", in.NNN)
			line.Known = false
			return line, nil
		}
		line.Name = ".word"
		line.Params = fmt.Sprintf("$%04X", w)
		line.Known = false
		return line, &cpu.DecodeError{Word: w}
	}

	line.Name = ins.Name
	line.Params = params
	return line, nil
}

// DisassembleProgram renders a program image loaded at cpu.ProgramStart,
// one line per 16-bit word. A trailing odd byte is rendered as .byte.
func DisassembleProgram(program []byte) []Line {
	lines := make([]Line, 0, len(program)/2+1)
	for i := 0; i+1 < len(program); i += 2 {
		w := uint16(program[i])<<8 | uint16(program[i+1])
		line, _ := Disassemble(w)
		line.Address = uint16(cpu.ProgramStart + i)
		lines = append(lines, line)
	}
	if len(program)%2 == 1 {
		last := len(program) - 1
		lines = append(lines, Line{
			Address: uint16(cpu.ProgramStart + last),
			Word:    uint16(program[last]),
			Name:    ".byte",
			Params:  fmt.Sprintf("$%02X", program[last]),
		})
	}
	return lines
}

// Listing formats lines as address, word and text columns.
func Listing(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sb, "%03X  %04X  %s\n", l.Address, l.Word, l)
	}
	return sb.String()
}

func decodeParams(in cpu.Instruction) (*chip8.Instruction, string) {
	x, y := in.X, in.Y

	switch in.I {
	case 0x0:
		switch in.NNN {
		case 0x0E0:
			return chip8.ClsInst, ""
		case 0x0EE:
			return chip8.RetInst, ""
		}
	case 0x1:
		return chip8.JpInst, fmt.Sprintf("$%03X", in.NNN)
	case 0x2:
		return chip8.CallInst, fmt.Sprintf("$%03X", in.NNN)
	case 0x3:
		return chip8.SeInst, fmt.Sprintf("V%X, $%02X", x, in.NN)
	case 0x4:
		return chip8.SneInst, fmt.Sprintf("V%X, $%02X", x, in.NN)
	case 0x5:
		if in.N == 0 {
			return chip8.SeInst, fmt.Sprintf("V%X, V%X", x, y)
		}
	case 0x6:
		return chip8.LdInst, fmt.Sprintf("V%X, $%02X", x, in.NN)
	case 0x7:
		return chip8.AddInst, fmt.Sprintf("V%X, $%02X", x, in.NN)
	case 0x8:
		return decodeALU(in)
	case 0x9:
		if in.N == 0 {
			return chip8.SneInst, fmt.Sprintf("V%X, V%X", x, y)
		}
	case 0xA:
		return chip8.LdInst, fmt.Sprintf("I, $%03X", in.NNN)
	case 0xB:
		return chip8.JpInst, fmt.Sprintf("V0, $%03X", in.NNN)
	case 0xC:
		return chip8.RndInst, fmt.Sprintf("V%X, $%02X", x, in.NN)
	case 0xD:
		return chip8.DrwInst, fmt.Sprintf("V%X, V%X, $%X", x, y, in.N)
	case 0xE:
		switch in.NN {
		case 0x9E:
			return chip8.SkpInst, fmt.Sprintf("V%X", x)
		case 0xA1:
			return chip8.SknpInst, fmt.Sprintf("V%X", x)
		}
	case 0xF:
		return decodeMisc(in)
	}
	return nil, ""
}

func decodeALU(in cpu.Instruction) (*chip8.Instruction, string) {
	regs := fmt.Sprintf("V%X, V%X", in.X, in.Y)

	switch in.N {
	case 0x0:
		return chip8.LdInst, regs
	case 0x1:
		return chip8.OrInst, regs
	case 0x2:
		return chip8.AndInst, regs
	case 0x3:
		return chip8.XorInst, regs
	case 0x4:
		return chip8.AddInst, regs
	case 0x5:
		return chip8.SubInst, regs
	case 0x6:
		return chip8.ShrInst, regs
	case 0x7:
		return chip8.SubnInst, regs
	case 0xE:
		return chip8.ShlInst, regs
	}
	return nil, ""
}

func decodeMisc(in cpu.Instruction) (*chip8.Instruction, string) {
	x := in.X

	switch in.NN {
	case 0x07:
		return chip8.LdInst, fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return chip8.LdInst, fmt.Sprintf("V%X, K", x)
	case 0x15:
		return chip8.LdInst, fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return chip8.LdInst, fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return chip8.AddInst, fmt.Sprintf("I, V%X", x)
	case 0x29:
		return chip8.LdInst, fmt.Sprintf("F, V%X", x)
	case 0x33:
		return chip8.LdInst, fmt.Sprintf("B, V%X", x)
	case 0x55:
		return chip8.LdInst, fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return chip8.LdInst, fmt.Sprintf("V%X, [I]", x)
	}
	return nil, ""
}
