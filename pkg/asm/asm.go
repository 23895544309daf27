package asm

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"

	"gochip8/pkg/cpu"
)

// operand kinds accepted by the instruction forms below.
const (
	opReg   = iota // V0..VF
	opByte         // 8 bit immediate
	opAddr         // 12 bit address or label
	opNib          // 4 bit immediate
	opI            // I
	opIndI         // [I]
	opDT
	opST
	opK
	opF
	opB
	opV0
)

type form struct {
	operands []int
	base     uint16
}

// forms lists the encodings of every mnemonic. Forms are tried in order and
// the first whose operand kinds match is used.
var forms = map[string][]form{
	chip8.ClsName:  {{nil, 0x00E0}},
	chip8.RetName:  {{nil, 0x00EE}},
	chip8.JpName:   {{[]int{opAddr}, 0x1000}, {[]int{opV0, opAddr}, 0xB000}},
	chip8.CallName: {{[]int{opAddr}, 0x2000}},
	chip8.SeName:   {{[]int{opReg, opReg}, 0x5000}, {[]int{opReg, opByte}, 0x3000}},
	chip8.SneName:  {{[]int{opReg, opReg}, 0x9000}, {[]int{opReg, opByte}, 0x4000}},
	chip8.LdName: {
		{[]int{opReg, opReg}, 0x8000},
		{[]int{opReg, opDT}, 0xF007},
		{[]int{opReg, opK}, 0xF00A},
		{[]int{opReg, opIndI}, 0xF065},
		{[]int{opReg, opByte}, 0x6000},
		{[]int{opI, opAddr}, 0xA000},
		{[]int{opDT, opReg}, 0xF015},
		{[]int{opST, opReg}, 0xF018},
		{[]int{opF, opReg}, 0xF029},
		{[]int{opB, opReg}, 0xF033},
		{[]int{opIndI, opReg}, 0xF055},
	},
	chip8.AddName: {
		{[]int{opReg, opReg}, 0x8004},
		{[]int{opReg, opByte}, 0x7000},
		{[]int{opI, opReg}, 0xF01E},
	},
	chip8.OrName:   {{[]int{opReg, opReg}, 0x8001}},
	chip8.AndName:  {{[]int{opReg, opReg}, 0x8002}},
	chip8.XorName:  {{[]int{opReg, opReg}, 0x8003}},
	chip8.SubName:  {{[]int{opReg, opReg}, 0x8005}},
	chip8.ShrName:  {{[]int{opReg}, 0x8006}, {[]int{opReg, opReg}, 0x8006}},
	chip8.SubnName: {{[]int{opReg, opReg}, 0x8007}},
	chip8.ShlName:  {{[]int{opReg}, 0x800E}, {[]int{opReg, opReg}, 0x800E}},
	chip8.RndName:  {{[]int{opReg, opByte}, 0xC000}},
	chip8.DrwName:  {{[]int{opReg, opReg, opNib}, 0xD000}},
	chip8.SkpName:  {{[]int{opReg}, 0xE09E}},
	chip8.SknpName: {{[]int{opReg}, 0xE0A1}},
}

// keywords are operand tokens that are never labels.
var keywords = map[string]int{
	"I":   opI,
	"[I]": opIndI,
	"DT":  opDT,
	"ST":  opST,
	"K":   opK,
	"F":   opF,
	"B":   opB,
}

type Assembler struct {
	labels map[string]uint16
}

type parsedLine struct {
	lineNo   int
	labels   []string
	mnemonic string
	operands []string
}

func NewAssembler() *Assembler {
	return &Assembler{
		labels: make(map[string]uint16),
	}
}

// Assemble translates source into a program image to be loaded at
// cpu.ProgramStart. The returned source map is keyed by absolute address.
func Assemble(code string) ([]byte, map[uint16]int, error) {
	return NewAssembler().Assemble(code)
}

func (a *Assembler) Assemble(code string) ([]byte, map[uint16]int, error) {
	lines := strings.Split(code, "\n")

	if err := a.pass1(lines); err != nil {
		return nil, nil, err
	}

	return a.pass2(lines)
}

func (a *Assembler) pass1(lines []string) error {
	address := uint32(cpu.ProgramStart)

	for i, raw := range lines {
		lineNo := i + 1
		p, err := parseLine(raw, lineNo)
		if err != nil {
			return err
		}

		for _, lbl := range p.labels {
			if address >= cpu.MemorySize {
				return errors.Errorf("label '%s' on line %d points past addressable memory", lbl, lineNo)
			}
			key := normalizeLabel(lbl)
			if _, exists := a.labels[key]; exists {
				return errors.Errorf("duplicate label '%s' on line %d", lbl, lineNo)
			}
			a.labels[key] = uint16(address)
		}

		if p.mnemonic == "" {
			continue
		}

		if p.mnemonic == ".org" {
			target, err := parseOrigin(p.operands, uint32(address), lineNo)
			if err != nil {
				return err
			}
			address = target
			continue
		}

		length, err := directiveLength(p)
		if err != nil {
			return err
		}
		if length == 0 {
			if _, ok := forms[p.mnemonic]; !ok {
				return errors.Errorf("unknown instruction on line %d: %s", lineNo, p.mnemonic)
			}
			length = 2
		}

		if address+length > cpu.MemorySize {
			return errors.Errorf("program too large near line %d", lineNo)
		}
		address += length
	}

	return nil
}

func (a *Assembler) pass2(lines []string) ([]byte, map[uint16]int, error) {
	program := make([]byte, 0)
	sourceMap := make(map[uint16]int)

	for i, raw := range lines {
		lineNo := i + 1
		p, err := parseLine(raw, lineNo)
		if err != nil {
			return nil, nil, err
		}

		if p.mnemonic == "" {
			continue
		}

		address := uint32(cpu.ProgramStart + len(program))

		switch p.mnemonic {
		case ".org":
			target, err := parseOrigin(p.operands, address, lineNo)
			if err != nil {
				return nil, nil, err
			}
			program = append(program, make([]byte, target-address)...)
			continue

		case ".byte":
			sourceMap[uint16(address)] = lineNo
			for _, op := range p.operands {
				val, err := a.parseImmediate(op, 0xFF, lineNo)
				if err != nil {
					return nil, nil, err
				}
				program = append(program, byte(val))
			}
			continue

		case ".word":
			sourceMap[uint16(address)] = lineNo
			for _, op := range p.operands {
				val, err := a.parseImmediate(op, 0xFFFF, lineNo)
				if err != nil {
					return nil, nil, err
				}
				program = append(program, byte(val>>8), byte(val))
			}
			continue
		}

		word, err := a.encode(p)
		if err != nil {
			return nil, nil, err
		}
		sourceMap[uint16(address)] = lineNo
		program = append(program, byte(word>>8), byte(word))
	}

	return program, sourceMap, nil
}

// encode selects the first form of the mnemonic whose operand kinds match
// the tokens. Range and label errors are reported against that form.
func (a *Assembler) encode(p parsedLine) (uint16, error) {
	candidates, ok := forms[p.mnemonic]
	if !ok {
		return 0, errors.Errorf("unknown instruction on line %d: %s", p.lineNo, p.mnemonic)
	}

	arity := false
	for _, f := range candidates {
		if len(f.operands) != len(p.operands) {
			continue
		}
		arity = true
		if matchesForm(f, p.operands) {
			return a.encodeForm(f, p)
		}
	}
	if !arity {
		return 0, errors.Errorf("%s does not take %d operands on line %d", p.mnemonic, len(p.operands), p.lineNo)
	}
	return 0, errors.Errorf("invalid operands for %s on line %d: %s", p.mnemonic, p.lineNo, strings.Join(p.operands, ", "))
}

// matchesForm reports whether every token is of the operand kind the form
// expects. Immediates are not range checked here.
func matchesForm(f form, tokens []string) bool {
	for i, kind := range f.operands {
		token := tokens[i]
		_, regErr := parseRegister(token, 0)
		keyword, isKw := keywords[strings.ToUpper(token)]

		switch kind {
		case opReg:
			if regErr != nil {
				return false
			}
		case opV0:
			if strings.ToUpper(token) != "V0" {
				return false
			}
		case opByte, opAddr, opNib:
			if regErr == nil || isKw {
				return false
			}
		default:
			if !isKw || keyword != kind {
				return false
			}
		}
	}
	return true
}

func (a *Assembler) encodeForm(f form, p parsedLine) (uint16, error) {
	word := f.base
	regSlot := 0

	for i, kind := range f.operands {
		token := p.operands[i]

		var limit uint16
		switch kind {
		case opReg:
			reg, err := parseRegister(token, p.lineNo)
			if err != nil {
				return 0, err
			}
			if regSlot == 0 {
				word |= reg << 8
			} else {
				word |= reg << 4
			}
			regSlot++
			continue
		case opByte:
			limit = 0xFF
		case opAddr:
			limit = 0xFFF
		case opNib:
			limit = 0xF
		default:
			continue
		}

		val, err := a.parseImmediate(token, limit, p.lineNo)
		if err != nil {
			return 0, err
		}
		word |= val
	}

	return word, nil
}

func parseOrigin(operands []string, address uint32, lineNo int) (uint32, error) {
	if len(operands) != 1 {
		return 0, errors.Errorf(".org expects exactly one operand on line %d", lineNo)
	}
	target, err := parseNumber(operands[0])
	if err != nil {
		return 0, errors.Errorf("invalid .org value on line %d: %s", lineNo, operands[0])
	}
	if target >= cpu.MemorySize {
		return 0, errors.Errorf(".org out of range on line %d: %s", lineNo, operands[0])
	}
	if uint32(target) < address {
		return 0, errors.Errorf("cannot move origin backward on line %d", lineNo)
	}
	return uint32(target), nil
}

// directiveLength returns the size of a data directive, or 0 for instructions.
func directiveLength(p parsedLine) (uint32, error) {
	switch p.mnemonic {
	case ".byte", ".word":
		if len(p.operands) == 0 {
			return 0, errors.Errorf("%s expects at least one operand on line %d", p.mnemonic, p.lineNo)
		}
		size := uint32(1)
		if p.mnemonic == ".word" {
			size = 2
		}
		return size * uint32(len(p.operands)), nil
	}
	if strings.HasPrefix(p.mnemonic, ".") {
		return 0, errors.Errorf("unknown directive on line %d: %s", p.lineNo, p.mnemonic)
	}
	return 0, nil
}

func parseLine(raw string, lineNo int) (parsedLine, error) {
	p := parsedLine{lineNo: lineNo}

	line := strings.TrimSpace(stripComments(raw))
	if line == "" {
		return p, nil
	}

	for {
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			break
		}

		beforeColon := strings.TrimSpace(line[:colon])
		if strings.ContainsAny(beforeColon, " \t") {
			break
		}

		if !isIdentifier(beforeColon) {
			return p, errors.Errorf("invalid label '%s' on line %d", beforeColon, lineNo)
		}

		p.labels = append(p.labels, beforeColon)
		line = strings.TrimSpace(line[colon+1:])
		if line == "" {
			return p, nil
		}
	}

	fields := strings.Fields(normalizeInstructionText(line))
	if len(fields) == 0 {
		return p, nil
	}

	p.mnemonic = strings.ToLower(fields[0])
	if len(fields) > 1 {
		p.operands = fields[1:]
	}

	return p, nil
}

func stripComments(line string) string {
	semicolon := strings.Index(line, ";")
	doubleSlash := strings.Index(line, "//")

	cut := -1
	if semicolon >= 0 {
		cut = semicolon
	}
	if doubleSlash >= 0 && (cut == -1 || doubleSlash < cut) {
		cut = doubleSlash
	}
	if cut >= 0 {
		return line[:cut]
	}
	return line
}

func normalizeInstructionText(line string) string {
	replacer := strings.NewReplacer(",", " ", "[ ", "[", " ]", "]")
	return replacer.Replace(line)
}

func parseRegister(token string, lineNo int) (uint16, error) {
	upper := strings.ToUpper(token)
	if len(upper) == 2 && upper[0] == 'V' {
		if reg, err := strconv.ParseUint(upper[1:], 16, 8); err == nil {
			return uint16(reg), nil
		}
	}
	return 0, errors.Errorf("invalid register '%s' on line %d", token, lineNo)
}

// parseNumber accepts $-prefixed hex as well as Go integer literals.
func parseNumber(token string) (uint64, error) {
	if strings.HasPrefix(token, "$") {
		return strconv.ParseUint(token[1:], 16, 32)
	}
	return strconv.ParseUint(token, 0, 32)
}

func (a *Assembler) parseImmediate(token string, limit uint16, lineNo int) (uint16, error) {
	if value, err := parseNumber(token); err == nil {
		if value > uint64(limit) {
			return 0, errors.Errorf("immediate out of range on line %d: %s", lineNo, token)
		}
		return uint16(value), nil
	}

	if isKeyword(token) {
		return 0, errors.Errorf("invalid immediate '%s' on line %d", token, lineNo)
	}

	label := normalizeLabel(token)
	if addr, ok := a.labels[label]; ok {
		if addr > limit {
			return 0, errors.Errorf("label '%s' out of range on line %d", token, lineNo)
		}
		return addr, nil
	}

	if isIdentifier(token) {
		return 0, errors.Errorf("undefined label '%s' on line %d", token, lineNo)
	}

	return 0, errors.Errorf("invalid immediate '%s' on line %d", token, lineNo)
}

func isKeyword(token string) bool {
	upper := strings.ToUpper(token)
	if _, ok := keywords[upper]; ok {
		return true
	}
	_, err := parseRegister(token, 0)
	return err == nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

func normalizeLabel(label string) string {
	return strings.ToUpper(label)
}
