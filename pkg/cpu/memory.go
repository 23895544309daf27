package cpu

import (
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/utils"
)

const (
	MemorySize     = 4096
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart
	FontSize       = 80
	GlyphSize      = 5
)

// DefaultFont holds the 16 hexadecimal digit glyphs, five rows each.
var DefaultFont = [FontSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// LoadProgram copies program into memory at ProgramStart.
func (c *CPU) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return &ProgramTooLargeError{Size: len(program), Max: MaxProgramSize}
	}
	copy(c.Memory[ProgramStart:], program)
	if c.logger != nil {
		c.logger.Debug("program loaded", log.Int("size", len(program)))
	}
	return nil
}

// LoadFont copies an 80 byte glyph table to the configured font address.
func (c *CPU) LoadFont(font []byte) error {
	if len(font) != FontSize {
		return errors.Errorf("font must be exactly %d bytes, got %d", FontSize, len(font))
	}
	copy(c.Memory[c.config.FontStart:], font)
	if c.logger != nil {
		c.logger.Debug("font loaded", log.Hex("address", c.config.FontStart))
	}
	return nil
}

// LoadDefaultFont loads DefaultFont.
func (c *CPU) LoadDefaultFont() {
	font := DefaultFont
	_ = c.LoadFont(font[:])
}

// LoadProgramFile reads a program image from path and loads it.
func (c *CPU) LoadProgramFile(path string) error {
	data, err := utils.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "LoadProgramFile")
	}
	return c.LoadProgram(data)
}

// LoadFontFile reads a glyph table from path and loads it.
func (c *CPU) LoadFontFile(path string) error {
	data, err := utils.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "LoadFontFile")
	}
	return c.LoadFont(data)
}

// checkRange verifies that n bytes starting at I lie inside memory.
func (c *CPU) checkRange(op string, n int) error {
	last := int(c.I) + n - 1
	if n > 0 && last >= MemorySize {
		target := int(c.I)
		if target < MemorySize {
			target = MemorySize
		}
		return &MemoryError{Op: op, Address: c.PC - 2, Target: target}
	}
	return nil
}
