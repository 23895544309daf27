package cpu

import "github.com/pkg/errors"

// Config selects between the historically divergent instruction behaviors.
// It is fixed for the lifetime of a CPU.
type Config struct {
	// FontStart is the address the 80 byte glyph table is loaded at.
	FontStart uint16
	// JumpOffsetLegacy makes BNNN jump to V0+NNN instead of Vx+NNN.
	JumpOffsetLegacy bool
	// RegisterSaveLegacy makes FX55/FX65 advance I by x+1.
	RegisterSaveLegacy bool
	// IndexAddCarry makes FX1E set VF when I crosses 0x0FFF.
	IndexAddCarry bool
	// ShiftInPlace makes 8XY6/8XYE shift Vx instead of reading Vy.
	ShiftInPlace bool
	// NoCollisionFlag leaves VF untouched on DXYN.
	NoCollisionFlag bool
}

// DefaultConfig returns the modern behavior set with the font at 0x050.
func DefaultConfig() Config {
	return Config{
		FontStart: 0x050,
	}
}

// Validate checks that the glyph table fits in the reserved area below the
// program.
func (c Config) Validate() error {
	if int(c.FontStart)+FontSize > ProgramStart {
		return errors.Errorf("font start 0x%03X: glyph table would overlap program area at 0x%03X", c.FontStart, ProgramStart)
	}
	return nil
}
