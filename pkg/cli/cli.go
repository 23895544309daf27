// Package cli holds the command line handling shared by the frontends.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"gochip8/pkg/cpu"
	"gochip8/pkg/host"
)

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

// NewUsageError returns an error printing usage, then flags' defaults.
func NewUsageError(flags *flag.FlagSet, usage, msg string) *UsageError {
	return &UsageError{flags: flags, usage: usage, msg: msg}
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: %s\n\n", e.usage)
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// Common are the options every frontend accepts.
type Common struct {
	Debug bool
	Quiet bool
	IPS   int
	Font  string

	fontStart          uint
	jumpOffsetLegacy   bool
	registerSaveLegacy bool
	indexAddCarry      bool
	shiftInPlace       bool
	noCollisionFlag    bool
}

// BindCommon registers the shared flags on flags.
func BindCommon(flags *flag.FlagSet) *Common {
	c := &Common{}
	flags.BoolVar(&c.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&c.Quiet, "q", false, "perform operations quietly")
	flags.IntVar(&c.IPS, "ips", host.DefaultIPS, "instructions executed per second")
	flags.StringVar(&c.Font, "font", "", "load the 80 byte glyph table from this file instead of the built in font")

	flags.UintVar(&c.fontStart, "font-start", uint(cpu.DefaultConfig().FontStart), "address of the glyph table")
	flags.BoolVar(&c.jumpOffsetLegacy, "legacy-jump", false, "BNNN jumps to V0+NNN instead of VX+NNN")
	flags.BoolVar(&c.registerSaveLegacy, "legacy-save", false, "FX55/FX65 advance I past the transferred registers")
	flags.BoolVar(&c.indexAddCarry, "index-carry", false, "FX1E sets VF when I passes 0xFFF")
	flags.BoolVar(&c.shiftInPlace, "shift-vx", false, "8XY6/8XYE shift VX in place instead of reading VY")
	flags.BoolVar(&c.noCollisionFlag, "no-collision", false, "DXYN leaves VF unchanged")
	return c
}

// Config returns the compatibility configuration selected by the flags.
func (c *Common) Config() (cpu.Config, error) {
	if c.fontStart > 0xFFF {
		return cpu.Config{}, errors.Errorf("font start 0x%X outside of memory", c.fontStart)
	}
	cfg := cpu.Config{
		FontStart:          uint16(c.fontStart),
		JumpOffsetLegacy:   c.jumpOffsetLegacy,
		RegisterSaveLegacy: c.registerSaveLegacy,
		IndexAddCarry:      c.indexAddCarry,
		ShiftInPlace:       c.shiftInPlace,
		NoCollisionFlag:    c.noCollisionFlag,
	}
	if err := cfg.Validate(); err != nil {
		return cpu.Config{}, err
	}
	return cfg, nil
}

// NewCPU creates a CPU configured by the flags and loads the font file if
// one was given. The program is not loaded.
func (c *Common) NewCPU(opts ...cpu.Option) (*cpu.CPU, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	vm, err := cpu.NewCPU(append([]cpu.Option{cpu.WithConfig(cfg)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if c.Font != "" {
		if err := vm.LoadFontFile(c.Font); err != nil {
			return nil, err
		}
	}
	return vm, nil
}
