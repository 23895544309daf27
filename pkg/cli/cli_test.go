package cli

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"gochip8/pkg/cpu"
	"gochip8/pkg/host"
)

func parse(t *testing.T, args ...string) *Common {
	t.Helper()
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	c := BindCommon(flags)
	assert.NoError(t, flags.Parse(args))
	return c
}

func TestCommonDefaults(t *testing.T) {
	c := parse(t)
	assert.False(t, c.Debug)
	assert.False(t, c.Quiet)
	assert.Equal(t, host.DefaultIPS, c.IPS)

	cfg, err := c.Config()
	assert.NoError(t, err)
	assert.Equal(t, cpu.DefaultConfig(), cfg)
}

func TestCommonQuirks(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want cpu.Config
	}{
		{"font start hex", []string{"-font-start", "0x000"}, cpu.Config{FontStart: 0}},
		{"legacy jump", []string{"-legacy-jump"}, cpu.Config{FontStart: 0x50, JumpOffsetLegacy: true}},
		{"legacy save", []string{"-legacy-save"}, cpu.Config{FontStart: 0x50, RegisterSaveLegacy: true}},
		{"index carry", []string{"-index-carry"}, cpu.Config{FontStart: 0x50, IndexAddCarry: true}},
		{"shift vx", []string{"-shift-vx"}, cpu.Config{FontStart: 0x50, ShiftInPlace: true}},
		{"no collision", []string{"-no-collision"}, cpu.Config{FontStart: 0x50, NoCollisionFlag: true}},
		{
			"all",
			[]string{"-font-start", "0x100", "-legacy-jump", "-legacy-save", "-index-carry", "-shift-vx", "-no-collision"},
			cpu.Config{
				FontStart:          0x100,
				JumpOffsetLegacy:   true,
				RegisterSaveLegacy: true,
				IndexAddCarry:      true,
				ShiftInPlace:       true,
				NoCollisionFlag:    true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse(t, tt.args...).Config()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestCommonInvalidFontStart(t *testing.T) {
	_, err := parse(t, "-font-start", "0x1C0").Config()
	assert.ErrorContains(t, err, "overlap")

	_, err = parse(t, "-font-start", "0x2000").Config()
	assert.ErrorContains(t, err, "outside of memory")
}

func TestCommonNewCPU(t *testing.T) {
	font := make([]byte, cpu.FontSize)
	for i := range font {
		font[i] = byte(i)
	}
	path := filepath.Join(t.TempDir(), "font.bin")
	assert.NoError(t, os.WriteFile(path, font, 0o644))

	c := parse(t, "-font", path, "-font-start", "0x000")
	vm, err := c.NewCPU()
	assert.NoError(t, err)
	assert.Equal(t, font, vm.Memory[0:cpu.FontSize])

	c = parse(t, "-font", filepath.Join(t.TempDir(), "missing.bin"))
	_, err = c.NewCPU()
	assert.Error(t, err)
}

func TestUsageError(t *testing.T) {
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	err := NewUsageError(flags, "test [options]", "missing input")
	assert.Equal(t, "missing input", err.Error())
}
