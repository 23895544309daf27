package main

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"gochip8/pkg/cpu"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-mute", "-legacy-save", "-ips", "1000", "game.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.rom)
	assert.True(t, opts.mute)
	assert.Equal(t, "qwerty", opts.keys)
	assert.Equal(t, 1000, opts.common.IPS)

	cfg, err := opts.common.Config()
	assert.NoError(t, err)
	assert.True(t, cfg.RegisterSaveLegacy)

	_, err = parseFlags([]string{"a.ch8", "b.ch8"})
	assert.ErrorContains(t, err, "exactly one ROM file")
	_, err = parseFlags([]string{"-keys", "numpad", "a.ch8"})
	assert.ErrorContains(t, err, "unknown keypad layout")
}

func TestStatusLine(t *testing.T) {
	vm, err := cpu.NewCPU()
	assert.NoError(t, err)
	vm.I = 0x2AB
	vm.DT = 0x10

	assert.Equal(t, "PC=200 I=2AB DT=10 ST=00 running", statusLine(vm, false))
	assert.Equal(t, "PC=200 I=2AB DT=10 ST=00 paused", statusLine(vm, true))

	vm.Halt()
	assert.Equal(t, "PC=200 I=2AB DT=10 ST=00 halted", statusLine(vm, true))
}

func TestLayout(t *testing.T) {
	g := &Game{}
	w, h := g.Layout(0, 0)
	assert.Equal(t, 640, w)
	assert.Equal(t, 320+statusHeight, h)
}
