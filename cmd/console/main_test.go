package main

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"

	"gochip8/pkg/keypad"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-keys", "qwerty", "-hold", "200ms", "-shift-vx", "game.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.rom)
	assert.Equal(t, "qwerty", opts.keys)
	assert.Equal(t, 200*time.Millisecond, opts.hold)

	cfg, err := opts.common.Config()
	assert.NoError(t, err)
	assert.True(t, cfg.ShiftInPlace)

	opts, err = parseFlags([]string{"game.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, keypad.DefaultHold, opts.hold)
	assert.Equal(t, "hex", opts.keys)
}

func TestParseFlagsErrors(t *testing.T) {
	_, err := parseFlags(nil)
	assert.ErrorContains(t, err, "exactly one ROM file")

	_, err = parseFlags([]string{"-keys", "azerty", "game.ch8"})
	assert.ErrorContains(t, err, "unknown keypad layout")
}
