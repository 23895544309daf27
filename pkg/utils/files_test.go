package utils

import (
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestGetPathInfo(t *testing.T) {
	full, dir, err := GetPathInfo("roms/../roms/pong.ch8")
	assert.NoError(t, err)
	assert.True(t, filepath.IsAbs(full))
	assert.Equal(t, "pong.ch8", filepath.Base(full))
	assert.Equal(t, "roms", filepath.Base(dir))
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rom.ch8")
	assert.NoError(t, WriteFile(path, []byte{0x00, 0xE0}))

	data, err := ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xE0}, data)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.ErrorContains(t, err, "reading")

	err = WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir.ch8"), nil)
	assert.ErrorContains(t, err, "writing")
}

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		path, ext, want string
	}{
		{"game.asm", ".ch8", "game.ch8"},
		{"dir.v2/game", ".ch8", "dir.v2/game.ch8"},
		{"game.ch8", "-001.png", "game-001.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReplaceExt(tt.path, tt.ext))
	}
}
