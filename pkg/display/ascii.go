// Package display contains the framebuffer renderers used by the frontends.
package display

import (
	"io"
	"strings"

	"gochip8/pkg/cpu"
)

// clearHome clears the terminal and moves the cursor to the top left.
const clearHome = "\x1B[2J\x1B[1;1H"

// ASCII renders frames as text, one character per pixel.
type ASCII struct {
	w io.Writer

	On      rune
	Off     rune
	Clear   bool   // emit the terminal clear sequence before each frame
	LineEnd string // "\r\n" for terminals in raw mode

	frames int
	err    error
}

// NewASCII returns a renderer writing '@' for lit and '-' for dark pixels.
func NewASCII(w io.Writer) *ASCII {
	return &ASCII{
		w:       w,
		On:      '@',
		Off:     '-',
		Clear:   true,
		LineEnd: "\n",
	}
}

// Render writes one frame. Write errors are kept and stop further output.
func (a *ASCII) Render(fb *cpu.Framebuffer) {
	if a.err != nil {
		return
	}

	var sb strings.Builder
	if a.Clear {
		sb.WriteString(clearHome)
	}
	text := fb.ASCII(a.On, a.Off)
	if a.LineEnd != "\n" {
		text = strings.ReplaceAll(text, "\n", a.LineEnd)
	}
	sb.WriteString(text)

	if _, err := io.WriteString(a.w, sb.String()); err != nil {
		a.err = err
		return
	}
	a.frames++
}

// Frames returns the number of frames written.
func (a *ASCII) Frames() int {
	return a.frames
}

// Err returns the first write error.
func (a *ASCII) Err() error {
	return a.err
}
