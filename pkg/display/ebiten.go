//go:build !headless

package display

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"gochip8/pkg/cpu"
)

// Ebiten keeps the latest frame as RGBA pixels and draws it scaled to the
// screen. Render may be called from the game Update, Draw from the ebiten
// draw callback.
type Ebiten struct {
	On  color.RGBA
	Off color.RGBA

	mu     sync.Mutex
	pixels []byte
	img    *ebiten.Image
}

// NewEbiten returns a renderer drawing white pixels on black.
func NewEbiten() *Ebiten {
	e := &Ebiten{
		On:  color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Off: color.RGBA{A: 0xFF},
	}
	e.Render(&cpu.Framebuffer{})
	return e
}

func (e *Ebiten) Render(fb *cpu.Framebuffer) {
	pixels := fb.RGBA(e.On, e.Off)

	e.mu.Lock()
	e.pixels = pixels
	e.mu.Unlock()
}

// Pixels returns a copy of the current RGBA frame.
func (e *Ebiten) Pixels() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]byte, len(e.pixels))
	copy(out, e.pixels)
	return out
}

// Draw paints the frame into the area of screen below top, keeping the 2:1
// aspect ratio.
func (e *Ebiten) Draw(screen *ebiten.Image, top int) {
	if e.img == nil {
		e.img = ebiten.NewImage(cpu.Width, cpu.Height)
	}

	e.mu.Lock()
	e.img.WritePixels(e.pixels)
	e.mu.Unlock()

	bounds := screen.Bounds()
	scale := Scale(bounds.Dx(), bounds.Dy()-top)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(0, float64(top))
	screen.DrawImage(e.img, op)
}
