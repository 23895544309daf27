package cpu

import (
	"image"
	"image/color"
	"image/png"
	"math/bits"
	"os"
	"strings"

	"gochip8/pkg/grid"
)

const (
	Width  = 64
	Height = 32
)

// Framebuffer is a 64x32 monochrome surface. Bit 63 of a row is column 0.
type Framebuffer struct {
	Rows [Height]uint64
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	f.Rows = [Height]uint64{}
}

// DrawSprite XORs one 8 pixel sprite row into row y with its most
// significant bit at column x. Pixels past column 63 are dropped. It reports
// whether any lit pixel was turned off.
func (f *Framebuffer) DrawSprite(x, y uint8, b byte) bool {
	if int(x) >= Width || int(y) >= Height {
		return false
	}
	var mask uint64
	if x > 56 {
		mask = uint64(b) >> (x - 56)
	} else {
		mask = uint64(b) << (56 - x)
	}
	collision := f.Rows[y]&mask != 0
	f.Rows[y] ^= mask
	return collision
}

// Pixel reports whether the pixel at column x, row y is lit.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.Rows[y]>>(63-x)&1 == 1
}

// Lit returns the number of lit pixels.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, row := range f.Rows {
		n += bits.OnesCount64(row)
	}
	return n
}

// RGBA renders the framebuffer into a 64x32 RGBA8888 byte slice.
func (f *Framebuffer) RGBA(on, off color.RGBA) []byte {
	pixels := make([]byte, Width*Height*4)
	for i := 0; i < Width*Height; i++ {
		x, y := grid.GetGridCoords(i, Width)
		c := off
		if f.Pixel(x, y) {
			c = on
		}
		pixels[i*4+0] = c.R
		pixels[i*4+1] = c.G
		pixels[i*4+2] = c.B
		pixels[i*4+3] = c.A
	}
	return pixels
}

// Image returns the framebuffer as white pixels on black.
func (f *Framebuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.RGBA(color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, color.RGBA{A: 0xFF}),
		Stride: Width * 4,
		Rect:   image.Rect(0, 0, Width, Height),
	}
}

// SaveScreenshot encodes the framebuffer as a PNG and writes it to filename.
func (f *Framebuffer) SaveScreenshot(filename string) error {
	img := f.Image()
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}

// ASCII renders the framebuffer as Height lines of Width runes.
func (f *Framebuffer) ASCII(on, off rune) string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.Pixel(x, y) {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
