package display

import "gochip8/pkg/cpu"

// Scale returns the largest factor at which the 64x32 screen fits into an
// area of width x height pixels.
func Scale(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	sx := float64(width) / cpu.Width
	sy := float64(height) / cpu.Height
	return min(sx, sy)
}
