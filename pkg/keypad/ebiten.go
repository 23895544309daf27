//go:build !headless

package keypad

import (
	"github.com/hajimehoshi/ebiten/v2"
)

var ebitenKeys = map[rune]ebiten.Key{
	'0': ebiten.KeyDigit0, '1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2,
	'3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4, '5': ebiten.KeyDigit5,
	'6': ebiten.KeyDigit6, '7': ebiten.KeyDigit7, '8': ebiten.KeyDigit8,
	'9': ebiten.KeyDigit9,
	'a': ebiten.KeyA, 'b': ebiten.KeyB, 'c': ebiten.KeyC, 'd': ebiten.KeyD,
	'e': ebiten.KeyE, 'f': ebiten.KeyF, 'q': ebiten.KeyQ, 'r': ebiten.KeyR,
	's': ebiten.KeyS, 'v': ebiten.KeyV, 'w': ebiten.KeyW, 'x': ebiten.KeyX,
	'z': ebiten.KeyZ,
}

// PollEbiten copies the state of the layout's keys into state. It must be
// called from the ebiten Update callback.
func PollEbiten(state *State, layout Layout) {
	PollWith(state, layout, func(r rune) bool {
		key, ok := ebitenKeys[r]
		return ok && ebiten.IsKeyPressed(key)
	})
}
