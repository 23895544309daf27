package keypad

// PollWith sets every key of layout in state from the result of held.
// A keypad key bound to several host keys is held if any of them is.
func PollWith(state *State, layout Layout, held func(r rune) bool) {
	var keys [Keys]bool
	for r, k := range layout {
		if held(r) {
			keys[k] = true
		}
	}
	for k, h := range keys {
		state.Set(uint8(k), h)
	}
}
