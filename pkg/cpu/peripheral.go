package cpu

// Renderer presents the framebuffer. Render must not modify fb.
type Renderer interface {
	Render(fb *Framebuffer)
}

// AudioDevice is driven by the sound timer: started while it is non-zero
// and stopped when it reaches zero.
type AudioDevice interface {
	Start()
	Stop()
}

// KeyInput reports the state of the 16 key hexadecimal keypad.
type KeyInput interface {
	IsPressed(key uint8) bool
	// PressedKey returns any currently held key.
	PressedKey() (uint8, bool)
}

func isPressed(keys KeyInput, key uint8) bool {
	if keys == nil || key > 0xF {
		return false
	}
	return keys.IsPressed(key)
}

func pressedKey(keys KeyInput) (uint8, bool) {
	if keys == nil {
		return 0, false
	}
	key, ok := keys.PressedKey()
	if !ok || key > 0xF {
		return 0, false
	}
	return key, true
}
