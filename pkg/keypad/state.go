// Package keypad maps host keyboards onto the 16 key hexadecimal keypad.
package keypad

import "sync"

// Keys is the number of keypad keys.
const Keys = 16

// State is a keypad whose keys are set by a host. It is safe for
// concurrent use.
type State struct {
	mu   sync.RWMutex
	keys [Keys]bool
}

// Set marks key as held or released. Keys above 0xF are ignored.
func (s *State) Set(key uint8, held bool) {
	if key >= Keys {
		return
	}
	s.mu.Lock()
	s.keys[key] = held
	s.mu.Unlock()
}

func (s *State) Press(key uint8) {
	s.Set(key, true)
}

func (s *State) Release(key uint8) {
	s.Set(key, false)
}

// Reset releases all keys.
func (s *State) Reset() {
	s.mu.Lock()
	s.keys = [Keys]bool{}
	s.mu.Unlock()
}

func (s *State) IsPressed(key uint8) bool {
	if key >= Keys {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[key]
}

// PressedKey returns the lowest held key.
func (s *State) PressedKey() (uint8, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k, held := range s.keys {
		if held {
			return uint8(k), true
		}
	}
	return 0, false
}
