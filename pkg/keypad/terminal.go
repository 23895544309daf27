package keypad

import (
	"sync"
	"time"

	"golang.org/x/term"
)

// DefaultHold is how long a key counts as held after its last character.
// Terminal key repeat usually fires every 30-50ms once it kicks in.
const DefaultHold = 150 * time.Millisecond

const (
	keyEscape = 0x1B
	keyCtrlC  = 0x03
)

// Terminal turns characters read from a raw mode terminal into keypad
// presses. Terminals do not report key releases, so a key counts as held
// until Hold has passed since its last character. Escape and Ctrl-C close
// the Quit channel.
type Terminal struct {
	layout Layout
	hold   time.Duration
	now    func() time.Time

	mu       sync.Mutex
	deadline [Keys]time.Time

	quit     chan struct{}
	quitOnce sync.Once

	started     bool
	fd          int
	stopCh      chan struct{}
	done        chan struct{}
	stopped     sync.Once
	nonblockSet bool
	oldState    *term.State
}

// NewTerminal returns a reader for layout. A hold of 0 uses DefaultHold.
func NewTerminal(layout Layout, hold time.Duration) *Terminal {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Terminal{
		layout: layout,
		hold:   hold,
		now:    time.Now,
		quit:   make(chan struct{}),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Feed handles one character read from the terminal.
func (t *Terminal) Feed(b byte) {
	if b == keyEscape || b == keyCtrlC {
		t.quitOnce.Do(func() { close(t.quit) })
		return
	}
	key, ok := t.layout.Key(rune(b))
	if !ok {
		return
	}
	t.mu.Lock()
	t.deadline[key] = t.now().Add(t.hold)
	t.mu.Unlock()
}

// Quit is closed once the user asked to quit.
func (t *Terminal) Quit() <-chan struct{} {
	return t.quit
}

func (t *Terminal) IsPressed(key uint8) bool {
	if key >= Keys {
		return false
	}
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	return now.Before(t.deadline[key])
}

// PressedKey returns the lowest held key.
func (t *Terminal) PressedKey() (uint8, bool) {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, d := range t.deadline {
		if now.Before(d) {
			return uint8(k), true
		}
	}
	return 0, false
}
