//go:build !unix

package keypad

import "github.com/pkg/errors"

// Start is not supported on this platform.
func (t *Terminal) Start(fd int) error {
	t.stopped.Do(func() {
		close(t.stopCh)
		close(t.done)
	})
	return errors.New("terminal keypad input is not supported on this platform")
}

func (t *Terminal) Stop() {
	t.stopped.Do(func() {
		close(t.stopCh)
	})
}
