//go:build unix

package keypad

import (
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Start switches fd to raw non-blocking mode and feeds every character read
// from it until Stop is called.
func (t *Terminal) Start(fd int) error {
	t.started = true
	t.fd = fd
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		close(t.done)
		return errors.Wrap(err, "setting raw terminal mode")
	}
	t.oldState = oldState

	if err := syscall.SetNonblock(fd, true); err != nil {
		_ = term.Restore(fd, t.oldState)
		t.oldState = nil
		close(t.done)
		return errors.Wrap(err, "setting nonblocking input")
	}
	t.nonblockSet = true

	go func() {
		defer close(t.done)
		buf := make([]byte, 16)
		for {
			select {
			case <-t.stopCh:
				return
			default:
			}

			n, err := syscall.Read(fd, buf)
			for _, b := range buf[:max(n, 0)] {
				t.Feed(b)
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || (err == nil && n == 0) {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
		}
	}()
	return nil
}

// Stop ends reading and restores the terminal state.
func (t *Terminal) Stop() {
	t.stopped.Do(func() {
		close(t.stopCh)
	})
	if !t.started {
		return
	}
	<-t.done

	if t.nonblockSet {
		_ = syscall.SetNonblock(t.fd, false)
		t.nonblockSet = false
	}
	if t.oldState != nil {
		_ = term.Restore(t.fd, t.oldState)
		t.oldState = nil
	}
}
