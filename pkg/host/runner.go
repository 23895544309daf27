// Package host drives a CPU in real time: instructions at a fixed rate and
// the timers at 60 Hz.
package host

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/cpu"
)

const (
	DefaultIPS     = 700
	DefaultTimerHz = 60
)

// Runner executes instructions in frames. Every frame runs IPS/TimerHz
// instructions, carrying the remainder to the next frame, then ticks the
// timers once.
type Runner struct {
	cpu  *cpu.CPU
	keys cpu.KeyInput

	ips     int
	timerHz int
	logger  *log.Logger
	onFrame func()

	carry        int
	frames       uint64
	instructions uint64
}

// Option configures a Runner.
type Option func(*Runner) error

// WithIPS sets the number of instructions executed per second.
func WithIPS(ips int) Option {
	return func(r *Runner) error {
		if ips <= 0 {
			return errors.Errorf("invalid instruction rate %d", ips)
		}
		r.ips = ips
		return nil
	}
}

// WithTimerHz sets the timer and frame rate.
func WithTimerHz(hz int) Option {
	return func(r *Runner) error {
		if hz <= 0 {
			return errors.Errorf("invalid timer rate %d", hz)
		}
		r.timerHz = hz
		return nil
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) error {
		r.logger = logger
		return nil
	}
}

// WithFrameHook sets a function called by Run after every frame.
func WithFrameHook(fn func()) Option {
	return func(r *Runner) error {
		r.onFrame = fn
		return nil
	}
}

// New returns a runner for c reading keys from keys, which may be nil.
func New(c *cpu.CPU, keys cpu.KeyInput, opts ...Option) (*Runner, error) {
	r := &Runner{
		cpu:     c,
		keys:    keys,
		ips:     DefaultIPS,
		timerHz: DefaultTimerHz,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Frame runs one frame. It returns the first execution error; ErrHalted
// means the CPU had already been stopped.
func (r *Runner) Frame() error {
	r.carry += r.ips
	n := r.carry / r.timerHz
	r.carry %= r.timerHz

	for range n {
		if err := r.cpu.Step(r.keys); err != nil {
			return err
		}
		r.instructions++
	}

	r.cpu.TickTimers()
	r.frames++
	return nil
}

// Run executes frames at the timer rate until ctx is cancelled or the CPU
// exits. A cancelled context halts the CPU and returns the context error. A
// CPU halted by the host ends Run without error.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.timerHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.cpu.Halt()
			return ctx.Err()
		case <-ticker.C:
		}

		err := r.Frame()
		if r.onFrame != nil {
			r.onFrame()
		}
		switch {
		case errors.Is(err, cpu.ErrHalted):
			r.logDone()
			return nil
		case err != nil:
			if r.logger != nil {
				r.logger.Debug("Execution stopped", log.Err(err), log.Hex("pc", r.cpu.PC))
			}
			return err
		case r.cpu.HasExited():
			r.logDone()
			return nil
		}
	}
}

func (r *Runner) logDone() {
	if r.logger != nil {
		r.logger.Debug("Execution finished",
			log.Int("frames", int(r.frames)),
			log.Int("instructions", int(r.instructions)))
	}
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Instructions returns the number of executed instructions.
func (r *Runner) Instructions() uint64 {
	return r.instructions
}
