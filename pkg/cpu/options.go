package cpu

import (
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// Option configures a CPU in NewCPU.
type Option func(*CPU) error

// WithConfig sets the compatibility configuration.
func WithConfig(cfg Config) Option {
	return func(c *CPU) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		c.config = cfg
		return nil
	}
}

// WithRenderer sets the renderer notified after 00E0 and DXYN.
func WithRenderer(r Renderer) Option {
	return func(c *CPU) error {
		c.renderer = r
		return nil
	}
}

// WithAudio sets the audio device. A CPU without one runs silently.
func WithAudio(a AudioDevice) Option {
	return func(c *CPU) error {
		c.audio = a
		return nil
	}
}

// WithLogger sets the logger used for load events and faults.
func WithLogger(logger *log.Logger) Option {
	return func(c *CPU) error {
		c.logger = logger
		return nil
	}
}

// WithRandom replaces the random byte source used by CXNN.
func WithRandom(fn func() uint8) Option {
	return func(c *CPU) error {
		if fn == nil {
			return errors.New("nil random source")
		}
		c.random = fn
		return nil
	}
}

// WithTrace installs a hook called by Step with the address and contents of
// every fetched instruction, before it executes.
func WithTrace(fn func(pc uint16, in Instruction)) Option {
	return func(c *CPU) error {
		c.trace = fn
		return nil
	}
}
