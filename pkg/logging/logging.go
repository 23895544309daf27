// Package logging builds the loggers used by the command line frontends.
package logging

import (
	"github.com/retroenv/retrogolib/log"
)

// New creates a logger. debug enables debug output including instruction
// traces, quiet limits output to errors. debug wins if both are set.
func New(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
