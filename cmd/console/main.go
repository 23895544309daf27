// Package main implements a terminal frontend rendering the CHIP-8 screen as
// text and reading the keypad from raw stdin.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"

	"gochip8/pkg/cli"
	"gochip8/pkg/cpu"
	"gochip8/pkg/display"
	"gochip8/pkg/host"
	"gochip8/pkg/keypad"
	"gochip8/pkg/logging"
)

const usage = "gochip8-console [options] <rom file>"

type options struct {
	common *cli.Common
	keys   string
	hold   time.Duration
	rom    string
}

func main() {
	ctx := app.Context()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
		} else {
			logging.New(false, false).Error(err.Error())
		}
		os.Exit(2)
	}

	logger := logging.New(opts.common.Debug, opts.common.Quiet)
	if err := run(ctx, logger, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func parseFlags(args []string) (*options, error) {
	flags := flag.NewFlagSet("gochip8-console", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := &options{common: cli.BindCommon(flags)}
	flags.StringVar(&opts.keys, "keys", "hex", "keypad layout: hex or qwerty")
	flags.DurationVar(&opts.hold, "hold", keypad.DefaultHold, "how long a key counts as held after it was typed")

	if err := flags.Parse(args); err != nil {
		return nil, cli.NewUsageError(flags, usage, err.Error())
	}
	if flags.NArg() != 1 {
		return nil, cli.NewUsageError(flags, usage, "exactly one ROM file is required")
	}
	opts.rom = flags.Arg(0)

	if _, err := keypad.LayoutByName(opts.keys); err != nil {
		return nil, cli.NewUsageError(flags, usage, err.Error())
	}
	return opts, nil
}

func run(ctx context.Context, logger *log.Logger, opts *options) error {
	stdin := int(os.Stdin.Fd())
	if !term.IsTerminal(stdin) {
		return errors.New("stdin is not a terminal")
	}
	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (width < cpu.Width || height <= cpu.Height) {
		logger.Warn("Terminal is smaller than the screen",
			log.Int("columns", width),
			log.Int("rows", height))
	}

	layout, err := keypad.LayoutByName(opts.keys)
	if err != nil {
		return err
	}

	screen := display.NewASCII(os.Stdout)
	screen.LineEnd = "\r\n"

	vm, err := opts.common.NewCPU(cpu.WithRenderer(screen), cpu.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := vm.LoadProgramFile(opts.rom); err != nil {
		return err
	}

	keys := keypad.NewTerminal(layout, opts.hold)
	if err := keys.Start(stdin); err != nil {
		return err
	}
	defer keys.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-keys.Quit():
			cancel()
		case <-ctx.Done():
		}
	}()

	runner, err := host.New(vm, keys, host.WithIPS(opts.common.IPS), host.WithLogger(logger))
	if err != nil {
		return err
	}

	err = runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}
	return screen.Err()
}
