// Package main implements the graphical frontend: an ebiten window with oto
// audio and the keypad on the keyboard.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"golang.design/x/clipboard"

	"gochip8/pkg/audio"
	"gochip8/pkg/cli"
	"gochip8/pkg/cpu"
	"gochip8/pkg/display"
	"gochip8/pkg/host"
	"gochip8/pkg/keypad"
	"gochip8/pkg/logging"
)

const usage = "gochip8-desktop [options] <rom file>"

type options struct {
	common *cli.Common
	keys   string
	mute   bool
	rom    string
}

func main() {
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
	if err := run(logger, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func parseFlags(args []string) (*options, error) {
	flags := flag.NewFlagSet("gochip8-desktop", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := &options{common: cli.BindCommon(flags)}
	flags.StringVar(&opts.keys, "keys", "qwerty", "keypad layout: hex or qwerty")
	flags.BoolVar(&opts.mute, "mute", false, "do not open the audio device")

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

func run(logger *log.Logger, opts *options) error {
	ctx := app.Context()

	layout, err := keypad.LayoutByName(opts.keys)
	if err != nil {
		return err
	}

	screen := display.NewEbiten()
	cpuOpts := []cpu.Option{cpu.WithRenderer(screen), cpu.WithLogger(logger)}

	if !opts.mute {
		buzzer, err := audio.NewBuzzer()
		if err != nil {
			logger.Warn("Audio not available, running silently", log.Err(err))
		} else {
			defer func() { _ = buzzer.Close() }()
			cpuOpts = append(cpuOpts, cpu.WithAudio(buzzer))
		}
	}

	vm, err := opts.common.NewCPU(cpuOpts...)
	if err != nil {
		return err
	}
	if err := vm.LoadProgramFile(opts.rom); err != nil {
		return err
	}

	keys := &keypad.State{}
	runner, err := host.New(vm, keys, host.WithIPS(opts.common.IPS), host.WithLogger(logger))
	if err != nil {
		return err
	}

	game := &Game{
		ctx:         ctx,
		vm:          vm,
		runner:      runner,
		keys:        keys,
		layout:      layout,
		screen:      screen,
		logger:      logger,
		romPath:     opts.rom,
		clipboardOK: clipboard.Init() == nil,
	}

	ebiten.SetTPS(host.DefaultTimerHz)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("gochip8 - " + opts.rom)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return game.err
}
