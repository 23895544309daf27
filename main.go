//go:build !js

// Package main implements gochip8, a CHIP-8 assembler, disassembler and
// headless interpreter.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/asm"
	"gochip8/pkg/cli"
	"gochip8/pkg/cpu"
	"gochip8/pkg/display"
	"gochip8/pkg/host"
	"gochip8/pkg/logging"
	"gochip8/pkg/utils"
)

const usage = "gochip8 [options] [rom file]"

type options struct {
	common *cli.Common

	in     string
	out    string
	run    bool
	runBin string
	disasm bool

	frames int
	ascii  bool
	trace  bool
	dump   bool
	json   bool
}

func main() {
	ctx := app.Context()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		logger := logging.New(false, false)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(2)
	}

	logger := logging.New(opts.common.Debug, opts.common.Quiet)
	if err := execute(ctx, logger, opts, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Failed", log.Err(err))
		os.Exit(1)
	}
}

func parseFlags(args []string) (*options, error) {
	flags := flag.NewFlagSet("gochip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := &options{common: cli.BindCommon(flags)}
	flags.StringVar(&opts.in, "in", "", "input assembly file path")
	flags.StringVar(&opts.out, "out", "", "output file path (default: input with .ch8 extension, listing on stdout for -disasm)")
	flags.BoolVar(&opts.run, "run", false, "run the assembled program")
	flags.StringVar(&opts.runBin, "run-bin", "", "run an existing ROM file")
	flags.BoolVar(&opts.disasm, "disasm", false, "print a disassembly listing of the ROM instead of running it")
	flags.IntVar(&opts.frames, "frames", 0, "run this many 60 Hz frames without real time pacing, 0 runs until the program exits")
	flags.BoolVar(&opts.ascii, "ascii", false, "render the screen as text on stdout")
	flags.BoolVar(&opts.trace, "trace", false, "log every executed instruction, needs -debug")
	flags.BoolVar(&opts.dump, "dump", false, "print the machine state after running")
	flags.BoolVar(&opts.json, "json", false, "print the -dump state as JSON")

	if err := flags.Parse(args); err != nil {
		return nil, cli.NewUsageError(flags, usage, err.Error())
	}

	rest := flags.Args()
	switch {
	case len(rest) > 1:
		return nil, cli.NewUsageError(flags, usage, "only one ROM file can be given")
	case len(rest) == 1 && opts.runBin != "":
		return nil, cli.NewUsageError(flags, usage, "use either -run-bin or a ROM file argument, not both")
	case len(rest) == 1:
		opts.runBin = rest[0]
	}

	if opts.run && opts.runBin != "" {
		return nil, cli.NewUsageError(flags, usage, "use either -run or -run-bin, not both")
	}
	if opts.run && opts.in == "" {
		return nil, cli.NewUsageError(flags, usage, "-run requires -in, or use -run-bin <file>")
	}
	if opts.disasm && opts.runBin == "" && opts.in == "" {
		return nil, cli.NewUsageError(flags, usage, "-disasm needs a ROM file or -in")
	}
	if opts.in == "" && opts.runBin == "" {
		return nil, cli.NewUsageError(flags, usage, "nothing to do: provide -in to assemble or a ROM file to run")
	}
	if opts.frames < 0 {
		return nil, cli.NewUsageError(flags, usage, "-frames must not be negative")
	}
	return opts, nil
}

func execute(ctx context.Context, logger *log.Logger, opts *options, out io.Writer) error {
	var program []byte

	if opts.in != "" {
		code, err := assemble(logger, opts)
		if err != nil {
			return err
		}
		program = code
	}

	if opts.runBin != "" {
		data, err := utils.ReadFile(opts.runBin)
		if err != nil {
			return err
		}
		program = data
	}

	if opts.disasm {
		return writeListing(program, opts, out)
	}
	if !opts.run && opts.runBin == "" {
		return nil
	}
	return runProgram(ctx, logger, program, opts, out)
}

func assemble(logger *log.Logger, opts *options) ([]byte, error) {
	source, err := utils.ReadFile(opts.in)
	if err != nil {
		return nil, err
	}

	code, _, err := asm.Assemble(string(source))
	if err != nil {
		return nil, errors.Wrap(err, "assembly failed")
	}
	if opts.disasm {
		return code, nil
	}

	output := opts.out
	if output == "" {
		output = utils.ReplaceExt(opts.in, ".ch8")
	}
	if err := utils.WriteFile(output, code); err != nil {
		return nil, err
	}
	logger.Info("Assembled", log.Int("bytes", len(code)), log.String("output", output))
	return code, nil
}

func writeListing(program []byte, opts *options, out io.Writer) error {
	listing := asm.Listing(asm.DisassembleProgram(program))
	if opts.out != "" && opts.in == "" {
		return utils.WriteFile(opts.out, []byte(listing))
	}
	_, err := io.WriteString(out, listing)
	return err
}

func runProgram(ctx context.Context, logger *log.Logger, program []byte, opts *options, out io.Writer) error {
	cpuOpts := []cpu.Option{cpu.WithLogger(logger)}
	if opts.ascii {
		cpuOpts = append(cpuOpts, cpu.WithRenderer(display.NewASCII(out)))
	}
	if opts.trace {
		cpuOpts = append(cpuOpts, cpu.WithTrace(traceLogger(logger)))
	}

	vm, err := opts.common.NewCPU(cpuOpts...)
	if err != nil {
		return err
	}
	if err := vm.LoadProgram(program); err != nil {
		return err
	}

	runner, err := host.New(vm, nil, host.WithIPS(opts.common.IPS), host.WithLogger(logger))
	if err != nil {
		return err
	}

	if opts.frames > 0 {
		err = runFrames(ctx, runner, opts.frames)
	} else {
		err = runner.Run(ctx)
	}

	if opts.dump {
		if dumpErr := writeDump(vm, opts.json, out); dumpErr != nil {
			return dumpErr
		}
	}
	if err != nil {
		return err
	}

	logger.Info("Execution finished",
		log.Int("frames", int(runner.Frames())),
		log.Int("instructions", int(runner.Instructions())))
	return nil
}

// runFrames runs frames without pacing. A program halting early is not an
// error.
func runFrames(ctx context.Context, runner *host.Runner, frames int) error {
	for range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := runner.Frame()
		if errors.Is(err, cpu.ErrHalted) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func traceLogger(logger *log.Logger) func(pc uint16, in cpu.Instruction) {
	return func(pc uint16, in cpu.Instruction) {
		line, _ := asm.Disassemble(in.Word)
		logger.Debug("Trace",
			log.Hex("pc", pc),
			log.String("opcode", in.String()),
			log.String("instruction", line.String()))
	}
}

func writeDump(vm *cpu.CPU, asJSON bool, out io.Writer) error {
	snapshot := vm.Snapshot()
	if !asJSON {
		_, err := fmt.Fprintln(out, snapshot.String())
		return err
	}
	data, err := snapshot.JSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
