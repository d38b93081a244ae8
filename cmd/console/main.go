package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"goscript/pkg/script"
	"goscript/pkg/utils"
	"goscript/pkg/vm"
)

func main() {
	trace := flag.Bool("trace", false, "log every executed instruction to stderr")
	maxSteps := flag.Int("max-steps", 0, "fault after this many instructions (0 = unlimited)")
	resume := flag.String("resume", "", "resume from a snapshot file instead of loading a script")
	saveOnEOF := flag.String("save-on-eof", "", "write a snapshot to this file when INPUT runs out of input")
	flag.Parse()

	logger := zerolog.Nop()
	if *trace {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.TraceLevel).
			With().Timestamp().Logger()
	}

	bridge := vm.Bridge(vm.NewStdioBridge(os.Stdin, os.Stdout))
	if *saveOnEOF != "" {
		bridge = vm.SuspendOnEOF(bridge)
	}
	opts := []vm.Option{
		vm.WithBridge(bridge),
		vm.WithLogger(logger),
		vm.WithMaxSteps(*maxSteps),
	}

	var machine *vm.Machine
	switch {
	case *resume != "":
		f, err := os.Open(*resume)
		if err != nil {
			fatal("failed to open snapshot: %v", err)
		}
		machine, err = vm.Restore(f, opts...)
		f.Close()
		if err != nil {
			fatal("failed to restore snapshot: %v", err)
		}
		logger.Debug().Str("file", *resume).Int("pc", machine.PC()).Msg("resumed")

	case flag.NArg() == 1:
		fullPath, source, err := utils.ReadScript(flag.Arg(0))
		if err != nil {
			fatal("failed to read script: %v", err)
		}
		prog, err := script.Compile(source)
		if err != nil {
			fatal("%s: %v", fullPath, err)
		}
		machine = vm.New(prog, opts...)

	default:
		fmt.Fprintln(os.Stderr, "usage: console [flags] script-file")
		flag.PrintDefaults()
		os.Exit(2)
	}

	err := machine.Run()
	if errors.Is(err, vm.ErrSuspended) {
		if err := writeSnapshot(machine, *saveOnEOF); err != nil {
			fatal("failed to save snapshot: %v", err)
		}
		fmt.Fprintf(os.Stderr, "suspended at address %d, snapshot saved to %s\n", machine.PC(), *saveOnEOF)
		return
	}
	if err != nil {
		fatal("%v", err)
	}
}

func writeSnapshot(machine *vm.Machine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := machine.Snapshot(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
