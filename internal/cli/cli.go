// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/nescore/internal/options"
)

var errConflictingOptions = errors.New("conflicting options")

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	var start, breakpoints string
	readOptionFlags(flags, &opts, &start, &breakpoints)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if start != "" {
		pc, err := parseAddress(start)
		if err != nil {
			return opts, fmt.Errorf("parsing start address: %w", err)
		}
		opts.Start = &pc
	}

	if breakpoints != "" {
		for _, s := range strings.Split(breakpoints, ",") {
			address, err := parseAddress(strings.TrimSpace(s))
			if err != nil {
				return opts, fmt.Errorf("parsing breakpoint: %w", err)
			}
			opts.Breakpoints = append(opts.Breakpoints, address)
		}
	}

	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: nescore [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptionCombinations rejects options that can not be used together.
func validateOptionCombinations(opts options.Program) error {
	if opts.Steps < 0 {
		return fmt.Errorf("%w: steps can not be negative", errConflictingOptions)
	}
	if opts.Batch != "" && opts.Golden != "" {
		return fmt.Errorf("%w: a golden log can only be verified for a single file", errConflictingOptions)
	}
	if opts.Batch != "" && opts.CodeDataLog != "" {
		return fmt.Errorf("%w: a code data log can only be written for a single file", errConflictingOptions)
	}
	if opts.Batch != "" && opts.Output != "" {
		return fmt.Errorf("%w: a trace output file can only be used for a single file", errConflictingOptions)
	}
	return nil
}

// parseAddress parses a hex address that can be prefixed by $ or 0x.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	value, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address '%s': %w", s, err)
	}
	return uint16(value), nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, start, breakpoints *string) {
	flags.StringVar(&opts.Output, "o", "", "name of the trace output file, printed on console if no name given")
	flags.StringVar(&opts.Golden, "golden", "", "golden log file to verify the execution against")
	flags.StringVar(&opts.CodeDataLog, "cdl", "", "name of the .cdl Code/Data log file to write for the executed code")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask, for example *.nes")
	flags.StringVar(start, "pc", "", "start address in hex, overrides the reset vector (golden logs usually start at C000)")
	flags.StringVar(breakpoints, "break", "", "comma separated list of hex addresses to stop the execution at")
	flags.IntVar(&opts.Steps, "steps", 0, "number of instructions to execute, 0 runs until the CPU halts")
	flags.BoolVar(&opts.Trace, "trace", false, "print a trace line for every executed instruction")
	flags.BoolVar(&opts.VerifyROM, "verify", false, "verify that encoding the loaded ROM recreates the input")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
