// Package fileprocessor handles ROM loading and the emulation session of a file
package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/nescore/internal/app"
	"github.com/retroenv/nescore/internal/machine"
	"github.com/retroenv/nescore/internal/mapper"
	"github.com/retroenv/nescore/internal/options"
	"github.com/retroenv/nescore/internal/rom"
	"github.com/retroenv/nescore/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow: loading the ROM,
// printing its information and vectors, and executing it when requested.
// Trace lines are written to traceOutput.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program,
	registry *mapper.Registry, traceOutput io.Writer) error {

	source, err := os.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	desc, err := rom.Load(bytes.NewReader(source))
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	app.PrintInfo(logger, opts, desc)

	if opts.VerifyROM {
		if err := verification.VerifyEncoding(logger, source, desc); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}

	m, err := machine.New(logger, desc, registry)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}

	vectors, err := m.Vectors()
	if err != nil {
		return fmt.Errorf("reading vectors: %w", err)
	}
	if !opts.Quiet {
		app.PrintVectors(logger, vectors)
	}

	if opts.Start != nil {
		m.CPU().SetProgramCounter(*opts.Start)
	}
	for _, address := range opts.Breakpoints {
		m.AddBreakpoint(address)
	}
	if !opts.Executes() {
		return nil
	}

	var cdl *mapper.CodeDataLog
	if opts.CodeDataLog != "" {
		cdl = m.EnableCodeDataLog()
	}

	if opts.Golden != "" {
		err = verifyGolden(ctx, logger, m, opts.Golden)
	} else {
		err = execute(ctx, m, opts, traceOutput)
		if errors.Is(err, machine.ErrBreakpoint) {
			logger.Info("Breakpoint reached", log.Hex("pc", m.CPU().PC))
			err = nil
		}
	}

	// the log is written even if the execution stopped on an error
	if cdl != nil {
		if cdlErr := writeCodeDataLog(opts.CodeDataLog, cdl); cdlErr != nil {
			return errors.Join(err, cdlErr)
		}
	}
	return err
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

func writeCodeDataLog(path string, cdl *mapper.CodeDataLog) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating code data log file %s: %w", path, err)
	}
	if _, err := cdl.WriteTo(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing code data log file %s: %w", path, err)
	}
	return nil
}

func verifyGolden(ctx context.Context, logger *log.Logger, m *machine.Machine, golden string) error {
	file, err := os.Open(golden)
	if err != nil {
		return fmt.Errorf("opening golden log %s: %w", golden, err)
	}
	defer func() { _ = file.Close() }()

	if _, err := verification.VerifyTrace(ctx, logger, m, file); err != nil {
		return fmt.Errorf("verifying golden log: %w", err)
	}
	return nil
}

// execute runs the requested number of instructions, printing a trace line
// before each instruction if tracing is enabled.
func execute(ctx context.Context, m *machine.Machine, opts options.Program, traceOutput io.Writer) error {
	if opts.Trace {
		m.SetTraceOutput(traceOutput)
	}
	return m.Run(ctx, opts.Steps)
}
