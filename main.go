// Package main implements the command line driver of the NES CPU emulation core
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/nescore/internal/app"
	"github.com/retroenv/nescore/internal/cli"
	"github.com/retroenv/nescore/internal/config"
	"github.com/retroenv/nescore/internal/fileprocessor"
	"github.com/retroenv/nescore/internal/mapper"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(os.Stdout, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	app.PrintBanner(os.Stdout, opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	traceOutput, err := config.CreateTraceWriter(opts.Output)
	if err != nil {
		logger.Fatal(err.Error())
	}
	defer func() { _ = traceOutput.Close() }()

	registry := mapper.NewRegistry()
	var failed bool
	for _, file := range files {
		opts.Input = file

		if err := fileprocessor.ProcessFile(ctx, logger, opts, registry, traceOutput); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Processing failed", log.String("file", file), log.Err(err))
			failed = true
		}
	}

	if failed {
		_ = traceOutput.Close()
		os.Exit(1)
	}
}
