// Package app provides the main application helpers for the emulator.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/nescore/internal/machine"
	"github.com/retroenv/nescore/internal/options"
	"github.com/retroenv/nescore/internal/rom"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// PrintBanner prints the application name and version information. It is
// skipped in quiet mode and when the trace is written to stdout while stdout
// is not a terminal, to keep piped trace output clean.
func PrintBanner(w io.Writer, opts options.Program, version, commit, date string) {
	if !bannerEnabled(opts, term.IsTerminal(int(os.Stdout.Fd()))) {
		return
	}

	_, _ = fmt.Fprintln(w, "[------------------------------------]")
	_, _ = fmt.Fprintln(w, "[ nescore - NES CPU emulation core   ]")
	_, _ = fmt.Fprintf(w, "[------------------------------------]\n\n")
	_, _ = fmt.Fprintf(w, "version: %s\n\n", buildinfo.Version(version, commit, date))
}

func bannerEnabled(opts options.Program, stdoutTerminal bool) bool {
	if opts.Quiet {
		return false
	}
	tracesToStdout := opts.Trace && opts.Output == ""
	return !tracesToStdout || stdoutTerminal
}

// PrintInfo prints the information about the input file and the cartridge.
func PrintInfo(logger *log.Logger, opts options.Program, desc *rom.Descriptor) {
	if opts.Quiet {
		return
	}

	mirroring := "horizontal"
	switch {
	case desc.FourScreen:
		mirroring = "four-screen"
	case desc.Vertical:
		mirroring = "vertical"
	}

	logger.Info("Processing NES ROM",
		log.String("file", opts.Input),
		log.Uint8("mapper", desc.Mapper),
		log.String("prg", fmt.Sprintf("%d x 16KB", desc.PRGCount)),
		log.String("chr", fmt.Sprintf("%d x 8KB", desc.CHRCount)),
		log.String("mirroring", mirroring),
		log.String("battery", fmt.Sprintf("%t", desc.Battery)),
		log.String("trainer", fmt.Sprintf("%t", desc.HasTrainer)),
	)
}

// PrintVectors prints the interrupt handler addresses of the program.
func PrintVectors(logger *log.Logger, vectors machine.Vectors) {
	logger.Info("Interrupt vectors",
		log.Hex("nmi", vectors.NMI),
		log.Hex("reset", vectors.Reset),
		log.Hex("irq", vectors.IRQ),
	)
}
