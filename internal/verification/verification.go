// Package verification verifies the emulation against reference data.
package verification

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/nescore/internal/cpu"
	"github.com/retroenv/nescore/internal/disasm"
	"github.com/retroenv/nescore/internal/rom"
	"github.com/retroenv/nescore/internal/trace"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrTraceMismatch is returned when the execution diverges from the golden log.
	ErrTraceMismatch = errors.New("trace mismatch")
	// ErrEncodingMismatch is returned when the encoded ROM differs from its source.
	ErrEncodingMismatch = errors.New("encoding mismatch")
)

// Machine is the emulation session that is verified.
type Machine interface {
	Disassemble() (disasm.Code, disasm.Instruction, error)
	Registers() cpu.Registers
	Step() error
}

// VerifyTrace executes one instruction per line of the golden log and
// compares the program counter, the mnemonic and the registers before the
// execution. The break flag is ignored as it is not part of the physical
// status register. It returns the number of verified lines.
func VerifyTrace(ctx context.Context, logger *log.Logger, m Machine, golden io.Reader) (int, error) {
	scanner := bufio.NewScanner(golden)
	var verified int

	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		if err := ctx.Err(); err != nil {
			return verified, err
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		expected, err := trace.Parse(line)
		if err != nil {
			return verified, fmt.Errorf("parsing golden log line %d: %w", lineNumber, err)
		}

		if err := compareEntry(m, expected, lineNumber); err != nil {
			return verified, err
		}

		if err := m.Step(); err != nil {
			return verified, fmt.Errorf("executing golden log line %d: %w", lineNumber, err)
		}
		verified++
	}

	if err := scanner.Err(); err != nil {
		return verified, fmt.Errorf("reading golden log: %w", err)
	}

	logger.Info("Trace verified", log.Int("lines", verified))
	return verified, nil
}

func compareEntry(m Machine, expected trace.Entry, lineNumber int) error {
	_, ins, err := m.Disassemble()
	if err != nil {
		return fmt.Errorf("disassembling golden log line %d: %w", lineNumber, err)
	}

	actual := m.Registers()
	fields := []struct {
		name     string
		expected string
		actual   string
	}{
		{"PC", hex16(expected.PC), hex16(actual.PC)},
		{"mnemonic", expected.Mnemonic, ins.Mnemonic},
		{"A", hex8(expected.Registers.A), hex8(actual.A)},
		{"X", hex8(expected.Registers.X), hex8(actual.X)},
		{"Y", hex8(expected.Registers.Y), hex8(actual.Y)},
		{"P", hex8(expected.Registers.P &^ cpu.FlagBreak), hex8(actual.P &^ cpu.FlagBreak)},
		{"SP", hex8(expected.Registers.SP), hex8(actual.SP)},
	}

	for _, field := range fields {
		if field.expected == field.actual {
			continue
		}
		return fmt.Errorf("%w at line %d: %s expected %s but got %s",
			ErrTraceMismatch, lineNumber, field.name, field.expected, field.actual)
	}
	return nil
}

func hex8(b byte) string {
	return fmt.Sprintf("%02X", b)
}

func hex16(w uint16) string {
	return fmt.Sprintf("%04X", w)
}

// VerifyEncoding verifies that encoding the descriptor recreates the
// cartridge content of the source image.
func VerifyEncoding(logger *log.Logger, source []byte, desc *rom.Descriptor) error {
	cart1, err := cartridge.LoadFile(bytes.NewReader(source))
	if err != nil {
		return fmt.Errorf("loading source cartridge: %w", err)
	}
	encoded, err := desc.Encode()
	if err != nil {
		return fmt.Errorf("encoding cartridge: %w", err)
	}
	cart2, err := cartridge.LoadFile(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("loading encoded cartridge: %w", err)
	}

	if err := checkBufferEqual(logger, cart1.PRG, cart2.PRG); err != nil {
		return fmt.Errorf("segment PRG mismatch: %w", err)
	}
	if err := checkBufferEqual(logger, cart1.CHR, cart2.CHR); err != nil {
		return fmt.Errorf("segment CHR mismatch: %w", err)
	}
	if err := checkBufferEqual(logger, cart1.Trainer, cart2.Trainer); err != nil {
		return fmt.Errorf("trainer mismatch: %w", err)
	}
	if cart1.Mapper != cart2.Mapper {
		return fmt.Errorf("%w: mapper expected %d but got %d", ErrEncodingMismatch, cart1.Mapper, cart2.Mapper)
	}
	if cart1.Battery != cart2.Battery {
		return fmt.Errorf("%w: battery expected %d but got %d", ErrEncodingMismatch, cart1.Battery, cart2.Battery)
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("%w: mismatched lengths, %d != %d", ErrEncodingMismatch, len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < 10 {
			logger.Debug("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d offset mismatches", ErrEncodingMismatch, diffs)
}
