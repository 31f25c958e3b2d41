// Package trace formats and parses execution trace lines in the layout of
// the widely used golden CPU logs.
package trace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/nescore/internal/cpu"
	"github.com/retroenv/nescore/internal/disasm"
)

// Column widths of the trace line.
const (
	bytesWidth       = 10
	instructionWidth = 16
	registerOffset   = 6 + bytesWidth + instructionWidth
)

// ErrMalformedLine is returned for trace lines that can not be parsed.
var ErrMalformedLine = errors.New("malformed trace line")

// mnemonicAliases maps alternative names of undocumented instructions that
// are used by reference logs to the names of the opcode table.
var mnemonicAliases = map[string]string{
	"AHX": "SHA",
	"ASR": "ALR",
	"DCM": "DCP",
	"INS": "ISC",
	"ISB": "ISC",
	"JAM": "KIL",
	"LAR": "LAS",
	"SBX": "AXS",
	"SHS": "TAS",
	"STP": "KIL",
	"XAA": "ANE",
}

// Entry is the parsed content of a trace line: the state before the
// instruction at PC is executed.
type Entry struct {
	PC        uint16
	Mnemonic  string
	Registers cpu.Registers
}

// Line renders the instruction at pc and the register state before its
// execution, for example:
// C000  A9 42     LDA #$42        A:00 X:00 Y:00 P:34 SP:FD
func Line(pc uint16, code disasm.Code, ins disasm.Instruction, regs cpu.Registers) string {
	encoded := code.Bytes()
	hexBytes := make([]string, len(encoded))
	for i, b := range encoded {
		hexBytes[i] = fmt.Sprintf("%02X", b)
	}

	return fmt.Sprintf("%04X  %-*s%-*sA:%02X X:%02X Y:%02X P:%02X SP:%02X",
		pc,
		bytesWidth, strings.Join(hexBytes, " "),
		instructionWidth, ins.String(),
		regs.A, regs.X, regs.Y, regs.P, regs.SP)
}

// Parse parses a trace line. Additional columns after the registers, like
// cycle counters, are ignored. Undocumented instructions can be prefixed by
// a '*' in the mnemonic column, alternative names of undocumented
// instructions are translated to the names of the opcode table.
func Parse(line string) (Entry, error) {
	var entry Entry

	if len(line) < registerOffset {
		return entry, fmt.Errorf("%w: line too short", ErrMalformedLine)
	}

	pc, err := strconv.ParseUint(line[:4], 16, 16)
	if err != nil {
		return entry, fmt.Errorf("%w: invalid program counter '%s'", ErrMalformedLine, line[:4])
	}
	entry.PC = uint16(pc)

	registers := strings.Index(line, "A:")
	if registers < 6+bytesWidth {
		return entry, fmt.Errorf("%w: missing registers", ErrMalformedLine)
	}

	instruction := strings.Fields(line[6+bytesWidth-1 : registers])
	if len(instruction) == 0 {
		return entry, fmt.Errorf("%w: missing instruction", ErrMalformedLine)
	}
	entry.Mnemonic = strings.TrimPrefix(instruction[0], "*")
	if alias, ok := mnemonicAliases[entry.Mnemonic]; ok {
		entry.Mnemonic = alias
	}

	if err := parseRegisters(line[registers:], &entry.Registers); err != nil {
		return entry, err
	}
	entry.Registers.PC = entry.PC
	return entry, nil
}

func parseRegisters(s string, regs *cpu.Registers) error {
	fields := map[string]*byte{
		"A":  &regs.A,
		"X":  &regs.X,
		"Y":  &regs.Y,
		"P":  &regs.P,
		"SP": &regs.SP,
	}

	found := 0
	for _, field := range strings.Fields(s) {
		name, value, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		dest, ok := fields[name]
		if !ok {
			continue
		}

		b, err := strconv.ParseUint(value, 16, 8)
		if err != nil {
			return fmt.Errorf("%w: invalid register %s value '%s'", ErrMalformedLine, name, value)
		}
		*dest = byte(b)
		found++
	}

	if found < len(fields) {
		return fmt.Errorf("%w: missing register values", ErrMalformedLine)
	}
	return nil
}
