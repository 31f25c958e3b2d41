package cpu

import "github.com/retroenv/nescore/internal/arch/m6502"

// instructionFunc executes an instruction with its resolved operand.
type instructionFunc func(c *CPU, op operand) error

type dispatchEntry struct {
	opcode     m6502.Opcode
	addressing addressingFunc
	execute    instructionFunc
}

// dispatch maps every opcode to its addressing mode resolver and operation
// handler. Entries without a handler can be printed but not executed.
var dispatch [256]dispatchEntry

func init() {
	for i, opcode := range m6502.Opcodes {
		entry := dispatchEntry{
			opcode: opcode,
		}
		addressing, ok := addressingModes[opcode.Addressing]
		if ok {
			entry.addressing = addressing
			entry.execute = instructions[opcode.Mnemonic]
		}
		dispatch[i] = entry
	}
}
