package m6502

import (
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

// Opcode is an immutable metadata entry of the opcode table.
type Opcode struct {
	Mnemonic   string // three character upper case instruction name
	Addressing cpu6502.AddressingMode
	Unofficial bool // undocumented instruction
}

// Size returns the instruction size in bytes including the opcode byte.
func (o Opcode) Size() int {
	return 1 + OperandSize(o.Addressing)
}

// Opcodes maps every opcode byte to its mnemonic and addressing mode.
// The CPU dispatch table and the disassembler are both derived from it.
var Opcodes = newOpcodes(cpu6502.Opcodes)

func newOpcodes(source [256]cpu6502.Opcode) [256]Opcode {
	var opcodes [256]Opcode
	for i, op := range source {
		ins := op.Instruction
		opcodes[i] = Opcode{
			Mnemonic:   strings.ToUpper(ins.Name),
			Addressing: op.Addressing,
			// KIL jams the processor, it is not part of the documented set
			Unofficial: ins.Unofficial || ins.Name == cpu6502.KilName,
		}
	}
	return opcodes
}
