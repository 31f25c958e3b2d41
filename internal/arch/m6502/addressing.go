package m6502

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

var addressingNames = map[cpu6502.AddressingMode]string{
	cpu6502.AccumulatorAddressing: "accumulator",
	cpu6502.ImpliedAddressing:     "implied",
	cpu6502.ImmediateAddressing:   "immediate",
	cpu6502.AbsoluteAddressing:    "absolute",
	cpu6502.AbsoluteXAddressing:   "absolute,x",
	cpu6502.AbsoluteYAddressing:   "absolute,y",
	cpu6502.ZeroPageAddressing:    "zeropage",
	cpu6502.ZeroPageXAddressing:   "zeropage,x",
	cpu6502.ZeroPageYAddressing:   "zeropage,y",
	cpu6502.IndirectXAddressing:   "(indirect,x)",
	cpu6502.IndirectYAddressing:   "(indirect),y",
	cpu6502.IndirectAddressing:    "(indirect)",
	cpu6502.RelativeAddressing:    "relative",
}

// AddressingName returns a readable name of the addressing mode.
func AddressingName(mode cpu6502.AddressingMode) string {
	name, ok := addressingNames[mode]
	if !ok {
		return fmt.Sprintf("addressing(%d)", int(mode))
	}
	return name
}

// OperandSize returns the number of operand bytes that follow the opcode byte.
func OperandSize(mode cpu6502.AddressingMode) int {
	switch mode {
	case cpu6502.ImmediateAddressing, cpu6502.ZeroPageAddressing,
		cpu6502.ZeroPageXAddressing, cpu6502.ZeroPageYAddressing,
		cpu6502.IndirectXAddressing, cpu6502.IndirectYAddressing,
		cpu6502.RelativeAddressing:
		return 1

	case cpu6502.AbsoluteAddressing, cpu6502.AbsoluteXAddressing,
		cpu6502.AbsoluteYAddressing, cpu6502.IndirectAddressing:
		return 2

	default:
		return 0
	}
}

// IsIndexed returns whether the addressing mode adds an index register.
func IsIndexed(mode cpu6502.AddressingMode) bool {
	switch mode {
	case cpu6502.ZeroPageXAddressing, cpu6502.ZeroPageYAddressing,
		cpu6502.AbsoluteXAddressing, cpu6502.AbsoluteYAddressing,
		cpu6502.IndirectXAddressing, cpu6502.IndirectYAddressing:
		return true
	default:
		return false
	}
}
