package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

type operandFormatter func(code Code) string

// operandFormatters renders the operand of every addressing mode, implied
// addressing has no operand.
var operandFormatters = map[cpu6502.AddressingMode]operandFormatter{
	cpu6502.AccumulatorAddressing: formatAccumulator,
	cpu6502.ImmediateAddressing:   formatImmediate,
	cpu6502.AbsoluteAddressing:    formatAbsolute,
	cpu6502.AbsoluteXAddressing:   formatAbsoluteX,
	cpu6502.AbsoluteYAddressing:   formatAbsoluteY,
	cpu6502.ZeroPageAddressing:    formatZeroPage,
	cpu6502.ZeroPageXAddressing:   formatZeroPageX,
	cpu6502.ZeroPageYAddressing:   formatZeroPageY,
	cpu6502.IndirectAddressing:    formatIndirect,
	cpu6502.IndirectXAddressing:   formatIndirectX,
	cpu6502.IndirectYAddressing:   formatIndirectY,
	cpu6502.RelativeAddressing:    formatRelative,
}

func formatAccumulator(Code) string {
	return "A"
}

func formatImmediate(code Code) string {
	return fmt.Sprintf("#$%02X", code.Low)
}

func formatAbsolute(code Code) string {
	return fmt.Sprintf("$%04X", code.Word())
}

func formatAbsoluteX(code Code) string {
	return fmt.Sprintf("$%04X,X", code.Word())
}

func formatAbsoluteY(code Code) string {
	return fmt.Sprintf("$%04X,Y", code.Word())
}

func formatZeroPage(code Code) string {
	return fmt.Sprintf("$%02X", code.Low)
}

func formatZeroPageX(code Code) string {
	return fmt.Sprintf("$%02X,X", code.Low)
}

func formatZeroPageY(code Code) string {
	return fmt.Sprintf("$%02X,Y", code.Low)
}

func formatIndirect(code Code) string {
	return fmt.Sprintf("($%04X)", code.Word())
}

func formatIndirectX(code Code) string {
	return fmt.Sprintf("($%02X,X)", code.Low)
}

func formatIndirectY(code Code) string {
	return fmt.Sprintf("($%02X),Y", code.Low)
}

// formatRelative prints the raw branch offset, the target depends on the
// address of the instruction which is not part of the code.
func formatRelative(code Code) string {
	return fmt.Sprintf("$%02X (+PC)", code.Low)
}
