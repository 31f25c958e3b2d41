package cpu

import "github.com/retroenv/retrogolib/arch/cpu/cpu6502"

// operand is the resolved operand of an instruction. For accumulator and
// implied addressing the address is unused.
type operand struct {
	mode    cpu6502.AddressingMode
	address uint16
}

// addressingFunc fetches the operand bytes of an instruction and returns the
// effective address. The program counter points after the operand afterwards.
type addressingFunc func(c *CPU) (uint16, error)

var addressingModes = map[cpu6502.AddressingMode]addressingFunc{
	cpu6502.ImpliedAddressing:     resolveNone,
	cpu6502.AccumulatorAddressing: resolveNone,
	cpu6502.ImmediateAddressing:   resolveImmediate,
	cpu6502.AbsoluteAddressing:    resolveAbsolute,
	cpu6502.AbsoluteXAddressing:   resolveAbsoluteX,
	cpu6502.AbsoluteYAddressing:   resolveAbsoluteY,
	cpu6502.ZeroPageAddressing:    resolveZeroPage,
	cpu6502.ZeroPageXAddressing:   resolveZeroPageX,
	cpu6502.ZeroPageYAddressing:   resolveZeroPageY,
	cpu6502.IndirectAddressing:    resolveIndirect,
	cpu6502.IndirectXAddressing:   resolveIndirectX,
	cpu6502.IndirectYAddressing:   resolveIndirectY,
	cpu6502.RelativeAddressing:    resolveRelative,
}

func resolveNone(*CPU) (uint16, error) {
	return 0, nil
}

func resolveImmediate(c *CPU) (uint16, error) {
	address := c.PC
	c.PC++
	return address, nil
}

func resolveAbsolute(c *CPU) (uint16, error) {
	return c.fetchWord()
}

func resolveAbsoluteX(c *CPU) (uint16, error) {
	base, err := c.fetchWord()
	if err != nil {
		return 0, err
	}
	return base + uint16(c.X), nil
}

func resolveAbsoluteY(c *CPU) (uint16, error) {
	base, err := c.fetchWord()
	if err != nil {
		return 0, err
	}
	return base + uint16(c.Y), nil
}

func resolveZeroPage(c *CPU) (uint16, error) {
	b, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(b), nil
}

func resolveZeroPageX(c *CPU) (uint16, error) {
	b, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(b + c.X), nil
}

func resolveZeroPageY(c *CPU) (uint16, error) {
	b, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(b + c.Y), nil
}

// resolveIndirect emulates the hardware bug of the indirect jump: the high
// byte of the target is read from the start of the same page when the
// pointer is located at the last byte of a page.
func resolveIndirect(c *CPU) (uint16, error) {
	pointer, err := c.fetchWord()
	if err != nil {
		return 0, err
	}
	low, err := c.memory.Read(pointer)
	if err != nil {
		return 0, err
	}
	high, err := c.memory.Read(pointer&0xFF00 | uint16(byte(pointer)+1))
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

func resolveIndirectX(c *CPU) (uint16, error) {
	b, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return c.readZeroPageWord(b + c.X)
}

func resolveIndirectY(c *CPU) (uint16, error) {
	b, err := c.fetch()
	if err != nil {
		return 0, err
	}
	base, err := c.readZeroPageWord(b)
	if err != nil {
		return 0, err
	}
	return base + uint16(c.Y), nil
}

func resolveRelative(c *CPU) (uint16, error) {
	b, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return c.PC + uint16(int16(int8(b))), nil
}

// readZeroPageWord reads a pointer from the zero page, the high byte wraps
// around within the zero page.
func (c *CPU) readZeroPageWord(address byte) (uint16, error) {
	low, err := c.memory.Read(uint16(address))
	if err != nil {
		return 0, err
	}
	high, err := c.memory.Read(uint16(address + 1))
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}
