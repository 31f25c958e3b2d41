package cpu

// Undocumented instructions. The unstable store instructions SHA, SHX, SHY
// and TAS use the commonly emulated behavior of masking the stored value
// with the high byte of the base address plus one.

func (c *CPU) lax(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.A = value
	c.X = value
	c.setZN(value)
	return nil
}

// lxa loads the immediate value into A and X, the unstable magic constant
// of the hardware is treated as 0xFF.
func (c *CPU) lxa(op operand) error {
	return c.lax(op)
}

func (c *CPU) sax(op operand) error {
	return c.memory.Write(op.address, c.A&c.X)
}

func (c *CPU) dcp(op operand) error {
	value, err := c.modify(op, func(value byte) byte {
		return value - 1
	})
	if err != nil {
		return err
	}
	c.compare(c.A, value)
	return nil
}

func (c *CPU) isc(op operand) error {
	value, err := c.modify(op, func(value byte) byte {
		return value + 1
	})
	if err != nil {
		return err
	}
	c.addWithCarry(^value)
	return nil
}

func (c *CPU) slo(op operand) error {
	value, err := c.modify(op, func(value byte) byte {
		return c.shiftLeft(value, false)
	})
	if err != nil {
		return err
	}
	c.A |= value
	c.setZN(c.A)
	return nil
}

func (c *CPU) rla(op operand) error {
	value, err := c.modify(op, func(value byte) byte {
		return c.shiftLeft(value, c.Status.Carry)
	})
	if err != nil {
		return err
	}
	c.A &= value
	c.setZN(c.A)
	return nil
}

func (c *CPU) sre(op operand) error {
	value, err := c.modify(op, func(value byte) byte {
		return c.shiftRight(value, false)
	})
	if err != nil {
		return err
	}
	c.A ^= value
	c.setZN(c.A)
	return nil
}

func (c *CPU) rra(op operand) error {
	value, err := c.modify(op, func(value byte) byte {
		return c.shiftRight(value, c.Status.Carry)
	})
	if err != nil {
		return err
	}
	c.addWithCarry(value)
	return nil
}

// anc copies the sign flag into the carry after the AND.
func (c *CPU) anc(op operand) error {
	if err := c.and(op); err != nil {
		return err
	}
	c.Status.Carry = c.Status.Sign
	return nil
}

func (c *CPU) alr(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.A = c.shiftRight(c.A&value, false)
	return nil
}

// arr rotates the result of the AND right, carry is taken from bit 6 and
// overflow is bit 6 xor bit 5 of the result.
func (c *CPU) arr(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	result := (c.A & value) >> 1
	if c.Status.Carry {
		result |= 0x80
	}
	c.A = result
	c.setZN(result)
	c.Status.Carry = result&0x40 != 0
	c.Status.Overflow = (result>>6^result>>5)&0x01 != 0
	return nil
}

// axs subtracts the value from A AND X without borrow and stores it in X.
func (c *CPU) axs(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	masked := c.A & c.X
	c.Status.Carry = masked >= value
	c.X = masked - value
	c.setZN(c.X)
	return nil
}

func (c *CPU) ane(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.A = c.X & value
	c.setZN(c.A)
	return nil
}

func (c *CPU) las(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	value &= c.SP
	c.A = value
	c.X = value
	c.SP = value
	c.setZN(value)
	return nil
}

// storeHighMasked stores the value masked with the high byte of the
// unindexed base address plus one.
func (c *CPU) storeHighMasked(op operand, value, index byte) error {
	base := op.address - uint16(index)
	high := byte(base>>8) + 1
	return c.memory.Write(op.address, value&high)
}

func (c *CPU) sha(op operand) error {
	return c.storeHighMasked(op, c.A&c.X, c.Y)
}

func (c *CPU) shx(op operand) error {
	return c.storeHighMasked(op, c.X, c.Y)
}

func (c *CPU) shy(op operand) error {
	return c.storeHighMasked(op, c.Y, c.X)
}

func (c *CPU) tas(op operand) error {
	c.SP = c.A & c.X
	return c.storeHighMasked(op, c.SP, c.Y)
}
