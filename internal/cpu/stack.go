package cpu

import "github.com/retroenv/nescore/internal/arch/m6502"

// push stores the value on the stack and decrements the stack pointer.
func (c *CPU) push(value byte) error {
	if err := c.memory.Write(m6502.StackBase+uint16(c.SP), value); err != nil {
		return err
	}
	c.SP--
	return nil
}

// pop increments the stack pointer and loads the value from the stack.
func (c *CPU) pop() (byte, error) {
	c.SP++
	return c.memory.Read(m6502.StackBase + uint16(c.SP))
}

// pushWord pushes the high byte first.
func (c *CPU) pushWord(value uint16) error {
	if err := c.push(byte(value >> 8)); err != nil {
		return err
	}
	return c.push(byte(value))
}

// popWord pops the low byte first.
func (c *CPU) popWord() (uint16, error) {
	low, err := c.pop()
	if err != nil {
		return 0, err
	}
	high, err := c.pop()
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}
