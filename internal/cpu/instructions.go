package cpu

import (
	"github.com/retroenv/nescore/internal/arch/m6502"
	"github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

var instructions = map[string]instructionFunc{
	"ADC": (*CPU).adc,
	"AND": (*CPU).and,
	"ASL": (*CPU).asl,
	"BCC": (*CPU).bcc,
	"BCS": (*CPU).bcs,
	"BEQ": (*CPU).beq,
	"BIT": (*CPU).bit,
	"BMI": (*CPU).bmi,
	"BNE": (*CPU).bne,
	"BPL": (*CPU).bpl,
	"BRK": (*CPU).brk,
	"BVC": (*CPU).bvc,
	"BVS": (*CPU).bvs,
	"CLC": (*CPU).clc,
	"CLD": (*CPU).cld,
	"CLI": (*CPU).cli,
	"CLV": (*CPU).clv,
	"CMP": (*CPU).cmp,
	"CPX": (*CPU).cpx,
	"CPY": (*CPU).cpy,
	"DEC": (*CPU).dec,
	"DEX": (*CPU).dex,
	"DEY": (*CPU).dey,
	"EOR": (*CPU).eor,
	"INC": (*CPU).inc,
	"INX": (*CPU).inx,
	"INY": (*CPU).iny,
	"JMP": (*CPU).jmp,
	"JSR": (*CPU).jsr,
	"LDA": (*CPU).lda,
	"LDX": (*CPU).ldx,
	"LDY": (*CPU).ldy,
	"LSR": (*CPU).lsr,
	"NOP": (*CPU).nop,
	"ORA": (*CPU).ora,
	"PHA": (*CPU).pha,
	"PHP": (*CPU).php,
	"PLA": (*CPU).pla,
	"PLP": (*CPU).plp,
	"ROL": (*CPU).rol,
	"ROR": (*CPU).ror,
	"RTI": (*CPU).rti,
	"RTS": (*CPU).rts,
	"SBC": (*CPU).sbc,
	"SEC": (*CPU).sec,
	"SED": (*CPU).sed,
	"SEI": (*CPU).sei,
	"STA": (*CPU).sta,
	"STX": (*CPU).stx,
	"STY": (*CPU).sty,
	"TAX": (*CPU).tax,
	"TAY": (*CPU).tay,
	"TSX": (*CPU).tsx,
	"TXA": (*CPU).txa,
	"TXS": (*CPU).txs,
	"TYA": (*CPU).tya,

	// undocumented
	"ALR": (*CPU).alr,
	"ANC": (*CPU).anc,
	"ANE": (*CPU).ane,
	"ARR": (*CPU).arr,
	"AXS": (*CPU).axs,
	"DCP": (*CPU).dcp,
	"ISC": (*CPU).isc,
	"LAS": (*CPU).las,
	"LAX": (*CPU).lax,
	"LXA": (*CPU).lxa,
	"RLA": (*CPU).rla,
	"RRA": (*CPU).rra,
	"SAX": (*CPU).sax,
	"SHA": (*CPU).sha,
	"SHX": (*CPU).shx,
	"SHY": (*CPU).shy,
	"SLO": (*CPU).slo,
	"SRE": (*CPU).sre,
	"TAS": (*CPU).tas,
}

// readOperand returns the value the instruction operates on.
func (c *CPU) readOperand(op operand) (byte, error) {
	if op.mode == cpu6502.AccumulatorAddressing {
		return c.A, nil
	}
	return c.memory.Read(op.address)
}

// writeOperand stores the result of a read-modify-write instruction.
func (c *CPU) writeOperand(op operand, value byte) error {
	if op.mode == cpu6502.AccumulatorAddressing {
		c.A = value
		return nil
	}
	return c.memory.Write(op.address, value)
}

// addWithCarry adds the value and the carry to the accumulator.
func (c *CPU) addWithCarry(value byte) {
	sum := uint16(c.A) + uint16(value)
	if c.Status.Carry {
		sum++
	}
	result := byte(sum)
	c.Status.Carry = sum > 0xFF
	c.Status.Overflow = (c.A^result)&(value^result)&0x80 != 0
	c.A = result
	c.setZN(result)
}

func (c *CPU) compare(register, value byte) {
	c.Status.Carry = register >= value
	c.setZN(register - value)
}

func (c *CPU) branch(condition bool, op operand) error {
	if condition {
		c.PC = op.address
	}
	return nil
}

func (c *CPU) adc(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.addWithCarry(value)
	return nil
}

func (c *CPU) sbc(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.addWithCarry(^value)
	return nil
}

func (c *CPU) and(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.A &= value
	c.setZN(c.A)
	return nil
}

func (c *CPU) ora(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.A |= value
	c.setZN(c.A)
	return nil
}

func (c *CPU) eor(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.A ^= value
	c.setZN(c.A)
	return nil
}

func (c *CPU) shiftLeft(value byte, carryIn bool) byte {
	c.Status.Carry = value&0x80 != 0
	value <<= 1
	if carryIn {
		value |= 0x01
	}
	c.setZN(value)
	return value
}

func (c *CPU) shiftRight(value byte, carryIn bool) byte {
	c.Status.Carry = value&0x01 != 0
	value >>= 1
	if carryIn {
		value |= 0x80
	}
	c.setZN(value)
	return value
}

// modify applies a read-modify-write operation to the operand and returns the result.
func (c *CPU) modify(op operand, fn func(value byte) byte) (byte, error) {
	value, err := c.readOperand(op)
	if err != nil {
		return 0, err
	}
	value = fn(value)
	if err := c.writeOperand(op, value); err != nil {
		return 0, err
	}
	return value, nil
}

func (c *CPU) asl(op operand) error {
	_, err := c.modify(op, func(value byte) byte {
		return c.shiftLeft(value, false)
	})
	return err
}

func (c *CPU) lsr(op operand) error {
	_, err := c.modify(op, func(value byte) byte {
		return c.shiftRight(value, false)
	})
	return err
}

func (c *CPU) rol(op operand) error {
	_, err := c.modify(op, func(value byte) byte {
		return c.shiftLeft(value, c.Status.Carry)
	})
	return err
}

func (c *CPU) ror(op operand) error {
	_, err := c.modify(op, func(value byte) byte {
		return c.shiftRight(value, c.Status.Carry)
	})
	return err
}

func (c *CPU) inc(op operand) error {
	_, err := c.modify(op, func(value byte) byte {
		value++
		c.setZN(value)
		return value
	})
	return err
}

func (c *CPU) dec(op operand) error {
	_, err := c.modify(op, func(value byte) byte {
		value--
		c.setZN(value)
		return value
	})
	return err
}

// bit sets the zero flag from the accumulator masked with the memory value,
// sign and overflow are copied from bits 7 and 6 of the memory value.
func (c *CPU) bit(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.Status.Zero = c.A&value == 0
	c.Status.Sign = value&0x80 != 0
	c.Status.Overflow = value&0x40 != 0
	return nil
}

func (c *CPU) cmp(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.compare(c.A, value)
	return nil
}

func (c *CPU) cpx(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.compare(c.X, value)
	return nil
}

func (c *CPU) cpy(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.compare(c.Y, value)
	return nil
}

func (c *CPU) bcc(op operand) error { return c.branch(!c.Status.Carry, op) }
func (c *CPU) bcs(op operand) error { return c.branch(c.Status.Carry, op) }
func (c *CPU) beq(op operand) error { return c.branch(c.Status.Zero, op) }
func (c *CPU) bmi(op operand) error { return c.branch(c.Status.Sign, op) }
func (c *CPU) bne(op operand) error { return c.branch(!c.Status.Zero, op) }
func (c *CPU) bpl(op operand) error { return c.branch(!c.Status.Sign, op) }
func (c *CPU) bvc(op operand) error { return c.branch(!c.Status.Overflow, op) }
func (c *CPU) bvs(op operand) error { return c.branch(c.Status.Overflow, op) }

func (c *CPU) clc(operand) error { c.Status.Carry = false; return nil }
func (c *CPU) cld(operand) error { c.Status.DecimalMode = false; return nil }
func (c *CPU) cli(operand) error { c.Status.InterruptDisable = false; return nil }
func (c *CPU) clv(operand) error { c.Status.Overflow = false; return nil }
func (c *CPU) sec(operand) error { c.Status.Carry = true; return nil }
func (c *CPU) sed(operand) error { c.Status.DecimalMode = true; return nil }
func (c *CPU) sei(operand) error { c.Status.InterruptDisable = true; return nil }

// brk pushes the address after the padding byte that follows the opcode and
// the status with the break flag set.
func (c *CPU) brk(operand) error {
	if err := c.pushWord(c.PC + 1); err != nil {
		return err
	}
	if err := c.push(c.Status.ToUint8() | FlagBreak); err != nil {
		return err
	}
	c.Status.InterruptDisable = true

	pc, err := c.readWord(m6502.IrqAddress)
	if err != nil {
		return err
	}
	c.PC = pc
	return nil
}

func (c *CPU) jmp(op operand) error {
	c.PC = op.address
	return nil
}

// jsr pushes the address of the last byte of the instruction.
func (c *CPU) jsr(op operand) error {
	if err := c.pushWord(c.PC - 1); err != nil {
		return err
	}
	c.PC = op.address
	return nil
}

func (c *CPU) rts(operand) error {
	pc, err := c.popWord()
	if err != nil {
		return err
	}
	c.PC = pc + 1
	return nil
}

func (c *CPU) rti(operand) error {
	if err := c.popStatus(); err != nil {
		return err
	}
	pc, err := c.popWord()
	if err != nil {
		return err
	}
	c.PC = pc
	return nil
}

func (c *CPU) lda(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.A = value
	c.setZN(value)
	return nil
}

func (c *CPU) ldx(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.X = value
	c.setZN(value)
	return nil
}

func (c *CPU) ldy(op operand) error {
	value, err := c.readOperand(op)
	if err != nil {
		return err
	}
	c.Y = value
	c.setZN(value)
	return nil
}

func (c *CPU) sta(op operand) error { return c.memory.Write(op.address, c.A) }
func (c *CPU) stx(op operand) error { return c.memory.Write(op.address, c.X) }
func (c *CPU) sty(op operand) error { return c.memory.Write(op.address, c.Y) }

// nop covers the official NOP and all undocumented variants with operands.
func (c *CPU) nop(operand) error {
	return nil
}

func (c *CPU) pha(operand) error {
	return c.push(c.A)
}

// php pushes the status with the break and reserved flags set.
func (c *CPU) php(operand) error {
	return c.push(c.Status.ToUint8() | FlagBreak)
}

func (c *CPU) pla(operand) error {
	value, err := c.pop()
	if err != nil {
		return err
	}
	c.A = value
	c.setZN(value)
	return nil
}

func (c *CPU) plp(operand) error {
	return c.popStatus()
}

// popStatus restores the status from the stack, the break flag does not
// exist in the register and is cleared.
func (c *CPU) popStatus() error {
	value, err := c.pop()
	if err != nil {
		return err
	}
	c.Status.FromUint8(value &^ FlagBreak)
	return nil
}

func (c *CPU) tax(operand) error { c.X = c.A; c.setZN(c.X); return nil }
func (c *CPU) tay(operand) error { c.Y = c.A; c.setZN(c.Y); return nil }
func (c *CPU) tsx(operand) error { c.X = c.SP; c.setZN(c.X); return nil }
func (c *CPU) txa(operand) error { c.A = c.X; c.setZN(c.A); return nil }
func (c *CPU) tya(operand) error { c.A = c.Y; c.setZN(c.A); return nil }

// txs does not modify any flags.
func (c *CPU) txs(operand) error { c.SP = c.X; return nil }

func (c *CPU) inx(operand) error { c.X++; c.setZN(c.X); return nil }
func (c *CPU) iny(operand) error { c.Y++; c.setZN(c.Y); return nil }
func (c *CPU) dex(operand) error { c.X--; c.setZN(c.X); return nil }
func (c *CPU) dey(operand) error { c.Y--; c.setZN(c.Y); return nil }
