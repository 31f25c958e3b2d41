// Package disasm converts encoded 6502 instructions into assembly text.
package disasm

import (
	"fmt"

	"github.com/retroenv/nescore/internal/arch/m6502"
)

// Code is an encoded instruction: the opcode byte and up to two operand
// bytes. Operand bytes that the opcode does not use are ignored.
type Code struct {
	Opcode byte
	Low    byte
	High   byte
}

// Word returns the little-endian operand word.
func (c Code) Word() uint16 {
	return uint16(c.High)<<8 | uint16(c.Low)
}

// Bytes returns the encoded bytes of the instruction.
func (c Code) Bytes() []byte {
	b := []byte{c.Opcode, c.Low, c.High}
	return b[:m6502.Opcodes[c.Opcode].Size()]
}

// Instruction is a disassembled instruction.
type Instruction struct {
	Mnemonic string
	Operand  string // empty for implied addressing
	Length   int    // encoded length in bytes, 1 to 3
}

// String returns the instruction in assembly syntax.
func (i Instruction) String() string {
	if i.Operand == "" {
		return i.Mnemonic
	}
	return i.Mnemonic + " " + i.Operand
}

// Memory is the address space instructions are read from.
type Memory interface {
	Read(address uint16) (byte, error)
}

// Disassemble returns the assembly text for the encoded instruction.
func Disassemble(code Code) Instruction {
	opcode := m6502.Opcodes[code.Opcode]
	ins := Instruction{
		Mnemonic: opcode.Mnemonic,
		Length:   opcode.Size(),
	}

	if format, ok := operandFormatters[opcode.Addressing]; ok {
		ins.Operand = format(code)
	}
	return ins
}

// Read reads the instruction at the given address, only the bytes that the
// opcode needs are read from the memory.
func Read(mem Memory, address uint16) (Code, error) {
	var code Code

	b, err := mem.Read(address)
	if err != nil {
		return code, fmt.Errorf("reading opcode at address 0x%04X: %w", address, err)
	}
	code.Opcode = b

	size := m6502.Opcodes[b].Size()
	if size > 1 {
		if code.Low, err = mem.Read(address + 1); err != nil {
			return code, fmt.Errorf("reading operand at address 0x%04X: %w", address+1, err)
		}
	}
	if size > 2 {
		if code.High, err = mem.Read(address + 2); err != nil {
			return code, fmt.Errorf("reading operand at address 0x%04X: %w", address+2, err)
		}
	}
	return code, nil
}
