// Package cpu implements the MOS 6502 instruction execution engine.
package cpu

import (
	"errors"
	"fmt"

	"github.com/retroenv/nescore/internal/arch/m6502"
	"github.com/retroenv/retrogolib/log"
)

// Register values after reset.
const (
	InitialStackPointer = 0xFD
	InitialStatus       = 0x34
)

var (
	// ErrUnimplementedOpcode is returned for opcodes without an operation handler.
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")
	// ErrHalted is returned when stepping a CPU that stopped on a fatal error.
	ErrHalted = errors.New("cpu halted")
)

// Memory is the bus the CPU reads from and writes to.
type Memory interface {
	Read(address uint16) (byte, error)
	Write(address uint16, value byte) error
}

// Registers is a snapshot of the register file.
type Registers struct {
	PC uint16
	A  byte
	X  byte
	Y  byte
	SP byte
	P  byte
}

// CPU implements the 6502 as found in the NES, without decimal mode arithmetic.
type CPU struct {
	logger *log.Logger
	memory Memory

	PC     uint16
	A      byte
	X      byte
	Y      byte
	SP     byte
	Status Status

	halted bool
}

// New returns a new CPU that is reset and starts at the address stored in
// the reset vector.
func New(logger *log.Logger, memory Memory) (*CPU, error) {
	c := &CPU{
		logger: logger,
		memory: memory,
	}
	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset loads the program counter from the reset vector and initializes the registers.
func (c *CPU) Reset() error {
	pc, err := c.readWord(m6502.ResetAddress)
	if err != nil {
		return fmt.Errorf("reading reset vector: %w", err)
	}

	c.PC = pc
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = InitialStackPointer
	c.Status.FromUint8(InitialStatus)
	c.halted = false

	c.logger.Debug("CPU reset", log.Hex("pc", pc))
	return nil
}

// SetProgramCounter overrides the program counter, for example to start a
// golden log comparison at a fixed address.
func (c *CPU) SetProgramCounter(pc uint16) {
	c.PC = pc
}

// Registers returns a snapshot of the current register state.
func (c *CPU) Registers() Registers {
	return Registers{
		PC: c.PC,
		A:  c.A,
		X:  c.X,
		Y:  c.Y,
		SP: c.SP,
		P:  c.Status.ToUint8(),
	}
}

// Halted returns whether the CPU stopped on a fatal error.
func (c *CPU) Halted() bool {
	return c.halted
}

// Supported returns whether the opcode has an operation handler.
func Supported(opcode byte) bool {
	return dispatch[opcode].execute != nil
}

// Step executes a single instruction. Any returned error is fatal and halts
// the CPU, further calls return ErrHalted.
func (c *CPU) Step() error {
	if c.halted {
		return ErrHalted
	}
	if err := c.step(); err != nil {
		c.halted = true
		return err
	}
	return nil
}

func (c *CPU) step() error {
	pc := c.PC
	b, err := c.fetch()
	if err != nil {
		return fmt.Errorf("fetching opcode at 0x%04X: %w", pc, err)
	}

	entry := &dispatch[b]
	if entry.execute == nil {
		return fmt.Errorf("%w 0x%02X (%s) at address 0x%04X", ErrUnimplementedOpcode, b, entry.opcode.Mnemonic, pc)
	}

	address, err := entry.addressing(c)
	if err != nil {
		return fmt.Errorf("resolving %s operand at 0x%04X: %w", m6502.AddressingName(entry.opcode.Addressing), pc, err)
	}

	c.logger.Debug("Executing instruction",
		log.Hex("pc", pc),
		log.String("mnemonic", entry.opcode.Mnemonic),
		log.Hex("address", address))

	op := operand{
		mode:    entry.opcode.Addressing,
		address: address,
	}
	if err := entry.execute(c, op); err != nil {
		return fmt.Errorf("executing %s at 0x%04X: %w", entry.opcode.Mnemonic, pc, err)
	}
	return nil
}

// NMI triggers a non-maskable interrupt.
func (c *CPU) NMI() error {
	return c.interrupt(m6502.NMIAddress)
}

// IRQ triggers a maskable interrupt, it is ignored while interrupts are disabled.
func (c *CPU) IRQ() error {
	if c.Status.InterruptDisable {
		return nil
	}
	return c.interrupt(m6502.IrqAddress)
}

func (c *CPU) interrupt(vector uint16) error {
	if err := c.pushWord(c.PC); err != nil {
		return err
	}
	if err := c.push(c.Status.ToUint8() &^ FlagBreak); err != nil {
		return err
	}
	c.Status.InterruptDisable = true

	pc, err := c.readWord(vector)
	if err != nil {
		return fmt.Errorf("reading interrupt vector 0x%04X: %w", vector, err)
	}
	c.logger.Debug("Interrupt", log.Hex("vector", vector), log.Hex("handler", pc))
	c.PC = pc
	return nil
}

// fetch reads the byte at the program counter and advances it.
func (c *CPU) fetch() (byte, error) {
	b, err := c.memory.Read(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC++
	return b, nil
}

// fetchWord reads the little-endian word at the program counter and advances it.
func (c *CPU) fetchWord() (uint16, error) {
	low, err := c.fetch()
	if err != nil {
		return 0, err
	}
	high, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

func (c *CPU) readWord(address uint16) (uint16, error) {
	low, err := c.memory.Read(address)
	if err != nil {
		return 0, err
	}
	high, err := c.memory.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// setZN sets the zero and sign flags based on the given result.
func (c *CPU) setZN(value byte) {
	c.Status.Zero = value == 0
	c.Status.Sign = value&0x80 != 0
}
