// Package machine wires a loaded ROM, its mapper, the memory bus and the CPU
// into a steppable emulation session.
package machine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/nescore/internal/arch/m6502"
	"github.com/retroenv/nescore/internal/bus"
	"github.com/retroenv/nescore/internal/cpu"
	"github.com/retroenv/nescore/internal/disasm"
	"github.com/retroenv/nescore/internal/mapper"
	"github.com/retroenv/nescore/internal/rom"
	"github.com/retroenv/nescore/internal/trace"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const jsrOpcode = 0x20

// ErrBreakpoint is returned by Run when the program counter reaches a breakpoint.
var ErrBreakpoint = errors.New("breakpoint reached")

// Vectors contains the interrupt handler addresses of the loaded program.
type Vectors struct {
	NMI   uint16
	Reset uint16
	IRQ   uint16 // shared with BRK
}

// Machine is an emulation session of a single ROM.
type Machine struct {
	logger *log.Logger
	desc   *rom.Descriptor
	bus    *bus.Bus
	cpu    *cpu.CPU
	cdl    *mapper.CodeDataLog // nil if not enabled
	trace  io.Writer           // nil if not enabled

	breakpoints set.Set[uint16]
}

// New creates a machine for the ROM, the mapper is selected from the registry
// by the mapper number of the ROM.
func New(logger *log.Logger, desc *rom.Descriptor, registry *mapper.Registry) (*Machine, error) {
	m, err := registry.ForDescriptor(desc)
	if err != nil {
		return nil, fmt.Errorf("selecting mapper: %w", err)
	}

	b := bus.New(logger)
	if err := b.Initialize(desc, m); err != nil {
		return nil, fmt.Errorf("initializing bus: %w", err)
	}

	c, err := cpu.New(logger, b)
	if err != nil {
		return nil, fmt.Errorf("initializing cpu: %w", err)
	}

	logger.Debug("Machine initialized",
		log.Uint8("mapper", desc.Mapper),
		log.Uint8("prg", desc.PRGCount),
		log.Uint8("chr", desc.CHRCount),
		log.Hex("pc", c.PC))

	return &Machine{
		logger:      logger,
		desc:        desc,
		bus:         b,
		cpu:         c,
		breakpoints: set.New[uint16](),
	}, nil
}

// CPU returns the processor of the machine.
func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

// Bus returns the memory bus of the machine.
func (m *Machine) Bus() *bus.Bus {
	return m.bus
}

// ROM returns the descriptor of the loaded ROM.
func (m *Machine) ROM() *rom.Descriptor {
	return m.desc
}

// Registers returns a snapshot of the CPU registers.
func (m *Machine) Registers() cpu.Registers {
	return m.cpu.Registers()
}

// EnableCodeDataLog starts recording the executed PRG-ROM bytes.
func (m *Machine) EnableCodeDataLog() *mapper.CodeDataLog {
	if m.cdl == nil {
		m.cdl = mapper.NewCodeDataLog(m.desc, m.bus.Banks())
	}
	return m.cdl
}

// SetTraceOutput sets the writer that receives a trace line before every
// executed instruction, nil disables tracing.
func (m *Machine) SetTraceOutput(w io.Writer) {
	m.trace = w
}

// Step executes a single instruction.
func (m *Machine) Step() error {
	if m.trace != nil {
		if err := m.writeTraceLine(); err != nil {
			return err
		}
	}
	if m.cdl == nil {
		return m.cpu.Step()
	}

	pc := m.cpu.PC
	opcode, err := m.bus.Read(pc)
	if err != nil {
		// let the CPU report the fetch error and halt
		return m.cpu.Step()
	}
	if err := m.cpu.Step(); err != nil {
		return err
	}

	m.cdl.MarkCode(pc, m6502.Opcodes[opcode].Size())
	if opcode == jsrOpcode {
		m.cdl.MarkEntryPoint(m.cpu.PC)
	}
	return nil
}

func (m *Machine) writeTraceLine() error {
	line, err := m.TraceLine()
	if err != nil {
		return fmt.Errorf("tracing instruction: %w", err)
	}
	if _, err := fmt.Fprintln(m.trace, line); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// AddBreakpoint adds an address that stops Run before the instruction at
// the address is executed.
func (m *Machine) AddBreakpoint(address uint16) {
	m.breakpoints.Add(address)
}

// AtBreakpoint returns whether the program counter is at a breakpoint.
func (m *Machine) AtBreakpoint() bool {
	return m.breakpoints.Contains(m.cpu.PC)
}

// Run executes the given number of instructions, or until an error occurs
// when steps is 0. The context is checked between instructions. A breakpoint
// at the current program counter is ignored for the first instruction so
// that a stopped run can be resumed.
func (m *Machine) Run(ctx context.Context, steps int) error {
	for i := 0; steps == 0 || i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 && m.AtBreakpoint() {
			return fmt.Errorf("%w at 0x%04X", ErrBreakpoint, m.cpu.PC)
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Disassemble returns the instruction at the program counter.
func (m *Machine) Disassemble() (disasm.Code, disasm.Instruction, error) {
	code, err := disasm.Read(m.bus, m.cpu.PC)
	if err != nil {
		return code, disasm.Instruction{}, err
	}
	return code, disasm.Disassemble(code), nil
}

// TraceLine returns the trace line of the instruction at the program counter
// with the current register state.
func (m *Machine) TraceLine() (string, error) {
	code, ins, err := m.Disassemble()
	if err != nil {
		return "", err
	}
	return trace.Line(m.cpu.PC, code, ins, m.cpu.Registers()), nil
}

// Vectors reads the interrupt vectors from the mapped program ROM.
func (m *Machine) Vectors() (Vectors, error) {
	var vectors Vectors
	addresses := []struct {
		address uint16
		dest    *uint16
	}{
		{m6502.NMIAddress, &vectors.NMI},
		{m6502.ResetAddress, &vectors.Reset},
		{m6502.IrqAddress, &vectors.IRQ},
	}

	for _, vector := range addresses {
		value, err := m.bus.ReadWord(vector.address)
		if err != nil {
			return vectors, fmt.Errorf("reading vector at 0x%04X: %w", vector.address, err)
		}
		*vector.dest = value
	}
	return vectors, nil
}
