// Package m6502 provides the 6502 opcode metadata that is shared by the CPU
// engine and the disassembler.
package m6502

import "github.com/retroenv/retrogolib/arch/cpu/cpu6502"

// Interrupt vector addresses. Each vector is a little-endian 16-bit pointer.
const (
	NMIAddress   = cpu6502.NMIAddress
	ResetAddress = cpu6502.ResetAddress
	IrqAddress   = cpu6502.IrqAddress // also used by BRK

	// InterruptVectorStartAddress is the first address of the vector table.
	InterruptVectorStartAddress = cpu6502.InterruptVectorStartAddress
)

// MaxOpcodeSize is the maximum size in bytes of an instruction including its operands.
const MaxOpcodeSize = cpu6502.MaxOpcodeSize

// StackBase is the address of the stack page, the stack pointer is an offset into it.
const StackBase = cpu6502.StackBase
