package trace

import (
	"errors"
	"testing"

	"github.com/retroenv/nescore/internal/cpu"
	"github.com/retroenv/nescore/internal/disasm"
	"github.com/retroenv/retrogolib/assert"
)

func TestLine(t *testing.T) {
	regs := cpu.Registers{PC: 0xC000, SP: 0xFD, P: 0x34}

	tests := []struct {
		name     string
		code     disasm.Code
		expected string
	}{
		{
			name:     "immediate",
			code:     disasm.Code{Opcode: 0xA9, Low: 0x42},
			expected: "C000  A9 42     LDA #$42        A:00 X:00 Y:00 P:34 SP:FD",
		},
		{
			name:     "implied",
			code:     disasm.Code{Opcode: 0xE8, Low: 0xFF},
			expected: "C000  E8        INX             A:00 X:00 Y:00 P:34 SP:FD",
		},
		{
			name:     "absolute",
			code:     disasm.Code{Opcode: 0x4C, Low: 0xF5, High: 0xC5},
			expected: "C000  4C F5 C5  JMP $C5F5       A:00 X:00 Y:00 P:34 SP:FD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := Line(0xC000, tt.code, disasm.Disassemble(tt.code), regs)
			assert.Equal(t, tt.expected, line)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected Entry
	}{
		{
			name: "own format",
			line: "C000  A9 42     LDA #$42        A:01 X:02 Y:03 P:34 SP:FD",
			expected: Entry{
				PC:        0xC000,
				Mnemonic:  "LDA",
				Registers: cpu.Registers{PC: 0xC000, A: 0x01, X: 0x02, Y: 0x03, P: 0x34, SP: 0xFD},
			},
		},
		{
			name: "golden log",
			line: "C72D  EA        NOP                             A:00 X:00 Y:00 P:26 SP:FB PPU:  0, 57 CYC:19",
			expected: Entry{
				PC:        0xC72D,
				Mnemonic:  "NOP",
				Registers: cpu.Registers{PC: 0xC72D, P: 0x26, SP: 0xFB},
			},
		},
		{
			name: "undocumented marker",
			line: "E7C8  04 A9    *NOP $A9 = 00                    A:AA X:97 Y:4E P:EF SP:F5 PPU:  0,  0 CYC:0",
			expected: Entry{
				PC:        0xE7C8,
				Mnemonic:  "NOP",
				Registers: cpu.Registers{PC: 0xE7C8, A: 0xAA, X: 0x97, Y: 0x4E, P: 0xEF, SP: 0xF5},
			},
		},
		{
			name: "alternative undocumented name",
			line: "EEE1  E3 45    *ISB ($45,X) @ 47 = 0647 = EB    A:E2 X:02 Y:00 P:E5 SP:FB PPU:  0,  0 CYC:0",
			expected: Entry{
				PC:        0xEEE1,
				Mnemonic:  "ISC",
				Registers: cpu.Registers{PC: 0xEEE1, A: 0xE2, X: 0x02, P: 0xE5, SP: 0xFB},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Parse(tt.line)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, entry)
		})
	}
}

func TestParseErrors(t *testing.T) {
	lines := []string{
		"",
		"C000  A9 42",
		"XYZW  A9 42     LDA #$42        A:01 X:02 Y:03 P:34 SP:FD",
		"C000  A9 42     LDA #$42        A:01 X:02 Y:03 P:34",
		"C000  A9 42     LDA #$42        A:0G X:02 Y:03 P:34 SP:FD",
		"C000  A9 42                     X:02 Y:03 P:34 SP:FD 0000",
	}

	for _, line := range lines {
		_, err := Parse(line)
		assert.True(t, errors.Is(err, ErrMalformedLine), line)
	}
}

func TestLineParseRoundTrip(t *testing.T) {
	code := disasm.Code{Opcode: 0x8D, Low: 0x10, High: 0x00}
	regs := cpu.Registers{PC: 0x8003, A: 0x42, SP: 0xFD, P: 0x34}

	entry, err := Parse(Line(regs.PC, code, disasm.Disassemble(code), regs))
	assert.NoError(t, err)
	assert.Equal(t, "STA", entry.Mnemonic)
	assert.Equal(t, regs, entry.Registers)
}
