package options

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestProgramExecutes(t *testing.T) {
	tests := []struct {
		name     string
		opts     Program
		expected bool
	}{
		{"info only", Program{}, false},
		{"verify only", Program{Flags: Flags{VerifyROM: true}}, false},
		{"trace", Program{Flags: Flags{Trace: true}}, true},
		{"steps", Program{Flags: Flags{Steps: 1}}, true},
		{"golden log", Program{Parameters: Parameters{Golden: "a.log"}}, true},
		{"breakpoint", Program{Flags: Flags{Breakpoints: []uint16{0xC000}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.opts.Executes())
		})
	}
}
