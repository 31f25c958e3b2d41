package app

import (
	"bytes"
	"testing"

	"github.com/retroenv/nescore/internal/machine"
	"github.com/retroenv/nescore/internal/options"
	"github.com/retroenv/nescore/internal/rom"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestBannerEnabled(t *testing.T) {
	tests := []struct {
		name     string
		opts     options.Program
		terminal bool
		expected bool
	}{
		{"terminal", options.Program{}, true, true},
		{"no trace pipe", options.Program{}, false, true},
		{"quiet", options.Program{Flags: options.Flags{Quiet: true}}, true, false},
		{"trace to terminal", options.Program{Flags: options.Flags{Trace: true}}, true, true},
		{"trace to pipe", options.Program{Flags: options.Flags{Trace: true}}, false, false},
		{
			name:     "trace to file",
			opts:     options.Program{Parameters: options.Parameters{Output: "trace.log"}, Flags: options.Flags{Trace: true}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, bannerEnabled(tt.opts, tt.terminal))
		})
	}
}

func TestPrintBannerQuiet(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, options.Program{Flags: options.Flags{Quiet: true}}, "1.0.0", "", "")
	assert.Equal(t, 0, buf.Len())
}

func TestPrintInfo(t *testing.T) {
	logger := log.NewTestLogger(t)
	desc := &rom.Descriptor{PRGCount: 2, CHRCount: 1, Vertical: true}

	PrintInfo(logger, options.Program{Parameters: options.Parameters{Input: "test.nes"}}, desc)
	PrintVectors(logger, machine.Vectors{NMI: 0xC100, Reset: 0xC000, IRQ: 0xC200})
}
