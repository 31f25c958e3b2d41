package mapper

import (
	"fmt"
	"io"

	"github.com/retroenv/nescore/internal/bus"
	"github.com/retroenv/nescore/internal/rom"
	"github.com/retroenv/retrogolib/arch/system/nes/codedatalog"
)

// CodeDataLog records which PRG-ROM bytes were executed as code and which
// were called as subroutine entry points. The flags are stored in the Code
// Data Log format, one flag byte per PRG-ROM byte followed by the CHR-ROM
// flags.
type CodeDataLog struct {
	banks    *bus.Banks
	prgFlags []codedatalog.PrgFlag
	chrSize  int
}

// NewCodeDataLog returns a new log for the ROM that resolves addresses
// through the given bank table.
func NewCodeDataLog(desc *rom.Descriptor, banks *bus.Banks) *CodeDataLog {
	return &CodeDataLog{
		banks:    banks,
		prgFlags: make([]codedatalog.PrgFlag, len(desc.PRG)),
		chrSize:  len(desc.CHR),
	}
}

// MarkCode marks the bytes of an instruction as code. Addresses outside of
// the cartridge banks are ignored.
func (l *CodeDataLog) MarkCode(address uint16, length int) {
	for i := range length {
		l.mark(address+uint16(i), codedatalog.Code)
	}
}

// MarkEntryPoint marks the address as start of a subroutine.
func (l *CodeDataLog) MarkEntryPoint(address uint16) {
	l.mark(address, codedatalog.SubEntryPoint)
}

func (l *CodeDataLog) mark(address uint16, flag codedatalog.PrgFlag) {
	offset, ok := l.banks.ROMOffset(address)
	if !ok || offset >= len(l.prgFlags) {
		return
	}
	l.prgFlags[offset] |= flag
}

// PRGFlags returns the recorded flags of the PRG-ROM.
func (l *CodeDataLog) PRGFlags() []codedatalog.PrgFlag {
	return l.prgFlags
}

// WriteTo writes the log in the Code Data Log file format.
func (l *CodeDataLog) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, len(l.prgFlags)+l.chrSize)
	for i, flag := range l.prgFlags {
		buf[i] = byte(flag)
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("writing code data log: %w", err)
	}
	return int64(n), nil
}
