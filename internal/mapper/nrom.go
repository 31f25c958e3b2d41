package mapper

import (
	"errors"
	"fmt"

	"github.com/retroenv/nescore/internal/bus"
	"github.com/retroenv/nescore/internal/rom"
)

// NROMNumber is the iNES mapper number of NROM.
const NROMNumber = 0

// ErrUnsupportedPRGSize is returned when the PRG-ROM size does not fit the mapper.
var ErrUnsupportedPRGSize = errors.New("unsupported PRG-ROM size")

// NROM is mapper 0, it supports 16 KB (NROM-128) and 32 KB (NROM-256) images.
// A 16 KB image is mirrored into both halves of the cartridge space.
type NROM struct{}

// Reset maps the PRG-ROM into the banks 4-7.
func (NROM) Reset(desc *rom.Descriptor, banks *bus.Banks) error {
	if desc.PRGCount < 1 || desc.PRGCount > 2 {
		return fmt.Errorf("%w: NROM needs 1 or 2 PRG units but got %d", ErrUnsupportedPRGSize, desc.PRGCount)
	}
	if len(desc.PRG) < int(desc.PRGCount)*rom.PRGUnitSize {
		return fmt.Errorf("%w: PRG buffer has %d bytes", ErrUnsupportedPRGSize, len(desc.PRG))
	}

	// 0 for 16 KB images to repeat the first two slices, 2 for 32 KB images
	base := int(desc.PRGCount & 2)
	mapPRG(desc, banks, 0, 0)
	mapPRG(desc, banks, 1, 1)
	mapPRG(desc, banks, 2, base)
	mapPRG(desc, banks, 3, base+1)
	return nil
}
