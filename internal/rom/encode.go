package rom

import (
	"bytes"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// Cartridge converts the descriptor to a cartridge, the header counts of the
// image are derived from the PRG and CHR buffer sizes.
func (d *Descriptor) Cartridge() *cartridge.Cartridge {
	cart := &cartridge.Cartridge{
		PRG:    d.PRG,
		CHR:    d.CHR,
		Mapper: uint16(d.Mapper),
		Mirror: cartridge.MirrorHorizontal,
	}

	switch {
	case d.FourScreen:
		cart.Mirror = cartridge.Mirror4
	case d.Vertical:
		cart.Mirror = cartridge.MirrorVertical
	}
	if d.Battery {
		cart.Battery = 1
	}
	if d.HasTrainer || len(d.Trainer) > 0 {
		cart.Trainer = make([]byte, trainerSize)
		copy(cart.Trainer, d.Trainer)
	}
	return cart
}

// Save writes the descriptor as cartridge image.
func (d *Descriptor) Save(writer io.Writer) error {
	if err := d.Cartridge().Save(writer); err != nil {
		return fmt.Errorf("saving cartridge: %w", err)
	}
	return nil
}

// Encode returns the descriptor as cartridge image.
func (d *Descriptor) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
