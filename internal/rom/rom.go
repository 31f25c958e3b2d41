// Package rom loads iNES cartridge images into a ROM descriptor.
package rom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// Unit sizes of the header counts.
const (
	PRGUnitSize = 0x4000
	CHRUnitSize = 0x2000

	headerSize  = 16
	trainerSize = 512
)

var magic = []byte{'N', 'E', 'S', 0x1A}

var (
	// ErrInvalidMagic is returned for files that do not start with the iNES identifier.
	ErrInvalidMagic = errors.New("invalid iNES magic")
	// ErrUnsupportedMapper is returned for NES 2.0 mapper numbers above 255.
	ErrUnsupportedMapper = errors.New("unsupported mapper number")
)

// Descriptor describes a loaded cartridge image. The memory bus and the mapper
// keep references into its PRG buffer for the lifetime of the session.
type Descriptor struct {
	PRG     []byte
	CHR     []byte
	Trainer []byte // never mapped

	PRGCount byte // number of 16 KB PRG-ROM units
	CHRCount byte // number of 8 KB CHR-ROM units
	Mapper   byte

	FourScreen bool
	HasTrainer bool
	Battery    bool
	Vertical   bool
}

// LoadFile loads the cartridge image from the given file.
func LoadFile(path string) (*Descriptor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	desc, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return desc, nil
}

// Load reads a cartridge image in iNES or NES 2.0 format.
func Load(reader io.Reader) (*Descriptor, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(data) < headerSize || !bytes.Equal(data[:len(magic)], magic) {
		return nil, ErrInvalidMagic
	}

	cart, err := cartridge.LoadFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing cartridge: %w", err)
	}
	if cart.Mapper > 0xFF {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, cart.Mapper)
	}

	return &Descriptor{
		PRG:        cart.PRG,
		CHR:        cart.CHR,
		Trainer:    cart.Trainer,
		PRGCount:   byte(len(cart.PRG) / PRGUnitSize),
		CHRCount:   byte(len(cart.CHR) / CHRUnitSize),
		Mapper:     byte(cart.Mapper),
		FourScreen: cart.Mirror == cartridge.Mirror4,
		HasTrainer: len(cart.Trainer) > 0,
		Battery:    cart.Battery != 0,
		Vertical:   cart.Mirror == cartridge.MirrorVertical,
	}, nil
}
