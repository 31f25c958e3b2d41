// Package bus implements the banked CPU memory bus.
package bus

import (
	"errors"
	"fmt"

	"github.com/retroenv/nescore/internal/rom"
	"github.com/retroenv/retrogolib/log"
)

// Memory layout constants.
const (
	BankCount = 8
	BankSize  = 0x2000
	BankShift = 13

	RAMSize     = 0x0800
	SaveRAMSize = 0x2000

	ramBank       = 0
	saveRAMBank   = 3
	firstROMBank  = 4
	bankMask      = BankSize - 1
	ramMirrorMask = RAMSize - 1
)

var (
	// ErrUnmappedAddress is returned for accesses to banks without a device.
	ErrUnmappedAddress = errors.New("unmapped address")
	// ErrBankNotMapped is returned when a mapper leaves a cartridge bank empty.
	ErrBankNotMapped = errors.New("cartridge bank not mapped")
)

// Mapper assigns the cartridge banks 4-7 from the ROM descriptor.
type Mapper interface {
	Reset(desc *rom.Descriptor, banks *Banks) error
}

// Banks is the bank table, each entry references an 8 KB region.
type Banks struct {
	Data     [BankCount][]byte
	Writable [BankCount]bool

	// PRGOffset is the offset of a cartridge bank into the PRG-ROM.
	PRGOffset [BankCount]int
}

// ROMOffset returns the PRG-ROM offset that the address of a mapped
// cartridge bank refers to.
func (b *Banks) ROMOffset(address uint16) (int, bool) {
	bank := address >> BankShift
	if bank < firstROMBank || b.Data[bank] == nil {
		return 0, false
	}
	return b.PRGOffset[bank] + int(address&bankMask), true
}

// Bus routes 16-bit addresses to RAM, save RAM and cartridge banks.
type Bus struct {
	logger *log.Logger

	ram     [RAMSize]byte
	saveRAM [SaveRAMSize]byte
	banks   Banks
}

// New returns a new memory bus.
func New(logger *log.Logger) *Bus {
	return &Bus{
		logger: logger,
	}
}

// Initialize installs RAM and save RAM and lets the mapper fill the cartridge
// banks. A nil mapper leaves the cartridge banks empty.
func (b *Bus) Initialize(desc *rom.Descriptor, mapper Mapper) error {
	b.banks = Banks{}
	b.banks.Data[ramBank] = b.ram[:]
	b.banks.Writable[ramBank] = true
	b.banks.Data[saveRAMBank] = b.saveRAM[:]
	b.banks.Writable[saveRAMBank] = true

	if mapper == nil {
		return nil
	}
	if err := mapper.Reset(desc, &b.banks); err != nil {
		return fmt.Errorf("resetting mapper: %w", err)
	}

	for i := firstROMBank; i < BankCount; i++ {
		if len(b.banks.Data[i]) != BankSize {
			return fmt.Errorf("%w: bank %d", ErrBankNotMapped, i)
		}
	}
	return nil
}

// Banks returns the bank table.
func (b *Bus) Banks() *Banks {
	return &b.banks
}

// Read reads a byte from the given address.
func (b *Bus) Read(address uint16) (byte, error) {
	data, index, err := b.resolve(address)
	if err != nil {
		return 0, err
	}
	return data[index], nil
}

// Write writes a byte to the given address. Writes to read only cartridge
// banks are ignored.
func (b *Bus) Write(address uint16, value byte) error {
	bank := address >> BankShift
	data, index, err := b.resolve(address)
	if err != nil {
		return err
	}

	if !b.banks.Writable[bank] {
		b.logger.Debug("Ignoring write to read only bank",
			log.Hex("address", address),
			log.Hex("value", value))
		return nil
	}
	data[index] = value
	return nil
}

// ReadWord reads a little-endian 16-bit value.
func (b *Bus) ReadWord(address uint16) (uint16, error) {
	low, err := b.Read(address)
	if err != nil {
		return 0, err
	}
	high, err := b.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

func (b *Bus) resolve(address uint16) ([]byte, uint16, error) {
	bank := address >> BankShift

	switch bank {
	case ramBank:
		return b.ram[:], address & ramMirrorMask, nil

	case 1, 2:
		return nil, 0, fmt.Errorf("%w: 0x%04X (bank %d)", ErrUnmappedAddress, address, bank)

	default:
		data := b.banks.Data[bank]
		if data == nil {
			return nil, 0, fmt.Errorf("%w: 0x%04X (bank %d)", ErrUnmappedAddress, address, bank)
		}
		return data, address & bankMask, nil
	}
}
