// Package mapper provides the cartridge mappers and the registry that selects
// a mapper by its iNES mapper number.
package mapper

import (
	"errors"
	"fmt"
	"sort"

	"github.com/retroenv/nescore/internal/bus"
	"github.com/retroenv/nescore/internal/rom"
)

// firstCartridgeBank is the bank index of address 0x8000.
const firstCartridgeBank = 4

// ErrUnsupportedMapper is returned for mapper numbers without an implementation.
var ErrUnsupportedMapper = errors.New("unsupported mapper")

// Constructor creates a new mapper instance.
type Constructor func() bus.Mapper

// Registry maps iNES mapper numbers to mapper constructors.
type Registry struct {
	constructors map[byte]Constructor
}

// NewRegistry returns a registry containing all supported mappers.
func NewRegistry() *Registry {
	r := &Registry{
		constructors: map[byte]Constructor{},
	}
	r.Register(NROMNumber, func() bus.Mapper { return NROM{} })
	return r
}

// Register adds a mapper constructor for the given mapper number,
// replacing any existing entry.
func (r *Registry) Register(number byte, constructor Constructor) {
	r.constructors[number] = constructor
}

// Lookup returns a new mapper instance for the given mapper number.
func (r *Registry) Lookup(number byte) (bus.Mapper, error) {
	constructor, ok := r.constructors[number]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedMapper, number)
	}
	return constructor(), nil
}

// ForDescriptor returns a new mapper instance for the mapper number of the ROM.
func (r *Registry) ForDescriptor(desc *rom.Descriptor) (bus.Mapper, error) {
	return r.Lookup(desc.Mapper)
}

// Numbers returns the sorted list of supported mapper numbers.
func (r *Registry) Numbers() []byte {
	numbers := make([]byte, 0, len(r.constructors))
	for number := range r.constructors {
		numbers = append(numbers, number)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	return numbers
}

// mapPRG points the cartridge bank window (0-3) at the given 8 KB slice of PRG-ROM.
func mapPRG(desc *rom.Descriptor, banks *bus.Banks, window, slice int) {
	start := slice * bus.BankSize
	banks.Data[firstCartridgeBank+window] = desc.PRG[start : start+bus.BankSize : start+bus.BankSize]
	banks.Writable[firstCartridgeBank+window] = false
	banks.PRGOffset[firstCartridgeBank+window] = start
}
