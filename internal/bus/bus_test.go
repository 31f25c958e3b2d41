package bus

import (
	"errors"
	"testing"

	"github.com/retroenv/nescore/internal/rom"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// testMapper maps consecutive 8 KB slices of the PRG-ROM into the cartridge banks.
type testMapper struct {
	skip bool
	err  error
}

func (m testMapper) Reset(desc *rom.Descriptor, banks *Banks) error {
	if m.err != nil {
		return m.err
	}
	if m.skip {
		return nil
	}
	for i := range 4 {
		banks.Data[4+i] = desc.PRG[i*BankSize : (i+1)*BankSize]
	}
	return nil
}

func newTestBus(t *testing.T) (*Bus, *rom.Descriptor) {
	t.Helper()

	prg := make([]byte, 2*rom.PRGUnitSize)
	for i := range prg {
		prg[i] = byte(i>>8) ^ byte(i)
	}
	desc := &rom.Descriptor{PRG: prg, PRGCount: 2}

	b := New(log.NewTestLogger(t))
	assert.NoError(t, b.Initialize(desc, testMapper{}))
	return b, desc
}

func TestBusRAMMirror(t *testing.T) {
	b, _ := newTestBus(t)

	assert.NoError(t, b.Write(0x0012, 0x42))
	for _, address := range []uint16{0x0012, 0x0812, 0x1012, 0x1812} {
		value, err := b.Read(address)
		assert.NoError(t, err)
		assert.Equal(t, byte(0x42), value)
	}

	assert.NoError(t, b.Write(0x1FFF, 0x99))
	value, err := b.Read(0x07FF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x99), value)
}

func TestBusSaveRAM(t *testing.T) {
	b, _ := newTestBus(t)

	assert.NoError(t, b.Write(0x6000, 0x01))
	assert.NoError(t, b.Write(0x7FFF, 0x02))

	value, err := b.Read(0x6000)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x01), value)
	value, err = b.Read(0x7FFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x02), value)
}

func TestBusCartridgeBanks(t *testing.T) {
	b, desc := newTestBus(t)

	for _, address := range []uint16{0x8000, 0x9FFF, 0xA000, 0xC123, 0xFFFF} {
		value, err := b.Read(address)
		assert.NoError(t, err)
		assert.Equal(t, desc.PRG[address-0x8000], value)
	}

	// ROM banks are read only
	before, _ := b.Read(0x8000)
	assert.NoError(t, b.Write(0x8000, before+1))
	after, _ := b.Read(0x8000)
	assert.Equal(t, before, after)
}

func TestBusUnmappedBanks(t *testing.T) {
	b, _ := newTestBus(t)

	for _, address := range []uint16{0x2000, 0x3FFF, 0x4000, 0x5FFF} {
		_, err := b.Read(address)
		assert.True(t, errors.Is(err, ErrUnmappedAddress))
		err = b.Write(address, 0)
		assert.True(t, errors.Is(err, ErrUnmappedAddress))
	}
}

func TestBusReadWord(t *testing.T) {
	b, _ := newTestBus(t)

	assert.NoError(t, b.Write(0x0010, 0x34))
	assert.NoError(t, b.Write(0x0011, 0x12))

	word, err := b.ReadWord(0x0010)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), word)
}

func TestBusInitialize(t *testing.T) {
	desc := &rom.Descriptor{PRG: make([]byte, rom.PRGUnitSize*2), PRGCount: 2}

	t.Run("without mapper", func(t *testing.T) {
		b := New(log.NewTestLogger(t))
		assert.NoError(t, b.Initialize(desc, nil))

		_, err := b.Read(0x8000)
		assert.True(t, errors.Is(err, ErrUnmappedAddress))
		assert.NoError(t, b.Write(0x0000, 1))
	})

	t.Run("mapper error", func(t *testing.T) {
		mapperErr := errors.New("mapper failure") //nolint:err113 // test error
		b := New(log.NewTestLogger(t))
		err := b.Initialize(desc, testMapper{err: mapperErr})
		assert.True(t, errors.Is(err, mapperErr))
	})

	t.Run("incomplete mapping", func(t *testing.T) {
		b := New(log.NewTestLogger(t))
		err := b.Initialize(desc, testMapper{skip: true})
		assert.True(t, errors.Is(err, ErrBankNotMapped))
	})

	t.Run("bank table", func(t *testing.T) {
		b := New(log.NewTestLogger(t))
		assert.NoError(t, b.Initialize(desc, testMapper{}))

		banks := b.Banks()
		assert.True(t, banks.Writable[0])
		assert.True(t, banks.Writable[3])
		assert.True(t, banks.Data[1] == nil)
		assert.True(t, banks.Data[2] == nil)
		assert.Equal(t, RAMSize, len(banks.Data[0]))
		assert.Equal(t, SaveRAMSize, len(banks.Data[3]))
	})
}
