package rom

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func buildImage(prgCount, chrCount, flags6, flags7 byte, trainer bool) []byte {
	data := make([]byte, headerSize)
	copy(data, magic)
	data[4] = prgCount
	data[5] = chrCount
	data[6] = flags6
	data[7] = flags7
	if trainer {
		data = append(data, make([]byte, trainerSize)...)
	}

	prg := make([]byte, int(prgCount)*PRGUnitSize)
	for i := range prg {
		prg[i] = byte(i / 0x2000)
	}
	data = append(data, prg...)
	return append(data, make([]byte, int(chrCount)*CHRUnitSize)...)
}

func TestLoadHeaderFlags(t *testing.T) {
	tests := []struct {
		name       string
		flags6     byte
		flags7     byte
		mapper     byte
		fourScreen bool
		trainer    bool
		battery    bool
		vertical   bool
	}{
		{"plain", 0x00, 0x00, 0, false, false, false, false},
		{"vertical", 0x01, 0x00, 0, false, false, false, true},
		{"battery", 0x02, 0x00, 0, false, false, true, false},
		{"trainer", 0x04, 0x00, 0, false, true, false, false},
		{"four screen", 0x08, 0x00, 0, true, false, false, false},
		{"mapper low nibble", 0x30, 0x00, 3, false, false, false, false},
		{"mapper both nibbles", 0x10, 0x40, 0x41, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image := buildImage(1, 1, tt.flags6, tt.flags7, tt.trainer)
			desc, err := Load(bytes.NewReader(image))
			assert.NoError(t, err)

			assert.Equal(t, byte(1), desc.PRGCount)
			assert.Equal(t, byte(1), desc.CHRCount)
			assert.Equal(t, tt.mapper, desc.Mapper)
			assert.Equal(t, tt.fourScreen, desc.FourScreen)
			assert.Equal(t, tt.trainer, desc.HasTrainer)
			assert.Equal(t, tt.battery, desc.Battery)
			assert.Equal(t, tt.vertical, desc.Vertical)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("16 KB image", func(t *testing.T) {
		desc, err := Load(bytes.NewReader(buildImage(1, 1, 0x01, 0, false)))
		assert.NoError(t, err)
		assert.Equal(t, PRGUnitSize, len(desc.PRG))
		assert.Equal(t, CHRUnitSize, len(desc.CHR))
		assert.Equal(t, byte(0), desc.Mapper)
		assert.True(t, desc.Vertical)
	})

	t.Run("32 KB image", func(t *testing.T) {
		desc, err := Load(bytes.NewReader(buildImage(2, 0, 0, 0, false)))
		assert.NoError(t, err)
		assert.Equal(t, 2*PRGUnitSize, len(desc.PRG))
		assert.Equal(t, byte(3), desc.PRG[0x6000])
	})

	t.Run("trainer is skipped", func(t *testing.T) {
		desc, err := Load(bytes.NewReader(buildImage(1, 0, 0x04, 0, true)))
		assert.NoError(t, err)
		assert.True(t, desc.HasTrainer)
		assert.Equal(t, PRGUnitSize, len(desc.PRG))
		assert.Equal(t, byte(1), desc.PRG[0x2000])
	})

	t.Run("invalid magic", func(t *testing.T) {
		data := buildImage(1, 0, 0, 0, false)
		data[3] = 0x1B

		_, err := Load(bytes.NewReader(data))
		assert.True(t, errors.Is(err, ErrInvalidMagic))
	})

	t.Run("truncated PRG", func(t *testing.T) {
		data := buildImage(2, 0, 0, 0, false)
		_, err := Load(bytes.NewReader(data[:headerSize+PRGUnitSize]))
		assert.Error(t, err)
	})

	t.Run("short file", func(t *testing.T) {
		_, err := Load(bytes.NewReader([]byte{'N', 'E', 'S'}))
		assert.True(t, errors.Is(err, ErrInvalidMagic))
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nes")
	assert.NoError(t, os.WriteFile(path, buildImage(1, 0, 0, 0, false), 0600))

	desc, err := LoadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, byte(1), desc.PRGCount)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.nes"))
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	prg := make([]byte, PRGUnitSize)
	prg[0] = 0xA9
	tests := []struct {
		name string
		desc *Descriptor
	}{
		{"battery vertical", &Descriptor{PRG: prg, CHR: make([]byte, CHRUnitSize), Battery: true, Vertical: true}},
		{"four screen", &Descriptor{PRG: prg, FourScreen: true, Mapper: 0x41}},
		{"trainer", &Descriptor{PRG: prg, Trainer: []byte{1, 2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image, err := tt.desc.Encode()
			assert.NoError(t, err)

			loaded, err := Load(bytes.NewReader(image))
			assert.NoError(t, err)
			assert.Equal(t, byte(1), loaded.PRGCount)
			assert.Equal(t, byte(len(tt.desc.CHR)/CHRUnitSize), loaded.CHRCount)
			assert.Equal(t, tt.desc.Mapper, loaded.Mapper)
			assert.Equal(t, tt.desc.Battery, loaded.Battery)
			assert.Equal(t, tt.desc.Vertical, loaded.Vertical)
			assert.Equal(t, tt.desc.FourScreen, loaded.FourScreen)
			assert.Equal(t, len(tt.desc.Trainer) > 0, loaded.HasTrainer)
			assert.Equal(t, byte(0xA9), loaded.PRG[0])
		})
	}

	t.Run("trainer content", func(t *testing.T) {
		desc := &Descriptor{PRG: prg, Trainer: []byte{1, 2, 3}}
		image, err := desc.Encode()
		assert.NoError(t, err)
		assert.Equal(t, headerSize+trainerSize+PRGUnitSize, len(image))
		assert.Equal(t, []byte{1, 2, 3, 0}, image[headerSize:headerSize+4])
	})
}
