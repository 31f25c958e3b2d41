package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestCreateTraceWriter(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		writer, err := CreateTraceWriter("")
		assert.NoError(t, err)
		assert.NoError(t, writer.Close())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trace.log")
		writer, err := CreateTraceWriter(path)
		assert.NoError(t, err)

		_, err = writer.Write([]byte("C000\n"))
		assert.NoError(t, err)
		assert.NoError(t, writer.Close())

		data, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, "C000\n", string(data))
	})

	t.Run("invalid path", func(t *testing.T) {
		_, err := CreateTraceWriter(filepath.Join(t.TempDir(), "missing", "trace.log"))
		assert.Error(t, err)
	})
}
