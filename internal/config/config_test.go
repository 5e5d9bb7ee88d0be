package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndforge/vitaverb/internal/dsp"
)

func TestLoadMissingPathReturnsDefaults(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dsp.DefaultParams(), f.Params())
}

func TestLoadOverridesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vitaverb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mix: 0.75\ndecay: 5\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)

	params := f.Params()
	assert.Equal(t, float32(0.75), params.Mix)
	assert.Equal(t, float32(5), params.Decay)

	defaults := dsp.DefaultParams()
	assert.Equal(t, defaults.Size, params.Size)
	assert.Equal(t, defaults.Width, params.Width)
}

func TestBlockSizeOrFallback(t *testing.T) {
	var f File
	assert.Equal(t, 4096, f.BlockSizeOr(4096))

	n := 256
	f.BlockSize = &n
	assert.Equal(t, 256, f.BlockSizeOr(4096))
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mix: [this is not a float"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
