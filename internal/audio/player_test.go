package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVolumeClamps(t *testing.T) {
	p := NewPlayer()
	assert.Equal(t, 1.0, p.Volume())

	p.SetVolume(0.5)
	assert.Equal(t, 0.5, p.Volume())

	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.Volume())

	p.SetVolume(2)
	assert.Equal(t, 1.0, p.Volume())
}

func TestLoadTone(t *testing.T) {
	p := NewPlayer()
	assert.False(t, p.Loaded())

	require.NoError(t, p.LoadTone())
	assert.True(t, p.Loaded())
}

func TestLoadFileErrors(t *testing.T) {
	p := NewPlayer()

	err := p.LoadFile("/nonexistent/chime.wav")
	assert.Error(t, err)
	assert.False(t, p.Loaded())

	path := filepath.Join(t.TempDir(), "chime.flac")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	err = p.LoadFile(path)
	assert.Error(t, err, "unsupported extension")
}

func TestPlayWithoutChimeIsNoop(t *testing.T) {
	p := NewPlayer()
	// Nothing loaded: Play must not try to open the audio device.
	assert.NoError(t, p.Play())
}

func TestPlaySilentIsNoop(t *testing.T) {
	p := NewPlayer()
	require.NoError(t, p.LoadTone())
	p.SetVolume(0)
	// Muted: Play must not try to open the audio device.
	assert.NoError(t, p.Play())
}

func TestCloseDropsChime(t *testing.T) {
	p := NewPlayer()
	require.NoError(t, p.LoadTone())
	p.Close()
	assert.False(t, p.Loaded())
}
