package surface

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/glimt/internal/model"
	"github.com/jmylchreest/glimt/internal/render"
)

func testFrame(w, h int) *render.Frame {
	return &render.Frame{
		Origin: model.Point{X: 5, Y: 5},
		Image:  image.NewNRGBA(image.Rect(0, 0, w, h)),
	}
}

func TestPNGSinkWritesNumberedFrames(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewPNGSink(filepath.Join(dir, "frames"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, sink.Present(testFrame(12, 8)))
	}
	require.NoError(t, sink.Close())
	assert.Equal(t, 3, sink.Count())

	for _, name := range []string{"frame-0001.png", "frame-0002.png", "frame-0003.png"} {
		f, err := os.Open(filepath.Join(dir, "frames", name))
		require.NoError(t, err, name)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err, name)
		assert.Equal(t, 12, img.Bounds().Dx())
		assert.Equal(t, 8, img.Bounds().Dy())
	}
}

func TestPNGSinkClosedRejectsFrames(t *testing.T) {
	sink, err := NewPNGSink(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	err = sink.Present(testFrame(4, 4))
	assert.ErrorIs(t, err, model.ErrRenderFailure)
}

func TestPNGSinkRequiresDirectory(t *testing.T) {
	_, err := NewPNGSink("")
	assert.ErrorIs(t, err, model.ErrInvalidArguments)
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendX11, b)

	b, err = ParseBackend("png")
	require.NoError(t, err)
	assert.Equal(t, BackendPNG, b)

	_, err = ParseBackend("wayland")
	assert.Error(t, err)
}

func TestNewPNGBackend(t *testing.T) {
	p, err := New(BackendPNG, model.Rect{Width: 10, Height: 10}, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, p.Present(testFrame(10, 10)))
	require.NoError(t, p.Close())

	_, err = New(Backend("bogus"), model.Rect{}, "")
	assert.Error(t, err)
}
