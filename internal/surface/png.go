package surface

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jmylchreest/glimt/internal/model"
	"github.com/jmylchreest/glimt/internal/render"
)

// PNGSink writes every presented frame as a numbered PNG with its alpha
// channel intact. It exists for headless runs and for eyeballing the fade
// envelope frame by frame.
type PNGSink struct {
	dir    string
	count  int
	closed bool
}

// NewPNGSink creates dir if needed and returns a sink writing frame-NNNN.png
// files into it.
func NewPNGSink(dir string) (*PNGSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: no frame directory", model.ErrInvalidArguments)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	return &PNGSink{dir: dir}, nil
}

// Present implements overlay.Presenter.
func (s *PNGSink) Present(frame *render.Frame) error {
	if s.closed {
		return fmt.Errorf("%w: sink closed", model.ErrRenderFailure)
	}
	s.count++
	name := filepath.Join(s.dir, fmt.Sprintf("frame-%04d.png", s.count))

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if err := png.Encode(f, frame.Image); err != nil {
		f.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	return f.Close()
}

// Close implements overlay.Presenter.
func (s *PNGSink) Close() error {
	s.closed = true
	return nil
}

// Count returns how many frames were written.
func (s *PNGSink) Count() int { return s.count }
