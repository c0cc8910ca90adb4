package surface

import (
	"fmt"

	"github.com/jmylchreest/glimt/internal/model"
	"github.com/jmylchreest/glimt/internal/overlay"
)

// Backend names a presenter implementation.
type Backend string

const (
	// BackendX11 shows frames on a live overlay window.
	BackendX11 Backend = "x11"
	// BackendPNG writes frames to disk instead of a display.
	BackendPNG Backend = "png"
)

// ParseBackend validates a backend name. The empty string selects X11.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "":
		return BackendX11, nil
	case BackendX11, BackendPNG:
		return Backend(s), nil
	default:
		return "", fmt.Errorf("unknown surface backend %q (want x11 or png)", s)
	}
}

// New opens a presenter for one annotation placed at bounds. frameDir is
// only used by the PNG backend.
func New(backend Backend, bounds model.Rect, frameDir string) (overlay.Presenter, error) {
	switch backend {
	case BackendX11, "":
		return NewX11Window(bounds)
	case BackendPNG:
		return NewPNGSink(frameDir)
	default:
		return nil, fmt.Errorf("unknown surface backend %q", backend)
	}
}
