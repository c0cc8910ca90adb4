package overlay

import "github.com/jmylchreest/glimt/internal/render"

// Presenter puts rendered frames on an output surface. Implementations are
// driven from a single goroutine; Present is called once per tick and Close
// exactly once when the session ends.
type Presenter interface {
	// Present replaces the surface contents with the given frame.
	Present(frame *render.Frame) error

	// Close releases the surface. The session calls this after the final
	// transparent frame so the annotation never lingers on screen.
	Close() error
}
