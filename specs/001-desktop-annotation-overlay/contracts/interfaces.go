// Package contracts defines the interfaces for glimt.
// This file serves as documentation and is not compiled.
// Actual implementations live in internal/ packages.
package contracts

import (
	"context"
	"image"
	"io"
	"time"
)

// =============================================================================
// Model Types
// =============================================================================

// Point is a position in desktop coordinates.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle. Coordinates are global (spanning all
// displays) or screen-local depending on context; Width and Height are
// never negative.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Screen describes one connected display. The set of screens is supplied
// once at startup and treated as immutable for the process lifetime.
type Screen struct {
	ID      string // names the display in logs and the screens command
	Bounds  Rect   // display area in global desktop coordinates
	Primary bool   // fallback display when a target matches no screen
}

// Annotation is the tagged union of things glimt can draw. It is sealed:
// only Highlight and Popup implement it.
type Annotation interface {
	// Kind returns "highlight" or "popup" for logs and request IDs.
	Kind() string
}

// Highlight is a translucent accent rectangle drawn exactly at Rect.
type Highlight struct {
	Rect Rect
}

// Popup is a gradient pill with centered text, placed relative to Anchor.
type Popup struct {
	Text   string
	Anchor Rect
}

// Phase is a fade sequencer state. Phases progress strictly forward:
// FadingIn, Holding, FadingOut, Done. No phase is skipped or revisited.
type Phase int

const (
	FadingIn Phase = iota
	Holding
	FadingOut
	Done
)

// Frame is one rendered overlay image: an owned straight-alpha buffer plus
// its origin in global desktop coordinates. Frames are produced fresh each
// tick and ownership transfers to the presenter.
type Frame struct {
	Origin Point
	Image  *image.NRGBA
}

// =============================================================================
// Fade Sequencer
// =============================================================================

// FadeConfig fixes a sequencer's timings and peak opacity at construction.
// All durations must be positive; Peak must be in (0, 1].
type FadeConfig struct {
	FadeIn  time.Duration
	Hold    time.Duration
	FadeOut time.Duration
	Peak    float64
}

// Sequencer is the time-driven opacity state machine.
type Sequencer interface {
	// Tick advances the machine to now and returns the phase and opacity.
	// It is the sole mutator: idempotent at the same instant, monotonic
	// within a phase, at most one transition per call.
	Tick(now time.Time) (Phase, float64)

	// Phase returns the current phase without advancing time.
	Phase() Phase
}

// =============================================================================
// Surface Renderer
// =============================================================================

// TextMeasurer reports rendered text dimensions. Measurement and drawing
// must use the same font face or popup widths will be wrong.
type TextMeasurer interface {
	Measure(text string) (width, height float64)
}

// Renderer rasterizes an annotation at a given opacity.
type Renderer interface {
	// Render produces a frame for the annotation at bounds. opacity <= 0
	// yields a fully transparent buffer without drawing; this short-circuit
	// must not fail on degenerate inputs.
	Render(a Annotation, opacity float64, bounds Rect) (*Frame, error)
}

// =============================================================================
// Presenter Interface
// =============================================================================

// Presenter makes frames visible as a topmost, click-through, non-activating
// surface. Implementations: X11 override-redirect window, PNG frame sink.
type Presenter interface {
	// Present displays the frame. Called from a single goroutine.
	Present(frame *Frame) error

	// Close releases the surface. Called exactly once.
	Close() error
}

// =============================================================================
// Screen Provider Interface
// =============================================================================

// Provider supplies the connected displays. Implementations: X11 Xinerama
// query, static list from configuration or environment.
type Provider interface {
	Screens() ([]Screen, error)
}

// =============================================================================
// Overlay Session
// =============================================================================

// Session drives one annotation through its fade cycle: tick the sequencer,
// render at the current opacity, present; on Done present one final
// zero-opacity frame and stop.
type Session interface {
	// Run blocks until the fade cycle completes or ctx is cancelled. The
	// presenter is released on every exit path.
	Run(ctx context.Context) error
}

// =============================================================================
// Chime Interface
// =============================================================================

// Chime plays the optional sound when an annotation first reaches peak
// opacity. Implementations decode a configured file or generate a tone.
type Chime interface {
	Play()
	Close()
}

// =============================================================================
// Output Formatter Interface
// =============================================================================

// Formatter formats screen listings for the screens command.
type Formatter interface {
	// Format writes the formatted screen list to the writer.
	Format(w io.Writer, screens []Screen) error
}

// =============================================================================
// Annotation Service (glimtd D-Bus surface)
// =============================================================================

// AnnotationService is the D-Bus contract glimtd exports at
// io.github.jmylchreest.glimt. Methods return a request ID; the
// AnnotationDone(id, reason) signal fires when a session ends.
type AnnotationService interface {
	// Highlight shows a highlight rectangle in global coordinates.
	Highlight(x, y, width, height int32) (id string, err error)

	// Popup shows a text popup anchored to the given rectangle.
	Popup(text string, x, y, width, height int32) (id string, err error)

	// ListScreens reports the displays annotations can target.
	ListScreens() ([]Screen, error)

	// Status reports daemon version, humanized uptime, active session
	// count and total sessions served.
	Status() (version, uptime string, active uint32, served uint64, err error)
}
