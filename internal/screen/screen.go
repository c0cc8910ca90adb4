// Package screen discovers the monitors an annotation can be placed on.
// The X11 provider asks the display server; the static provider serves a
// fixed layout for tests, the GLIMT_SCREENS override and headless rendering.
package screen

import "github.com/jmylchreest/glimt/internal/model"

// Provider enumerates the screens of the current desktop. Implementations
// return screens in global desktop coordinates with exactly one marked
// primary whenever the list is non-empty.
type Provider interface {
	Screens() ([]model.Screen, error)
}
