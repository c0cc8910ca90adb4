// Package geometry decides where annotations go: which display hosts a
// target rectangle, where a popup sits relative to its anchor, and how large
// a popup surface must be for its text.
package geometry

import (
	"math"

	"github.com/jmylchreest/glimt/internal/model"
)

// Placement constants, in desktop units (pixels on X11).
const (
	// EdgeMargin is the minimum gap kept between a popup and the left and
	// right screen edges.
	EdgeMargin = 10

	// AnchorGap separates a popup vertically from its anchor rectangle.
	AnchorGap = 8

	// PopupPadding and PopupBuffer widen a popup beyond its measured text.
	PopupPadding = 40
	PopupBuffer  = 20

	// MinPopupWidth floors the computed popup width.
	MinPopupWidth = 100

	// PopupHeight is fixed; popups hold a single line of text.
	PopupHeight = 50
)

// TextMeasurer reports the rendered size of a string. Implementations must
// measure with the same font face the renderer draws with, or popup widths
// will not match the drawn text.
type TextMeasurer interface {
	Measure(text string) (width, height float64)
}

// ResolveScreen returns the display that should host an overlay targeting
// the given rectangle: the screen containing the target's center, else the
// first screen intersecting the target, else the primary. It fails only when
// the screen list is empty.
func ResolveScreen(target model.Rect, screens []model.Screen) (model.Screen, error) {
	if len(screens) == 0 {
		return model.Screen{}, model.ErrNoScreenFound
	}

	center := target.Center()
	for _, s := range screens {
		if s.Bounds.Contains(center) {
			return s, nil
		}
	}
	for _, s := range screens {
		if s.Bounds.Intersects(target) {
			return s, nil
		}
	}
	return Primary(screens), nil
}

// Primary returns the screen flagged as primary, or the first listed when
// none is flagged.
func Primary(screens []model.Screen) model.Screen {
	for _, s := range screens {
		if s.Primary {
			return s
		}
	}
	return screens[0]
}

// PlacePopup positions a popup of the given size relative to its anchor:
// horizontally centered over the anchor, preferring AnchorGap above it,
// clamped to EdgeMargin from the screen's left and right edges, and moved
// below the anchor when there is no room above. Below placement is not
// clamped against the bottom edge. The result is in global coordinates.
func PlacePopup(anchor model.Rect, scr model.Screen, popupWidth, popupHeight int) model.Rect {
	// Work in screen-local coordinates until the final translation.
	x := anchor.X - scr.Bounds.X + (anchor.Width-popupWidth)/2
	y := anchor.Y - scr.Bounds.Y - popupHeight - AnchorGap

	if x+popupWidth > scr.Bounds.Width-EdgeMargin {
		x = scr.Bounds.Width - EdgeMargin - popupWidth
	}
	if x < EdgeMargin {
		x = EdgeMargin
	}
	if y < EdgeMargin {
		y = anchor.Y - scr.Bounds.Y + anchor.Height + AnchorGap
	}

	return model.Rect{
		X:      scr.Bounds.X + x,
		Y:      scr.Bounds.Y + y,
		Width:  popupWidth,
		Height: popupHeight,
	}
}

// PopupSize computes the surface size for a popup message: the measured text
// width plus padding and buffer, floored at MinPopupWidth, with the fixed
// popup height.
func PopupSize(text string, m TextMeasurer) (width, height int) {
	w, _ := m.Measure(text)
	width = int(math.Ceil(w)) + PopupPadding + PopupBuffer
	if width < MinPopupWidth {
		width = MinPopupWidth
	}
	return width, PopupHeight
}
