// Package model defines the core data structures for glimt.
package model

import (
	"errors"
	"fmt"
)

// Fatal conditions surfaced to the entrypoints.
var (
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrNoScreenFound    = errors.New("no screen found")
	ErrRenderFailure    = errors.New("render failure")
)

// Annotation is the visual payload one overlay session displays. Exactly two
// kinds exist: Highlight and Popup.
type Annotation interface {
	// Kind returns a short stable name ("highlight", "popup") used in logs
	// and request IDs.
	Kind() string

	sealed()
}

// Highlight marks a desktop region with a translucent accent rectangle.
type Highlight struct {
	// Rect is the highlighted region in global desktop coordinates.
	Rect Rect
}

// Kind implements Annotation.
func (Highlight) Kind() string { return "highlight" }

func (Highlight) sealed() {}

// Popup shows a short text message anchored to a desktop region.
type Popup struct {
	// Text is the message to display. Text wider than the popup surface is
	// truncated with an ellipsis at render time.
	Text string

	// Anchor is the region the popup is placed relative to, in global
	// desktop coordinates.
	Anchor Rect
}

// Kind implements Annotation.
func (Popup) Kind() string { return "popup" }

func (Popup) sealed() {}

// Validate checks that an annotation's geometry is well formed. A highlight
// needs a drawable area; a popup anchor may be a bare point.
func Validate(a Annotation) error {
	switch v := a.(type) {
	case Highlight:
		if v.Rect.Width <= 0 || v.Rect.Height <= 0 {
			return fmt.Errorf("%w: highlight needs a positive size, got %s", ErrInvalidArguments, v.Rect)
		}
	case Popup:
		if v.Anchor.Width < 0 || v.Anchor.Height < 0 {
			return fmt.Errorf("%w: anchor has negative size: %s", ErrInvalidArguments, v.Anchor)
		}
	}
	return nil
}
