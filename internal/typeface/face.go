// Package typeface loads the embedded font used for popup text. One Face
// serves both measurement and drawing, so popup sizing always matches what
// ends up on screen.
package typeface

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the popup text size in points. Faces are built at 72 DPI so
// points equal desktop units.
const DefaultSize = 14.0

// Face wraps a parsed TTF face. It is not safe for concurrent use; give each
// renderer its own Face.
type Face struct {
	face font.Face
	size float64
}

// New parses the embedded Go Regular font at the given point size.
func New(size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &Face{face: face, size: size}, nil
}

// Measure returns the advance width of text and the face's line height, in
// desktop units.
func (f *Face) Measure(text string) (width, height float64) {
	d := font.Drawer{Face: f.face}
	return fromFixed(d.MeasureString(text)), fromFixed(f.face.Metrics().Height)
}

// Font exposes the drawing face. Drawing with any other face breaks the
// guarantee that measured widths match drawn text.
func (f *Face) Font() font.Face { return f.face }

// Size returns the point size the face was built at.
func (f *Face) Size() float64 { return f.size }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
