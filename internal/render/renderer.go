// Package render rasterizes annotations into alpha-blended pixel frames.
// A Renderer is pure: it takes an annotation, the current opacity and the
// frame bounds, and produces an image without touching any display API.
// Presenters decide how the frame reaches the screen.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/glimt/internal/model"
	"github.com/jmylchreest/glimt/internal/typeface"
)

const (
	// borderWidth is the stroke width of the highlight border in pixels.
	borderWidth = 2

	// borderAlphaBoost multiplies the frame opacity for the highlight
	// border so the outline stays readable while the fill is faint.
	borderAlphaBoost = 4

	// cornerRadius is the popup bubble corner radius in pixels.
	cornerRadius = 16

	// textMargin keeps popup text away from the bubble edges.
	textMargin = 20

	// shadowOffset shifts the text shadow down by this many pixels.
	shadowOffset = 1

	// shadowAlphaScale dims the shadow relative to the frame opacity.
	shadowAlphaScale = 0.3
)

// ellipsis terminates truncated popup text.
const ellipsis = "…"

// Style holds the colors a Renderer paints with. Alpha channels are ignored;
// the per-frame opacity decides transparency.
type Style struct {
	// Accent fills and outlines highlight rectangles.
	Accent color.NRGBA
	// GradientStart is the popup background at the bottom-left corner.
	GradientStart color.NRGBA
	// GradientEnd is the popup background at the top-right corner.
	GradientEnd color.NRGBA
	// Text colors popup body text.
	Text color.NRGBA
	// Shadow colors the offset copy drawn behind popup text.
	Shadow color.NRGBA
}

// DefaultStyle returns the stock palette: a yellow highlight marker and a
// blue-to-purple popup bubble with white text.
func DefaultStyle() Style {
	return Style{
		Accent:        color.NRGBA{R: 0xf6, G: 0xd3, B: 0x2d},
		GradientStart: color.NRGBA{R: 0x35, G: 0x84, B: 0xe4},
		GradientEnd:   color.NRGBA{R: 0x91, G: 0x41, B: 0xac},
		Text:          color.NRGBA{R: 0xff, G: 0xff, B: 0xff},
		Shadow:        color.NRGBA{},
	}
}

// Frame is one rendered annotation image, positioned in global desktop
// coordinates. Pixels use straight (non-premultiplied) alpha.
type Frame struct {
	Origin model.Point
	Image  *image.NRGBA
}

// Renderer rasterizes annotations with a fixed style and typeface.
type Renderer struct {
	style Style
	face  *typeface.Face
}

// NewRenderer returns a Renderer painting with the given style. The face may
// be nil when only highlights will be rendered; rendering a popup without a
// face fails.
func NewRenderer(style Style, face *typeface.Face) *Renderer {
	return &Renderer{style: style, face: face}
}

// Render produces the frame for a at the given opacity. The frame buffer
// matches bounds exactly; opacity at or below zero yields a fully transparent
// frame so callers can clear the surface with a final Render call.
func (r *Renderer) Render(a model.Annotation, opacity float64, bounds model.Rect) (*Frame, error) {
	w, h := bounds.Width, bounds.Height
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	frame := &Frame{
		Origin: model.Point{X: bounds.X, Y: bounds.Y},
		Image:  image.NewNRGBA(image.Rect(0, 0, w, h)),
	}
	if opacity <= 0 || w == 0 || h == 0 {
		return frame, nil
	}
	if opacity > 1 {
		opacity = 1
	}

	switch v := a.(type) {
	case model.Highlight:
		r.renderHighlight(frame.Image, opacity)
	case model.Popup:
		if err := r.renderPopup(frame.Image, v.Text, opacity); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown annotation kind %q", model.ErrInvalidArguments, a.Kind())
	}
	return frame, nil
}

// renderHighlight paints a translucent fill with a stronger border. Border
// pixels overwrite fill pixels so the border alpha is exact, not stacked.
func (r *Renderer) renderHighlight(img *image.NRGBA, opacity float64) {
	fillRect(img, img.Bounds(), scaleAlpha(r.style.Accent, opacity))
	strokeRect(img, img.Bounds(), borderWidth, scaleAlpha(r.style.Accent, opacity*borderAlphaBoost))
}

// renderPopup paints the rounded gradient bubble and centers the text over
// it, shadow first.
func (r *Renderer) renderPopup(img *image.NRGBA, text string, opacity float64) error {
	if r.face == nil {
		return fmt.Errorf("%w: popup rendering requires a typeface", model.ErrRenderFailure)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// Diagonal gradient from the bottom-left to the top-right corner.
	denom := float64(w + h - 2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cov := roundedCoverage(x, y, w, h, cornerRadius)
			if cov == 0 {
				continue
			}
			t := 0.0
			if denom > 0 {
				t = (float64(x) + float64(h-1-y)) / denom
			}
			c := lerpColor(r.style.GradientStart, r.style.GradientEnd, t)
			img.SetNRGBA(x, y, scaleAlpha(c, opacity*cov))
		}
	}

	text = r.fitText(text, w-2*textMargin)
	if text == "" {
		return nil
	}

	tw, _ := r.face.Measure(text)
	m := r.face.Font().Metrics()
	dot := fixed.Point26_6{
		X: fixed.I(w)/2 - fixed.Int26_6(math.Round(tw*32)),
		Y: fixed.I(h)/2 + (m.Ascent-m.Descent)/2,
	}

	shadow := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(scaleAlpha(r.style.Shadow, opacity*shadowAlphaScale)),
		Face: r.face.Font(),
		Dot:  fixed.Point26_6{X: dot.X, Y: dot.Y + fixed.I(shadowOffset)},
	}
	shadow.DrawString(text)

	main := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(scaleAlpha(r.style.Text, opacity)),
		Face: r.face.Font(),
		Dot:  dot,
	}
	main.DrawString(text)
	return nil
}

// fitText truncates text to the given pixel width, replacing the removed
// tail with an ellipsis. Text that already fits is returned unchanged.
func (r *Renderer) fitText(text string, maxWidth int) string {
	if text == "" || maxWidth <= 0 {
		return ""
	}
	if w, _ := r.face.Measure(text); w <= float64(maxWidth) {
		return text
	}
	runes := []rune(strings.TrimRight(text, " "))
	for len(runes) > 0 {
		candidate := string(runes) + ellipsis
		if w, _ := r.face.Measure(candidate); w <= float64(maxWidth) {
			return candidate
		}
		runes = runes[:len(runes)-1]
	}
	return ""
}
