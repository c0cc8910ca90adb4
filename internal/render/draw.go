package render

import (
	"image"
	"image/color"
	"math"
)

// scaleAlpha returns c with its alpha channel replaced by a, clamped to
// [0, 1]. Color channels are left untouched: frames carry straight alpha.
func scaleAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a <= 0 {
		c.A = 0
		return c
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(math.Round(a * 255))
	return c
}

// lerpColor interpolates the color channels between a and b at t in [0, 1].
// Alpha is not interpolated; callers set it from the current opacity.
func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return color.NRGBA{
		R: uint8(math.Round(float64(a.R) + (float64(b.R)-float64(a.R))*t)),
		G: uint8(math.Round(float64(a.G) + (float64(b.G)-float64(a.G))*t)),
		B: uint8(math.Round(float64(a.B) + (float64(b.B)-float64(a.B))*t)),
	}
}

// fillRect overwrites every pixel of the given region. No blending: the
// renderer composes frames on cleared buffers, so the last write wins.
func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// strokeRect draws a frame of the given width just inside r.
func strokeRect(img *image.NRGBA, r image.Rectangle, width int, c color.NRGBA) {
	if width <= 0 || r.Empty() {
		return
	}
	w, h := r.Dx(), r.Dy()
	if width*2 >= w || width*2 >= h {
		// Too small to have an interior; the stroke covers everything.
		fillRect(img, r, c)
		return
	}
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y+width, r.Min.X+width, r.Max.Y-width), c)
	fillRect(img, image.Rect(r.Max.X-width, r.Min.Y+width, r.Max.X, r.Max.Y-width), c)
}

// roundedCoverage returns how much of the pixel at (x, y) lies inside a
// rounded rectangle of size w×h with the given corner radius: 1 for interior
// pixels, 0 outside, and a fractional edge value across the corner arcs so
// they do not look stair-stepped.
func roundedCoverage(x, y, w, h, radius int) float64 {
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0
	}
	if radius <= 0 {
		return 1
	}
	if radius*2 > w {
		radius = w / 2
	}
	if radius*2 > h {
		radius = h / 2
	}

	// Locate the nearest corner-arc center; pixels outside all four corner
	// squares are fully covered.
	var cx, cy int
	switch {
	case x < radius && y < radius:
		cx, cy = radius-1, radius-1
	case x >= w-radius && y < radius:
		cx, cy = w-radius, radius-1
	case x < radius && y >= h-radius:
		cx, cy = radius-1, h-radius
	case x >= w-radius && y >= h-radius:
		cx, cy = w-radius, h-radius
	default:
		return 1
	}

	dx, dy := float64(x-cx), float64(y-cy)
	dist := math.Sqrt(dx*dx + dy*dy)
	cov := float64(radius) + 0.5 - dist
	if cov >= 1 {
		return 1
	}
	if cov <= 0 {
		return 0
	}
	return cov
}
