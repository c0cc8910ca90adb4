package model

import "fmt"

// Point is a position in desktop coordinates.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle. Whether its coordinates are global
// (spanning all displays) or screen-local depends on context; Width and
// Height are never negative.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// String formats the rectangle for logs: "100,200 50x50".
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

// Center returns the rectangle's center point, rounded toward the origin
// corner for odd sizes.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r. Rectangles are half-open: points
// on the right or bottom edge are outside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects reports whether r and other share at least one unit of area.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height && other.Y < r.Y+r.Height
}

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Screen describes one connected display. The set of screens is supplied
// once at startup and treated as immutable for the process lifetime.
type Screen struct {
	// ID names the display in logs and the screens command.
	ID string

	// Bounds is the display's area in global desktop coordinates.
	Bounds Rect

	// Primary marks the fallback display used when a target rectangle
	// matches no screen.
	Primary bool
}
