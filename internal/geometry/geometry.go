// Package geometry provides the pure math behind split view: screen
// rectangles, translation/scale transforms, and the divider position
// computations. Nothing in this package holds state or touches the shell.
package geometry

// Point is a position in screen coordinates.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// Rect is a rectangle in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// BottomRight returns the corner one past the right and bottom edges.
func (r Rect) BottomRight() Point { return Point{X: r.Right(), Y: r.Bottom()} }

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Transposed swaps the axes of the rectangle.
func (r Rect) Transposed() Rect {
	return Rect{X: r.Y, Y: r.X, Width: r.Height, Height: r.Width}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// BoundedPoint clamps p so that it lies inside bounds. The right and bottom
// edges are exclusive, matching pointer-event coordinates.
func BoundedPoint(p Point, bounds Rect) Point {
	return Point{
		X: clamp(p.X, bounds.X, bounds.Right()-1),
		Y: clamp(p.Y, bounds.Y, bounds.Bottom()-1),
	}
}

// Orientation describes how the logical split axis maps onto the physical
// screen. Horizontal is true when the divider moves along the screen width.
// RightSideUp is false when the physical orientation inverts logical
// left/right (or top/bottom).
type Orientation struct {
	Horizontal  bool
	RightSideUp bool
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
