// Package geom provides the geometric value types the layout engine works
// in. Coordinates are device-independent pixels with the origin at the top
// left and y growing downward.
package geom

// Point is a location in layout space.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair.
type Size struct {
	W float64
	H float64
}

// IsDegenerate reports whether either dimension is zero or negative. The
// layout engine returns an empty configuration for degenerate areas instead
// of running the solver.
func (s Size) IsDegenerate() bool { return s.W <= 0 || s.H <= 0 }

// Max returns the component-wise maximum of s and o.
func (s Size) Max(o Size) Size {
	if o.W > s.W {
		s.W = o.W
	}
	if o.H > s.H {
		s.H = o.H
	}
	return s
}

// Min returns the component-wise minimum of s and o.
func (s Size) Min(o Size) Size {
	if o.W < s.W {
		s.W = o.W
	}
	if o.H < s.H {
		s.H = o.H
	}
	return s
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// NewRect returns a rectangle with the given origin and dimensions.
func NewRect(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Inset shrinks the rectangle by d on every side. Shrinking past the
// midpoint collapses the affected dimension to zero instead of going
// negative.
func (r Rect) Inset(d float64) Rect { return r.InsetXY(d, d) }

// InsetXY shrinks the rectangle by dx on the left and right and dy on
// the top and bottom, collapsing to zero like Inset.
func (r Rect) InsetXY(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	r.W -= 2 * dx
	r.H -= 2 * dy
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Union returns the smallest rectangle containing both r and o. An empty
// rectangle is treated as absent.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

// Contains reports whether p lies inside the rectangle. Points on the top
// and left edges are inside; points on the bottom and right edges are not.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}
