package geo

// Rect is an axis-aligned rectangle in document-flow pixel coordinates.
// Top grows downward, matching DOM getBoundingClientRect conventions.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Width returns the horizontal extent, never negative.
func (r Rect) Width() float64 {
	if r.Right < r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the vertical extent, never negative.
func (r Rect) Height() float64 {
	if r.Bottom < r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsZero reports whether r is the zero rectangle.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Valid reports whether every bound is finite and the rect is not inverted.
func (r Rect) Valid() bool {
	return IsFinite(r.Left) && IsFinite(r.Top) && IsFinite(r.Right) && IsFinite(r.Bottom) &&
		r.Right >= r.Left && r.Bottom >= r.Top
}

// Translate shifts the rectangle by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// CenterX returns the horizontal midpoint.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical midpoint.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Contains reports whether the point (x, y) lies inside r (inclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// IntersectV returns the vertical overlap of r with the band [top, bottom].
// The second result is false when the overlap has no positive height.
func (r Rect) IntersectV(top, bottom float64) (Rect, bool) {
	out := r
	if out.Top < top {
		out.Top = top
	}
	if out.Bottom > bottom {
		out.Bottom = bottom
	}
	if out.Bottom <= out.Top {
		return Rect{}, false
	}
	return out, true
}
