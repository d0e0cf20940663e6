package geo

import "math"

// BoundingBox is an axis-aligned rectangle in planar coordinates.
//
// A box fresh from NewBoundingBox is empty: its minima sit at +Inf and its
// maxima at -Inf, so the first ExpandToInclude collapses it onto that point.
// Contains and Intersects report false until the box has been expanded at
// least once. For a non-empty box MinX <= MaxX and MinY <= MaxY always hold.
type BoundingBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBoundingBox returns an empty box ready to be expanded.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// NewBoundingBoxFromCoords returns a box spanning the two corner coordinates.
// The corners may be given in any order.
func NewBoundingBoxFromCoords(x1, y1, x2, y2 float64) BoundingBox {
	b := NewBoundingBox()
	b.ExpandToInclude(x1, y1)
	b.ExpandToInclude(x2, y2)
	return b
}

// IsEmpty reports whether the box has never been expanded.
func (b BoundingBox) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// ExpandToInclude grows the box to cover the coordinate.
// Expansion is commutative and associative over any set of coordinates.
func (b *BoundingBox) ExpandToInclude(x, y float64) {
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// ExpandToIncludeBox grows the box to cover another box.
// Expanding by an empty box is a no-op.
func (b *BoundingBox) ExpandToIncludeBox(other BoundingBox) {
	if other.IsEmpty() {
		return
	}
	b.ExpandToInclude(other.MinX, other.MinY)
	b.ExpandToInclude(other.MaxX, other.MaxY)
}

// Contains reports whether the coordinate lies inside the box.
// Boundaries count as inside (closed-interval semantics).
// An empty box contains nothing.
func (b BoundingBox) Contains(x, y float64) bool {
	if b.IsEmpty() {
		return false
	}
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Intersects reports whether the two boxes share any area or boundary.
// Touching edges count as intersecting. An empty box intersects nothing.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return false
	}
	return b.MinX <= other.MaxX && b.MaxX >= other.MinX &&
		b.MinY <= other.MaxY && b.MaxY >= other.MinY
}

// Width returns the horizontal extent, or 0 for an empty box.
func (b BoundingBox) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxX - b.MinX
}

// Height returns the vertical extent, or 0 for an empty box.
func (b BoundingBox) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxY - b.MinY
}

// Center returns the midpoint of the box. For an empty box both values are 0.
func (b BoundingBox) Center() (x, y float64) {
	if b.IsEmpty() {
		return 0, 0
	}
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}
