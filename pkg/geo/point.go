package geo

import "math"

// Point is a single planar coordinate feature.
//
// Point doubles as the vertex type of Polyline and Polygon; vertices are
// plain coordinate values whose feature state (id, selection) is unused.
type Point struct {
	feature
	X, Y float64
}

// NewPoint returns an unadopted point at the coordinate.
func NewPoint(x, y float64) *Point {
	return &Point{
		feature: feature{id: UnassignedID},
		X:       x,
		Y:       y,
	}
}

// Kind returns KindPoint.
func (p *Point) Kind() Kind { return KindPoint }

// Bounds returns the degenerate box collapsed onto the point.
func (p *Point) Bounds() BoundingBox {
	return BoundingBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}

// DistanceTo returns the Euclidean distance to another point.
func (p *Point) DistanceTo(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Clone returns a copy of the point, preserving id and selection state.
func (p *Point) Clone() Geometry {
	c := *p
	return &c
}
