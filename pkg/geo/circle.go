package geo

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ErrCollinearPoints is returned by NewCircleFromPoints when the three
// points are collinear (or close enough that the circumcenter denominator
// vanishes numerically) and no finite circle passes through them.
var ErrCollinearPoints = errors.New("collinear points define no circle")

// collinearEpsilon bounds |d| in the circumcenter construction below which
// the three points are treated as collinear.
const collinearEpsilon = 1e-12

// Circle is a center/radius feature created by editors; geometry files
// never encode circles.
//
// The user points are an auxiliary, independently owned set of control
// points (at least 3 when present) kept so the circle can be re-derived
// after edits. They never participate in the bounding box and are not
// required to stay on the boundary except immediately after construction
// from three points. Elevation is a non-geometric attribute carried along
// for annotation.
type Circle struct {
	feature
	center     Point
	radius     float64
	userPoints []Point
	bounds     BoundingBox

	// Elevation is a free annotation value; it never affects geometry.
	Elevation float64
}

// NewCircle returns an unadopted circle with the given center and radius.
// A negative radius is treated as 0.
func NewCircle(center Point, radius float64) *Circle {
	if radius < 0 {
		radius = 0
	}
	c := &Circle{
		feature: feature{id: UnassignedID},
		center:  center,
		radius:  radius,
	}
	c.recomputeBounds()
	return c
}

// NewCircleFromPoints constructs the circle passing through three points
// via the circumcenter formula and stores the points as user points.
//
// Collinear points have no circumcircle; the construction fails with
// ErrCollinearPoints rather than producing a degenerate radius.
//
// Example:
//
//	circle, err := geo.NewCircleFromPoints(
//	    geo.Point{X: 0, Y: 1},
//	    geo.Point{X: 1, Y: 0},
//	    geo.Point{X: -1, Y: 0},
//	)
func NewCircleFromPoints(p1, p2, p3 Point) (*Circle, error) {
	d := 2 * (p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y))
	if math.Abs(d) < collinearEpsilon {
		return nil, errors.Wrapf(ErrCollinearPoints,
			"(%g,%g) (%g,%g) (%g,%g)", p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
	}

	s1 := p1.X*p1.X + p1.Y*p1.Y
	s2 := p2.X*p2.X + p2.Y*p2.Y
	s3 := p3.X*p3.X + p3.Y*p3.Y

	center := Point{
		X: (s1*(p2.Y-p3.Y) + s2*(p3.Y-p1.Y) + s3*(p1.Y-p2.Y)) / d,
		Y: (s1*(p3.X-p2.X) + s2*(p1.X-p3.X) + s3*(p2.X-p1.X)) / d,
	}

	c := NewCircle(center, center.DistanceTo(p1))
	c.userPoints = []Point{p1, p2, p3}
	return c, nil
}

// Kind returns KindCircle.
func (c *Circle) Kind() Kind { return KindCircle }

// Center returns the center point.
func (c *Circle) Center() Point { return c.center }

// SetCenter moves the circle, keeping its radius.
func (c *Circle) SetCenter(center Point) {
	c.center = center
	c.recomputeBounds()
}

// Radius returns the radius.
func (c *Circle) Radius() float64 { return c.radius }

// SetRadius resizes the circle. Returns false, leaving the circle
// unchanged, when radius is negative.
func (c *Circle) SetRadius(radius float64) bool {
	if radius < 0 {
		return false
	}
	c.radius = radius
	c.recomputeBounds()
	return true
}

// Circumference returns 2*pi*r.
func (c *Circle) Circumference() float64 {
	return 2 * math.Pi * c.radius
}

// Area returns pi*r^2.
func (c *Circle) Area() float64 {
	return math.Pi * c.radius * c.radius
}

// Bounds returns the square box enclosing the circle.
func (c *Circle) Bounds() BoundingBox { return c.bounds }

// UserPoints returns the control points the circle was derived from,
// or nil when it was built directly from center and radius. The slice
// is owned by the circle; treat it as read-only.
func (c *Circle) UserPoints() []Point { return c.userPoints }

// SetUserPoints replaces the control points with a copy of points.
// At least 3 points are required to support re-derivation; passing an
// empty slice clears them. Returns false, leaving the circle unchanged,
// for 1 or 2 points.
func (c *Circle) SetUserPoints(points []Point) bool {
	if len(points) == 0 {
		c.userPoints = nil
		return true
	}
	if len(points) < 3 {
		return false
	}
	c.userPoints = make([]Point, len(points))
	copy(c.userPoints, points)
	return true
}

// Clone returns a deep copy, preserving id and selection state.
func (c *Circle) Clone() Geometry {
	clone := &Circle{
		feature:   c.feature,
		center:    c.center,
		radius:    c.radius,
		bounds:    c.bounds,
		Elevation: c.Elevation,
	}
	if c.userPoints != nil {
		clone.userPoints = make([]Point, len(c.userPoints))
		copy(clone.userPoints, c.userPoints)
	}
	return clone
}

func (c *Circle) recomputeBounds() {
	c.bounds = BoundingBox{
		MinX: c.center.X - c.radius,
		MinY: c.center.Y - c.radius,
		MaxX: c.center.X + c.radius,
		MaxY: c.center.Y + c.radius,
	}
}
