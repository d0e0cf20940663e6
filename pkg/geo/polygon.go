package geo

import "math"

// Polygon is an implicitly closed ring of vertices: the last vertex
// connects back to the first. Rings decoded from a geometry file keep
// their stored vertices as-is, including an explicit closing duplicate
// when the file carries one; the duplicate adds a zero-length edge and
// changes neither area nor perimeter.
//
// Create polygons with NewPolygon or NewPolygonFromPoints; the zero value
// is not usable. Below 3 vertices area is 0 and no point is contained.
type Polygon struct {
	feature
	vertexSeq
}

// NewPolygon returns an empty, unadopted polygon.
func NewPolygon() *Polygon {
	return &Polygon{
		feature:   feature{id: UnassignedID},
		vertexSeq: vertexSeq{bounds: NewBoundingBox()},
	}
}

// NewPolygonFromPoints returns an unadopted polygon over a copy of points.
func NewPolygonFromPoints(points []Point) *Polygon {
	p := NewPolygon()
	p.SetVertices(points)
	return p
}

// Kind returns KindPolygon.
func (p *Polygon) Kind() Kind { return KindPolygon }

// Area returns the enclosed area via the shoelace formula
// (absolute value, halved). Polygons with fewer than 3 vertices have
// area 0.
func (p *Polygon) Area() float64 {
	n := len(p.vertices)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p.vertices[i].X*p.vertices[j].Y - p.vertices[j].X*p.vertices[i].Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the sum of consecutive vertex distances including
// the wrap-around edge from the last vertex back to the first.
func (p *Polygon) Perimeter() float64 {
	n := len(p.vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p.vertices[i].DistanceTo(p.vertices[j])
	}
	return total
}

// ContainsPoint reports whether the coordinate lies inside the ring.
//
// The test rejects against the bounding box first, then runs a ray-casting
// parity count over the ring edges. Polygons with fewer than 3 vertices
// contain nothing.
func (p *Polygon) ContainsPoint(x, y float64) bool {
	n := len(p.vertices)
	if n < 3 {
		return false
	}
	if !p.bounds.Contains(x, y) {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := p.vertices[i], p.vertices[j]
		if (vi.Y > y) != (vj.Y > y) &&
			x < (vj.X-vi.X)*(y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// Clone returns a deep copy, preserving id and selection state.
func (p *Polygon) Clone() Geometry {
	return &Polygon{
		feature:   p.feature,
		vertexSeq: p.cloneSeq(),
	}
}
