package geo

// Polyline is an open chain of vertices in insertion order.
//
// Create polylines with NewPolyline or NewPolylineFromPoints; the zero value
// is not usable. A polyline with fewer than 2 vertices has length 0 and is
// not drawable.
type Polyline struct {
	feature
	vertexSeq
}

// NewPolyline returns an empty, unadopted polyline.
func NewPolyline() *Polyline {
	return &Polyline{
		feature:   feature{id: UnassignedID},
		vertexSeq: vertexSeq{bounds: NewBoundingBox()},
	}
}

// NewPolylineFromPoints returns an unadopted polyline over a copy of points.
func NewPolylineFromPoints(points []Point) *Polyline {
	l := NewPolyline()
	l.SetVertices(points)
	return l
}

// Kind returns KindLine.
func (l *Polyline) Kind() Kind { return KindLine }

// Length returns the sum of consecutive vertex distances.
// A polyline with fewer than 2 vertices has length 0.
func (l *Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(l.vertices); i++ {
		total += l.vertices[i-1].DistanceTo(l.vertices[i])
	}
	return total
}

// Clone returns a deep copy, preserving id and selection state.
func (l *Polyline) Clone() Geometry {
	return &Polyline{
		feature:   l.feature,
		vertexSeq: l.cloneSeq(),
	}
}
