package geo

// vertexSeq holds an ordered vertex sequence and the box enclosing it.
// Embedded by Polyline and Polygon; insertion order is geometric order.
//
// Appending expands the box incrementally; every other mutation recomputes
// it from scratch, since a removal or in-place edit can shrink it.
type vertexSeq struct {
	vertices []Point
	bounds   BoundingBox
}

// VertexCount returns the number of vertices.
func (s *vertexSeq) VertexCount() int { return len(s.vertices) }

// Vertex returns the vertex at the index, or false when out of range.
func (s *vertexSeq) Vertex(i int) (Point, bool) {
	if i < 0 || i >= len(s.vertices) {
		return Point{}, false
	}
	return s.vertices[i], true
}

// Vertices returns the backing vertex slice.
//
// The slice is owned by the geometry; callers must treat it as read-only
// and go through the mutators to keep the bounding box consistent.
func (s *vertexSeq) Vertices() []Point { return s.vertices }

// Bounds returns the box enclosing all vertices.
// Empty while the sequence has no vertices.
func (s *vertexSeq) Bounds() BoundingBox { return s.bounds }

// AppendVertex adds a vertex at the end, expanding the box incrementally.
func (s *vertexSeq) AppendVertex(p Point) {
	s.vertices = append(s.vertices, p)
	s.bounds.ExpandToInclude(p.X, p.Y)
}

// InsertVertexAt inserts a vertex before index i (i may equal the current
// count to append). Returns false when i is out of range.
func (s *vertexSeq) InsertVertexAt(i int, p Point) bool {
	if i < 0 || i > len(s.vertices) {
		return false
	}
	s.vertices = append(s.vertices, Point{})
	copy(s.vertices[i+1:], s.vertices[i:])
	s.vertices[i] = p
	s.recomputeBounds()
	return true
}

// RemoveVertexAt removes the vertex at the index.
// Returns false when i is out of range.
func (s *vertexSeq) RemoveVertexAt(i int) bool {
	if i < 0 || i >= len(s.vertices) {
		return false
	}
	s.vertices = append(s.vertices[:i], s.vertices[i+1:]...)
	s.recomputeBounds()
	return true
}

// SetVertexAt replaces the vertex at the index.
// Returns false when i is out of range.
func (s *vertexSeq) SetVertexAt(i int, p Point) bool {
	if i < 0 || i >= len(s.vertices) {
		return false
	}
	s.vertices[i] = p
	s.recomputeBounds()
	return true
}

// SetVertices replaces the whole sequence with a copy of points.
func (s *vertexSeq) SetVertices(points []Point) {
	s.vertices = make([]Point, len(points))
	copy(s.vertices, points)
	s.recomputeBounds()
}

func (s *vertexSeq) recomputeBounds() {
	s.bounds = NewBoundingBox()
	for _, p := range s.vertices {
		s.bounds.ExpandToInclude(p.X, p.Y)
	}
}

// cloneSeq returns a deep copy of the sequence.
func (s *vertexSeq) cloneSeq() vertexSeq {
	c := vertexSeq{
		vertices: make([]Point, len(s.vertices)),
		bounds:   s.bounds,
	}
	copy(c.vertices, s.vertices)
	return c
}
