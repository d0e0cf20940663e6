package geo

import (
	"testing"
)

// TestPolygonUnitSquare tests area and perimeter of the unit square
func TestPolygonUnitSquare(t *testing.T) {
	p := NewPolygonFromPoints([]Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	})

	if got := p.Area(); !almostEqual(got, 1.0) {
		t.Errorf("Unit square area = %f, expected 1.0", got)
	}
	if got := p.Perimeter(); !almostEqual(got, 4.0) {
		t.Errorf("Unit square perimeter = %f, expected 4.0", got)
	}
}

// TestPolygonDegenerateArea tests that area is 0 below 3 vertices
func TestPolygonDegenerateArea(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{"empty", nil},
		{"single vertex", []Point{{X: 1, Y: 1}}},
		{"two vertices", []Point{{X: 0, Y: 0}, {X: 5, Y: 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPolygonFromPoints(tt.points)
			if got := p.Area(); got != 0 {
				t.Errorf("Area = %f, expected 0", got)
			}
			if p.ContainsPoint(0, 0) {
				t.Error("Degenerate polygon should contain nothing")
			}
		})
	}
}

// TestPolygonClosingDuplicate tests a ring stored with an explicit closing vertex
func TestPolygonClosingDuplicate(t *testing.T) {
	// Triangle of 3 distinct points plus a repeated closing point,
	// exactly as rings appear inside geometry files.
	p := NewPolygonFromPoints([]Point{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 0, Y: 3},
		{X: 0, Y: 0},
	})

	if p.VertexCount() != 4 {
		t.Errorf("Vertex count should match stored ring, got %d", p.VertexCount())
	}
	if got := p.Area(); !almostEqual(got, 6.0) {
		t.Errorf("Triangle area = %f, expected 6.0", got)
	}
	// The closing duplicate contributes a zero-length edge only.
	if got := p.Perimeter(); !almostEqual(got, 12.0) {
		t.Errorf("Triangle perimeter = %f, expected 12.0", got)
	}
}

// TestPolygonContainsPoint tests ray-casting containment
func TestPolygonContainsPoint(t *testing.T) {
	// Concave L-shape: bbox containment alone would claim the notch.
	p := NewPolygonFromPoints([]Point{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 2},
		{X: 2, Y: 2},
		{X: 2, Y: 4},
		{X: 0, Y: 4},
	})

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside lower arm", 3, 1, true},
		{"inside upper arm", 1, 3, true},
		{"in the notch", 3, 3, false},
		{"outside bbox", 5, 5, false},
		{"outside left", -1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ContainsPoint(tt.x, tt.y); got != tt.expected {
				t.Errorf("ContainsPoint(%f, %f) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

// TestPolygonBoundsMaintenance tests bbox consistency across mutators
func TestPolygonBoundsMaintenance(t *testing.T) {
	p := NewPolygon()
	p.AppendVertex(Point{X: 0, Y: 0})
	p.AppendVertex(Point{X: 2, Y: 0})
	p.AppendVertex(Point{X: 2, Y: 2})

	b := p.Bounds()
	if b.MaxX != 2 || b.MaxY != 2 {
		t.Errorf("Unexpected bounds after appends: [%f,%f]-[%f,%f]",
			b.MinX, b.MinY, b.MaxX, b.MaxY)
	}

	if !p.SetVertexAt(2, Point{X: 8, Y: 8}) {
		t.Fatal("SetVertexAt should succeed")
	}
	if p.Bounds().MaxX != 8 {
		t.Error("Bounds should track the edited vertex")
	}

	if !p.RemoveVertexAt(2) {
		t.Fatal("RemoveVertexAt should succeed")
	}
	if p.Bounds().MaxX != 2 {
		t.Error("Bounds should shrink after removal")
	}
}

// TestPolygonClone tests deep-copy independence
func TestPolygonClone(t *testing.T) {
	p := NewPolygonFromPoints([]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})
	clone := p.Clone().(*Polygon)

	clone.SetVertexAt(0, Point{X: -5, Y: -5})

	if v, _ := p.Vertex(0); v.X != 0 {
		t.Error("Original polygon should be unaffected by clone mutation")
	}
	if got := p.Area(); !almostEqual(got, 0.5) {
		t.Errorf("Original area = %f, expected 0.5", got)
	}
}
