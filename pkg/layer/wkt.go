package layer

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/beetlebugorg/shapelayer/pkg/geo"
)

// WKT renders one feature as well-known text. Circles are flattened to
// polygon rings the same way as in GeoJSON export.
func WKT(g geo.Geometry) (string, error) {
	t := geomOf(g)
	if t == nil {
		return "", errors.Newf("no WKT mapping for %T", g)
	}
	return wkt.Marshal(t)
}

// WriteWKT writes the layer's features to w, one well-known text
// geometry per line, in id order.
func (l *Layer) WriteWKT(w io.Writer) error {
	for _, g := range l.features {
		s, err := WKT(g)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

// geomOf converts a feature to its go-geom equivalent.
func geomOf(g geo.Geometry) geom.T {
	switch f := g.(type) {
	case *geo.Point:
		return geom.NewPointFlat(geom.XY, []float64{f.X, f.Y})
	case *geo.Polyline:
		flat := make([]float64, 0, 2*f.VertexCount())
		for _, v := range f.Vertices() {
			flat = append(flat, v.X, v.Y)
		}
		return geom.NewLineStringFlat(geom.XY, flat)
	case *geo.Polygon:
		return polygonFlat(f.Vertices())
	case *geo.Circle:
		return polygonFlat(circleRing(f, circleSegments))
	default:
		return nil
	}
}

// polygonFlat builds a single-ring go-geom polygon with an explicit
// closing coordinate.
func polygonFlat(vertices []geo.Point) *geom.Polygon {
	flat := make([]float64, 0, 2*len(vertices)+2)
	for _, v := range vertices {
		flat = append(flat, v.X, v.Y)
	}
	if n := len(vertices); n > 0 {
		first, last := vertices[0], vertices[n-1]
		if first.X != last.X || first.Y != last.Y {
			flat = append(flat, first.X, first.Y)
		}
	}
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
}
