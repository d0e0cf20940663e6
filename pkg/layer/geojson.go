package layer

import (
	"io"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/beetlebugorg/shapelayer/pkg/geo"
)

// circleSegments is the vertex count used when a circle is flattened to a
// ring for export formats without a native circle type.
const circleSegments = 64

// FeatureCollection renders the layer as a GeoJSON feature collection.
//
// Every feature carries its id as both the feature id and an "id"
// property; correlated attribute cells become properties keyed by column
// name, and the layer's label text, when non-empty, becomes a "label"
// property. Circles have no GeoJSON counterpart and are flattened to
// polygon rings, keeping their radius as a "radius" property.
//
// Example:
//
//	fc := parcels.FeatureCollection()
//	data, err := fc.MarshalJSON()
func (l *Layer) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, g := range l.features {
		og := orbGeometry(g)
		if og == nil {
			continue
		}
		f := geojson.NewFeature(og)
		f.ID = g.ID()
		f.Properties["id"] = g.ID()
		if c, ok := g.(*geo.Circle); ok {
			f.Properties["radius"] = c.Radius()
			if c.Elevation != 0 {
				f.Properties["elevation"] = c.Elevation
			}
		}
		if label := l.LabelText(g.ID()); label != "" {
			f.Properties["label"] = label
		}
		if l.table != nil {
			if row, ok := l.attrRows[g.ID()]; ok {
				for i, col := range l.table.Columns() {
					if v, ok := l.table.Value(row, i); ok && v != nil {
						f.Properties[col.Name] = v
					}
				}
			}
		}
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON writes the layer's feature collection to w.
func (l *Layer) WriteGeoJSON(w io.Writer) error {
	data, err := l.FeatureCollection().MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encoding feature collection")
	}
	_, err = w.Write(data)
	return err
}

// orbGeometry converts a feature to its orb equivalent.
func orbGeometry(g geo.Geometry) orb.Geometry {
	switch f := g.(type) {
	case *geo.Point:
		return orb.Point{f.X, f.Y}
	case *geo.Polyline:
		line := make(orb.LineString, 0, f.VertexCount())
		for _, v := range f.Vertices() {
			line = append(line, orb.Point{v.X, v.Y})
		}
		return line
	case *geo.Polygon:
		return orb.Polygon{orbRing(f.Vertices())}
	case *geo.Circle:
		return orb.Polygon{orbRing(circleRing(f, circleSegments))}
	default:
		return nil
	}
}

// orbRing converts vertices to an orb ring, closing it when the input
// does not repeat its first vertex.
func orbRing(vertices []geo.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, orb.Point{v.X, v.Y})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// circleRing flattens a circle to n boundary points, counterclockwise
// from the positive x axis.
func circleRing(c *geo.Circle, n int) []geo.Point {
	center := c.Center()
	radius := c.Radius()
	points := make([]geo.Point, 0, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points = append(points, geo.Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	return points
}
