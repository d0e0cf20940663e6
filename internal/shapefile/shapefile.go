// Package shapefile decodes the legacy ESRI shapefile binary pair: the .shp
// geometry file and its companion .dbf attribute table.
//
// The two decoders are deliberately permissive at record level (a bad record
// is skipped with a warning, the scan continues) and strict at file level
// (a bad header or a structurally broken attribute file fails the decode).
// Geometries come back as pkg/geo values together with the 1-based record
// number each one was decoded from; attribute rows come back as a typed
// pkg/attr table with deleted rows never materialized.
//
// References:
//   - ESRI Shapefile Technical Description, July 1998: main file header
//     (p.3-4), record headers and shape payloads (p.5-15)
//   - dBASE III/IV file structure: table header, field descriptor array,
//     record area
package shapefile

import (
	"fmt"

	"github.com/beetlebugorg/shapelayer/pkg/geo"
)

// ShapeType is the shape-kind code carried by the geometry file header and
// by every record. Z and M variants are decoded as their 2D base kind; the
// extra ordinate blocks are ignored.
type ShapeType int32

// Shape type codes from the Shapefile Technical Description p.4.
const (
	ShapeNull        ShapeType = 0
	ShapePoint       ShapeType = 1
	ShapePolyLine    ShapeType = 3
	ShapePolygon     ShapeType = 5
	ShapeMultiPoint  ShapeType = 8
	ShapePointZ      ShapeType = 11
	ShapePolyLineZ   ShapeType = 13
	ShapePolygonZ    ShapeType = 15
	ShapeMultiPointZ ShapeType = 18
	ShapePointM      ShapeType = 21
	ShapePolyLineM   ShapeType = 23
	ShapePolygonM    ShapeType = 25
	ShapeMultiPointM ShapeType = 28
	ShapeMultiPatch  ShapeType = 31
)

// String returns the name used by the format description.
func (t ShapeType) String() string {
	switch t {
	case ShapeNull:
		return "Null"
	case ShapePoint:
		return "Point"
	case ShapePolyLine:
		return "PolyLine"
	case ShapePolygon:
		return "Polygon"
	case ShapeMultiPoint:
		return "MultiPoint"
	case ShapePointZ:
		return "PointZ"
	case ShapePolyLineZ:
		return "PolyLineZ"
	case ShapePolygonZ:
		return "PolygonZ"
	case ShapeMultiPointZ:
		return "MultiPointZ"
	case ShapePointM:
		return "PointM"
	case ShapePolyLineM:
		return "PolyLineM"
	case ShapePolygonM:
		return "PolygonM"
	case ShapeMultiPointM:
		return "MultiPointM"
	case ShapeMultiPatch:
		return "MultiPatch"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(t))
	}
}

// Kind maps the shape type onto the layer geometry kind it produces.
// Returns false for Null, MultiPatch and unknown codes, none of which can
// populate a layer.
func (t ShapeType) Kind() (geo.Kind, bool) {
	switch t {
	case ShapePoint, ShapePointZ, ShapePointM,
		ShapeMultiPoint, ShapeMultiPointZ, ShapeMultiPointM:
		return geo.KindPoint, true
	case ShapePolyLine, ShapePolyLineZ, ShapePolyLineM:
		return geo.KindLine, true
	case ShapePolygon, ShapePolygonZ, ShapePolygonM:
		return geo.KindPolygon, true
	default:
		return 0, false
	}
}

// Warning is a non-fatal diagnostic attached to a decode result.
// Record is the 1-based geometry record number the warning refers to,
// or 0 for file-level warnings.
type Warning struct {
	Record  int
	Message string
}

// String renders the warning for logs and CLI output.
func (w Warning) String() string {
	if w.Record == 0 {
		return w.Message
	}
	return fmt.Sprintf("record %d: %s", w.Record, w.Message)
}
