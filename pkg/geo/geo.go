// Package geo provides the planar geometry primitives backing shapefile layers.
//
// The package models the four feature kinds a layer can hold (Point, Polyline,
// Polygon, Circle) together with the axis-aligned BoundingBox every kind
// maintains. Geometries are mutable editing objects: every mutator that
// changes coordinates leaves the bounding box consistent with the current
// coordinates before the next read, either through an incremental expansion
// (single vertex append) or a full recomputation (insert, remove, in-place
// edit).
//
// All measures use standard Euclidean/planar formulas. Coordinates are
// projection-agnostic; nothing here is aware of datums or the antimeridian.
package geo

// UnassignedID marks a geometry that has not been adopted by a layer yet.
// Layers assign dense ids equal to the feature's position on insertion.
const UnassignedID = -1

// Kind identifies the geometry family of a feature or a layer.
type Kind int

const (
	// KindPoint is a single coordinate feature.
	KindPoint Kind = iota

	// KindLine is an open vertex chain (Polyline).
	KindLine

	// KindPolygon is an implicitly closed vertex ring.
	KindPolygon

	// KindCircle is a center/radius feature created by editors,
	// never decoded from a geometry file.
	KindCircle
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLine:
		return "Line"
	case KindPolygon:
		return "Polygon"
	case KindCircle:
		return "Circle"
	default:
		return "Unknown"
	}
}

// Geometry is the common contract of all feature kinds.
//
// A geometry's id doubles as its position inside the owning layer: layers
// keep ids dense (0..count-1) and renumber on removal, so an id is NOT
// stable across removals of earlier features. Fresh geometries carry
// UnassignedID until a layer adopts them.
type Geometry interface {
	// ID returns the feature identity within the owning layer,
	// or UnassignedID for a geometry no layer has adopted.
	ID() int

	// SetID assigns the feature identity. Called by the owning layer;
	// editors normally never need it.
	SetID(id int)

	// Selected reports the editing selection flag.
	Selected() bool

	// SetSelected sets the editing selection flag.
	SetSelected(selected bool)

	// Kind returns the geometry family.
	Kind() Kind

	// Bounds returns the axis-aligned box enclosing the geometry.
	Bounds() BoundingBox

	// Clone returns a deep copy, preserving id and selection state.
	Clone() Geometry
}

// feature carries the identity and selection state shared by every
// geometry kind. Embedded by Point, Polyline, Polygon and Circle.
type feature struct {
	id       int
	selected bool
}

// ID returns the feature identity within the owning layer.
func (f *feature) ID() int { return f.id }

// SetID assigns the feature identity.
func (f *feature) SetID(id int) { f.id = id }

// Selected reports the editing selection flag.
func (f *feature) Selected() bool { return f.selected }

// SetSelected sets the editing selection flag.
func (f *feature) SetSelected(selected bool) { f.selected = selected }
