// Package layer provides the layer model for imported vector data: typed
// feature collections, their attribute tables, the layer manager that
// stacks them, and the import pipeline that populates them from a
// geometry/attribute file pair.
package layer

import (
	"sort"

	"github.com/beetlebugorg/shapelayer/pkg/attr"
	"github.com/beetlebugorg/shapelayer/pkg/geo"
)

// Layer is a homogeneous, ordered collection of features of exactly one
// geometry kind, with an optional attribute table and a feature-to-row
// correlation map.
//
// Feature ids are positional: a feature's id always equals its current
// index in the layer, so ids stay dense from 0 to FeatureCount()-1. Ids
// are therefore not stable across removals of earlier features; the
// correlation map is re-keyed on every removal to match.
type Layer struct {
	name       string
	kind       geo.Kind
	visible    bool
	style      Style
	labelField string

	features []geo.Geometry
	table    *attr.Table
	attrRows map[int]int
}

// NewLayer creates an empty, visible layer of the given geometry kind with
// the kind's default style.
func NewLayer(name string, kind geo.Kind) *Layer {
	return &Layer{
		name:     name,
		kind:     kind,
		visible:  true,
		style:    DefaultStyle(kind),
		attrRows: make(map[int]int),
	}
}

// Name returns the layer name.
func (l *Layer) Name() string {
	return l.name
}

// SetName renames the layer. Renaming a layer that is registered with a
// manager must go through the manager, which owns name uniqueness.
func (l *Layer) SetName(name string) {
	l.name = name
}

// Kind returns the geometry kind this layer holds. The kind is fixed for
// the layer's lifetime.
func (l *Layer) Kind() geo.Kind {
	return l.kind
}

// Visible reports whether the layer participates in rendering and in
// manager-level bounds queries.
func (l *Layer) Visible() bool {
	return l.visible
}

// SetVisible toggles layer visibility.
func (l *Layer) SetVisible(visible bool) {
	l.visible = visible
}

// Style returns the layer's style descriptor.
func (l *Layer) Style() Style {
	return l.style
}

// SetStyle replaces the layer's style descriptor.
func (l *Layer) SetStyle(style Style) {
	l.style = style
}

// FeatureCount returns the number of features in the layer.
func (l *Layer) FeatureCount() int {
	return len(l.features)
}

// FeatureAt returns the feature at the given index. The feature's id
// equals the index.
func (l *Layer) FeatureAt(index int) (geo.Geometry, bool) {
	if index < 0 || index >= len(l.features) {
		return nil, false
	}
	return l.features[index], true
}

// Features returns the layer's features in id order. The returned slice
// is a read-only view and must not be modified.
func (l *Layer) Features() []geo.Geometry {
	return l.features
}

// AddFeature appends a feature and assigns its id. Returns false without
// mutating the layer if the geometry is nil or its kind does not match
// the layer's kind.
func (l *Layer) AddFeature(g geo.Geometry) bool {
	if g == nil || g.Kind() != l.kind {
		return false
	}
	g.SetID(len(l.features))
	l.features = append(l.features, g)
	return true
}

// AddFeatures appends each feature in order, assigning sequential ids,
// and returns how many were accepted. Mismatched entries are skipped
// individually; they do not abort the batch.
func (l *Layer) AddFeatures(gs []geo.Geometry) int {
	added := 0
	for _, g := range gs {
		if l.AddFeature(g) {
			added++
		}
	}
	return added
}

// RemoveFeatureAt removes the feature at the given index. Remaining
// features are renumbered so ids stay equal to positions, the removed
// feature's correlation entry is dropped, and every correlation key above
// the index shifts down by one with its row value unchanged.
func (l *Layer) RemoveFeatureAt(index int) bool {
	if index < 0 || index >= len(l.features) {
		return false
	}
	l.features = append(l.features[:index], l.features[index+1:]...)
	for i := index; i < len(l.features); i++ {
		l.features[i].SetID(i)
	}

	delete(l.attrRows, index)
	var above []int
	for k := range l.attrRows {
		if k > index {
			above = append(above, k)
		}
	}
	// Ascending order, so each slot is vacated before it is reused.
	sort.Ints(above)
	for _, k := range above {
		l.attrRows[k-1] = l.attrRows[k]
		delete(l.attrRows, k)
	}
	return true
}

// Points returns the features that are points, in id order.
func (l *Layer) Points() []*geo.Point {
	var out []*geo.Point
	for _, g := range l.features {
		if p, ok := g.(*geo.Point); ok {
			out = append(out, p)
		}
	}
	return out
}

// Lines returns the features that are polylines, in id order.
func (l *Layer) Lines() []*geo.Polyline {
	var out []*geo.Polyline
	for _, g := range l.features {
		if line, ok := g.(*geo.Polyline); ok {
			out = append(out, line)
		}
	}
	return out
}

// Polygons returns the features that are polygons, in id order.
func (l *Layer) Polygons() []*geo.Polygon {
	var out []*geo.Polygon
	for _, g := range l.features {
		if poly, ok := g.(*geo.Polygon); ok {
			out = append(out, poly)
		}
	}
	return out
}

// Circles returns the features that are circles, in id order.
func (l *Layer) Circles() []*geo.Circle {
	var out []*geo.Circle
	for _, g := range l.features {
		if c, ok := g.(*geo.Circle); ok {
			out = append(out, c)
		}
	}
	return out
}

// Table returns the layer's attribute table, or nil when none is attached.
func (l *Layer) Table() *attr.Table {
	return l.table
}

// SetTable attaches an attribute table, replacing any previous one. All
// feature-to-row correlations are cleared, since they indexed the old
// table's rows.
func (l *Layer) SetTable(table *attr.Table) {
	l.table = table
	l.attrRows = make(map[int]int)
}

// SetAttributeRow correlates a feature with an attribute row. Returns
// false if no table is attached, the feature id is out of range, or the
// row index is outside the table.
func (l *Layer) SetAttributeRow(featureID, row int) bool {
	if l.table == nil || featureID < 0 || featureID >= len(l.features) {
		return false
	}
	if row < 0 || row >= l.table.RowCount() {
		return false
	}
	l.attrRows[featureID] = row
	return true
}

// AttributeRow returns the attribute row correlated with a feature.
func (l *Layer) AttributeRow(featureID int) (int, bool) {
	row, ok := l.attrRows[featureID]
	return row, ok
}

// LabelField returns the column name used for feature labels, or the
// empty string when labeling is not configured.
func (l *Layer) LabelField() string {
	return l.labelField
}

// SetLabelField selects the attribute column used for feature labels.
// The column is matched case-insensitively and must exist in the attached
// table; returns false otherwise.
func (l *Layer) SetLabelField(name string) bool {
	if l.table == nil || l.table.ColumnIndex(name) < 0 {
		return false
	}
	l.labelField = name
	return true
}

// LabelText returns the label for a feature: the stringified cell at the
// feature's correlated row and the configured label column. Missing
// table, label field, correlation, row or column all yield the empty
// string; LabelText never fails.
func (l *Layer) LabelText(featureID int) string {
	if l.table == nil || l.labelField == "" {
		return ""
	}
	row, ok := l.attrRows[featureID]
	if !ok {
		return ""
	}
	col := l.table.ColumnIndex(l.labelField)
	if col < 0 {
		return ""
	}
	return l.table.CellString(row, col)
}

// TotalLength sums the linear measure of every feature: polyline length,
// polygon perimeter, or circle circumference. Point layers have total
// length 0.
func (l *Layer) TotalLength() float64 {
	total := 0.0
	for _, g := range l.features {
		switch f := g.(type) {
		case *geo.Polyline:
			total += f.Length()
		case *geo.Polygon:
			total += f.Perimeter()
		case *geo.Circle:
			total += f.Circumference()
		}
	}
	return total
}

// TotalArea sums the area of every feature. Only polygons and circles
// have area; other kinds contribute 0.
func (l *Layer) TotalArea() float64 {
	total := 0.0
	for _, g := range l.features {
		switch f := g.(type) {
		case *geo.Polygon:
			total += f.Area()
		case *geo.Circle:
			total += f.Area()
		}
	}
	return total
}

// Bounds returns the union of all feature bounding boxes. An empty layer
// returns the empty box.
func (l *Layer) Bounds() geo.BoundingBox {
	bounds := geo.NewBoundingBox()
	for _, g := range l.features {
		bounds.ExpandToIncludeBox(g.Bounds())
	}
	return bounds
}

// FeaturesInBounds returns the features whose bounding boxes intersect
// the query box, in id order. The scan is linear; layers are small enough
// that an index has not been worth its upkeep.
func (l *Layer) FeaturesInBounds(box geo.BoundingBox) []geo.Geometry {
	var out []geo.Geometry
	for _, g := range l.features {
		if box.Intersects(g.Bounds()) {
			out = append(out, g)
		}
	}
	return out
}

// SelectedFeatures returns the features whose selection flag is set, in
// id order.
func (l *Layer) SelectedFeatures() []geo.Geometry {
	var out []geo.Geometry
	for _, g := range l.features {
		if g.Selected() {
			out = append(out, g)
		}
	}
	return out
}

// ClearSelection clears the selection flag on every feature.
func (l *Layer) ClearSelection() {
	for _, g := range l.features {
		g.SetSelected(false)
	}
}

// Clone returns a deep copy of the layer: cloned features, a copied
// attribute table and correlation map, and the same name, style and
// visibility.
func (l *Layer) Clone() *Layer {
	c := &Layer{
		name:       l.name,
		kind:       l.kind,
		visible:    l.visible,
		style:      l.style,
		labelField: l.labelField,
		features:   make([]geo.Geometry, len(l.features)),
		attrRows:   make(map[int]int, len(l.attrRows)),
	}
	for i, g := range l.features {
		c.features[i] = g.Clone()
	}
	if l.table != nil {
		c.table = l.table.Clone()
	}
	for k, v := range l.attrRows {
		c.attrRows[k] = v
	}
	return c
}
