package layer

import (
	"strings"

	"github.com/beetlebugorg/shapelayer/pkg/attr"
	"github.com/beetlebugorg/shapelayer/pkg/geo"
)

// Manager is a named registry of layers with a defined z-order. Index 0 is
// the bottom of the stack; rendering draws layers in index order so later
// layers paint on top.
//
// Layer names are unique within a manager. Structural changes (add,
// remove, move) keep the name index consistent with the stack order.
//
// A Manager is not safe for concurrent mutation; callers that share one
// across goroutines must serialize access themselves.
//
// Example:
//
//	mgr := layer.NewManager()
//	roads, err := layer.Import("data/roads.shp", mgr, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s: %d features\n", roads.Name(), roads.FeatureCount())
//
//	mgr.SetLayerVisible("roads", false)
//	fmt.Printf("visible bounds: %+v\n", mgr.Bounds())
type Manager struct {
	layers []*Layer
	byName map[string]int
}

// NewManager creates an empty layer manager.
func NewManager() *Manager {
	return &Manager{
		byName: make(map[string]int),
	}
}

// Count returns the number of layers.
func (m *Manager) Count() int {
	return len(m.layers)
}

// Layers returns the layers in stack order, bottom first. The returned
// slice is a read-only view and must not be modified.
func (m *Manager) Layers() []*Layer {
	return m.layers
}

// Layer returns the layer with the given name.
func (m *Manager) Layer(name string) (*Layer, bool) {
	i, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return m.layers[i], true
}

// LayerAt returns the layer at the given stack position.
func (m *Manager) LayerAt(position int) (*Layer, bool) {
	if position < 0 || position >= len(m.layers) {
		return nil, false
	}
	return m.layers[position], true
}

// Position returns the stack position of the named layer.
func (m *Manager) Position(name string) (int, bool) {
	i, ok := m.byName[name]
	return i, ok
}

// AddLayer registers a layer on top of the stack. Returns false without
// mutating the manager if the layer is nil or its name is taken.
func (m *Manager) AddLayer(l *Layer) bool {
	if l == nil {
		return false
	}
	if _, exists := m.byName[l.Name()]; exists {
		return false
	}
	m.byName[l.Name()] = len(m.layers)
	m.layers = append(m.layers, l)
	return true
}

// CreateLayer creates an empty layer of the given kind and registers it on
// top of the stack. Returns false if the name is taken.
func (m *Manager) CreateLayer(name string, kind geo.Kind) (*Layer, bool) {
	l := NewLayer(name, kind)
	if !m.AddLayer(l) {
		return nil, false
	}
	return l, true
}

// RemoveLayer removes the named layer from the stack. The layer's
// features, table and correlations go with it.
func (m *Manager) RemoveLayer(name string) bool {
	i, ok := m.byName[name]
	if !ok {
		return false
	}
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
	m.rebuildIndex()
	return true
}

// RenameLayer renames a layer, keeping the name index consistent.
// Returns false if the source name is unknown or the target name is
// taken by another layer.
func (m *Manager) RenameLayer(name, newName string) bool {
	i, ok := m.byName[name]
	if !ok {
		return false
	}
	if name == newName {
		return true
	}
	if _, taken := m.byName[newName]; taken {
		return false
	}
	m.layers[i].SetName(newName)
	delete(m.byName, name)
	m.byName[newName] = i
	return true
}

// SetLayerVisible toggles visibility of the named layer.
func (m *Manager) SetLayerVisible(name string, visible bool) bool {
	l, ok := m.Layer(name)
	if !ok {
		return false
	}
	l.SetVisible(visible)
	return true
}

// MoveLayerUp swaps the named layer with the one above it. Returns false
// if the layer is unknown or already on top.
func (m *Manager) MoveLayerUp(name string) bool {
	i, ok := m.byName[name]
	if !ok || i == len(m.layers)-1 {
		return false
	}
	m.layers[i], m.layers[i+1] = m.layers[i+1], m.layers[i]
	m.rebuildIndex()
	return true
}

// MoveLayerDown swaps the named layer with the one below it. Returns
// false if the layer is unknown or already at the bottom.
func (m *Manager) MoveLayerDown(name string) bool {
	i, ok := m.byName[name]
	if !ok || i == 0 {
		return false
	}
	m.layers[i], m.layers[i-1] = m.layers[i-1], m.layers[i]
	m.rebuildIndex()
	return true
}

// MoveLayerToPosition relocates the named layer to the given stack
// position, clamped to the valid range. Other layers keep their relative
// order.
func (m *Manager) MoveLayerToPosition(name string, position int) bool {
	i, ok := m.byName[name]
	if !ok {
		return false
	}
	if position < 0 {
		position = 0
	}
	if position > len(m.layers)-1 {
		position = len(m.layers) - 1
	}
	if position == i {
		return true
	}

	l := m.layers[i]
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
	m.layers = append(m.layers[:position], append([]*Layer{l}, m.layers[position:]...)...)
	m.rebuildIndex()
	return true
}

// CloneLayer deep-copies the named layer and registers the copy under
// newName on top of the stack. Returns false if the source is unknown or
// newName is taken.
func (m *Manager) CloneLayer(name, newName string) (*Layer, bool) {
	src, ok := m.Layer(name)
	if !ok {
		return nil, false
	}
	if _, taken := m.byName[newName]; taken {
		return nil, false
	}
	c := src.Clone()
	c.SetName(newName)
	if !m.AddLayer(c) {
		return nil, false
	}
	return c, true
}

// MergeLayers concatenates the named source layers, in list order, into a
// new layer registered under newName. All sources must exist and share
// one geometry kind, and newName must be free; otherwise nothing is
// registered.
//
// Features are deep-copied and renumbered sequentially across the merge.
// The merged attribute table takes its schema from the first source that
// has a non-empty one; rows and correlations are carried over from every
// source whose table matches that schema, and features from other
// sources are simply left uncorrelated.
func (m *Manager) MergeLayers(names []string, newName string) (*Layer, bool) {
	if len(names) == 0 {
		return nil, false
	}
	if _, taken := m.byName[newName]; taken {
		return nil, false
	}

	sources := make([]*Layer, 0, len(names))
	for _, name := range names {
		src, ok := m.Layer(name)
		if !ok {
			return nil, false
		}
		sources = append(sources, src)
	}
	kind := sources[0].Kind()
	for _, src := range sources[1:] {
		if src.Kind() != kind {
			return nil, false
		}
	}

	merged := NewLayer(newName, kind)
	merged.SetStyle(sources[0].Style())

	var schema []attr.Column
	for _, src := range sources {
		if t := src.Table(); t != nil && t.ColumnCount() > 0 {
			schema = t.Columns()
			break
		}
	}
	if schema != nil {
		merged.SetTable(attr.NewTable(schema))
	}

	for _, src := range sources {
		rowOffset := -1
		if schema != nil && tableMatchesSchema(src.Table(), schema) {
			rowOffset = merged.Table().RowCount()
			for r := 0; r < src.Table().RowCount(); r++ {
				row, _ := src.Table().Row(r)
				// AppendRow copies the cells, so the merged table shares
				// nothing with the source.
				if err := merged.Table().AppendRow(row); err != nil {
					return nil, false
				}
			}
		}
		for i, g := range src.Features() {
			id := merged.FeatureCount()
			if !merged.AddFeature(g.Clone()) {
				return nil, false
			}
			if rowOffset >= 0 {
				if r, ok := src.AttributeRow(i); ok {
					merged.SetAttributeRow(id, rowOffset+r)
				}
			}
		}
	}

	if !m.AddLayer(merged) {
		return nil, false
	}
	return merged, true
}

// tableMatchesSchema reports whether a table has exactly the given
// columns: same count, same order, same types, names compared
// case-insensitively.
func tableMatchesSchema(t *attr.Table, schema []attr.Column) bool {
	if t == nil || t.ColumnCount() != len(schema) {
		return false
	}
	for i, col := range t.Columns() {
		if col.Type != schema[i].Type || !strings.EqualFold(col.Name, schema[i].Name) {
			return false
		}
	}
	return true
}

// Bounds returns the union of the bounding boxes of all visible layers.
// With no visible features it returns the empty box.
func (m *Manager) Bounds() geo.BoundingBox {
	bounds := geo.NewBoundingBox()
	for _, l := range m.layers {
		if l.Visible() {
			bounds.ExpandToIncludeBox(l.Bounds())
		}
	}
	return bounds
}

// Stats returns a summary of the manager's contents.
func (m *Manager) Stats() ManagerStats {
	stats := ManagerStats{LayerCount: len(m.layers)}
	for _, l := range m.layers {
		if l.Visible() {
			stats.VisibleLayers++
		}
		stats.FeatureCount += l.FeatureCount()
		switch l.Kind() {
		case geo.KindPoint:
			stats.PointLayers++
		case geo.KindLine:
			stats.LineLayers++
		case geo.KindPolygon:
			stats.PolygonLayers++
		case geo.KindCircle:
			stats.CircleLayers++
		}
	}
	return stats
}

// ManagerStats holds manager summary counts.
type ManagerStats struct {
	LayerCount    int // Total registered layers
	VisibleLayers int // Layers currently visible
	FeatureCount  int // Features across all layers
	PointLayers   int // Layers of point kind
	LineLayers    int // Layers of line kind
	PolygonLayers int // Layers of polygon kind
	CircleLayers  int // Layers of circle kind
}

// rebuildIndex resyncs the name index with the stack order.
func (m *Manager) rebuildIndex() {
	m.byName = make(map[string]int, len(m.layers))
	for i, l := range m.layers {
		m.byName[l.Name()] = i
	}
}
