package layer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/beetlebugorg/shapelayer/internal/shapefile"
	"github.com/beetlebugorg/shapelayer/pkg/attr"
	"github.com/beetlebugorg/shapelayer/pkg/geo"
)

// Sentinel errors for classifying import failures with errors.Is.
var (
	// ErrMissingInput marks import failures caused by an absent geometry
	// or attribute file.
	ErrMissingInput = errors.New("missing input file")

	// ErrUnsupportedKind marks geometry files whose shape type does not
	// map onto a layer geometry kind.
	ErrUnsupportedKind = errors.New("unsupported shape kind")
)

// Warning is a non-fatal diagnostic produced during import. Record is the
// 1-based geometry record number it refers to, or 0 for file-level
// diagnostics.
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

// ImportOptions configures ImportWithOptions. The zero value gives the
// same behavior as Import.
type ImportOptions struct {
	// LayerName names the new layer. Empty means the geometry file's
	// base name without its extension.
	LayerName string

	// LabelField selects the label column instead of the heuristic.
	// If the column does not exist the heuristic runs anyway, with a
	// warning.
	LabelField string

	// SkipAttributes imports geometry only. The attribute file is
	// neither required nor opened.
	SkipAttributes bool

	// MaxRecordSize caps one geometry record's declared size in bytes.
	// Zero means no cap.
	MaxRecordSize int
}

// ImportResult describes a completed import.
type ImportResult struct {
	Layer        *Layer
	Kind         geo.Kind  // Geometry kind of the new layer
	FeatureCount int       // Features added to the layer
	TableRows    int       // Rows in the attached attribute table
	Warnings     []Warning // Non-fatal diagnostics, in record order
}

// Import reads the geometry file at path and its companion attribute file
// (same path with a .dbf extension), builds a layer from them and
// registers it with the manager.
//
// The import fails, leaving the manager untouched, when either file is
// missing, the geometry header is malformed or of an unsupported shape
// kind, or the layer name is already taken. A structurally broken
// attribute file is not fatal: the layer imports without a table and the
// failure is reported as a warning on the result.
//
// layerName overrides the default layer name (the file's base name
// without extension); pass "" to keep the default.
//
// Example:
//
//	mgr := layer.NewManager()
//	parcels, err := layer.Import("data/parcels.shp", mgr, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d parcels, total area %.1f\n",
//	    parcels.FeatureCount(), parcels.TotalArea())
func Import(path string, manager *Manager, layerName string) (*Layer, error) {
	result, err := ImportWithOptions(path, manager, ImportOptions{LayerName: layerName})
	if err != nil {
		return nil, err
	}
	return result.Layer, nil
}

// ImportWithOptions is Import with explicit options and a detailed
// result, including the decode warnings Import discards.
func ImportWithOptions(path string, manager *Manager, opts ImportOptions) (*ImportResult, error) {
	if manager == nil {
		return nil, errors.New("nil layer manager")
	}

	shpPath := path
	dbfPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".dbf"

	// Both files must exist before any decoding starts.
	if _, err := os.Stat(shpPath); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "geometry file"), ErrMissingInput)
	}
	if !opts.SkipAttributes {
		if _, err := os.Stat(dbfPath); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "attribute file"), ErrMissingInput)
		}
	}

	name := opts.LayerName
	if name == "" {
		base := filepath.Base(shpPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if _, taken := manager.Layer(name); taken {
		return nil, errors.Newf("layer %q already exists", name)
	}

	sf, err := shapefile.ReadSHPFile(shpPath, shapefile.ReadOptions{MaxRecordSize: opts.MaxRecordSize})
	if err != nil {
		var unsupported *shapefile.ErrUnsupportedShapeType
		if errors.As(err, &unsupported) {
			return nil, errors.Mark(err, ErrUnsupportedKind)
		}
		return nil, errors.Wrap(err, "decoding geometry file")
	}
	kind, ok := sf.Header.ShapeType.Kind()
	if !ok {
		return nil, errors.Mark(
			errors.Newf("shape type %v cannot populate a layer", sf.Header.ShapeType),
			ErrUnsupportedKind)
	}

	result := &ImportResult{Kind: kind}
	for _, w := range sf.Warnings {
		result.Warnings = append(result.Warnings, Warning{Record: w.Record, Message: w.Message})
	}

	l := NewLayer(name, kind)

	if !opts.SkipAttributes {
		d, err := shapefile.ReadDBFFile(dbfPath)
		if err != nil {
			// A broken attribute file costs the table, not the import.
			result.Warnings = append(result.Warnings, Warning{
				Message: fmt.Sprintf("attribute table not loaded: %v", err),
			})
		} else {
			l.SetTable(d.Table)
			result.TableRows = d.Table.RowCount()
		}
	}

	for _, shape := range sf.Shapes {
		id := l.FeatureCount()
		if !l.AddFeature(shape.Geom) {
			result.Warnings = append(result.Warnings, Warning{
				Record:  shape.RecordNumber,
				Message: fmt.Sprintf("%v feature does not fit a %v layer, dropped", shape.Geom.Kind(), kind),
			})
			continue
		}
		// The record number is 1-based and deleted attribute records are
		// never materialized, so the candidate row can run past the end
		// of the table; such features stay uncorrelated.
		if l.Table() != nil {
			l.SetAttributeRow(id, shape.RecordNumber-1)
		}
	}

	if l.Table() != nil && l.Table().ColumnCount() > 0 {
		field := opts.LabelField
		if field != "" && !l.SetLabelField(field) {
			result.Warnings = append(result.Warnings, Warning{
				Message: fmt.Sprintf("label field %q not in attribute table", field),
			})
			field = ""
		}
		if field == "" {
			if guess := defaultLabelField(l.Table()); guess != "" {
				l.SetLabelField(guess)
			}
		}
	}

	if !manager.AddLayer(l) {
		return nil, errors.Newf("layer %q already exists", name)
	}
	result.Layer = l
	result.FeatureCount = l.FeatureCount()
	return result, nil
}

// labelFieldHints is the priority list for the default label column, in
// match order.
var labelFieldHints = []string{"name", "label", "title", "id", "code", "desc", "type"}

// defaultLabelField picks the label column: the first column whose name
// contains a hint substring (hints tried in order), else the first text
// column, else the first column.
func defaultLabelField(t *attr.Table) string {
	if t == nil || t.ColumnCount() == 0 {
		return ""
	}
	cols := t.Columns()
	for _, hint := range labelFieldHints {
		for _, col := range cols {
			if strings.Contains(strings.ToLower(col.Name), hint) {
				return col.Name
			}
		}
	}
	for _, col := range cols {
		if col.Type == attr.TypeText {
			return col.Name
		}
	}
	return cols[0].Name
}
