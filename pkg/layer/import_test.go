package layer

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/beetlebugorg/shapelayer/pkg/attr"
	"github.com/beetlebugorg/shapelayer/pkg/geo"
)

func appendLE32(b []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(b, uint32(v))
}

func appendBE32(b []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(b, uint32(v))
}

func appendLE64(b []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
}

// shpFileBytes assembles a geometry file from record contents, numbering
// the records 1..n.
func shpFileBytes(fileType int32, contents ...[]byte) []byte {
	var body []byte
	for i, content := range contents {
		body = appendBE32(body, int32(i+1))
		body = appendBE32(body, int32(len(content)/2))
		body = append(body, content...)
	}

	var b []byte
	b = appendBE32(b, 9994)
	b = append(b, make([]byte, 20)...)
	b = appendBE32(b, int32((100+len(body))/2))
	b = appendLE32(b, 1000)
	b = appendLE32(b, fileType)
	b = append(b, make([]byte, 64)...)
	return append(b, body...)
}

func pointShape(x, y float64) []byte {
	b := appendLE32(nil, 1)
	b = appendLE64(b, x)
	return appendLE64(b, y)
}

func multiPointShape(ords ...float64) []byte {
	b := appendLE32(nil, 8)
	b = append(b, make([]byte, 32)...)
	b = appendLE32(b, int32(len(ords)/2))
	for _, v := range ords {
		b = appendLE64(b, v)
	}
	return b
}

func polygonShape(ring []geo.Point) []byte {
	b := appendLE32(nil, 5)
	b = append(b, make([]byte, 32)...)
	b = appendLE32(b, 1)
	b = appendLE32(b, int32(len(ring)))
	b = appendLE32(b, 0)
	for _, p := range ring {
		b = appendLE64(b, p.X)
		b = appendLE64(b, p.Y)
	}
	return b
}

type dbfFieldDef struct {
	name    string
	typ     byte
	length  int
	decimal int
}

// dbfFileBytes assembles an attribute file; deleted lists row indexes to
// flag as deleted.
func dbfFileBytes(fields []dbfFieldDef, rows [][]string, deleted ...int) []byte {
	recordSize := 1
	for _, f := range fields {
		recordSize += f.length
	}
	headerSize := 32 + 32*len(fields) + 1

	b := []byte{0x03, 124, 1, 15}
	b = appendLE32(b, int32(len(rows)))
	b = binary.LittleEndian.AppendUint16(b, uint16(headerSize))
	b = binary.LittleEndian.AppendUint16(b, uint16(recordSize))
	b = append(b, make([]byte, 20)...)

	for _, f := range fields {
		desc := make([]byte, 32)
		copy(desc, f.name)
		desc[11] = f.typ
		desc[16] = byte(f.length)
		desc[17] = byte(f.decimal)
		b = append(b, desc...)
	}
	b = append(b, 0x0D)

	isDeleted := make(map[int]bool)
	for _, i := range deleted {
		isDeleted[i] = true
	}
	for i, row := range rows {
		if isDeleted[i] {
			b = append(b, '*')
		} else {
			b = append(b, ' ')
		}
		for j, f := range fields {
			cell := make([]byte, f.length)
			for k := range cell {
				cell[k] = ' '
			}
			copy(cell, row[j])
			b = append(b, cell...)
		}
	}
	return b
}

func writeTemp(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// surveyDBF builds a NAME/POP attribute file for n rows, reusing the
// survey names from surveyTable.
func surveyDBF(n int, deleted ...int) []byte {
	names := []string{"Alder", "Birch", "Cedar", "Dogwood", "Elm", "Fir"}
	fields := []dbfFieldDef{
		{"NAME", 'C', 10, 0},
		{"POP", 'N', 8, 0},
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		rows[i] = []string{names[i], "100"}
	}
	return dbfFileBytes(fields, rows, deleted...)
}

// TestImportPoints tests the full pipeline on a point file with a
// matching attribute table
func TestImportPoints(t *testing.T) {
	dir := t.TempDir()
	shp := writeTemp(t, dir, "sites.shp", shpFileBytes(1,
		pointShape(1, 1), pointShape(2, 2), pointShape(3, 3)))
	writeTemp(t, dir, "sites.dbf", surveyDBF(3))

	m := NewManager()
	l, err := Import(shp, m, "")
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if l.Name() != "sites" {
		t.Errorf("Expected layer named after the file, got %q", l.Name())
	}
	if l.Kind() != geo.KindPoint {
		t.Errorf("Expected point layer, got %v", l.Kind())
	}
	if l.FeatureCount() != 3 {
		t.Fatalf("Expected 3 features, got %d", l.FeatureCount())
	}
	if reg, ok := m.Layer("sites"); !ok || reg != l {
		t.Error("Expected the layer to be registered with the manager")
	}

	g, _ := l.FeatureAt(0)
	if p := g.(*geo.Point); p.X != 1 || p.Y != 1 {
		t.Errorf("Unexpected first feature: (%v, %v)", p.X, p.Y)
	}

	if l.Table() == nil || l.Table().RowCount() != 3 {
		t.Fatal("Expected a 3-row attribute table")
	}
	for i := 0; i < 3; i++ {
		if row, ok := l.AttributeRow(i); !ok || row != i {
			t.Errorf("Expected feature %d bound to row %d, got %d (%v)", i, i, row, ok)
		}
	}

	// NAME matches the first label hint.
	if l.LabelField() != "NAME" {
		t.Errorf("Expected NAME as label field, got %q", l.LabelField())
	}
	if got := l.LabelText(1); got != "Birch" {
		t.Errorf("Expected Birch, got %q", got)
	}
}

// TestImportOptions tests explicit names, label fields and the result
// summary
func TestImportOptions(t *testing.T) {
	dir := t.TempDir()
	shp := writeTemp(t, dir, "sites.shp", shpFileBytes(1,
		pointShape(1, 1), pointShape(2, 2)))
	writeTemp(t, dir, "sites.dbf", surveyDBF(2))

	m := NewManager()
	result, err := ImportWithOptions(shp, m, ImportOptions{
		LayerName:  "survey",
		LabelField: "pop",
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Layer.Name() != "survey" {
		t.Errorf("Expected the explicit name, got %q", result.Layer.Name())
	}
	if result.Kind != geo.KindPoint {
		t.Errorf("Expected point kind, got %v", result.Kind)
	}
	if result.FeatureCount != 2 || result.TableRows != 2 {
		t.Errorf("Unexpected counts: %d features, %d rows", result.FeatureCount, result.TableRows)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", result.Warnings)
	}

	// Label fields match case-insensitively.
	if result.Layer.LabelField() != "pop" {
		t.Errorf("Expected pop as label field, got %q", result.Layer.LabelField())
	}
	if got := result.Layer.LabelText(0); got != "100" {
		t.Errorf("Expected 100, got %q", got)
	}
}

// TestImportUnknownLabelField tests the fallback when the requested
// label column does not exist
func TestImportUnknownLabelField(t *testing.T) {
	dir := t.TempDir()
	shp := writeTemp(t, dir, "sites.shp", shpFileBytes(1, pointShape(1, 1)))
	writeTemp(t, dir, "sites.dbf", surveyDBF(1))

	m := NewManager()
	result, err := ImportWithOptions(shp, m, ImportOptions{LabelField: "ADDRESS"})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Layer.LabelField() != "NAME" {
		t.Errorf("Expected fallback to NAME, got %q", result.Layer.LabelField())
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "ADDRESS") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a warning about the unknown field, got %v", result.Warnings)
	}
}

// TestImportDuplicateLayerName tests that a taken name fails the import
func TestImportDuplicateLayerName(t *testing.T) {
	dir := t.TempDir()
	shp := writeTemp(t, dir, "sites.shp", shpFileBytes(1, pointShape(1, 1)))
	writeTemp(t, dir, "sites.dbf", surveyDBF(1))

	m := NewManager()
	if _, err := Import(shp, m, ""); err != nil {
		t.Fatalf("First import failed: %v", err)
	}
	if _, err := Import(shp, m, ""); err == nil {
		t.Fatal("Expected the second import to fail")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 layer, got %d", m.Count())
	}
}

// TestImportMissingInputs tests that both files must exist
func TestImportMissingInputs(t *testing.T) {
	dir := t.TempDir()

	m := NewManager()
	if _, err := Import(filepath.Join(dir, "absent.shp"), m, ""); !errors.Is(err, ErrMissingInput) {
		t.Errorf("Expected ErrMissingInput for a missing geometry file, got %v", err)
	}

	shp := writeTemp(t, dir, "orphan.shp", shpFileBytes(1, pointShape(1, 1)))
	if _, err := Import(shp, m, ""); !errors.Is(err, ErrMissingInput) {
		t.Errorf("Expected ErrMissingInput for a missing attribute file, got %v", err)
	}

	// Without attributes the geometry file stands alone.
	result, err := ImportWithOptions(shp, m, ImportOptions{SkipAttributes: true})
	if err != nil {
		t.Fatalf("Expected the attribute-free import to succeed, got %v", err)
	}
	if result.Layer.Table() != nil {
		t.Error("Expected no attribute table")
	}
	if result.FeatureCount != 1 {
		t.Errorf("Expected 1 feature, got %d", result.FeatureCount)
	}
}

// TestImportMultiPoint tests that every member of a multipoint record
// correlates to the record's row
func TestImportMultiPoint(t *testing.T) {
	dir := t.TempDir()
	shp := writeTemp(t, dir, "sites.shp", shpFileBytes(8,
		multiPointShape(1, 1),
		multiPointShape(2, 2),
		multiPointShape(3, 3),
		multiPointShape(4, 4),
		multiPointShape(5, 5, 6, 6, 7, 7)))
	writeTemp(t, dir, "sites.dbf", surveyDBF(5))

	m := NewManager()
	l, err := Import(shp, m, "")
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if l.FeatureCount() != 7 {
		t.Fatalf("Expected 7 features, got %d", l.FeatureCount())
	}

	// Features 4..6 all come from record 5.
	for id := 4; id <= 6; id++ {
		if row, ok := l.AttributeRow(id); !ok || row != 4 {
			t.Errorf("Expected feature %d bound to row 4, got %d (%v)", id, row, ok)
		}
	}
	if got := l.LabelText(5); got != "Elm" {
		t.Errorf("Expected Elm, got %q", got)
	}
}

// TestImportPolygon tests polygon decoding through the pipeline
func TestImportPolygon(t *testing.T) {
	dir := t.TempDir()
	ring := []geo.Point{
		{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 0},
	}
	shp := writeTemp(t, dir, "zones.shp", shpFileBytes(5, polygonShape(ring)))

	m := NewManager()
	result, err := ImportWithOptions(shp, m, ImportOptions{SkipAttributes: true})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Kind != geo.KindPolygon {
		t.Errorf("Expected polygon kind, got %v", result.Kind)
	}
	if result.FeatureCount != 1 {
		t.Fatalf("Expected 1 feature, got %d", result.FeatureCount)
	}
	if area := result.Layer.TotalArea(); !almostEqual(area, 6) {
		t.Errorf("Expected area 6, got %v", area)
	}
}

// TestImportDeletedRow tests that features past the end of a shrunken
// table stay uncorrelated
func TestImportDeletedRow(t *testing.T) {
	dir := t.TempDir()
	shp := writeTemp(t, dir, "sites.shp", shpFileBytes(1,
		pointShape(1, 1), pointShape(2, 2), pointShape(3, 3)))
	writeTemp(t, dir, "sites.dbf", surveyDBF(3, 1))

	m := NewManager()
	l, err := Import(shp, m, "")
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if l.Table().RowCount() != 2 {
		t.Fatalf("Expected 2 rows after the deletion, got %d", l.Table().RowCount())
	}
	if row, ok := l.AttributeRow(0); !ok || row != 0 {
		t.Errorf("Expected feature 0 bound to row 0, got %d (%v)", row, ok)
	}
	if _, ok := l.AttributeRow(2); ok {
		t.Error("Expected the last feature to be uncorrelated")
	}
}

// TestImportBrokenAttributeTable tests that a corrupt attribute file
// costs the table but not the import
func TestImportBrokenAttributeTable(t *testing.T) {
	dir := t.TempDir()
	shp := writeTemp(t, dir, "sites.shp", shpFileBytes(1, pointShape(1, 1)))
	writeTemp(t, dir, "sites.dbf", []byte("not a table"))

	m := NewManager()
	result, err := ImportWithOptions(shp, m, ImportOptions{})
	if err != nil {
		t.Fatalf("Expected the import to survive, got %v", err)
	}
	if result.Layer.Table() != nil {
		t.Error("Expected no attribute table")
	}
	if result.FeatureCount != 1 {
		t.Errorf("Expected 1 feature, got %d", result.FeatureCount)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "attribute table not loaded") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a warning about the table, got %v", result.Warnings)
	}
}

// TestImportUnsupportedKind tests that files without a layer kind are
// rejected
func TestImportUnsupportedKind(t *testing.T) {
	tests := []struct {
		name     string
		fileType int32
		content  []byte
	}{
		{"null file", 0, appendLE32(nil, 0)},
		{"multipatch file", 31, appendLE32(nil, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			shp := writeTemp(t, dir, "odd.shp", shpFileBytes(tt.fileType, tt.content))

			m := NewManager()
			_, err := ImportWithOptions(shp, m, ImportOptions{SkipAttributes: true})
			if !errors.Is(err, ErrUnsupportedKind) {
				t.Errorf("Expected ErrUnsupportedKind, got %v", err)
			}
			if m.Count() != 0 {
				t.Errorf("Expected no layer registered, have %d", m.Count())
			}
		})
	}
}

// TestImportMismatchedRecord tests that a record of a foreign kind is
// decoded, rejected by the layer and reported
func TestImportMismatchedRecord(t *testing.T) {
	dir := t.TempDir()
	ring := []geo.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0},
	}
	shp := writeTemp(t, dir, "sites.shp", shpFileBytes(1,
		pointShape(1, 1), polygonShape(ring)))

	m := NewManager()
	result, err := ImportWithOptions(shp, m, ImportOptions{SkipAttributes: true})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.FeatureCount != 1 {
		t.Fatalf("Expected only the point to survive, got %d features", result.FeatureCount)
	}

	var disagrees, dropped bool
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "disagrees") {
			disagrees = true
		}
		if strings.Contains(w.Message, "dropped") {
			dropped = true
		}
	}
	if !disagrees || !dropped {
		t.Errorf("Expected decode and drop warnings, got %v", result.Warnings)
	}
}

// TestDefaultLabelField tests the label column heuristic
func TestDefaultLabelField(t *testing.T) {
	tests := []struct {
		name     string
		columns  []attr.Column
		expected string
	}{
		{
			"hint order beats column order",
			[]attr.Column{
				{Name: "FTYPE", Type: attr.TypeText},
				{Name: "SITENAME", Type: attr.TypeText},
			},
			"SITENAME",
		},
		{
			"case-insensitive hint",
			[]attr.Column{
				{Name: "Label_1", Type: attr.TypeText},
				{Name: "ELEV", Type: attr.TypeFloat},
			},
			"Label_1",
		},
		{
			"first text column",
			[]attr.Column{
				{Name: "ELEV", Type: attr.TypeFloat},
				{Name: "NOTES", Type: attr.TypeText},
			},
			"NOTES",
		},
		{
			"first column fallback",
			[]attr.Column{
				{Name: "ELEV", Type: attr.TypeFloat},
				{Name: "AREA_SQ", Type: attr.TypeFloat},
			},
			"ELEV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultLabelField(attr.NewTable(tt.columns))
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
