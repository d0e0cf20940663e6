// Package attr provides the typed tabular attribute store attached to layers.
//
// A Table is an ordered set of named, typed columns plus an ordered sequence
// of rows addressed by 0-based position. Column types are fixed when the
// table is built (attribute decoding coerces every cell to its column type
// or to nil); nothing downstream needs runtime type discovery beyond the
// column tag.
package attr

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Type tags the value kind of a column.
type Type int

const (
	// TypeInt holds int64 cells.
	TypeInt Type = iota

	// TypeFloat holds float64 cells.
	TypeFloat

	// TypeDate holds time.Time cells (date precision).
	TypeDate

	// TypeBool holds bool cells.
	TypeBool

	// TypeText holds string cells.
	TypeText
)

// String returns the human-readable name of the type.
func (t Type) String() string {
	switch t {
	case TypeInt:
		return "Integer"
	case TypeFloat:
		return "Float"
	case TypeDate:
		return "Date"
	case TypeBool:
		return "Boolean"
	case TypeText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Column describes one named, typed column.
type Column struct {
	Name string
	Type Type
}

// Table is an ordered column schema with ordered rows.
//
// Cells are interface values matching their column type (int64, float64,
// time.Time, bool, string) or nil for missing/uncoercible values.
type Table struct {
	columns []Column
	rows    [][]interface{}
}

// NewTable returns an empty table over a copy of the column schema.
func NewTable(columns []Column) *Table {
	t := &Table{columns: make([]Column, len(columns))}
	copy(t.columns, columns)
	return t
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

// Columns returns the column schema. The slice is owned by the table;
// treat it as read-only.
func (t *Table) Columns() []Column { return t.columns }

// Column returns the column at the index, or false when out of range.
func (t *Table) Column(i int) (Column, bool) {
	if i < 0 || i >= len(t.columns) {
		return Column{}, false
	}
	return t.columns[i], true
}

// ColumnIndex returns the position of the named column, matching
// case-insensitively, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// AppendRow adds a row. The cell count must match the column count;
// cells are copied.
func (t *Table) AppendRow(cells []interface{}) error {
	if len(cells) != len(t.columns) {
		return errors.Newf("row has %d cells, table has %d columns",
			len(cells), len(t.columns))
	}
	row := make([]interface{}, len(cells))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// Row returns the row at the index, or false when out of range.
// The slice is owned by the table; treat it as read-only.
func (t *Table) Row(i int) ([]interface{}, bool) {
	if i < 0 || i >= len(t.rows) {
		return nil, false
	}
	return t.rows[i], true
}

// Value returns the cell at (row, col), or false when out of range.
// A present nil cell returns (nil, true).
func (t *Table) Value(row, col int) (interface{}, bool) {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.columns) {
		return nil, false
	}
	return t.rows[row][col], true
}

// CellString returns the cell rendered as text. Out-of-range addresses
// and nil cells render as the empty string; dates render as YYYY-MM-DD.
// CellString never fails.
func (t *Table) CellString(row, col int) string {
	v, ok := t.Value(row, col)
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Clone returns a deep copy of the table. Cell values are immutable
// scalars, so copying the row slices is a full copy.
func (t *Table) Clone() *Table {
	c := NewTable(t.columns)
	c.rows = make([][]interface{}, len(t.rows))
	for i, row := range t.rows {
		c.rows[i] = make([]interface{}, len(row))
		copy(c.rows[i], row)
	}
	return c
}
