package shapefile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/beetlebugorg/shapelayer/pkg/attr"
)

// Attribute file layout constants from the dBASE file structure.
const (
	dbfHeaderBytes     = 32
	dbfDescriptorBytes = 32
	dbfTerminator      = 0x0D
	dbfDeletedFlag     = '*'
	dbfDateLayout      = "20060102"
)

// FieldDescriptor describes one column of the attribute file.
type FieldDescriptor struct {
	// Name is the column name, at most 10 characters in the format.
	Name string
	// Type is the raw dBASE type code: C, N, F, D, L or M.
	Type byte
	// Length is the fixed cell width in bytes.
	Length int
	// Decimals is the digit count right of the decimal point for
	// numeric fields.
	Decimals int
}

// ColumnType maps the dBASE type code onto a table column type. Numeric
// fields with a decimal count are floats, those without are integers.
// Character, memo and unrecognized codes all land on text so their raw
// bytes stay inspectable.
func (f FieldDescriptor) ColumnType() attr.Type {
	switch f.Type {
	case 'N':
		if f.Decimals > 0 {
			return attr.TypeFloat
		}
		return attr.TypeInt
	case 'F':
		return attr.TypeFloat
	case 'D':
		return attr.TypeDate
	case 'L':
		return attr.TypeBool
	default:
		return attr.TypeText
	}
}

// DBF is the decoded content of a .dbf attribute file. Table holds one row
// per live record, in file order; records flagged deleted are never
// materialized, so table row indices do not count them.
type DBF struct {
	// Version is the raw version byte from the header.
	Version byte

	// LastUpdate is the modification date stamped in the header, or the
	// zero time when the stamp is not a plausible date.
	LastUpdate time.Time

	// RecordCount is the record count declared by the header, deleted
	// records included.
	RecordCount int

	Fields []FieldDescriptor
	Table  *attr.Table
}

// ReadDBFFile decodes the attribute file at path. The file is only held
// open for the duration of the call.
func ReadDBFFile(path string) (*DBF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := ReadDBF(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return d, nil
}

// ReadDBF decodes an attribute file from r.
//
// Structure is strict: a bad header, field descriptor array or record area
// fails the whole decode, since a misaligned schema would silently corrupt
// every cell after the fault. Cell values are permissive: a cell that is
// blank or fails to parse under its column type becomes a nil cell, never
// an error.
func ReadDBF(r io.Reader) (*DBF, error) {
	header := make([]byte, dbfHeaderBytes)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, &ErrTruncated{Section: "table header"}
	}

	d := &DBF{
		Version:     header[0],
		LastUpdate:  dbfDate(header[1], header[2], header[3]),
		RecordCount: int(int32(binary.LittleEndian.Uint32(header[4:8]))),
	}
	headerSize := int(binary.LittleEndian.Uint16(header[8:10]))
	recordSize := int(binary.LittleEndian.Uint16(header[10:12]))
	if d.RecordCount < 0 {
		return nil, errors.Newf("negative record count %d", d.RecordCount)
	}
	if headerSize < dbfHeaderBytes+1 {
		return nil, errors.Newf("header size %d leaves no room for the descriptor array", headerSize)
	}

	numFields := (headerSize - dbfHeaderBytes) / dbfDescriptorBytes
	d.Fields = make([]FieldDescriptor, 0, numFields)
	desc := make([]byte, dbfDescriptorBytes)
	for i := 0; i < numFields; i++ {
		if _, err := io.ReadFull(r, desc); err != nil {
			return nil, &ErrTruncated{Section: "field descriptor array"}
		}
		field, err := parseDescriptor(i, desc)
		if err != nil {
			return nil, err
		}
		d.Fields = append(d.Fields, field)
	}

	term := make([]byte, 1)
	if _, err := io.ReadFull(r, term); err != nil {
		return nil, &ErrTruncated{Section: "field descriptor array"}
	}
	if term[0] != dbfTerminator {
		return nil, &ErrMissingTerminator{Got: term[0]}
	}

	// Some writers pad the header past the terminator; the declared header
	// size, not the descriptor count, decides where records start.
	if slack := headerSize - dbfHeaderBytes - numFields*dbfDescriptorBytes - 1; slack > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(slack)); err != nil {
			return nil, &ErrTruncated{Section: "header padding"}
		}
	}

	computed := 1 // deletion flag
	for _, f := range d.Fields {
		computed += f.Length
	}
	if recordSize != computed {
		return nil, &ErrRecordSizeMismatch{Declared: recordSize, Computed: computed}
	}

	columns := make([]attr.Column, len(d.Fields))
	for i, f := range d.Fields {
		columns[i] = attr.Column{Name: f.Name, Type: f.ColumnType()}
	}
	d.Table = attr.NewTable(columns)

	rec := make([]byte, recordSize)
	for i := 0; i < d.RecordCount; i++ {
		if _, err := io.ReadFull(r, rec); err != nil {
			return nil, &ErrTruncated{Section: fmt.Sprintf("record %d", i)}
		}
		if rec[0] == dbfDeletedFlag {
			continue
		}
		cells := make([]interface{}, len(d.Fields))
		off := 1
		for j, f := range d.Fields {
			cells[j] = coerceCell(f, rec[off:off+f.Length])
			off += f.Length
		}
		if err := d.Table.AppendRow(cells); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// parseDescriptor decodes one 32-byte field descriptor.
func parseDescriptor(index int, desc []byte) (FieldDescriptor, error) {
	// The name occupies 11 bytes, null-padded.
	name := desc[0:11]
	if i := strings.IndexByte(string(name), 0); i >= 0 {
		name = name[:i]
	}
	field := FieldDescriptor{
		Name:     strings.TrimRight(string(name), " "),
		Type:     desc[11],
		Length:   int(desc[16]),
		Decimals: int(desc[17]),
	}
	if field.Name == "" {
		return FieldDescriptor{}, &ErrInvalidFieldDescriptor{Index: index, Reason: "empty name"}
	}
	if field.Length == 0 {
		return FieldDescriptor{}, &ErrInvalidFieldDescriptor{Index: index, Reason: "zero length"}
	}
	return field, nil
}

// coerceCell converts one fixed-width cell into its typed value. Cells are
// space-padded in the format, so the raw bytes are trimmed first; a blank
// cell is nil for every column type.
func coerceCell(f FieldDescriptor, raw []byte) interface{} {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return nil
	}
	switch f.Type {
	case 'N':
		if f.Decimals > 0 {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				return v
			}
			return nil
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
		return nil
	case 'F':
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
		return nil
	case 'D':
		if v, err := time.Parse(dbfDateLayout, s); err == nil {
			return v
		}
		return nil
	case 'L':
		switch s {
		case "Y", "y", "T", "t", "1":
			return true
		case "N", "n", "F", "f", "0":
			return false
		}
		return nil
	default:
		return s
	}
}

// dbfDate converts the header date stamp, whose year is counted from 1900.
func dbfDate(year, month, day byte) time.Time {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}
	return time.Date(1900+int(year), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
}
