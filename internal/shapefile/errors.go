package shapefile

import (
	"fmt"
)

// ErrInvalidFileCode indicates the geometry file does not start with the
// shapefile magic number
type ErrInvalidFileCode struct {
	Got int32
}

func (e *ErrInvalidFileCode) Error() string {
	return fmt.Sprintf("invalid file code: %d (want 9994)", e.Got)
}

// ErrInvalidVersion indicates an unrecognized geometry file version
type ErrInvalidVersion struct {
	Got int32
}

func (e *ErrInvalidVersion) Error() string {
	return fmt.Sprintf("invalid version: %d (want 1000)", e.Got)
}

// ErrUnsupportedShapeType indicates a file-level shape type the decoder
// cannot walk (MultiPatch or an unknown code)
type ErrUnsupportedShapeType struct {
	Type ShapeType
}

func (e *ErrUnsupportedShapeType) Error() string {
	return fmt.Sprintf("unsupported shape type: %v", e.Type)
}

// ErrTruncated indicates the file ended in the middle of a structure that
// cannot be skipped
type ErrTruncated struct {
	Section string
}

func (e *ErrTruncated) Error() string {
	return fmt.Sprintf("unexpected end of file in %s", e.Section)
}

// ErrRecordTooLarge indicates a record content length above the configured
// limit, beyond which the stream is not trusted
type ErrRecordTooLarge struct {
	Record int
	Size   int
	Limit  int
}

func (e *ErrRecordTooLarge) Error() string {
	return fmt.Sprintf("record %d: content length %d exceeds limit %d",
		e.Record, e.Size, e.Limit)
}

// ErrInvalidFieldDescriptor indicates an unreadable entry in the attribute
// file field descriptor array
type ErrInvalidFieldDescriptor struct {
	Index  int
	Reason string
}

func (e *ErrInvalidFieldDescriptor) Error() string {
	return fmt.Sprintf("invalid field descriptor %d: %s", e.Index, e.Reason)
}

// ErrMissingTerminator indicates the attribute file header did not end with
// the 0x0D descriptor array terminator
type ErrMissingTerminator struct {
	Got byte
}

func (e *ErrMissingTerminator) Error() string {
	return fmt.Sprintf("missing field descriptor terminator: got 0x%02X (want 0x0D)", e.Got)
}

// ErrRecordSizeMismatch indicates the declared attribute record size does
// not match the sum of the field lengths
type ErrRecordSizeMismatch struct {
	Declared int
	Computed int
}

func (e *ErrRecordSizeMismatch) Error() string {
	return fmt.Sprintf("record size mismatch: header declares %d bytes, fields total %d",
		e.Declared, e.Computed)
}
