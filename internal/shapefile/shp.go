package shapefile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/beetlebugorg/shapelayer/pkg/geo"
)

// Geometry file layout constants from the Shapefile Technical Description.
const (
	shpHeaderBytes = 100
	shpFileCode    = 9994
	shpVersion     = 1000

	// Per-record sizes inside a shape payload: the XY bounding box that
	// prefixes multi-point layouts, and one XY coordinate pair.
	boxBytes   = 32
	pointBytes = 16
)

// Header is the decoded 100-byte geometry file header.
type Header struct {
	// FileLength is the total file length in bytes declared by the
	// header. The field is stored in 16-bit words on disk.
	FileLength int64

	// ShapeType is the file-level shape type. Individual records may
	// disagree with it; see ReadSHP.
	ShapeType ShapeType

	// Bounds is the bounding box declared by the header. Writers are not
	// always careful with it, so callers that need exact extents should
	// recompute them from the decoded geometries.
	Bounds geo.BoundingBox
}

// Shape is one geometry decoded from the record stream, together with the
// 1-based record number it came from. Multi-point and multi-part records
// produce several shapes sharing a record number.
type Shape struct {
	RecordNumber int
	Geom         geo.Geometry
}

// ShapeFile is the decoded content of a .shp geometry file.
type ShapeFile struct {
	Header   Header
	Shapes   []Shape
	Warnings []Warning
}

// ReadOptions controls geometry decoding.
type ReadOptions struct {
	// MaxRecordSize caps the declared content length of a single record,
	// in bytes. A record above the cap aborts the decode, since a corrupt
	// length field would otherwise make the reader buffer an arbitrary
	// amount of data. Zero means no cap.
	MaxRecordSize int
}

// ReadSHPFile decodes the geometry file at path. The file is only held open
// for the duration of the call.
func ReadSHPFile(path string, opts ReadOptions) (*ShapeFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sf, err := ReadSHP(bufio.NewReader(f), opts)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return sf, nil
}

// ReadSHP decodes a geometry file from r.
//
// Decoding is strict about the file header and permissive about records:
// a record with a malformed payload, or with a shape type that cannot be
// decoded, is skipped with a warning and the scan continues. Null records
// are skipped silently. A stream that ends mid-record is a hard error.
//
// Records are decoded according to their own shape type; a record whose
// type disagrees with the file header is still decoded, with a warning.
// Z and M shape variants are decoded as their 2D base shape.
func ReadSHP(r io.Reader, opts ReadOptions) (*ShapeFile, error) {
	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if _, ok := header.ShapeType.Kind(); !ok && header.ShapeType != ShapeNull {
		return nil, &ErrUnsupportedShapeType{Type: header.ShapeType}
	}

	sf := &ShapeFile{Header: *header}
	for record := 1; ; record++ {
		var rh [8]byte
		n, err := io.ReadFull(r, rh[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			// A partial record header is trailing garbage, not a
			// truncated record.
			sf.Warnings = append(sf.Warnings, Warning{
				Message: fmt.Sprintf("%d trailing bytes after last record", n),
			})
			break
		}
		if err != nil {
			return nil, err
		}

		// Record headers are big-endian: record number, then content
		// length in 16-bit words.
		recno := int(int32(binary.BigEndian.Uint32(rh[0:4])))
		contentLen := 2 * int(int32(binary.BigEndian.Uint32(rh[4:8])))
		if contentLen < 0 {
			return nil, errors.Newf("record %d: negative content length %d", recno, contentLen)
		}
		if opts.MaxRecordSize > 0 && contentLen > opts.MaxRecordSize {
			return nil, &ErrRecordTooLarge{Record: recno, Size: contentLen, Limit: opts.MaxRecordSize}
		}

		content := make([]byte, contentLen)
		if _, err := io.ReadFull(r, content); err != nil {
			return nil, &ErrTruncated{Section: fmt.Sprintf("record %d", recno)}
		}

		shapes, warnings := decodeRecord(recno, content, header.ShapeType)
		sf.Shapes = append(sf.Shapes, shapes...)
		sf.Warnings = append(sf.Warnings, warnings...)
	}
	return sf, nil
}

// readHeader decodes and validates the 100-byte file header.
func readHeader(r io.Reader) (*Header, error) {
	buf := make([]byte, shpHeaderBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, &ErrTruncated{Section: "file header"}
	}

	fileCode := int32(binary.BigEndian.Uint32(buf[0:4]))
	if fileCode != shpFileCode {
		return nil, &ErrInvalidFileCode{Got: fileCode}
	}
	// Bytes 4-23 are unused. The file length at byte 24 is big-endian and
	// counted in 16-bit words; everything after it is little-endian.
	fileLength := 2 * int64(binary.BigEndian.Uint32(buf[24:28]))
	version := int32(binary.LittleEndian.Uint32(buf[28:32]))
	if version != shpVersion {
		return nil, &ErrInvalidVersion{Got: version}
	}

	header := &Header{
		FileLength: fileLength,
		ShapeType:  ShapeType(binary.LittleEndian.Uint32(buf[32:36])),
		Bounds: geo.BoundingBox{
			MinX: math.Float64frombits(binary.LittleEndian.Uint64(buf[36:44])),
			MinY: math.Float64frombits(binary.LittleEndian.Uint64(buf[44:52])),
			MaxX: math.Float64frombits(binary.LittleEndian.Uint64(buf[52:60])),
			MaxY: math.Float64frombits(binary.LittleEndian.Uint64(buf[60:68])),
		},
		// Bytes 68-99 hold the Z and M ranges, which the 2D model ignores.
	}
	return header, nil
}

// decodeRecord decodes one record's content into zero or more shapes.
// Failures are reported as warnings, never as errors: by the time the
// content is in memory the stream itself is intact, so a bad payload only
// costs its own record.
func decodeRecord(record int, content []byte, fileType ShapeType) ([]Shape, []Warning) {
	if len(content) < 4 {
		return nil, []Warning{{Record: record, Message: "content too short for a shape type"}}
	}
	shapeType := ShapeType(binary.LittleEndian.Uint32(content[0:4]))
	if shapeType == ShapeNull {
		// Null records carry no geometry and claim no attribute row.
		return nil, nil
	}

	var warnings []Warning
	if fileType != ShapeNull && shapeType != fileType {
		warnings = append(warnings, Warning{
			Record:  record,
			Message: fmt.Sprintf("shape type %v disagrees with file type %v", shapeType, fileType),
		})
	}

	pr := newPayloadReader(content[4:])
	var geoms []geo.Geometry
	ok := true
	switch shapeType {
	case ShapePoint, ShapePointZ, ShapePointM:
		geoms, ok = decodePoint(pr)
	case ShapeMultiPoint, ShapeMultiPointZ, ShapeMultiPointM:
		geoms, ok = decodeMultiPoint(pr)
	case ShapePolyLine, ShapePolyLineZ, ShapePolyLineM:
		geoms, ok = decodeParted(pr, false)
	case ShapePolygon, ShapePolygonZ, ShapePolygonM:
		geoms, ok = decodeParted(pr, true)
	default:
		return nil, append(warnings, Warning{
			Record:  record,
			Message: fmt.Sprintf("unsupported shape type %v, record skipped", shapeType),
		})
	}
	if !ok {
		return nil, append(warnings, Warning{
			Record:  record,
			Message: fmt.Sprintf("malformed %v payload, record skipped", shapeType),
		})
	}

	shapes := make([]Shape, 0, len(geoms))
	for _, g := range geoms {
		shapes = append(shapes, Shape{RecordNumber: record, Geom: g})
	}
	return shapes, warnings
}

// decodePoint reads a single XY pair. Z and M ordinates, if present, are
// left unread in the payload.
func decodePoint(pr *payloadReader) ([]geo.Geometry, bool) {
	x := pr.readFloat64()
	y := pr.readFloat64()
	if !pr.ok {
		return nil, false
	}
	return []geo.Geometry{geo.NewPoint(x, y)}, true
}

// decodeMultiPoint reads a point set. Every member becomes its own point
// geometry, all sharing the record number of the enclosing record.
func decodeMultiPoint(pr *payloadReader) ([]geo.Geometry, bool) {
	pr.skip(boxBytes) // per-record box, recomputed from the points instead
	numPoints := pr.readInt32()
	if !pr.ok || numPoints < 0 || pr.remaining() < numPoints*pointBytes {
		return nil, false
	}
	geoms := make([]geo.Geometry, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		x := pr.readFloat64()
		y := pr.readFloat64()
		geoms = append(geoms, geo.NewPoint(x, y))
	}
	return geoms, pr.ok
}

// decodeParted reads the shared PolyLine/Polygon layout: box, part count,
// point count, part start offsets, XY pairs. Each part becomes its own
// geometry. Polygon parts need at least three vertices to describe a ring;
// parts below that are dropped, as are empty parts of either kind.
func decodeParted(pr *payloadReader, ring bool) ([]geo.Geometry, bool) {
	pr.skip(boxBytes)
	numParts := pr.readInt32()
	numPoints := pr.readInt32()
	if !pr.ok || numParts < 0 || numPoints < 0 {
		return nil, false
	}
	if pr.remaining() < numParts*4+numPoints*pointBytes {
		return nil, false
	}

	// Part offsets index into the point array and must be sorted.
	parts := make([]int, numParts)
	prev := 0
	for i := range parts {
		p := pr.readInt32()
		if p < prev || p > numPoints {
			return nil, false
		}
		parts[i] = p
		prev = p
	}

	points := make([]geo.Point, numPoints)
	for i := range points {
		x := pr.readFloat64()
		y := pr.readFloat64()
		points[i] = geo.Point{X: x, Y: y}
	}
	if !pr.ok {
		return nil, false
	}

	geoms := make([]geo.Geometry, 0, numParts)
	for i, start := range parts {
		end := numPoints
		if i+1 < numParts {
			end = parts[i+1]
		}
		if ring {
			if end-start < 3 {
				continue
			}
			geoms = append(geoms, geo.NewPolygonFromPoints(points[start:end]))
		} else {
			if end == start {
				continue
			}
			geoms = append(geoms, geo.NewPolylineFromPoints(points[start:end]))
		}
	}
	return geoms, true
}

// payloadReader walks a fully buffered record payload with little-endian
// reads. The first out-of-bounds read latches ok to false and every later
// read returns zero, so decode loops only check once at the end.
type payloadReader struct {
	data []byte
	off  int
	ok   bool
}

func newPayloadReader(data []byte) *payloadReader {
	return &payloadReader{data: data, ok: true}
}

func (r *payloadReader) remaining() int {
	return len(r.data) - r.off
}

func (r *payloadReader) skip(n int) {
	if !r.ok || r.remaining() < n {
		r.ok = false
		return
	}
	r.off += n
}

func (r *payloadReader) readInt32() int {
	if !r.ok || r.remaining() < 4 {
		r.ok = false
		return 0
	}
	v := int32(binary.LittleEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return int(v)
}

func (r *payloadReader) readFloat64() float64 {
	if !r.ok || r.remaining() < 8 {
		r.ok = false
		return 0
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.data[r.off:]))
	r.off += 8
	return v
}
