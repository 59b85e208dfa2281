package catalog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"github.com/robert-malhotra/hdf5cat/hdf5"
	"github.com/robert-malhotra/hdf5cat/internal/message"
)

// Read decodes a region of the named dataset. start and shape give a
// per-dimension origin and length; both empty means a full read.
//
// Validation is strict: shape rank must match the dataset rank and the
// region must lie fully inside the dataset's extents, with no
// clamping. Callers wanting lenient start/stop semantics use
// ReadRange, which normalizes before delegating here.
func (c *Catalog) Read(path string, start, shape []int64) (*Value, error) {
	mu.Lock()
	defer mu.Unlock()
	return c.read(path, start, shape)
}

// read implements Read with mu held.
func (c *Catalog) read(path string, start, shape []int64) (*Value, error) {
	if c.closed {
		return nil, ErrClosed
	}

	slot, ok := c.index[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	dims := c.shapes[slot]
	ct := c.types[slot]

	full := len(shape) == 0
	var (
		selStart, selCount []uint64
		outShape           []int64
	)
	if full {
		outShape = make([]int64, len(dims))
		copy(outShape, dims)
	} else {
		if len(shape) != len(dims) {
			return nil, fmt.Errorf("%w: %s: requested rank %d, dataset rank %d",
				ErrRankMismatch, path, len(shape), len(dims))
		}
		if len(start) != len(dims) {
			return nil, fmt.Errorf("%w: %s: start rank %d, dataset rank %d",
				ErrRankMismatch, path, len(start), len(dims))
		}
		selStart = make([]uint64, len(dims))
		selCount = make([]uint64, len(dims))
		for i := range dims {
			s, l := start[i], shape[i]
			if s < 0 || l < 0 || s > dims[i] || s+l > dims[i] {
				return nil, fmt.Errorf("%w: %s: dimension %d: start=%d length=%d extent=%d",
					ErrOutOfBounds, path, i, s, l, dims[i])
			}
			selStart[i] = uint64(s)
			selCount[i] = uint64(l)
		}
		outShape = make([]int64, len(shape))
		copy(outShape, shape)
	}

	n := int64(1)
	for _, d := range outShape {
		n *= d
	}
	if n == 0 {
		return &Value{Shape: outShape, Type: ct, Data: emptyData(ct)}, nil
	}

	ds, err := c.file.OpenDataset(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailure, path, err)
	}

	var raw []byte
	if full {
		raw, err = ds.ReadRaw()
	} else {
		raw, err = ds.ReadSliceRaw(selStart, selCount)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailure, path, err)
	}

	data, err := c.decode(ds, ct, raw, uint64(n))
	if err != nil {
		return nil, err
	}

	c.log.Debug("read region",
		slog.String("path", path),
		slog.Any("shape", outShape),
		slog.Int64("elements", n))
	return &Value{Shape: outShape, Type: ct, Data: data}, nil
}

// decode dispatches per canonical type. Numeric types bulk-copy raw
// bytes in one convert call; complex, bool, and string have dedicated
// decoders.
func (c *Catalog) decode(ds *hdf5.Dataset, ct CanonicalType, raw []byte, n uint64) (any, error) {
	path := ds.Path()
	switch ct {
	case UInt8:
		return decodeNumeric[uint8](ds, raw, n)
	case UInt16:
		return decodeNumeric[uint16](ds, raw, n)
	case UInt32:
		return decodeNumeric[uint32](ds, raw, n)
	case UInt64:
		return decodeNumeric[uint64](ds, raw, n)
	case Int8:
		return decodeNumeric[int8](ds, raw, n)
	case Int16:
		return decodeNumeric[int16](ds, raw, n)
	case Int32:
		return decodeNumeric[int32](ds, raw, n)
	case Int64:
		return decodeNumeric[int64](ds, raw, n)
	case Float32:
		return decodeNumeric[float32](ds, raw, n)
	case Float64:
		return decodeNumeric[float64](ds, raw, n)
	case Complex64, Complex128:
		return decodeComplex(ds, ct, raw, n)
	case Bool:
		return c.decodeBool(ds, raw, n)
	case String:
		return decodeString(ds, raw, n)
	default:
		return nil, fmt.Errorf("%w: %s: canonical type %d", ErrDecodeFailure, path, ct)
	}
}

func decodeNumeric[T any](ds *hdf5.Dataset, raw []byte, n uint64) ([]T, error) {
	out := make([]T, n)
	if err := ds.ConvertRaw(raw, n, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailure, ds.Path(), err)
	}
	return out, nil
}

// decodeComplex reassembles complex values from the two float members
// of the compound element, honoring each member's byte offset.
func decodeComplex(ds *hdf5.Dataset, ct CanonicalType, raw []byte, n uint64) (any, error) {
	dt := ds.Datatype()
	if len(dt.Members) != 2 || dt.Members[0].Type == nil || dt.Members[1].Type == nil {
		return nil, fmt.Errorf("%w: %s: compound shape changed since classification",
			ErrDecodeFailure, ds.Path())
	}

	elemSize := int(dt.Size)
	reOff := int(dt.Members[0].ByteOffset)
	imOff := int(dt.Members[1].ByteOffset)
	order := memberByteOrder(dt.Members[0].Type)

	if uint64(len(raw)) < n*uint64(elemSize) {
		return nil, fmt.Errorf("%w: %s: short read: %d bytes for %d elements",
			ErrDecodeFailure, ds.Path(), len(raw), n)
	}

	if ct == Complex64 {
		out := make([]complex64, n)
		for i := uint64(0); i < n; i++ {
			base := int(i) * elemSize
			re := math.Float32frombits(order.Uint32(raw[base+reOff:]))
			im := math.Float32frombits(order.Uint32(raw[base+imOff:]))
			out[i] = complex(re, im)
		}
		return out, nil
	}

	out := make([]complex128, n)
	for i := uint64(0); i < n; i++ {
		base := int(i) * elemSize
		re := math.Float64frombits(order.Uint64(raw[base+reOff:]))
		im := math.Float64frombits(order.Uint64(raw[base+imOff:]))
		out[i] = complex(re, im)
	}
	return out, nil
}

// decodeBool re-validates the enum shape against the freshly opened
// handle, then decodes the 1-byte members.
func (c *Catalog) decodeBool(ds *hdf5.Dataset, raw []byte, n uint64) ([]bool, error) {
	if _, err := classify(ds.Datatype(), c.complexNames); err != nil {
		return nil, fmt.Errorf("%s: %w", ds.Path(), err)
	}

	if uint64(len(raw)) < n {
		return nil, fmt.Errorf("%w: %s: short read: %d bytes for %d elements",
			ErrDecodeFailure, ds.Path(), len(raw), n)
	}

	out := make([]bool, n)
	for i := uint64(0); i < n; i++ {
		out[i] = raw[i] != 0
	}
	return out, nil
}

// decodeString branches on the storage encoding. Variable-length
// elements resolve through the container's global heap; the staging
// reference records in raw never escape this call. Fixed-length
// fields decode per their declared padding: null-terminated cuts at
// the first zero byte, null-padded trims trailing zeros only, and
// space-padded is refused rather than guessed at.
func decodeString(ds *hdf5.Dataset, raw []byte, n uint64) ([]string, error) {
	dt := ds.Datatype()

	if dt.IsVarLen() {
		out := make([]string, n)
		if err := ds.ConvertRaw(raw, n, &out); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailure, ds.Path(), err)
		}
		return out, nil
	}

	size := int(dt.Size)
	if size == 0 || uint64(len(raw)) < n*uint64(size) {
		return nil, fmt.Errorf("%w: %s: short read: %d bytes for %d elements of width %d",
			ErrDecodeFailure, ds.Path(), len(raw), n, size)
	}

	switch dt.StringPadding {
	case message.PadNullTerm, message.PadNullPad:
	case message.PadSpacePad:
		return nil, fmt.Errorf("%w: %s: space-padded strings", ErrUnsupportedEncoding, ds.Path())
	default:
		return nil, fmt.Errorf("%w: %s: string padding mode %d",
			ErrUnsupportedEncoding, ds.Path(), dt.StringPadding)
	}

	out := make([]string, n)
	for i := uint64(0); i < n; i++ {
		field := raw[int(i)*size : int(i+1)*size]
		if dt.StringPadding == message.PadNullTerm {
			if idx := bytes.IndexByte(field, 0); idx >= 0 {
				field = field[:idx]
			}
		} else {
			field = bytes.TrimRight(field, "\x00")
		}
		out[i] = string(field)
	}
	return out, nil
}

func memberByteOrder(dt *message.Datatype) binary.ByteOrder {
	if dt.ByteOrder == message.OrderBE {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// emptyData returns a zero-length slice of the canonical type's Go
// representation.
func emptyData(ct CanonicalType) any {
	switch ct {
	case UInt8:
		return []uint8{}
	case UInt16:
		return []uint16{}
	case UInt32:
		return []uint32{}
	case UInt64:
		return []uint64{}
	case Int8:
		return []int8{}
	case Int16:
		return []int16{}
	case Int32:
		return []int32{}
	case Int64:
		return []int64{}
	case Float32:
		return []float32{}
	case Float64:
		return []float64{}
	case Complex64:
		return []complex64{}
	case Complex128:
		return []complex128{}
	case Bool:
		return []bool{}
	default:
		return []string{}
	}
}
