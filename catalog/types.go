package catalog

import "fmt"

// CanonicalType is the fixed set of value types the catalog decodes
// into. The integer codes are stable and safe to persist or ship
// across a wire.
type CanonicalType int

const (
	UInt8 CanonicalType = iota
	UInt16
	UInt32
	UInt64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Complex64
	Complex128
	Bool
	String
)

var canonicalNames = map[CanonicalType]string{
	UInt8:      "uint8",
	UInt16:     "uint16",
	UInt32:     "uint32",
	UInt64:     "uint64",
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
	Bool:       "bool",
	String:     "string",
}

func (t CanonicalType) String() string {
	if name, ok := canonicalNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CanonicalType(%d)", int(t))
}

// ElemSize returns the in-memory element size in bytes, or 0 for
// variable-size types (String).
func (t CanonicalType) ElemSize() int {
	switch t {
	case UInt8, Int8, Bool:
		return 1
	case UInt16, Int16:
		return 2
	case UInt32, Int32, Float32:
		return 4
	case UInt64, Int64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		return 0
	}
}

// Component describes one indexed dataset. Shape is padded to the
// maximum rank across the catalog with -1 marking absent trailing
// dimensions, so callers can treat the result as a rectangular table.
type Component struct {
	Path  string
	Shape []int64
	Type  CanonicalType
}

// Value is a decoded region. Data holds a typed slice ([]int32,
// []float64, []complex128, []bool, []string, ...) in row-major order;
// Shape gives its dimensions. A scalar read has an empty Shape and a
// one-element slice.
type Value struct {
	Shape []int64
	Type  CanonicalType
	Data  any
}

// Len returns the number of elements described by the value's shape.
func (v *Value) Len() int64 {
	n := int64(1)
	for _, d := range v.Shape {
		n *= d
	}
	return n
}
