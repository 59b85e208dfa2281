package catalog

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/hdf5cat/internal/message"
)

// classify maps an on-disk datatype descriptor to a canonical type.
// complexNames is the member-name pair a 2-float compound must carry.
// Pure function of the descriptor; anything it cannot represent is an
// ErrUnsupportedType naming the offending detail.
func classify(dt *message.Datatype, complexNames [2]string) (CanonicalType, error) {
	switch dt.Class {
	case message.ClassFixedPoint:
		return classifyInteger(dt)

	case message.ClassFloatPoint:
		switch dt.Size {
		case 4:
			return Float32, nil
		case 8:
			return Float64, nil
		default:
			return 0, fmt.Errorf("%w: float width %d", ErrUnsupportedType, dt.Size)
		}

	case message.ClassString:
		return String, nil

	case message.ClassVarLen:
		if dt.IsVarLenString {
			return String, nil
		}
		return 0, fmt.Errorf("%w: variable-length sequence", ErrUnsupportedType)

	case message.ClassCompound:
		return classifyCompound(dt, complexNames)

	case message.ClassEnum:
		return classifyEnum(dt)

	default:
		return 0, fmt.Errorf("%w: storage class %d", ErrUnsupportedType, dt.Class)
	}
}

func classifyInteger(dt *message.Datatype) (CanonicalType, error) {
	switch {
	case dt.Signed:
		switch dt.Size {
		case 1:
			return Int8, nil
		case 2:
			return Int16, nil
		case 4:
			return Int32, nil
		case 8:
			return Int64, nil
		}
	default:
		switch dt.Size {
		case 1:
			return UInt8, nil
		case 2:
			return UInt16, nil
		case 4:
			return UInt32, nil
		case 8:
			return UInt64, nil
		}
	}
	return 0, fmt.Errorf("%w: integer width %d", ErrUnsupportedType, dt.Size)
}

// classifyCompound recovers a complex type from a 2-member compound
// whose members are named exactly per complexNames, in order, and
// share one float width. Any other compound shape fails, naming the
// members encountered.
func classifyCompound(dt *message.Datatype, complexNames [2]string) (CanonicalType, error) {
	if len(dt.Members) != 2 {
		return 0, fmt.Errorf("%w: compound with %d members %s",
			ErrUnsupportedType, len(dt.Members), memberNames(dt))
	}

	m0, m1 := dt.Members[0], dt.Members[1]
	if m0.Name != complexNames[0] || m1.Name != complexNames[1] {
		return 0, fmt.Errorf("%w: compound member names %s, want [%q %q]",
			ErrUnsupportedType, memberNames(dt), complexNames[0], complexNames[1])
	}

	if m0.Type == nil || m1.Type == nil ||
		m0.Type.Class != message.ClassFloatPoint || m1.Type.Class != message.ClassFloatPoint {
		return 0, fmt.Errorf("%w: compound members %s are not floats",
			ErrUnsupportedType, memberNames(dt))
	}
	if m0.Type.Size != m1.Type.Size {
		return 0, fmt.Errorf("%w: compound members %s have widths %d and %d",
			ErrUnsupportedType, memberNames(dt), m0.Type.Size, m1.Type.Size)
	}

	switch m0.Type.Size {
	case 4:
		return Complex64, nil
	case 8:
		return Complex128, nil
	default:
		return 0, fmt.Errorf("%w: compound float width %d", ErrUnsupportedType, m0.Type.Size)
	}
}

// classifyEnum recovers Bool from a 2-member {FALSE=0, TRUE=1}
// enumeration of 1-byte width. Anything else fails, listing the full
// member set.
func classifyEnum(dt *message.Datatype) (CanonicalType, error) {
	if len(dt.EnumNames) != 2 || len(dt.EnumValues) != 2 {
		return 0, fmt.Errorf("%w: enum with %d members [%s]",
			ErrUnsupportedType, len(dt.EnumNames), strings.Join(dt.EnumNames, " "))
	}
	if dt.EnumNames[0] != "FALSE" || dt.EnumValues[0] != 0 ||
		dt.EnumNames[1] != "TRUE" || dt.EnumValues[1] != 1 {
		return 0, fmt.Errorf("%w: enum members [%s] with values %v, want [FALSE TRUE] = [0 1]",
			ErrUnsupportedType, strings.Join(dt.EnumNames, " "), dt.EnumValues)
	}
	if dt.Size != 1 {
		return 0, fmt.Errorf("%w: bool enum width %d, want 1", ErrUnsupportedType, dt.Size)
	}
	return Bool, nil
}

func memberNames(dt *message.Datatype) string {
	names := make([]string, len(dt.Members))
	for i, m := range dt.Members {
		names[i] = fmt.Sprintf("%q", m.Name)
	}
	return "[" + strings.Join(names, " ") + "]"
}
