package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/hdf5cat/internal/message"
)

var defaultComplexNames = [2]string{"r", "i"}

func TestClassifyNumeric(t *testing.T) {
	tests := []struct {
		name string
		dt   *message.Datatype
		want CanonicalType
	}{
		{"uint8", message.NewFixedPointDatatype(1, false, message.OrderLE), UInt8},
		{"uint16", message.NewFixedPointDatatype(2, false, message.OrderLE), UInt16},
		{"uint32", message.NewFixedPointDatatype(4, false, message.OrderLE), UInt32},
		{"uint64", message.NewFixedPointDatatype(8, false, message.OrderLE), UInt64},
		{"int8", message.NewFixedPointDatatype(1, true, message.OrderLE), Int8},
		{"int16", message.NewFixedPointDatatype(2, true, message.OrderLE), Int16},
		{"int32", message.NewFixedPointDatatype(4, true, message.OrderLE), Int32},
		{"int64", message.NewFixedPointDatatype(8, true, message.OrderLE), Int64},
		{"int32_be", message.NewFixedPointDatatype(4, true, message.OrderBE), Int32},
		{"float32", message.NewFloatDatatype(4, message.OrderLE), Float32},
		{"float64", message.NewFloatDatatype(8, message.OrderLE), Float64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classify(tt.dt, defaultComplexNames)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyStrings(t *testing.T) {
	fixed := message.NewStringDatatype(16, message.PadNullTerm, message.CharsetASCII)
	got, err := classify(fixed, defaultComplexNames)
	require.NoError(t, err)
	assert.Equal(t, String, got)

	vlen := message.NewVarLenStringDatatype(message.CharsetUTF8)
	got, err = classify(vlen, defaultComplexNames)
	require.NoError(t, err)
	assert.Equal(t, String, got)
}

func TestClassifyComplex(t *testing.T) {
	got, err := classify(message.NewComplexCompoundDatatype(4), defaultComplexNames)
	require.NoError(t, err)
	assert.Equal(t, Complex64, got)

	got, err = classify(message.NewComplexCompoundDatatype(8), defaultComplexNames)
	require.NoError(t, err)
	assert.Equal(t, Complex128, got)

	// alternate member names only match when configured
	alt := message.NewCompoundDatatype(16, []message.CompoundMember{
		{Name: "re", ByteOffset: 0, Type: message.NewFloatDatatype(8, message.OrderLE)},
		{Name: "im", ByteOffset: 8, Type: message.NewFloatDatatype(8, message.OrderLE)},
	})
	_, err = classify(alt, defaultComplexNames)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	got, err = classify(alt, [2]string{"re", "im"})
	require.NoError(t, err)
	assert.Equal(t, Complex128, got)
}

func TestClassifyBool(t *testing.T) {
	got, err := classify(message.NewBoolEnumDatatype(), defaultComplexNames)
	require.NoError(t, err)
	assert.Equal(t, Bool, got)
}

func TestClassifyRejections(t *testing.T) {
	i8 := message.NewFixedPointDatatype(1, true, message.OrderLE)
	f8 := message.NewFloatDatatype(8, message.OrderLE)

	tests := []struct {
		name    string
		dt      *message.Datatype
		errText string
	}{
		{
			"odd_integer_width",
			message.NewFixedPointDatatype(3, true, message.OrderLE),
			"integer width 3",
		},
		{
			"half_float",
			message.NewFloatDatatype(2, message.OrderLE),
			"float width 2",
		},
		{
			"three_member_compound",
			message.NewCompoundDatatype(24, []message.CompoundMember{
				{Name: "x", ByteOffset: 0, Type: f8},
				{Name: "y", ByteOffset: 8, Type: f8},
				{Name: "z", ByteOffset: 16, Type: f8},
			}),
			`"x" "y" "z"`,
		},
		{
			"compound_non_float_members",
			message.NewCompoundDatatype(8, []message.CompoundMember{
				{Name: "r", ByteOffset: 0, Type: message.NewFixedPointDatatype(4, true, message.OrderLE)},
				{Name: "i", ByteOffset: 4, Type: message.NewFixedPointDatatype(4, true, message.OrderLE)},
			}),
			"not floats",
		},
		{
			"mixed_width_compound",
			message.NewCompoundDatatype(12, []message.CompoundMember{
				{Name: "r", ByteOffset: 0, Type: message.NewFloatDatatype(4, message.OrderLE)},
				{Name: "i", ByteOffset: 4, Type: f8},
			}),
			"widths 4 and 8",
		},
		{
			"three_member_enum",
			message.NewEnumDatatype(i8, []string{"LOW", "MID", "HIGH"}, []int64{0, 1, 2}),
			"LOW MID HIGH",
		},
		{
			"enum_wrong_names",
			message.NewEnumDatatype(i8, []string{"NO", "YES"}, []int64{0, 1}),
			"NO YES",
		},
		{
			"enum_wrong_values",
			message.NewEnumDatatype(i8, []string{"FALSE", "TRUE"}, []int64{0, 2}),
			"FALSE TRUE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classify(tt.dt, defaultComplexNames)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedType)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}
