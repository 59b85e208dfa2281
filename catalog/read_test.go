package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/hdf5cat/hdf5"
	"github.com/robert-malhotra/hdf5cat/internal/message"
)

func TestReadFull(t *testing.T) {
	c, err := Open(writeBasicContainer(t))
	require.NoError(t, err)
	defer c.Close()

	val, err := c.Read("/temps", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, val.Shape)
	assert.Equal(t, Float64, val.Type)
	assert.Equal(t, []float64{1.5, 2.5, 3.5, 4.5}, val.Data)

	val, err = c.Read("/grid", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, val.Shape)
	require.IsType(t, []int32{}, val.Data)
	assert.Len(t, val.Data.([]int32), 12)
}

func TestReadRegion(t *testing.T) {
	c, err := Open(writeBasicContainer(t))
	require.NoError(t, err)
	defer c.Close()

	// grid holds 0..11 row-major over [3 4]
	val, err := c.Read("/grid", []int64{1, 1}, []int64{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 2}, val.Shape)
	assert.Equal(t, []int32{5, 6, 9, 10}, val.Data)

	val, err = c.Read("/grid", []int64{0, 0}, []int64{3, 4})
	require.NoError(t, err)
	assert.Len(t, val.Data.([]int32), 12)
}

func TestReadZeroLengthRegion(t *testing.T) {
	c, err := Open(writeBasicContainer(t))
	require.NoError(t, err)
	defer c.Close()

	val, err := c.Read("/grid", []int64{0, 0}, []int64{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2}, val.Shape)
	assert.Equal(t, []int32{}, val.Data)
	assert.Equal(t, int64(0), val.Len())
}

func TestReadValidation(t *testing.T) {
	c, err := Open(writeBasicContainer(t))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Read("/missing", nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Read("/grid", []int64{0}, []int64{2})
	assert.ErrorIs(t, err, ErrRankMismatch)

	_, err = c.Read("/grid", []int64{0}, []int64{2, 2})
	assert.ErrorIs(t, err, ErrRankMismatch)

	_, err = c.Read("/grid", []int64{2, 2}, []int64{2, 3})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = c.Read("/grid", []int64{-1, 0}, []int64{1, 1})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = c.Read("/grid", []int64{0, 0}, []int64{4, 4})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestReadNumericWidths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numeric.h5")
	f, err := hdf5.Create(path)
	require.NoError(t, err)

	root := f.Root()
	_, err = root.CreateDataset("u16", []uint16{1, 2, 65535})
	require.NoError(t, err)
	_, err = root.CreateDataset("i8", []int8{-128, 0, 127})
	require.NoError(t, err)
	_, err = root.CreateDataset("f32", []float32{0.5, -1.5})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	c, err := Open(path)
	require.NoError(t, err)
	defer c.Close()

	val, err := c.Read("/u16", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, UInt16, val.Type)
	assert.Equal(t, []uint16{1, 2, 65535}, val.Data)

	val, err = c.Read("/i8", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Int8, val.Type)
	assert.Equal(t, []int8{-128, 0, 127}, val.Data)

	val, err = c.Read("/f32", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Float32, val.Type)
	assert.Equal(t, []float32{0.5, -1.5}, val.Data)
}

func TestReadBool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bool.h5")
	f, err := hdf5.Create(path)
	require.NoError(t, err)
	_, err = f.Root().CreateDataset("flags", []bool{true, false, true, true})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	c, err := Open(path)
	require.NoError(t, err)
	defer c.Close()

	_, ct, err := c.Spec("/flags")
	require.NoError(t, err)
	assert.Equal(t, Bool, ct)

	val, err := c.Read("/flags", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, true}, val.Data)
}

func TestReadComplex64(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c64.h5")
	f, err := hdf5.Create(path)
	require.NoError(t, err)
	want := []complex64{1 + 2i, 3 - 4i, -0.5 + 0.25i}
	_, err = f.Root().CreateDataset("z", want)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	c, err := Open(path)
	require.NoError(t, err)
	defer c.Close()

	_, ct, err := c.Spec("/z")
	require.NoError(t, err)
	assert.Equal(t, Complex64, ct)

	val, err := c.Read("/z", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, want, val.Data)
}

// writeStringContainer builds fixed-width string datasets with each
// padding mode the wire format defines.
func writeStringContainer(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "strings.h5")
	f, err := hdf5.Create(path)
	require.NoError(t, err)
	root := f.Root()

	write := func(name string, pad message.StringPadding, values []string) {
		dt := message.NewStringDatatype(5, pad, message.CharsetASCII)
		ds, err := root.CreateDatasetWithType(name, []uint64{uint64(len(values))}, dt)
		require.NoError(t, err)
		require.NoError(t, ds.Write(values))
	}

	write("nullterm", message.PadNullTerm, []string{"ab", "hello", "x"})
	write("nullpad", message.PadNullPad, []string{"a\x00b", "ab", "hello"})
	write("spacepad", message.PadSpacePad, []string{"hi", "abcde"})

	require.NoError(t, f.Close())
	return path
}

func TestReadFixedStrings(t *testing.T) {
	c, err := Open(writeStringContainer(t))
	require.NoError(t, err)
	defer c.Close()

	// Null-terminated fields cut at the first zero byte.
	val, err := c.Read("/nullterm", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, String, val.Type)
	assert.Equal(t, []string{"ab", "hello", "x"}, val.Data)

	// Null-padded fields keep interior zero bytes.
	val, err = c.Read("/nullpad", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a\x00b", "ab", "hello"}, val.Data)

	// Space padding has no safe truncation rule.
	_, err = c.Read("/spacepad", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestReadVarLenStrings(t *testing.T) {
	path := filepath.Join("..", "testdata", "strings.h5")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("Test file %s not found. Run 'python3 testdata/generate.py' to create test files.", path)
	}

	c, err := Open(path)
	require.NoError(t, err)
	defer c.Close()

	val, err := c.Read("/vlen", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, String, val.Type)
	assert.Equal(t, []string{"alpha", "", "variable length"}, val.Data)
}
