package iniconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valueFromLine(t *testing.T, key, line string) *Value {
	t.Helper()
	v := &Value{keyLength: len(key) + 1, raw: newRawLines()}
	v.raw.append(line)
	return v
}

func TestValueStringTrimsKeyAndEquals(t *testing.T) {
	v := valueFromLine(t, "color", "color = blue")
	assert.Equal(t, "blue", v.String())
}

func TestValueStringJoinsContinuationLines(t *testing.T) {
	v := valueFromLine(t, "path", "path = /usr/bin,")
	v.raw.append("  /usr/local/bin")
	assert.Equal(t, "/usr/bin, /usr/local/bin", v.String())
}

func TestValueInt32(t *testing.T) {
	v := valueFromLine(t, "n", "n = 42")
	n, err := v.Int32(0, true)
	require.NoError(t, err)
	assert.EqualValues(t, 42, n)
}

func TestValueInt32NonStrictIgnoresTrailingJunk(t *testing.T) {
	v := valueFromLine(t, "n", "n = 42px")
	n, err := v.Int32(0, false)
	require.NoError(t, err)
	assert.EqualValues(t, 42, n)

	_, err = v.Int32(0, true)
	assert.Error(t, err)
}

func TestValueBool(t *testing.T) {
	for s, want := range map[string]bool{
		"true": true, "YES": true, "1": true,
		"false": false, "No": false, "0": false,
	} {
		v := valueFromLine(t, "b", "b = "+s)
		got, err := v.Bool(false)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestValueFloat64(t *testing.T) {
	v := valueFromLine(t, "f", "f = 3.14")
	f, err := v.Float64(0, true)
	require.NoError(t, err)
	assert.InDelta(t, 3.14, f, 0.0001)
}

func TestValueBinary(t *testing.T) {
	v := valueFromLine(t, "b", "b = 'deadbeef'")
	raw, err := v.Binary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, raw)
}

func TestValueBinaryRejectsUnquoted(t *testing.T) {
	v := valueFromLine(t, "b", "b = deadbeef")
	_, err := v.Binary()
	assert.Error(t, err)
}

func TestValueArrayDropsEmptyByDefault(t *testing.T) {
	v := valueFromLine(t, "a", "a = one, , two")
	assert.Equal(t, []string{"one", "two"}, v.Array(","))
}

func TestValueArrayWithEmptyKeepsBlanks(t *testing.T) {
	v := valueFromLine(t, "a", "a = one,,two")
	assert.Equal(t, []string{"one", "", "two"}, v.ArrayWithEmpty(","))
}

func TestValueArrayWithEmptySplitsOnEverySeparatorRune(t *testing.T) {
	v := valueFromLine(t, "a", "a = a,b;c")
	assert.Equal(t, []string{"a", "b", "c"}, v.ArrayWithEmpty(",;"))
}

func TestValueInt64Array(t *testing.T) {
	v := valueFromLine(t, "a", "a = 1,2,3")
	ns, err := v.Int64Array(",")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ns)
}

func TestNewValueStartsDirty(t *testing.T) {
	v := NewValue("x", "y")
	assert.True(t, v.dirty)
	assert.Equal(t, "y", v.String())
}

func TestValueSetWrapBoundaryRejectsTooSmall(t *testing.T) {
	v := NewValue("x", "y")
	err := v.SetWrapBoundary(1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestValueCloneIsIndependent(t *testing.T) {
	v := valueFromLine(t, "k", "k = a")
	v.SetComment(NewComment("; note"))
	clone := v.Clone()
	clone.Comment().Append("; more")

	assert.Equal(t, 1, v.Comment().Len())
	assert.Equal(t, 2, clone.Comment().Len())
}
