package iniconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMultiMapAppendAndGet(t *testing.T) {
	m := newOrderedMultiMap[string, int]()
	m.Append("a", 1)
	m.Append("b", 2)
	m.Append("a", 3)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = m.GetN("a", 1)
	require.True(t, ok)
	assert.Equal(t, 3, v)

	assert.Equal(t, 2, m.Count("a"))
	assert.Equal(t, []string{"a", "b"}, m.Keys())
}

func TestOrderedMultiMapDeleteNPreservesOtherOccurrences(t *testing.T) {
	m := newOrderedMultiMap[string, int]()
	m.Append("a", 1)
	m.Append("a", 2)
	m.Append("a", 3)

	require.True(t, m.DeleteN("a", 1))
	assert.Equal(t, 2, m.Count("a"))

	v, ok := m.GetN("a", 0)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = m.GetN("a", 1)
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestOrderedMultiMapSetNReplacesInPlace(t *testing.T) {
	m := newOrderedMultiMap[string, int]()
	m.Append("a", 1)
	m.Append("a", 2)

	require.True(t, m.SetN("a", 1, 42))
	v, _ := m.GetN("a", 1)
	assert.Equal(t, 42, v)
}

func TestOrderedMultiMapInsertBeforeAndAfter(t *testing.T) {
	m := newOrderedMultiMap[string, int]()
	m.Append("a", 1)
	m.Append("b", 2)

	require.NoError(t, m.Insert(InsertBefore, "b", 0, "x", 99))
	assert.Equal(t, []string{"a", "x", "b"}, m.Keys())

	require.NoError(t, m.Insert(InsertAfter, "a", 0, "y", 100))
	assert.Equal(t, []string{"a", "y", "x", "b"}, m.Keys())
}

func TestOrderedMultiMapInsertAtFront(t *testing.T) {
	m := newOrderedMultiMap[string, int]()
	m.Append("a", 1)
	require.NoError(t, m.Insert(InsertAtFront, "", 0, "z", 0))
	assert.Equal(t, []string{"z", "a"}, m.Keys())
}

func TestOrderedMultiMapInsertMissingRefKeyFails(t *testing.T) {
	m := newOrderedMultiMap[string, int]()
	m.Append("a", 1)
	err := m.Insert(InsertBefore, "missing", 0, "x", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderedMultiMapCloneIsIndependent(t *testing.T) {
	m := newOrderedMultiMap[string, int]()
	m.Append("a", 1)

	clone := m.Clone()
	clone.Append("a", 2)

	assert.Equal(t, 1, m.Count("a"))
	assert.Equal(t, 2, clone.Count("a"))
}
