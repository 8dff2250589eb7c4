package javaio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTableAssignSequential(t *testing.T) {
	h := newHandleTable(0)
	h1, err := h.registerNew("a", false)
	require.NoError(t, err)
	h2, err := h.registerNew("b", false)
	require.NoError(t, err)
	assert.Equal(t, baseWireHandle, h1)
	assert.Equal(t, baseWireHandle+1, h2)

	v, err := h.lookup(h1)
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestHandleTableUnsharedLookupFails(t *testing.T) {
	h := newHandleTable(0)
	handle, err := h.registerNew("secret", true)
	require.NoError(t, err)

	_, err = h.lookup(handle)
	require.Error(t, err)
	var derr *Error
	require.True(t, asError(err, &derr))
	assert.Equal(t, KindInvalidObject, derr.Kind)
}

func TestHandleTableOutOfRange(t *testing.T) {
	h := newHandleTable(0)
	_, err := h.lookup(baseWireHandle + 50)
	require.Error(t, err)
	var derr *Error
	require.True(t, asError(err, &derr))
	assert.Equal(t, KindStreamCorrupted, derr.Kind)
}

func TestHandleTableMaxExceeded(t *testing.T) {
	h := newHandleTable(1)
	_, err := h.registerNew("a", false)
	require.NoError(t, err)
	_, err = h.registerNew("b", false)
	require.Error(t, err)
}

func TestHandleTableReset(t *testing.T) {
	h := newHandleTable(0)
	handle, err := h.registerNew("a", false)
	require.NoError(t, err)
	h.reset()
	assert.Equal(t, 0, h.len())

	_, err = h.lookup(handle)
	require.Error(t, err)

	newHandle, err := h.registerNew("b", false)
	require.NoError(t, err)
	assert.Equal(t, baseWireHandle, newHandle)
}
