package javaio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yijunwu/javaio/internal/fixtures"
)

func TestReadArrayPrimitiveComponent(t *testing.T) {
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{Name: "[I", Flags: fixtures.ScSerializable}
	_, err = enc.WriteArrayHeader(desc, 3)
	require.NoError(t, err)
	require.NoError(t, enc.WriteInt32(10))
	require.NoError(t, enc.WriteInt32(20))
	require.NoError(t, enc.WriteInt32(30))

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)

	v, err := dec.ReadObject()
	require.NoError(t, err)
	arr, ok := v.(*Array)
	require.True(t, ok)
	assert.Equal(t, "[I", arr.ClassName)
	assert.Equal(t, 3, arr.Len())
	assert.Equal(t, int32(20), arr.Index(1))
}

func TestReadArrayReferenceComponent(t *testing.T) {
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{Name: "[Ljava.lang.String;", Flags: fixtures.ScSerializable}
	_, err = enc.WriteArrayHeader(desc, 2)
	require.NoError(t, err)
	_, err = enc.WriteString("alpha", false)
	require.NoError(t, err)
	require.NoError(t, enc.WriteNull())

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)

	v, err := dec.ReadObject()
	require.NoError(t, err)
	arr, ok := v.(*Array)
	require.True(t, ok)
	assert.Equal(t, 2, arr.Len())
	assert.Equal(t, "alpha", arr.Index(0))
	assert.Nil(t, arr.Index(1))
}

func TestReadArraySelfReference(t *testing.T) {
	// An array whose own handle is referenced from within one of its
	// elements: the handle is assigned before elements are read, so
	// self-referential arrays decode without special-casing.
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{Name: "[Ljava.lang.Object;", Flags: fixtures.ScSerializable}
	handle, err := enc.WriteArrayHeader(desc, 1)
	require.NoError(t, err)
	require.NoError(t, enc.WriteReference(handle))

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)

	v, err := dec.ReadObject()
	require.NoError(t, err)
	arr, ok := v.(*Array)
	require.True(t, ok)
	assert.Same(t, arr, arr.Index(0))
}
