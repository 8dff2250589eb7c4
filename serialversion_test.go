package javaio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yijunwu/javaio/internal/fixtures"
)

func TestRegisterNamedTypeUsesClassNamer(t *testing.T) {
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{
		Name:             String{}.ClassName(),
		SerialVersionUID: String{}.SerialVersionUID(),
		Flags:            fixtures.ScSerializable,
	}
	_, err = enc.WriteObjectHeader(desc)
	require.NoError(t, err)

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)
	require.NoError(t, dec.RegisterNamedType(String{}))

	v, err := dec.ReadObject()
	require.NoError(t, err)
	_, ok := v.(*String)
	assert.True(t, ok)
}

func TestSerialVersionUIDMismatchIsRejected(t *testing.T) {
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{
		Name:             Serializable{}.ClassName(),
		SerialVersionUID: 1, // does not match Serializable.SerialVersionUID()
		Flags:            fixtures.ScSerializable,
	}
	_, err = enc.WriteObjectHeader(desc)
	require.NoError(t, err)

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)
	require.NoError(t, dec.RegisterNamedType(Serializable{}))

	_, err = dec.ReadObject()
	require.Error(t, err)
	var derr *Error
	require.True(t, asError(err, &derr))
	assert.Equal(t, KindInvalidClass, derr.Kind)
}

func TestRegisterNamedTypeRejectsNonClassNamer(t *testing.T) {
	dec := &Decoder{}
	err := dec.RegisterNamedType(point{})
	require.Error(t, err)
	var derr *Error
	require.True(t, asError(err, &derr))
	assert.Equal(t, KindInvalidClass, derr.Kind)
}
