package javaio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yijunwu/javaio/internal/fixtures"
)

func newTestDecoder(t *testing.T, body func(enc *fixtures.Encoder) error, cfg *Config) *Decoder {
	t.Helper()
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)
	require.NoError(t, body(enc))

	dec, err := NewDecoder(&buf, cfg)
	require.NoError(t, err)
	return dec
}

func TestReadNonProxyDescBasic(t *testing.T) {
	dec := newTestDecoder(t, func(enc *fixtures.Encoder) error {
		desc := &fixtures.Desc{
			Name:             "com.example.Point",
			SerialVersionUID: 42,
			Flags:            fixtures.ScSerializable,
			Fields: []fixtures.Field{
				{TypeCode: 'I', Name: "x"},
				{TypeCode: 'I', Name: "y"},
			},
		}
		_, err := enc.WriteClassDesc(desc)
		return err
	}, nil)

	desc, err := dec.readClassDesc()
	require.NoError(t, err)
	require.NotNil(t, desc)
	assert.Equal(t, "com.example.Point", desc.Name)
	assert.Equal(t, int64(42), desc.SerialVersionUID)
	require.Len(t, desc.Fields, 2)
	assert.Equal(t, "x", desc.Fields[0].Name)
	assert.True(t, desc.IsSerializable())
	assert.False(t, desc.IsEnum())
	assert.Nil(t, desc.Super)
}

func TestReadNonProxyDescWithReferenceSignature(t *testing.T) {
	dec := newTestDecoder(t, func(enc *fixtures.Encoder) error {
		desc := &fixtures.Desc{
			Name:  "com.example.Box",
			Flags: fixtures.ScSerializable,
			Fields: []fixtures.Field{
				{TypeCode: 'L', Name: "label", Signature: "Ljava.lang.String;"},
			},
		}
		_, err := enc.WriteClassDesc(desc)
		return err
	}, nil)

	desc, err := dec.readClassDesc()
	require.NoError(t, err)
	require.Len(t, desc.Fields, 1)
	assert.Equal(t, "Ljava.lang.String;", desc.Fields[0].Signature)
}

func TestReadProxyDesc(t *testing.T) {
	dec := newTestDecoder(t, func(enc *fixtures.Encoder) error {
		desc := &fixtures.Desc{
			IsProxy:    true,
			Interfaces: []string{"com.example.Greeter", "java.io.Serializable"},
		}
		_, err := enc.WriteClassDesc(desc)
		return err
	}, nil)

	desc, err := dec.readClassDesc()
	require.NoError(t, err)
	require.True(t, desc.IsProxy)
	assert.Equal(t, []string{"com.example.Greeter", "java.io.Serializable"}, desc.Interfaces)
}

func TestReadSuperChain(t *testing.T) {
	dec := newTestDecoder(t, func(enc *fixtures.Encoder) error {
		base := &fixtures.Desc{Name: "com.example.Base", Flags: fixtures.ScSerializable}
		derived := &fixtures.Desc{Name: "com.example.Derived", Flags: fixtures.ScSerializable, Super: base}
		_, err := enc.WriteClassDesc(derived)
		return err
	}, nil)

	desc, err := dec.readClassDesc()
	require.NoError(t, err)
	require.NotNil(t, desc.Super)
	assert.Equal(t, "com.example.Base", desc.Super.Name)
}

func TestNormalizeFieldSignatureStripsWireQuirk(t *testing.T) {
	assert.Equal(t, "[Ljava.lang.String;", normalizeFieldSignature("[L[Ljava.lang.String;;"))
	assert.Equal(t, "Ljava.lang.String;", normalizeFieldSignature("Ljava.lang.String;"))
}
