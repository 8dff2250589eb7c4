package javaio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yijunwu/javaio/internal/fixtures"
)

type withHook struct {
	N     int32 `javaio:"n"`
	Extra int32
}

func (w *withHook) ReadObject(dec *Decoder) error {
	v, err := dec.ReadInt32()
	if err != nil {
		return err
	}
	w.Extra = v
	return nil
}

func TestCustomObjectReaderHookReadsAnnotation(t *testing.T) {
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{
		Name:  "com.example.WithHook",
		Flags: fixtures.ScSerializable | fixtures.ScWriteMethod,
		Fields: []fixtures.Field{
			{TypeCode: 'I', Name: "n"},
		},
	}
	_, err = enc.WriteObjectHeader(desc)
	require.NoError(t, err)
	require.NoError(t, enc.WriteInt32(4)) // default field n
	enc.BeginBlockData()
	require.NoError(t, enc.WriteInt32(99)) // annotation consumed by ReadObject
	require.NoError(t, enc.EndBlockData())

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)
	dec.RegisterType("com.example.WithHook", withHook{})

	v, err := dec.ReadObject()
	require.NoError(t, err)
	w, ok := v.(*withHook)
	require.True(t, ok)
	assert.Equal(t, int32(4), w.N)
	assert.Equal(t, int32(99), w.Extra)
}

type partialReader struct {
	N     int32 `javaio:"n"`
	First int32
}

func (w *partialReader) ReadObject(dec *Decoder) error {
	v, err := dec.ReadInt32()
	if err != nil {
		return err
	}
	w.First = v
	return nil // leaves the second int32 of the annotation unread
}

func TestDiscardRemainingDrainsUnreadAnnotationBytes(t *testing.T) {
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{
		Name:  "com.example.PartialReader",
		Flags: fixtures.ScSerializable | fixtures.ScWriteMethod,
		Fields: []fixtures.Field{
			{TypeCode: 'I', Name: "n"},
		},
	}
	_, err = enc.WriteObjectHeader(desc)
	require.NoError(t, err)
	require.NoError(t, enc.WriteInt32(1))
	enc.BeginBlockData()
	require.NoError(t, enc.WriteInt32(10))
	require.NoError(t, enc.WriteInt32(20)) // never read by ReadObject
	require.NoError(t, enc.EndBlockData())

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)
	dec.RegisterType("com.example.PartialReader", partialReader{})

	v, err := dec.ReadObject()
	require.NoError(t, err)
	p, ok := v.(*partialReader)
	require.True(t, ok)
	assert.Equal(t, int32(10), p.First)
}

type withGetField struct {
	N int32 `javaio:"n"`
	M int32 `javaio:"m"`
}

func (w *withGetField) ReadObject(dec *Decoder) error {
	gf, err := dec.ReadFields()
	if err != nil {
		return err
	}
	w.N = gf.Int("n", -1)
	if gf.Defaulted("missing") {
		w.M = -2
	}
	return dec.DefaultReadObject()
}

func TestGetFieldDetachedView(t *testing.T) {
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{
		Name:  "com.example.WithGetField",
		Flags: fixtures.ScSerializable | fixtures.ScWriteMethod,
		Fields: []fixtures.Field{
			{TypeCode: 'I', Name: "n"},
		},
	}
	_, err = enc.WriteObjectHeader(desc)
	require.NoError(t, err)
	require.NoError(t, enc.WriteInt32(11))
	require.NoError(t, enc.EndBlockData())

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)
	dec.RegisterType("com.example.WithGetField", withGetField{})

	v, err := dec.ReadObject()
	require.NoError(t, err)
	w, ok := v.(*withGetField)
	require.True(t, ok)
	assert.Equal(t, int32(11), w.N)
	assert.Equal(t, int32(-2), w.M)
}

type externalObj struct {
	V int32
}

func (e *externalObj) ReadExternal(dec *Decoder) error {
	v, err := dec.ReadInt32()
	if err != nil {
		return err
	}
	e.V = v
	return nil
}

func TestExternalizableRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{
		Name:  "com.example.External",
		Flags: fixtures.ScExternalizable | fixtures.ScBlockData,
	}
	_, err = enc.WriteObjectHeader(desc)
	require.NoError(t, err)
	enc.BeginBlockData()
	require.NoError(t, enc.WriteInt32(77))
	require.NoError(t, enc.EndBlockData())

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)
	dec.RegisterType("com.example.External", externalObj{})

	v, err := dec.ReadObject()
	require.NoError(t, err)
	e, ok := v.(*externalObj)
	require.True(t, ok)
	assert.Equal(t, int32(77), e.V)
}

func TestLegacyNonBlockDataExternalizableIsRejected(t *testing.T) {
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{
		Name:  "com.example.LegacyExternal",
		Flags: fixtures.ScExternalizable,
	}
	_, err = enc.WriteObjectHeader(desc)
	require.NoError(t, err)

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)
	dec.RegisterType("com.example.LegacyExternal", externalObj{})

	_, err = dec.ReadObject()
	require.Error(t, err)
	var derr *Error
	require.True(t, asError(err, &derr))
	assert.Equal(t, KindInvalidObject, derr.Kind)
}

type validating struct {
	N int32 `javaio:"n"`
}

func (v *validating) ReadObject(dec *Decoder) error {
	if err := dec.RegisterValidation(func() error {
		validationOrder = append(validationOrder, "low")
		return nil
	}, 1); err != nil {
		return err
	}
	if err := dec.RegisterValidation(func() error {
		validationOrder = append(validationOrder, "high")
		return nil
	}, 10); err != nil {
		return err
	}
	return nil
}

var validationOrder []string

func TestValidationRunsInPriorityOrder(t *testing.T) {
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{
		Name:  "com.example.Validating",
		Flags: fixtures.ScSerializable | fixtures.ScWriteMethod,
		Fields: []fixtures.Field{
			{TypeCode: 'I', Name: "n"},
		},
	}
	_, err = enc.WriteObjectHeader(desc)
	require.NoError(t, err)
	require.NoError(t, enc.WriteInt32(1))
	require.NoError(t, enc.EndBlockData())

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)
	dec.RegisterType("com.example.Validating", validating{})

	validationOrder = nil
	_, err = dec.ReadObject()
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low"}, validationOrder)
}

type nilValidating struct {
	N int32 `javaio:"n"`
}

func (v *nilValidating) ReadObject(dec *Decoder) error {
	return dec.RegisterValidation(nil, 0)
}

func TestRegisterValidationRejectsNilCallback(t *testing.T) {
	var buf bytes.Buffer
	enc, err := fixtures.NewEncoder(&buf)
	require.NoError(t, err)

	desc := &fixtures.Desc{
		Name:  "com.example.NilValidating",
		Flags: fixtures.ScSerializable | fixtures.ScWriteMethod,
		Fields: []fixtures.Field{
			{TypeCode: 'I', Name: "n"},
		},
	}
	_, err = enc.WriteObjectHeader(desc)
	require.NoError(t, err)
	require.NoError(t, enc.WriteInt32(1))
	require.NoError(t, enc.EndBlockData())

	dec, err := NewDecoder(&buf, nil)
	require.NoError(t, err)
	dec.RegisterType("com.example.NilValidating", nilValidating{})

	_, err = dec.ReadObject()
	require.Error(t, err)
	var derr *Error
	require.True(t, asError(err, &derr))
	assert.Equal(t, KindInvalidObject, derr.Kind)
}
