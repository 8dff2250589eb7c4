package javaio

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapResolverRegisterAndLookup(t *testing.T) {
	r := newMapResolver()
	r.registerType("com.example.Thing", reflect.TypeOf(struct{}{}))

	typ, err := r.ResolveClass("com.example.Thing")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(struct{}{}), typ)
}

func TestMapResolverUnknownClassIsClassNotFound(t *testing.T) {
	r := newMapResolver()
	_, err := r.ResolveClass("com.example.Missing")
	require.Error(t, err)
	assert.True(t, isClassNotFound(err))
}

func TestMapResolverPrimitiveClassNames(t *testing.T) {
	r := newMapResolver()
	typ, err := r.ResolveClass("int")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(int32(0)), typ)

	typ, err = r.ResolveClass("boolean")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(false), typ)
}

func TestMapResolverProxyKeyComposition(t *testing.T) {
	r := newMapResolver()
	r.registerType(proxyKey([]string{"a.B", "c.D"}), reflect.TypeOf(struct{}{}))

	typ, err := r.ResolveProxyClass([]string{"a.B", "c.D"})
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(struct{}{}), typ)
}

func TestMapResolverFilterRejectsClass(t *testing.T) {
	r := newMapResolver()
	r.filter = func(name string) bool { return false }
	r.registerType("com.example.Thing", reflect.TypeOf(struct{}{}))

	_, err := r.ResolveClass("com.example.Thing")
	require.Error(t, err)
	var derr *Error
	require.True(t, asError(err, &derr))
	assert.Equal(t, KindInvalidClass, derr.Kind)
}

func TestIsClassNotFoundOnlyMatchesThatKind(t *testing.T) {
	assert.False(t, isClassNotFound(newErr(KindInvalidClass, "x")))
	assert.True(t, isClassNotFound(newErr(KindClassNotFound, "x")))
}
