package javaio

import (
	"reflect"
	"unicode"
)

// Materializer is the abstraction the core treats as external: it never
// instantiates or assigns Go values directly, it always goes through a
// Materializer. reflectMaterializer is the default, reflect-based
// implementation.
type Materializer interface {
	// Allocate creates a new, zero-valued instance of typ. Ordinary Go
	// allocation (reflect.New) already skips constructors entirely, which
	// is the Go analogue of a host hook that finds the nearest
	// non-serializable ancestor constructor to invoke.
	Allocate(typ reflect.Type) (interface{}, error)

	// Super returns the embedded value one level up the hierarchy (the
	// Go analogue of a superclass instance), and false if instance does
	// not expose one — which the object materializer treats as "the
	// local class for this descriptor level is absent".
	Super(instance interface{}) (interface{}, bool)

	// AssignField assigns value to the field of instance matching field's
	// name (by javaio struct tag, falling back to lower-camel-cased Go
	// field name).
	AssignField(instance interface{}, field FieldDescriptor, value interface{}) error

	// ObjectHook, ExternalHook, and NoDataHook report whether instance
	// implements the corresponding optional interface.
	ObjectHook(instance interface{}) (func(dec *Decoder) error, bool)
	ExternalHook(instance interface{}) (func(dec *Decoder) error, bool)
	NoDataHook(instance interface{}) (func() error, bool)

	// ResolveEnumConstant returns the singleton value for the named
	// constant of enum type typ.
	ResolveEnumConstant(typ reflect.Type, name string) (interface{}, error)
}

// ObjectReader is implemented by a Go type that wants to take over
// default field reading for its own descriptor level by declaring a
// custom readObject-style hook.
type ObjectReader interface {
	ReadObject(dec *Decoder) error
}

// NoDataReader is invoked for a descriptor level whose local class is
// absent.
type NoDataReader interface {
	ReadObjectNoData() error
}

// Externalizable is implemented by a Go type whose wire representation is
// entirely hand-rolled.
type Externalizable interface {
	ReadExternal(dec *Decoder) error
}

// Superer exposes the embedded "superclass" value of a hierarchical
// record.
type Superer interface {
	Super() interface{}
}

// EnumResolver lets a registered Go enum type supply its own constant
// lookup instead of relying on reflectMaterializer's name-matching
// fallback.
type EnumResolver interface {
	ResolveEnumConstant(name string) (interface{}, error)
}

type reflectMaterializer struct{}

func (reflectMaterializer) Allocate(typ reflect.Type) (interface{}, error) {
	if typ == nil {
		return nil, newErr(KindInvalidClass, "Allocate: nil type")
	}
	return reflect.New(typ).Interface(), nil
}

func (reflectMaterializer) Super(instance interface{}) (interface{}, bool) {
	s, ok := instance.(Superer)
	if !ok {
		return nil, false
	}
	return s.Super(), true
}

func (reflectMaterializer) AssignField(instance interface{}, field FieldDescriptor, value interface{}) error {
	v := reflect.Indirect(reflect.ValueOf(instance))
	if v.Kind() != reflect.Struct {
		return newErr(KindInvalidClass, "AssignField: %T is not a struct", instance)
	}
	target, ok := findStructField(v, field.Name)
	if !ok {
		return nil // unknown field on the local type: ignore
	}
	if !target.CanSet() {
		return newErr(KindInvalidClass, "AssignField: field %q is not settable", field.Name)
	}
	fv := reflect.ValueOf(value)
	if !fv.IsValid() {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	if !fv.Type().AssignableTo(target.Type()) {
		if fv.Type().ConvertibleTo(target.Type()) {
			fv = fv.Convert(target.Type())
		} else {
			return newErr(KindInvalidClass, "AssignField: %s is not assignable to field %q (%s)", fv.Type(), field.Name, target.Type())
		}
	}
	target.Set(fv)
	return nil
}

func findStructField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tf := t.Field(i)
		if tf.PkgPath != "" {
			continue // unexported
		}
		tag := tf.Tag.Get("javaio")
		if tag == "-" {
			continue
		}
		fieldName := tag
		if fieldName == "" {
			fieldName = lowerCamelCase(tf.Name)
		}
		if fieldName == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func lowerCamelCase(name string) string {
	runes := []rune(name)
	if len(runes) > 0 {
		runes[0] = unicode.ToLower(runes[0])
	}
	return string(runes)
}

func (reflectMaterializer) ObjectHook(instance interface{}) (func(dec *Decoder) error, bool) {
	if r, ok := instance.(ObjectReader); ok {
		return r.ReadObject, true
	}
	return nil, false
}

func (reflectMaterializer) ExternalHook(instance interface{}) (func(dec *Decoder) error, bool) {
	if r, ok := instance.(Externalizable); ok {
		return r.ReadExternal, true
	}
	return nil, false
}

func (reflectMaterializer) NoDataHook(instance interface{}) (func() error, bool) {
	if r, ok := instance.(NoDataReader); ok {
		return r.ReadObjectNoData, true
	}
	return nil, false
}

func (reflectMaterializer) ResolveEnumConstant(typ reflect.Type, name string) (interface{}, error) {
	zero := reflect.New(typ).Elem().Interface()
	if r, ok := zero.(EnumResolver); ok {
		return r.ResolveEnumConstant(name)
	}
	if typ.Kind() == reflect.String {
		return reflect.ValueOf(name).Convert(typ).Interface(), nil
	}
	return nil, newErr(KindInvalidClass, "no enum resolution for type %s and constant %q", typ, name)
}
