package javaio

import "reflect"

// Resolver is the host-supplied class lookup, proxy fabrication, and
// optional object substitution hook. The core never resolves a class
// name to a Go type on its own; it always goes through a Resolver.
type Resolver interface {
	// ResolveClass maps a class descriptor's fully-qualified name to a Go
	// type. Returning a *Error with Kind KindClassNotFound is how a
	// resolver reports an unknown class.
	ResolveClass(name string) (reflect.Type, error)

	// ResolveProxyClass maps a proxy descriptor's interface-name list to a
	// Go type implementing (or standing in for) those interfaces.
	ResolveProxyClass(interfaces []string) (reflect.Type, error)

	// ResolveObject is the optional substitution hook, called only when
	// EnableResolveObject(true) is active. The default Resolver's
	// ResolveObject is the identity function.
	ResolveObject(value interface{}) (interface{}, error)
}

// ClassNamer lets a registered Go type assert its own canonical wire class
// name instead of relying solely on the string key RegisterType was called
// with; RegisterNamedType uses it to register without repeating the name.
type ClassNamer interface {
	ClassName() string
}

// SerialVersionUIDer lets a registered Go type assert the serialVersionUID
// a stream's class descriptor must carry for that type to apply. This is
// the read-side half of the original's local-vs-stream class-descriptor
// compatibility check (ObjectStreamClass.compareClassDescriptors).
type SerialVersionUIDer interface {
	SerialVersionUID() int64
}

// primitiveClasses maps the nine Java primitive type names to the
// Go types the decoder materializes them as. Built once as a
// process-wide constant table.
var primitiveClasses = map[string]reflect.Type{
	"byte":    reflect.TypeOf(byte(0)),
	"short":   reflect.TypeOf(int16(0)),
	"int":     reflect.TypeOf(int32(0)),
	"long":    reflect.TypeOf(int64(0)),
	"boolean": reflect.TypeOf(false),
	"char":    reflect.TypeOf(uint16(0)),
	"float":   reflect.TypeOf(float32(0)),
	"double":  reflect.TypeOf(float64(0)),
	"void":    nil,
}

// mapResolver is the default Resolver: a name -> reflect.Type registry the
// host populates with RegisterType.
type mapResolver struct {
	types  map[string]reflect.Type
	filter func(string) bool
}

func newMapResolver() *mapResolver {
	return &mapResolver{types: make(map[string]reflect.Type)}
}

func (r *mapResolver) registerType(name string, typ reflect.Type) {
	r.types[name] = typ
}

func (r *mapResolver) checkFilter(name string) error {
	if r.filter != nil && !r.filter(name) {
		return newErr(KindInvalidClass, "class %q rejected by filter", name)
	}
	return nil
}

func (r *mapResolver) ResolveClass(name string) (reflect.Type, error) {
	if typ, ok := primitiveClasses[name]; ok {
		return typ, nil
	}
	if err := r.checkFilter(name); err != nil {
		return nil, err
	}
	typ, ok := r.types[name]
	if !ok {
		return nil, newErr(KindClassNotFound, "class %q not registered", name)
	}
	return typ, nil
}

func (r *mapResolver) ResolveProxyClass(interfaces []string) (reflect.Type, error) {
	for _, name := range interfaces {
		if err := r.checkFilter(name); err != nil {
			return nil, err
		}
	}
	key := proxyKey(interfaces)
	typ, ok := r.types[key]
	if !ok {
		return nil, newErr(KindClassNotFound, "proxy class for %v not registered", interfaces)
	}
	return typ, nil
}

func (r *mapResolver) ResolveObject(value interface{}) (interface{}, error) {
	return value, nil
}

func proxyKey(interfaces []string) string {
	key := "$proxy:"
	for i, name := range interfaces {
		if i > 0 {
			key += ","
		}
		key += name
	}
	return key
}

func isClassNotFound(err error) bool {
	var derr *Error
	return asError(err, &derr) && derr.Kind == KindClassNotFound
}
