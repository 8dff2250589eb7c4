package javaio

import "reflect"

// Array is the decoder's representation of a decoded array.
// Primitive-component arrays materialize as a concrete typed Go slice
// stored in Value; reference- and array-component arrays materialize as
// []interface{}, since their element classes are not necessarily
// registered with the Resolver (arrays are self-describing regardless of
// whether their element class is known to the host).
type Array struct {
	ClassName string
	Value     interface{}
}

// Len reports the number of elements.
func (a *Array) Len() int {
	return reflect.ValueOf(a.Value).Len()
}

// Index returns the element at i, boxed as interface{}.
func (a *Array) Index(i int) interface{} {
	return reflect.ValueOf(a.Value).Index(i).Interface()
}

// readArray reads the component descriptor, assigns a handle before any
// element is read (self-referential arrays are legal the same way
// self-referential objects are), reads the declared length, then reads
// elements according to the component type code.
func (dec *Decoder) readArray(unshared bool) (interface{}, error) {
	desc, err := dec.readClassDesc()
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, newErr(KindInvalidClass, "TC_ARRAY: null class descriptor")
	}
	handle, err := dec.handles.assign()
	if err != nil {
		return nil, err
	}

	n, err := dec.src.readI32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, newErr(KindStreamCorrupted, "TC_ARRAY: negative length %d", n)
	}

	componentCode, componentSig := arrayComponent(desc.Name)
	if componentCode == 'L' && !dec.cfg.allowsClass(componentSig) {
		return nil, newErr(KindInvalidClass, "array component class %q rejected by filter", componentSig)
	}
	arr := &Array{ClassName: desc.Name}
	dec.handles.register(handle, arr, unshared)

	value, err := dec.readArrayElements(componentCode, componentSig, int(n))
	if err != nil {
		return nil, err
	}
	arr.Value = value

	return dec.maybeSubstitute(handle, arr, unshared)
}

// arrayComponent splits a JVM array class name ("[I", "[Ljava.lang.String;",
// "[[I", ...) into the component's type code and, for reference
// components, its class name.
func arrayComponent(className string) (byte, string) {
	if len(className) < 2 || className[0] != '[' {
		return 0, ""
	}
	rest := className[1:]
	code := rest[0]
	if code == 'L' {
		sig := rest
		if len(sig) > 0 && sig[len(sig)-1] == ';' {
			sig = sig[1 : len(sig)-1]
		}
		return 'L', sig
	}
	if code == '[' {
		return '[', rest
	}
	return code, ""
}

func (dec *Decoder) readArrayElements(componentCode byte, componentSig string, n int) (interface{}, error) {
	switch componentCode {
	case 'B':
		out := make([]byte, n)
		for i := range out {
			v, err := dec.src.readByte()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case 'Z':
		out := make([]bool, n)
		for i := range out {
			v, err := dec.src.readBool()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case 'C':
		out := make([]uint16, n)
		for i := range out {
			v, err := dec.src.readU16()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case 'S':
		out := make([]int16, n)
		for i := range out {
			v, err := dec.src.readI16()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case 'I':
		out := make([]int32, n)
		for i := range out {
			v, err := dec.src.readI32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case 'J':
		out := make([]int64, n)
		for i := range out {
			v, err := dec.src.readI64()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case 'F':
		out := make([]float32, n)
		for i := range out {
			v, err := dec.src.readF32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case 'D':
		out := make([]float64, n)
		for i := range out {
			v, err := dec.src.readF64()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case 'L', '[':
		out := make([]interface{}, n)
		for i := range out {
			v, err := dec.readContent(false)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return nil, newErr(KindInvalidClass, "TC_ARRAY: unrecognized component signature %q", componentSig)
	}
}
