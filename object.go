package javaio

import "reflect"

// GenericObject is the fallback materialization for an ordinary object
// whose class the Resolver doesn't recognize, used only when
// Config.AllowUnregisteredClasses is set.
type GenericObject struct {
	ClassName string
	Fields    map[string]interface{}
}

// GenericEnum is GenericObject's enum counterpart.
type GenericEnum struct {
	ClassName string
	Constant  string
}

// readContent is the central dispatch: every context that expects "the
// next item" (top-level reads, array elements, field values, annotation
// subgraphs) funnels through here. RESET is legal at any such boundary
// and simply loops.
func (dec *Decoder) readContent(unshared bool) (interface{}, error) {
	dec.depth++
	if max := dec.cfg.maxDepth(); max > 0 && dec.depth > max {
		dec.depth--
		return nil, newErr(KindStreamCorrupted, "max nesting depth %d exceeded", max)
	}
	defer func() { dec.depth-- }()

	for {
		if err := dec.fr.checkObjectModeEntry(); err != nil {
			return nil, err
		}
		tc, err := dec.tr.next()
		if err != nil {
			return nil, err
		}
		switch tc {
		case tcReset:
			if err := dec.doReset(); err != nil {
				return nil, err
			}
			continue
		case tcNull:
			return nil, nil
		case tcReference:
			return dec.readReference()
		case tcClass:
			return dec.readClassLiteral()
		case tcArray:
			return dec.readArray(unshared)
		case tcObject:
			return dec.readOrdinaryObject(unshared)
		case tcString:
			return dec.readStringContent(false, unshared)
		case tcLongstring:
			return dec.readStringContent(true, unshared)
		case tcEnum:
			return dec.readEnum(unshared)
		case tcBlockdata:
			n, err := dec.src.readByte()
			if err != nil {
				return nil, err
			}
			dec.fr.beginBlock(int(n))
			return nil, newOptionalDataError(int(n), false)
		case tcBlockdatalong:
			n, err := dec.src.readI32()
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, newErr(KindStreamCorrupted, "TC_BLOCKDATALONG: negative length %d", n)
			}
			dec.fr.beginBlock(int(n))
			return nil, newOptionalDataError(int(n), false)
		case tcException:
			return nil, dec.readException()
		default:
			return nil, newErr(KindStreamCorrupted, "readContent: unexpected %s", tokenName(tc))
		}
	}
}

func (dec *Decoder) readReference() (interface{}, error) {
	handle, err := dec.src.readI32()
	if err != nil {
		return nil, err
	}
	return dec.handles.lookup(handle)
}

// readWireString reads a string that appears in a purely structural
// position (a field-descriptor signature, an enum constant name): STRING,
// LONGSTRING, or a REFERENCE to an already-registered string — the
// "class name by reference" wire quirk.
func (dec *Decoder) readWireString() (string, error) {
	tc, err := dec.tr.next()
	if err != nil {
		return "", err
	}
	switch tc {
	case tcReference:
		handle, err := dec.src.readI32()
		if err != nil {
			return "", err
		}
		v, err := dec.handles.lookup(handle)
		if err != nil {
			return "", err
		}
		s, ok := v.(string)
		if !ok {
			return "", newErr(KindStreamCorrupted, "readWireString: handle 0x%x is not a string", handle)
		}
		return s, nil
	case tcString:
		s, err := dec.src.readUTF()
		if err != nil {
			return "", err
		}
		if _, err := dec.handles.registerNew(s, false); err != nil {
			return "", err
		}
		return s, nil
	case tcLongstring:
		s, err := dec.src.readLongUTF()
		if err != nil {
			return "", err
		}
		if _, err := dec.handles.registerNew(s, false); err != nil {
			return "", err
		}
		return s, nil
	default:
		return "", newErr(KindStreamCorrupted, "readWireString: unexpected %s", tokenName(tc))
	}
}

func (dec *Decoder) readStringContent(long bool, unshared bool) (interface{}, error) {
	var s string
	var err error
	if long {
		s, err = dec.src.readLongUTF()
	} else {
		s, err = dec.src.readUTF()
	}
	if err != nil {
		return nil, err
	}
	handle, err := dec.handles.registerNew(s, unshared)
	if err != nil {
		return nil, err
	}
	return dec.maybeSubstitute(handle, s, unshared)
}

// maybeSubstitute applies the Resolver's ResolveObject hook (spec
// §4.9.3), active only once EnableResolveObject(true) has been called.
// unshared handles are never rebound, since a second observer must never
// be able to reach the substituted value through the handle table.
func (dec *Decoder) maybeSubstitute(handle int32, value interface{}, unshared bool) (interface{}, error) {
	if !dec.resolveObjectEnabled {
		return value, nil
	}
	substituted, err := dec.resolver.ResolveObject(value)
	if err != nil {
		return nil, wrapErr(KindInvalidObject, err, "ResolveObject")
	}
	if !unshared && substituted != value {
		dec.handles.register(handle, substituted, false)
	}
	return substituted, nil
}

// readClassLiteral implements TC_CLASS: a class descriptor resolved to
// its Go type, registered under a fresh handle as a value in
// its own right (used where the stream references "the class" rather than
// an instance of it, e.g. as an enum's declaring type in some encoders).
func (dec *Decoder) readClassLiteral() (interface{}, error) {
	desc, err := dec.readClassDesc()
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, newErr(KindInvalidClass, "TC_CLASS: null class descriptor")
	}
	typ, err := dec.resolveDescriptorType(desc)
	if err != nil && !isClassNotFound(err) {
		return nil, err
	}
	if _, err := dec.handles.registerNew(typ, false); err != nil {
		return nil, err
	}
	return typ, nil
}

// resolveDescriptorType maps a class descriptor to a Go type via the
// active Resolver, dispatching to ResolveProxyClass for proxy descriptors.
func (dec *Decoder) resolveDescriptorType(desc *ClassDescriptor) (reflect.Type, error) {
	if desc.IsProxy {
		return dec.resolver.ResolveProxyClass(desc.Interfaces)
	}
	return dec.resolver.ResolveClass(desc.Name)
}

// readOrdinaryObject implements TC_OBJECT: resolve the class, allocate
// an instance, register its handle before any field is read (so
// a self-referential graph resolves), then read field data per descriptor
// level — either through the Externalizable path or the default/
// hierarchy-walk path.
func (dec *Decoder) readOrdinaryObject(unshared bool) (interface{}, error) {
	desc, err := dec.readClassDesc()
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, newErr(KindInvalidClass, "TC_OBJECT: null class descriptor")
	}
	if desc.IsProxy {
		return nil, newErr(KindInvalidClass, "TC_OBJECT: %q is a dynamic-proxy descriptor, not an object descriptor", desc.Name)
	}

	typ, err := dec.resolveDescriptorType(desc)
	var instance interface{}
	generic := false
	if err != nil {
		if !isClassNotFound(err) || !dec.cfg.allowUnregistered() {
			return nil, err
		}
		generic = true
		instance = &GenericObject{ClassName: desc.Name, Fields: make(map[string]interface{})}
	} else {
		instance, err = dec.materializer.Allocate(typ)
		if err != nil {
			return nil, err
		}
		if err := checkSerialVersionUID(instance, desc); err != nil {
			return nil, err
		}
	}

	handle, err := dec.handles.assign()
	if err != nil {
		return nil, err
	}
	dec.handles.register(handle, instance, unshared)

	if desc.IsExternalizable() {
		if err := dec.readExternalData(instance, desc); err != nil {
			return nil, err
		}
	} else {
		if err := dec.readHierarchy(instance, desc, generic); err != nil {
			return nil, err
		}
	}

	return dec.maybeSubstitute(handle, instance, unshared)
}

// checkSerialVersionUID enforces the local/stream class-descriptor
// compatibility check, grounded on the original's
// ObjectStreamClass.compareClassDescriptors: when the registered Go type
// asserts its own serialVersionUID via SerialVersionUIDer, it must match
// the stream descriptor's, or the class is rejected outright rather than
// silently assigning fields the registered type never expected.
func checkSerialVersionUID(instance interface{}, desc *ClassDescriptor) error {
	versioned, ok := instance.(SerialVersionUIDer)
	if !ok {
		return nil
	}
	if want := versioned.SerialVersionUID(); want != desc.SerialVersionUID {
		return newErr(KindInvalidClass, "class %q: local serialVersionUID %d does not match stream's %d", desc.Name, want, desc.SerialVersionUID)
	}
	return nil
}

// readHierarchy walks desc's super chain root-to-leaf, processing the
// root ancestor's fields first, pairing each descriptor level with the
// Go value the Materializer says corresponds to it.
func (dec *Decoder) readHierarchy(instance interface{}, desc *ClassDescriptor, generic bool) error {
	var levels []*ClassDescriptor
	for d := desc; d != nil; d = d.Super {
		levels = append(levels, d)
	}

	targets := make([]interface{}, len(levels))
	targets[0] = instance
	if !generic {
		current := instance
		for i := 1; i < len(levels); i++ {
			super, ok := dec.materializer.Super(current)
			if !ok {
				super = nil
			}
			targets[i] = super
			current = super
		}
	} else {
		for i := range targets {
			targets[i] = instance
		}
	}

	for i := len(levels) - 1; i >= 0; i-- {
		if err := dec.readLevel(instance, targets[i], levels[i], generic); err != nil {
			return err
		}
	}
	return nil
}

// readLevel reads one descriptor level's declared field values, applies
// them to target (the Go value the Materializer paired with this level),
// and — when the level declares SC_WRITE_METHOD — gives a custom
// ObjectReader hook a chance to consume a trailing block-data annotation
// before realigning to TC_ENDBLOCKDATA.
func (dec *Decoder) readLevel(topInstance, target interface{}, desc *ClassDescriptor, generic bool) error {
	values, err := dec.readDefaultValues(desc)
	if err != nil {
		return err
	}

	if target != nil {
		if err := dec.applyValues(target, desc, values, generic); err != nil {
			return err
		}
	} else if hook, ok := dec.materializer.NoDataHook(topInstance); ok {
		if err := hook(); err != nil {
			return err
		}
	}

	if !desc.HasWriteMethod() {
		return nil
	}

	if target != nil {
		if hook, ok := dec.materializer.ObjectHook(target); ok {
			dec.fieldContext = newGetField(desc, values)
			dec.fieldTarget = target
			hookErr := hook(dec)
			dec.fieldContext = nil
			dec.fieldTarget = nil
			if hookErr != nil {
				return hookErr
			}
			if err := dec.fr.discardRemaining(); err != nil {
				return err
			}
		}
	}
	return dec.discardClassAnnotation()
}

func (dec *Decoder) readDefaultValues(desc *ClassDescriptor) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(desc.Fields))
	for _, f := range desc.Fields {
		if f.isPrimitive() {
			v, err := dec.readPrimitiveField(f.TypeCode)
			if err != nil {
				return nil, err
			}
			values[f.Name] = v
		} else {
			v, err := dec.readContent(false)
			if err != nil {
				return nil, err
			}
			values[f.Name] = v
		}
	}
	return values, nil
}

func (dec *Decoder) readPrimitiveField(code byte) (interface{}, error) {
	switch code {
	case 'B':
		return dec.src.readByte()
	case 'Z':
		return dec.src.readBool()
	case 'C':
		return dec.src.readU16()
	case 'S':
		return dec.src.readI16()
	case 'I':
		return dec.src.readI32()
	case 'J':
		return dec.src.readI64()
	case 'F':
		return dec.src.readF32()
	case 'D':
		return dec.src.readF64()
	default:
		return nil, newErr(KindStreamCorrupted, "readPrimitiveField: unknown type code %q", string(code))
	}
}

func (dec *Decoder) applyValues(target interface{}, desc *ClassDescriptor, values map[string]interface{}, generic bool) error {
	if generic {
		obj, ok := target.(*GenericObject)
		if !ok {
			return newErr(KindInvalidObject, "applyValues: generic target is %T", target)
		}
		for _, f := range desc.Fields {
			obj.Fields[f.Name] = values[f.Name]
		}
		return nil
	}
	for _, f := range desc.Fields {
		if err := dec.materializer.AssignField(target, f, values[f.Name]); err != nil {
			return err
		}
	}
	return nil
}

// readExternalData implements the modern (SC_BLOCK_DATA) externalizable
// path: the object's entire wire representation is a block-data sequence
// terminated by TC_ENDBLOCKDATA, consumed by the instance's ReadExternal
// hook. Legacy pre-block-data externalizable streams are out of scope —
// see DESIGN.md.
func (dec *Decoder) readExternalData(instance interface{}, desc *ClassDescriptor) error {
	if !desc.IsBlockDataExternal() {
		return newErr(KindInvalidObject, "class %q uses the legacy non-block-data externalizable format, which is unsupported", desc.Name)
	}
	hook, ok := dec.materializer.ExternalHook(instance)
	if ok {
		if err := hook(dec); err != nil {
			return err
		}
		if err := dec.fr.discardRemaining(); err != nil {
			return err
		}
	}
	return dec.discardClassAnnotation()
}

// readEnumDesc reads an enum's class descriptor: same shape as an
// ordinary descriptor, but never a proxy descriptor.
func (dec *Decoder) readEnumDesc() (*ClassDescriptor, error) {
	tc, err := dec.tr.next()
	if err != nil {
		return nil, err
	}
	switch tc {
	case tcClassdesc:
		return dec.readNonProxyDesc()
	case tcReference:
		return dec.readClassDescReference()
	case tcNull:
		return nil, newErr(KindInvalidClass, "TC_ENUM: null class descriptor")
	default:
		return nil, newErr(KindStreamCorrupted, "readEnumDesc: unexpected %s", tokenName(tc))
	}
}

// readEnum implements TC_ENUM: read the descriptor, assign a
// handle before the constant name is read (so the constant's handle
// precedes the handle of its name string, matching the encoder's
// numbering), then resolve the singleton via the Materializer.
func (dec *Decoder) readEnum(unshared bool) (interface{}, error) {
	desc, err := dec.readEnumDesc()
	if err != nil {
		return nil, err
	}
	handle, err := dec.handles.assign()
	if err != nil {
		return nil, err
	}
	name, err := dec.readWireString()
	if err != nil {
		return nil, err
	}

	typ, err := dec.resolver.ResolveClass(desc.Name)
	var value interface{}
	if err != nil {
		if !isClassNotFound(err) || !dec.cfg.allowUnregistered() {
			return nil, err
		}
		value = &GenericEnum{ClassName: desc.Name, Constant: name}
	} else {
		value, err = dec.materializer.ResolveEnumConstant(typ, name)
		if err != nil {
			return nil, err
		}
	}
	dec.handles.register(handle, value, unshared)
	return dec.maybeSubstitute(handle, value, unshared)
}

// doReset implements TC_RESET: clear the handle table and restart the
// counter at the base handle. It runs wherever readContent or the framer
// meets a RESET token, including inside a nested read; no check rejects a
// RESET there, and a later reference to a handle assigned before it fails
// to resolve.
func (dec *Decoder) doReset() error {
	dec.handles.reset()
	if dec.cfg.logger() != nil {
		dec.cfg.logger().Debug().Msg("javaio: stream reset")
	}
	return nil
}
