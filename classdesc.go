package javaio

import "strings"

// FieldDescriptor is one entry of a ClassDescriptor's field list (spec
// §3 "Field descriptor").
type FieldDescriptor struct {
	TypeCode byte   // one of B S I J F D Z C L [
	Name     string
	// Signature carries the class-signature string for reference types
	// ('L' or '['); empty for primitive fields.
	Signature string
}

func (f FieldDescriptor) isPrimitive() bool {
	switch f.TypeCode {
	case 'B', 'S', 'I', 'J', 'F', 'D', 'Z', 'C':
		return true
	default:
		return false
	}
}

// ClassDescriptor is the parsed descriptor: name, UID, flags, ordered
// fields, and the super-descriptor chain. Proxy descriptors carry
// Interfaces instead of Name/Fields.
type ClassDescriptor struct {
	Name             string
	SerialVersionUID int64
	Flags            byte
	Fields           []FieldDescriptor
	Super            *ClassDescriptor

	IsProxy    bool
	Interfaces []string

	handle int32
}

func (d *ClassDescriptor) IsEnum() bool              { return d.Flags&scEnum != 0 }
func (d *ClassDescriptor) IsExternalizable() bool    { return d.Flags&scExternalizable != 0 }
func (d *ClassDescriptor) IsSerializable() bool      { return d.Flags&scSerializable != 0 }
func (d *ClassDescriptor) HasWriteMethod() bool      { return d.Flags&scWriteMethod != 0 }
func (d *ClassDescriptor) IsBlockDataExternal() bool { return d.Flags&scBlockData != 0 }

// readClassDesc dispatches on the next token.
func (dec *Decoder) readClassDesc() (*ClassDescriptor, error) {
	tc, err := dec.tr.next()
	if err != nil {
		return nil, err
	}
	switch tc {
	case tcNull:
		return nil, nil
	case tcReference:
		return dec.readClassDescReference()
	case tcProxyclassdesc:
		return dec.readProxyDesc()
	case tcClassdesc:
		return dec.readNonProxyDesc()
	default:
		return nil, newErr(KindStreamCorrupted, "readClassDesc: unexpected %s", tokenName(tc))
	}
}

func (dec *Decoder) readClassDescReference() (*ClassDescriptor, error) {
	handle, err := dec.src.readI32()
	if err != nil {
		return nil, err
	}
	v, err := dec.handles.lookup(handle)
	if err != nil {
		return nil, err
	}
	desc, ok := v.(*ClassDescriptor)
	if !ok {
		return nil, newErr(KindStreamCorrupted, "handle 0x%x is not a class descriptor", handle)
	}
	return desc, nil
}

// readNonProxyDesc reads an ordinary class descriptor. The handle is
// registered before any field is read so a self-referential annotation
// subgraph — a descriptor whose own annotation references its own
// handle — resolves correctly.
func (dec *Decoder) readNonProxyDesc() (*ClassDescriptor, error) {
	desc := &ClassDescriptor{}
	handle, err := dec.handles.registerNew(desc, false)
	if err != nil {
		return nil, err
	}
	desc.handle = handle

	name, err := dec.src.readUTF()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, newErr(KindStreamCorrupted, "readNonProxyDesc: empty class name")
	}
	desc.Name = name

	suid, err := dec.src.readI64()
	if err != nil {
		return nil, err
	}
	desc.SerialVersionUID = suid

	flags, err := dec.src.readByte()
	if err != nil {
		return nil, err
	}
	desc.Flags = flags

	numFields, err := dec.src.readI16()
	if err != nil {
		return nil, err
	}
	if numFields < 0 {
		return nil, newErr(KindStreamCorrupted, "readNonProxyDesc: negative field count")
	}
	fields := make([]FieldDescriptor, 0, numFields)
	for i := 0; i < int(numFields); i++ {
		fd, err := dec.readFieldDescriptor()
		if err != nil {
			return nil, err
		}
		fields = append(fields, fd)
	}
	desc.Fields = fields

	if err := dec.discardClassAnnotation(); err != nil {
		return nil, err
	}

	super, err := dec.readClassDesc()
	if err != nil {
		return nil, err
	}
	desc.Super = super

	if desc.IsEnum() {
		if desc.SerialVersionUID != 0 || (super != nil && super.SerialVersionUID != 0) {
			return nil, newErr(KindInvalidClass, "enum descriptor %q must have zero serialVersionUID through the super chain", desc.Name)
		}
	}

	return desc, nil
}

func (dec *Decoder) readFieldDescriptor() (FieldDescriptor, error) {
	tcode, err := dec.src.readByte()
	if err != nil {
		return FieldDescriptor{}, err
	}
	fname, err := dec.src.readUTF()
	if err != nil {
		return FieldDescriptor{}, err
	}
	fd := FieldDescriptor{TypeCode: tcode, Name: fname}
	if tcode == 'L' || tcode == '[' {
		sig, err := dec.readWireString()
		if err != nil {
			return FieldDescriptor{}, err
		}
		fd.Signature = normalizeFieldSignature(sig)
	} else if !fd.isPrimitive() {
		return FieldDescriptor{}, newErr(KindStreamCorrupted, "readFieldDescriptor: invalid type code %q", string(tcode))
	}
	return fd, nil
}

// normalizeFieldSignature undoes the "[L[...;;" wire quirk: some encoders
// double-wrap a nested array-of-object signature, adding an extra
// trailing ';'. Strip the outer "[L" / trailing ';' pair until the
// brackets nest straightforwardly.
func normalizeFieldSignature(s string) string {
	for strings.HasPrefix(s, "[L[") && strings.HasSuffix(s, ";;") {
		s = s[2 : len(s)-1]
	}
	return s
}

// discardClassAnnotation reads and discards a class descriptor's
// annotation subgraph: any number of objects/block-data items terminated
// by ENDBLOCKDATA.
func (dec *Decoder) discardClassAnnotation() error {
	for {
		if err := dec.fr.discardRemaining(); err != nil {
			return err
		}
		tc, err := dec.tr.peek()
		if err != nil {
			return err
		}
		if tc == tcEndblockdata {
			dec.tr.consume()
			return nil
		}
		if _, err := dec.readContent(false); err != nil {
			return err
		}
	}
}

func (dec *Decoder) readProxyDesc() (*ClassDescriptor, error) {
	desc := &ClassDescriptor{IsProxy: true}
	handle, err := dec.handles.registerNew(desc, false)
	if err != nil {
		return nil, err
	}
	desc.handle = handle

	count, err := dec.src.readI32()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, newErr(KindStreamCorrupted, "readProxyDesc: negative interface count")
	}
	interfaces := make([]string, 0, count)
	for i := int32(0); i < count; i++ {
		name, err := dec.src.readUTF()
		if err != nil {
			return nil, err
		}
		interfaces = append(interfaces, name)
	}
	desc.Interfaces = interfaces

	if err := dec.discardClassAnnotation(); err != nil {
		return nil, err
	}

	super, err := dec.readClassDesc()
	if err != nil {
		return nil, err
	}
	desc.Super = super
	return desc, nil
}
