// Package fixtures is a test-only encoder used to build wire-format byte
// strings for this module's own round-trip tests. It is not part of the
// public javaio API, since writing/encoding is out of scope for this
// package; it exists purely so package javaio's tests can construct
// streams without hand-assembling bytes.
//
// The class-descriptor and object shapes are driven by explicit Desc/Field
// values here rather than reflected off arbitrary Go types, since fixture
// construction always starts from a known wire shape.
package fixtures

import (
	"encoding/binary"
	"io"
)

const (
	streamMagic   uint16 = 0xaced
	streamVersion int16  = 5

	tcNull           byte = 0x70
	tcReference      byte = 0x71
	tcClassdesc      byte = 0x72
	tcObject         byte = 0x73
	tcString         byte = 0x74
	tcArray          byte = 0x75
	tcClass          byte = 0x76
	tcBlockdata      byte = 0x77
	tcEndblockdata   byte = 0x78
	tcReset          byte = 0x79
	tcBlockdatalong  byte = 0x7a
	tcException      byte = 0x7b
	tcLongstring     byte = 0x7c
	tcProxyclassdesc byte = 0x7d
	tcEnum           byte = 0x7e

	baseWireHandle int32 = 0x7e0000
)

// Flag bits, mirroring javaio's unexported sc* constants.
const (
	ScWriteMethod    byte = 0x01
	ScSerializable   byte = 0x02
	ScExternalizable byte = 0x04
	ScBlockData      byte = 0x08
	ScEnum           byte = 0x10
)

// Field is one class-descriptor field entry a fixture writes.
type Field struct {
	TypeCode  byte
	Name      string
	Signature string
}

// Desc is an explicit class-descriptor shape for a fixture stream:
// fixtures never infer a descriptor from a Go type, they declare the
// exact bytes they want on the wire.
type Desc struct {
	Name             string
	SerialVersionUID int64
	Flags            byte
	Fields           []Field
	Super            *Desc

	IsProxy    bool
	Interfaces []string

	handle int32
	held   bool
}

// Encoder writes javaio wire-format streams for fixtures. Unlike a real
// ObjectOutputStream it has no reflection-driven newObject/newArray path:
// callers drive every token explicitly through its methods.
type Encoder struct {
	w                  io.Writer
	handles            map[interface{}]int32
	nextHandle         int32
	blockDataMode      bool
	blockDataBuffer    [1024]byte
	blockDataBufferPos int
}

// NewEncoder writes the stream header and returns an Encoder ready to
// accept content tokens.
func NewEncoder(w io.Writer) (*Encoder, error) {
	enc := &Encoder{w: w, handles: map[interface{}]int32{}, nextHandle: baseWireHandle}
	if err := enc.writeBinary(streamMagic, streamVersion); err != nil {
		return nil, err
	}
	return enc, nil
}

func (enc *Encoder) writeBinary(values ...interface{}) error {
	for _, v := range values {
		if err := binary.Write(enc, binary.BigEndian, v); err != nil {
			return err
		}
	}
	return nil
}

// Write buffers into the current block-data frame when block-data mode is
// on, and flushes to the underlying writer once the buffer fills; it
// writes straight through otherwise.
func (enc *Encoder) Write(p []byte) (int, error) {
	if !enc.blockDataMode {
		return enc.w.Write(p)
	}
	total := len(p)
	for len(p) > 0 {
		if enc.blockDataBufferPos >= len(enc.blockDataBuffer) {
			if err := enc.flush(); err != nil {
				return 0, err
			}
		}
		n := len(p)
		if room := len(enc.blockDataBuffer) - enc.blockDataBufferPos; n > room {
			n = room
		}
		copy(enc.blockDataBuffer[enc.blockDataBufferPos:], p[:n])
		enc.blockDataBufferPos += n
		p = p[n:]
	}
	return total, nil
}

func (enc *Encoder) flush() error {
	if enc.blockDataBufferPos == 0 {
		return nil
	}
	if err := enc.writeBlockHeader(enc.blockDataBufferPos); err != nil {
		return err
	}
	if _, err := enc.w.Write(enc.blockDataBuffer[:enc.blockDataBufferPos]); err != nil {
		return err
	}
	enc.blockDataBufferPos = 0
	return nil
}

func (enc *Encoder) writeBlockHeader(n int) error {
	if n <= 0xff {
		_, err := enc.w.Write([]byte{tcBlockdata, byte(n)})
		return err
	}
	if _, err := enc.w.Write([]byte{tcBlockdatalong}); err != nil {
		return err
	}
	return binary.Write(enc.w, binary.BigEndian, int32(n))
}

// BeginBlockData switches the encoder into block-data mode, buffering
// subsequent primitive writes until EndBlockData is called.
func (enc *Encoder) BeginBlockData() {
	enc.blockDataMode = true
}

// EndBlockData flushes any buffered block data, exits block-data mode,
// and writes TC_ENDBLOCKDATA.
func (enc *Encoder) EndBlockData() error {
	if err := enc.flush(); err != nil {
		return err
	}
	enc.blockDataMode = false
	_, err := enc.w.Write([]byte{tcEndblockdata})
	return err
}

func (enc *Encoder) assignHandle(key interface{}) int32 {
	h := enc.nextHandle
	enc.nextHandle++
	if key != nil {
		enc.handles[key] = h
	}
	return h
}

// Reset writes TC_RESET and clears the fixture's own handle bookkeeping,
// matching the decoder's handle-table reset.
func (enc *Encoder) Reset() error {
	enc.nextHandle = baseWireHandle
	enc.handles = map[interface{}]int32{}
	_, err := enc.w.Write([]byte{tcReset})
	return err
}

// WriteNull writes TC_NULL.
func (enc *Encoder) WriteNull() error {
	_, err := enc.w.Write([]byte{tcNull})
	return err
}

// WriteReference writes a back-reference to a previously assigned handle.
func (enc *Encoder) WriteReference(handle int32) error {
	return enc.writeBinary(tcReference, handle)
}

// WriteString writes a STRING or LONGSTRING token and returns the handle
// assigned to it.
func (enc *Encoder) WriteString(s string, long bool) (int32, error) {
	tc := tcString
	if long {
		tc = tcLongstring
	}
	if _, err := enc.w.Write([]byte{tc}); err != nil {
		return 0, err
	}
	if err := enc.writeUTF(s, long); err != nil {
		return 0, err
	}
	return enc.assignHandle(nil), nil
}

func (enc *Encoder) writeUTF(s string, long bool) error {
	b := []byte(s)
	if long {
		if err := enc.writeBinary(uint64(len(b))); err != nil {
			return err
		}
	} else {
		if err := enc.writeBinary(uint16(len(b))); err != nil {
			return err
		}
	}
	_, err := enc.w.Write(b)
	return err
}

// WriteClassDesc writes desc (TC_NULL if nil), including its super chain,
// returning the handle assigned to the outermost descriptor.
func (enc *Encoder) WriteClassDesc(desc *Desc) (int32, error) {
	if desc == nil {
		return 0, enc.WriteNull()
	}
	if desc.held {
		return desc.handle, enc.WriteReference(desc.handle)
	}

	if desc.IsProxy {
		if err := enc.writeBinary(tcProxyclassdesc); err != nil {
			return 0, err
		}
		desc.handle = enc.assignHandle(nil)
		desc.held = true
		if err := enc.writeBinary(int32(len(desc.Interfaces))); err != nil {
			return 0, err
		}
		for _, iface := range desc.Interfaces {
			if err := enc.writeUTF(iface, false); err != nil {
				return 0, err
			}
		}
		if err := enc.EndBlockData(); err != nil {
			return 0, err
		}
		if _, err := enc.WriteClassDesc(desc.Super); err != nil {
			return 0, err
		}
		return desc.handle, nil
	}

	if err := enc.writeBinary(tcClassdesc); err != nil {
		return 0, err
	}
	desc.handle = enc.assignHandle(nil)
	desc.held = true
	if err := enc.writeUTF(desc.Name, false); err != nil {
		return 0, err
	}
	if err := enc.writeBinary(desc.SerialVersionUID); err != nil {
		return 0, err
	}
	if _, err := enc.w.Write([]byte{desc.Flags}); err != nil {
		return 0, err
	}
	if err := enc.writeBinary(int16(len(desc.Fields))); err != nil {
		return 0, err
	}
	for _, f := range desc.Fields {
		if err := enc.writeField(f); err != nil {
			return 0, err
		}
	}
	if err := enc.EndBlockData(); err != nil {
		return 0, err
	}
	if _, err := enc.WriteClassDesc(desc.Super); err != nil {
		return 0, err
	}
	return desc.handle, nil
}

func (enc *Encoder) writeField(f Field) error {
	if _, err := enc.w.Write([]byte{f.TypeCode}); err != nil {
		return err
	}
	if err := enc.writeUTF(f.Name, false); err != nil {
		return err
	}
	if f.TypeCode == 'L' || f.TypeCode == '[' {
		if _, err := enc.WriteString(f.Signature, false); err != nil {
			return err
		}
	}
	return nil
}

// WriteObjectHeader writes TC_OBJECT, desc, and assigns the object's
// handle; the caller writes field values and any annotation afterward.
func (enc *Encoder) WriteObjectHeader(desc *Desc) (int32, error) {
	if err := enc.writeBinary(tcObject); err != nil {
		return 0, err
	}
	if _, err := enc.WriteClassDesc(desc); err != nil {
		return 0, err
	}
	return enc.assignHandle(nil), nil
}

// WriteArrayHeader writes TC_ARRAY, desc, the declared length, and
// assigns the array's handle; the caller writes n elements afterward.
func (enc *Encoder) WriteArrayHeader(desc *Desc, n int32) (int32, error) {
	if err := enc.writeBinary(tcArray); err != nil {
		return 0, err
	}
	if _, err := enc.WriteClassDesc(desc); err != nil {
		return 0, err
	}
	handle := enc.assignHandle(nil)
	if err := enc.writeBinary(n); err != nil {
		return 0, err
	}
	return handle, nil
}

// WriteExceptionHeader writes TC_EXCEPTION; the caller writes the cause
// subgraph (typically via WriteObjectHeader) immediately afterward.
func (enc *Encoder) WriteExceptionHeader() error {
	return enc.writeBinary(tcException)
}

// WriteEnum writes a complete TC_ENUM token for one constant.
func (enc *Encoder) WriteEnum(desc *Desc, constant string) (int32, error) {
	if err := enc.writeBinary(tcEnum); err != nil {
		return 0, err
	}
	if _, err := enc.WriteClassDesc(desc); err != nil {
		return 0, err
	}
	handle := enc.assignHandle(nil)
	if _, err := enc.WriteString(constant, false); err != nil {
		return 0, err
	}
	return handle, nil
}

func (enc *Encoder) WriteBool(v bool) error {
	var b byte
	if v {
		b = 1
	}
	_, err := enc.Write([]byte{b})
	return err
}

func (enc *Encoder) WriteByte(v byte) error {
	_, err := enc.Write([]byte{v})
	return err
}

func (enc *Encoder) WriteInt16(v int16) error { return enc.writeBinary(v) }
func (enc *Encoder) WriteInt32(v int32) error { return enc.writeBinary(v) }
func (enc *Encoder) WriteInt64(v int64) error { return enc.writeBinary(v) }
func (enc *Encoder) WriteFloat32(v float32) error { return enc.writeBinary(v) }
func (enc *Encoder) WriteFloat64(v float64) error { return enc.writeBinary(v) }
