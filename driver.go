package javaio

import (
	"io"
	"reflect"
)

// Decoder is the single façade tying together the byte source, token
// reader, framer, handle table, class-descriptor loader, object
// materializer, validation queue, and resolver hooks. The byte source,
// token reader, framer, handle table, Resolver, and Materializer are
// separate objects the Decoder owns and delegates to.
type Decoder struct {
	src     *byteSource
	tr      *tokenReader
	fr      *framer
	handles *handleTable

	cfg          *Config
	resolver     Resolver
	materializer Materializer

	depth      int
	validation *validationQueue

	resolveObjectEnabled bool

	fieldContext *GetField
	fieldTarget  interface{}
}

// NewDecoder wraps r and reads the stream header (magic + version)
// before returning.
func NewDecoder(r io.Reader, cfg *Config) (*Decoder, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	src := newByteSource(r)
	tr := newTokenReader(src)
	dec := &Decoder{
		src:     src,
		tr:      tr,
		cfg:     cfg,
		handles: newHandleTable(cfg.maxHandles()),
	}
	dec.fr = newFramer(tr, src, dec.doReset)

	res := newMapResolver()
	res.filter = cfg.ClassFilter
	dec.resolver = res
	dec.materializer = reflectMaterializer{}

	if err := dec.readHeader(); err != nil {
		return nil, err
	}
	return dec, nil
}

func (dec *Decoder) readHeader() error {
	magic, err := dec.src.readU16()
	if err != nil {
		return err
	}
	if magic != streamMagic {
		return newErr(KindStreamCorrupted, "bad stream magic 0x%04x", magic)
	}
	version, err := dec.src.readI16()
	if err != nil {
		return err
	}
	if version != streamVersion {
		return newErr(KindStreamCorrupted, "unsupported stream version %d", version)
	}
	return nil
}

// RegisterType associates a class name with the Go type of sample, for
// the default Resolver. It has no effect if a custom Resolver has been
// installed via SetResolver.
func (dec *Decoder) RegisterType(name string, sample interface{}) {
	if res, ok := dec.resolver.(*mapResolver); ok {
		res.registerType(name, reflect.TypeOf(sample))
	}
}

// RegisterNamedType is RegisterType for a sample that implements
// ClassNamer, so the caller doesn't have to repeat the class name as a
// separate string literal.
func (dec *Decoder) RegisterNamedType(sample interface{}) error {
	named, ok := sample.(ClassNamer)
	if !ok {
		return newErr(KindInvalidClass, "RegisterNamedType: %T does not implement ClassNamer", sample)
	}
	dec.RegisterType(named.ClassName(), sample)
	return nil
}

// RegisterProxyType associates an interface-name list with a Go type
// standing in for a dynamic-proxy descriptor. The names are not sorted:
// they match a stream's proxy descriptor only when given in the same
// order the descriptor lists them.
func (dec *Decoder) RegisterProxyType(interfaces []string, sample interface{}) {
	if res, ok := dec.resolver.(*mapResolver); ok {
		res.registerType(proxyKey(interfaces), reflect.TypeOf(sample))
	}
}

// SetResolver installs a custom Resolver, replacing the default
// name-registry Resolver.
func (dec *Decoder) SetResolver(r Resolver) {
	dec.resolver = r
}

// SetMaterializer installs a custom Materializer, replacing the
// default reflect-based one.
func (dec *Decoder) SetMaterializer(m Materializer) {
	dec.materializer = m
}

// ReadObject reads the next item off the stream as a shared reference,
// the top-level entry point for decoding.
func (dec *Decoder) ReadObject() (interface{}, error) {
	return dec.readTopLevel(false)
}

// ReadUnshared is ReadObject's unshared counterpart: the returned value
// is never reachable again through a later REFERENCE.
func (dec *Decoder) ReadUnshared() (interface{}, error) {
	return dec.readTopLevel(true)
}

func (dec *Decoder) readTopLevel(unshared bool) (interface{}, error) {
	outermost := dec.validation == nil
	if outermost {
		dec.validation = &validationQueue{}
	}

	value, err := dec.readContent(unshared)

	if outermost {
		if err == nil {
			if verr := dec.validation.drain(); verr != nil {
				err = verr
			}
		}
		dec.validation = nil
	}

	if logger := dec.cfg.logger(); logger != nil {
		logger.Debug().Bool("unshared", unshared).Err(err).Msg("javaio: readObject")
	}
	return value, err
}

// RegisterValidation queues fn to run once the outermost ReadObject call's
// whole graph has been materialized, ordered by priority (higher first,
// ties broken by registration order). It is only legal while a
// readObject is active.
func (dec *Decoder) RegisterValidation(fn func() error, priority int) error {
	if fn == nil {
		return newErr(KindInvalidObject, "RegisterValidation: nil callback")
	}
	if dec.validation == nil {
		return newErr(KindNotActive, "RegisterValidation called outside an active ReadObject")
	}
	dec.validation.add(fn, priority)
	return nil
}

// EnableResolveObject turns the Resolver's ResolveObject substitution
// hook on or off, returning the prior setting. Enabling it requires
// Config.AllowResolveObject, the Go analogue of the original trust
// check gating this on a SecurityManager permission.
func (dec *Decoder) EnableResolveObject(enable bool) (bool, error) {
	if enable && !dec.cfg.allowsResolveObject() {
		return dec.resolveObjectEnabled, newErr(KindNotActive, "EnableResolveObject requires Config.AllowResolveObject")
	}
	prior := dec.resolveObjectEnabled
	dec.resolveObjectEnabled = enable
	return prior, nil
}

// ReadFields returns the detached GetField view for the descriptor level
// currently invoking a custom ObjectReader hook. It is only valid for
// the duration of that hook's call.
func (dec *Decoder) ReadFields() (*GetField, error) {
	if dec.fieldContext == nil {
		return nil, newErr(KindNotActive, "ReadFields called outside a custom readObject hook")
	}
	return dec.fieldContext, nil
}

// DefaultReadObject re-applies the current descriptor level's declared
// field values to the instance, the Go analogue of defaultReadObject. In
// this decoder those values are already assigned before a custom hook
// runs (see DESIGN.md); DefaultReadObject exists so hooks ported from a
// call-me-to-read-defaults style still do the right thing if invoked.
func (dec *Decoder) DefaultReadObject() error {
	if dec.fieldContext == nil || dec.fieldTarget == nil {
		return newErr(KindNotActive, "DefaultReadObject called outside a custom readObject hook")
	}
	return dec.applyValues(dec.fieldTarget, dec.fieldContext.desc, dec.fieldContext.values, false)
}

// The following are the primitive-accessor passthroughs a custom
// ObjectReader or Externalizable hook uses to read the block-data
// annotation that follows an object's default field values.

func (dec *Decoder) ReadBool() (bool, error)       { return dec.fr.readBool() }
func (dec *Decoder) ReadInt8() (int8, error)       { return dec.fr.readI8() }
func (dec *Decoder) ReadUint8() (byte, error)      { return dec.fr.readU8() }
func (dec *Decoder) ReadInt16() (int16, error)     { return dec.fr.readI16() }
func (dec *Decoder) ReadUint16() (uint16, error)   { return dec.fr.readU16() }
func (dec *Decoder) ReadInt32() (int32, error)     { return dec.fr.readI32() }
func (dec *Decoder) ReadInt64() (int64, error)     { return dec.fr.readI64() }
func (dec *Decoder) ReadFloat32() (float32, error) { return dec.fr.readF32() }
func (dec *Decoder) ReadFloat64() (float64, error) { return dec.fr.readF64() }
func (dec *Decoder) ReadUTF() (string, error)      { return dec.fr.readUTF() }

// ReadLine reads primitive bytes up to a line terminator or the end of
// the block data, per the deprecated DataInput.readLine contract.
func (dec *Decoder) ReadLine() (string, error) { return dec.fr.readLine() }

// ReadFully reads len(buf) raw primitive bytes, spanning block-data frame
// boundaries as needed.
func (dec *Decoder) ReadFully(buf []byte) error { return dec.fr.readBytes(buf) }

// Skip discards n primitive bytes, spanning block-data frame boundaries
// as needed.
func (dec *Decoder) Skip(n int) error { return dec.fr.skip(n) }

// Available reports the current block-data frame's remaining byte count
// without advancing the stream.
func (dec *Decoder) Available() int { return dec.fr.available() }

// ReadNestedObject reads a nested graph item from within a custom hook
// (the Go analogue of calling ObjectInputStream.readObject recursively).
func (dec *Decoder) ReadNestedObject() (interface{}, error) { return dec.readContent(false) }

// ReadNestedUnshared is ReadNestedObject's unshared counterpart.
func (dec *Decoder) ReadNestedUnshared() (interface{}, error) { return dec.readContent(true) }
