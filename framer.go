package javaio

// framer is the block-data gate between "primitive mode" (bytes
// consumable as typed primitives) and "object mode" (the next token names
// an item). Primitive bytes read through the framer are carried inside
// BLOCKDATA/BLOCKDATALONG frames; the framer refills transparently as a
// frame empties and resumes in-band RESET tokens encountered while
// refilling. Default field values and primitive array elements are not
// framed and are read from the byte source directly.
type framer struct {
	tr        *tokenReader
	src       *byteSource
	remaining int
	onReset   func() error

	// pending holds one primitive byte read ahead by readLine's \r\n
	// lookahead that turned out not to belong to the line terminator, so
	// it is returned to whichever read comes next.
	pending *byte
}

func newFramer(tr *tokenReader, src *byteSource, onReset func() error) *framer {
	return &framer{tr: tr, src: src, onReset: onReset}
}

// available returns the current frame's remaining byte count without
// advancing the stream.
func (f *framer) available() int {
	return f.remaining
}

// checkObjectModeEntry enforces that entering object mode requires the
// framer to be empty.
func (f *framer) checkObjectModeEntry() error {
	if f.remaining > 0 {
		return newOptionalDataError(f.remaining, false)
	}
	return nil
}

// errNoPrimitiveData is reported when a primitive read is requested but
// the next token on the wire does not introduce more block data: push
// the token back and report no primitive bytes available.
var errNoPrimitiveData = newErr(KindStreamCorrupted, "no primitive bytes available")

// refill reads the next token looking for more block data, transparently
// resuming RESET tokens along the way. It leaves the next non-block,
// non-reset token pushed back on the token reader.
func (f *framer) refill() error {
	for {
		tc, err := f.tr.next()
		if err != nil {
			return err
		}
		switch tc {
		case tcBlockdata:
			n, err := f.src.readByte()
			if err != nil {
				return err
			}
			f.remaining = int(n)
			return nil
		case tcBlockdatalong:
			n, err := f.src.readI32()
			if err != nil {
				return err
			}
			if n < 0 {
				return newErr(KindStreamCorrupted, "negative long block-data length %d", n)
			}
			f.remaining = int(n)
			return nil
		case tcReset:
			if f.onReset != nil {
				if err := f.onReset(); err != nil {
					return err
				}
			}
			continue
		default:
			f.tr.pushBack(tc)
			return errNoPrimitiveData
		}
	}
}

// readBytes fills buf with primitive bytes, refilling across frame
// boundaries as needed.
func (f *framer) readBytes(buf []byte) error {
	n := 0
	if f.pending != nil && len(buf) > 0 {
		buf[0] = *f.pending
		f.pending = nil
		n = 1
	}
	for n < len(buf) {
		if f.remaining == 0 {
			if err := f.refill(); err != nil {
				return err
			}
		}
		k := len(buf) - n
		if k > f.remaining {
			k = f.remaining
		}
		if err := f.src.readFully(buf[n : n+k]); err != nil {
			return err
		}
		f.remaining -= k
		n += k
	}
	return nil
}

// beginBlock is used by the object materializer when readContent finds a
// BLOCKDATA/BLOCKDATALONG token where an object was expected: the token
// has already been consumed, so the materializer hands the length to the
// framer directly instead of going through refill's token peek.
func (f *framer) beginBlock(n int) {
	f.remaining = n
}

// discardRemaining drains every block-data frame left unread after a
// custom ObjectReader/Externalizable hook returns (a hook is never
// required to consume its entire annotation), so the next token the
// caller peeks is genuinely the first non-primitive token rather than a
// raw data byte misread as one.
func (f *framer) discardRemaining() error {
	for {
		if f.remaining == 0 {
			if err := f.refill(); err != nil {
				if err == errNoPrimitiveData {
					return nil
				}
				return err
			}
		}
		buf := make([]byte, f.remaining)
		if err := f.src.readFully(buf); err != nil {
			return err
		}
		f.remaining = 0
	}
}

func (f *framer) readBool() (bool, error) {
	var buf [1]byte
	if err := f.readBytes(buf[:]); err != nil {
		return false, err
	}
	return buf[0] != 0, nil
}

func (f *framer) readI8() (int8, error) {
	var buf [1]byte
	if err := f.readBytes(buf[:]); err != nil {
		return 0, err
	}
	return int8(buf[0]), nil
}

// readU8 reads one unsigned byte, distinct from readI8's sign extension.
func (f *framer) readU8() (byte, error) {
	var buf [1]byte
	if err := f.readBytes(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// unreadU8 requeues b as the next byte readBytes/readU8 will return.
func (f *framer) unreadU8(b byte) {
	f.pending = &b
}

func (f *framer) readI16() (int16, error) {
	var buf [2]byte
	if err := f.readBytes(buf[:]); err != nil {
		return 0, err
	}
	return int16(beUint16(buf[:])), nil
}

func (f *framer) readU16() (uint16, error) {
	var buf [2]byte
	if err := f.readBytes(buf[:]); err != nil {
		return 0, err
	}
	return beUint16(buf[:]), nil
}

func (f *framer) readI32() (int32, error) {
	var buf [4]byte
	if err := f.readBytes(buf[:]); err != nil {
		return 0, err
	}
	return int32(beUint32(buf[:])), nil
}

func (f *framer) readI64() (int64, error) {
	var buf [8]byte
	if err := f.readBytes(buf[:]); err != nil {
		return 0, err
	}
	return int64(beUint64(buf[:])), nil
}

func (f *framer) readF32() (float32, error) {
	bits, err := f.readI32()
	if err != nil {
		return 0, err
	}
	return float32FromBits(uint32(bits)), nil
}

func (f *framer) readF64() (float64, error) {
	bits, err := f.readI64()
	if err != nil {
		return 0, err
	}
	return float64FromBits(uint64(bits)), nil
}

// readUTF reads a short (2-byte length) modified-UTF-8 string out of the
// primitive frame, as used by field data and DataInput.readUTF.
func (f *framer) readUTF() (string, error) {
	l, err := f.readU16()
	if err != nil {
		return "", err
	}
	buf := make([]byte, int(l))
	if err := f.readBytes(buf); err != nil {
		return "", err
	}
	return decodeModifiedUTF8(buf)
}

// skip discards n primitive bytes, refilling across frame boundaries as
// needed, mirroring DataInput.skipBytes.
func (f *framer) skip(n int) error {
	if f.pending != nil && n > 0 {
		f.pending = nil
		n--
	}
	for n > 0 {
		if f.remaining == 0 {
			if err := f.refill(); err != nil {
				return err
			}
		}
		k := n
		if k > f.remaining {
			k = f.remaining
		}
		buf := make([]byte, k)
		if err := f.src.readFully(buf); err != nil {
			return err
		}
		f.remaining -= k
		n -= k
	}
	return nil
}

// readLine reads bytes up to a line terminator ('\n', '\r', or '\r\n') or
// the end of the primitive data, whichever comes first, mirroring the
// deprecated DataInput.readLine. The terminator itself is not included in
// the returned string. A '\r' not immediately followed by '\n' pushes the
// following byte back for the next read.
func (f *framer) readLine() (string, error) {
	var buf []byte
	for {
		c, err := f.readU8()
		if err != nil {
			if len(buf) == 0 {
				return "", err
			}
			return string(buf), nil
		}
		if c == '\n' {
			return string(buf), nil
		}
		if c == '\r' {
			next, err := f.readU8()
			if err == nil && next != '\n' {
				f.unreadU8(next)
			}
			return string(buf), nil
		}
		buf = append(buf, c)
	}
}
