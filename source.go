package javaio

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

// byteSource handles typed big-endian reads and modified-UTF-8 decoding
// over a pushback-capable reader. It has no notion of block-data framing
// or type codes; those live in the framer and token reader.
type byteSource struct {
	r *bufio.Reader
}

func newByteSource(r io.Reader) *byteSource {
	return &byteSource{r: bufio.NewReader(r)}
}

func (s *byteSource) readFully(buf []byte) error {
	if _, err := io.ReadFull(s.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errUnexpectedEOF
		}
		return wrapErr(KindUnexpectedEOF, err, "readFully")
	}
	return nil
}

func (s *byteSource) readByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, errUnexpectedEOF
	}
	return b, nil
}

func (s *byteSource) unreadByte() error {
	return s.r.UnreadByte()
}

func (s *byteSource) readBool() (bool, error) {
	b, err := s.readByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (s *byteSource) readI8() (int8, error) {
	b, err := s.readByte()
	return int8(b), err
}

func (s *byteSource) readU16() (uint16, error) {
	var buf [2]byte
	if err := s.readFully(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func (s *byteSource) readI16() (int16, error) {
	v, err := s.readU16()
	return int16(v), err
}

func (s *byteSource) readI32() (int32, error) {
	var buf [4]byte
	if err := s.readFully(buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func (s *byteSource) readU32() (uint32, error) {
	v, err := s.readI32()
	return uint32(v), err
}

func (s *byteSource) readI64() (int64, error) {
	var buf [8]byte
	if err := s.readFully(buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func (s *byteSource) readF32() (float32, error) {
	v, err := s.readU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (s *byteSource) readF64() (float64, error) {
	var buf [8]byte
	if err := s.readFully(buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf[:])), nil
}

// readUTF decodes a 2-byte-length-prefixed modified-UTF-8 string (the
// STRING wire shape, ≤65535 bytes).
func (s *byteSource) readUTF() (string, error) {
	l, err := s.readU16()
	if err != nil {
		return "", err
	}
	return s.readModifiedUTF8(int(l))
}

// readLongUTF decodes an 8-byte-length-prefixed modified-UTF-8 string (the
// LONGSTRING wire shape).
func (s *byteSource) readLongUTF() (string, error) {
	var buf [8]byte
	if err := s.readFully(buf[:]); err != nil {
		return "", err
	}
	l := binary.BigEndian.Uint64(buf[:])
	if l > (1 << 32) {
		return "", newErr(KindStreamCorrupted, "long UTF length %d too large", l)
	}
	return s.readModifiedUTF8(int(l))
}

func (s *byteSource) readModifiedUTF8(n int) (string, error) {
	buf := make([]byte, n)
	if err := s.readFully(buf); err != nil {
		return "", err
	}
	out, err := decodeModifiedUTF8(buf)
	if err != nil {
		return "", err
	}
	return out, nil
}
