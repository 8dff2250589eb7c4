package javaio

import (
	"unicode/utf16"
)

// decodeModifiedUTF8 decodes the "modified UTF-8" java.io.DataInput uses:
// standard UTF-8 except NUL is encoded as the two bytes C0 80, and
// characters outside the BMP are encoded as a surrogate pair, each
// surrogate itself encoded as its own 3-byte UTF-8 sequence (6 bytes
// total) rather than a single 4-byte UTF-8 sequence. This follows
// java.io.DataInputStream.readUTF's own byte-by-byte state machine,
// decoding to UTF-16 code units first so surrogate pairs recombine
// correctly.
func decodeModifiedUTF8(p []byte) (string, error) {
	units := make([]uint16, 0, len(p))
	i := 0
	for i < len(p) {
		c := p[i]
		switch {
		case c&0x80 == 0: // 0xxxxxxx
			units = append(units, uint16(c))
			i++
		case c&0xe0 == 0xc0: // 110xxxxx 10xxxxxx
			if i+1 >= len(p) || p[i+1]&0xc0 != 0x80 {
				return "", errMalformedUTF8
			}
			units = append(units, uint16(c&0x1f)<<6|uint16(p[i+1]&0x3f))
			i += 2
		case c&0xf0 == 0xe0: // 1110xxxx 10xxxxxx 10xxxxxx
			if i+2 >= len(p) || p[i+1]&0xc0 != 0x80 || p[i+2]&0xc0 != 0x80 {
				return "", errMalformedUTF8
			}
			units = append(units, uint16(c&0x0f)<<12|uint16(p[i+1]&0x3f)<<6|uint16(p[i+2]&0x3f))
			i += 3
		default:
			return "", errMalformedUTF8
		}
	}
	return string(utf16.Decode(units)), nil
}
