package javaio

// Symbols mirroring java.io.ObjectStreamConstants: the terminal and
// constant values expected on the wire.
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

	// baseWireHandle is the first handle value assigned on a stream (or
	// after a RESET). Part of the wire contract.
	baseWireHandle int32 = 0x7e0000
)

// classDescFlags bits (java.io.ObjectStreamConstants SC_*).
const (
	scWriteMethod    byte = 0x01 // if SC_SERIALIZABLE
	scSerializable   byte = 0x02
	scExternalizable byte = 0x04
	scBlockData      byte = 0x08 // if SC_EXTERNALIZABLE
	scEnum           byte = 0x10
)

// tokenName renders a type-code byte for diagnostics.
func tokenName(tc byte) string {
	switch tc {
	case tcNull:
		return "TC_NULL"
	case tcReference:
		return "TC_REFERENCE"
	case tcClassdesc:
		return "TC_CLASSDESC"
	case tcObject:
		return "TC_OBJECT"
	case tcString:
		return "TC_STRING"
	case tcArray:
		return "TC_ARRAY"
	case tcClass:
		return "TC_CLASS"
	case tcBlockdata:
		return "TC_BLOCKDATA"
	case tcEndblockdata:
		return "TC_ENDBLOCKDATA"
	case tcReset:
		return "TC_RESET"
	case tcBlockdatalong:
		return "TC_BLOCKDATALONG"
	case tcException:
		return "TC_EXCEPTION"
	case tcLongstring:
		return "TC_LONGSTRING"
	case tcProxyclassdesc:
		return "TC_PROXYCLASSDESC"
	case tcEnum:
		return "TC_ENUM"
	default:
		return "TC_UNKNOWN"
	}
}
