package javaio

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a decode failure into a small, stable taxonomy. Callers
// match on Kind rather than string content:
//
//	var derr *Error
//	if errors.As(err, &derr) && derr.Kind == KindClassNotFound { ... }
type Kind int

const (
	KindUnknown Kind = iota
	KindStreamCorrupted
	KindInvalidClass
	KindInvalidObject
	KindClassNotFound
	KindOptionalData
	KindNotActive
	KindWriteAborted
	KindUnexpectedEOF
	KindMalformedUTF8
)

func (k Kind) String() string {
	switch k {
	case KindStreamCorrupted:
		return "StreamCorrupted"
	case KindInvalidClass:
		return "InvalidClass"
	case KindInvalidObject:
		return "InvalidObject"
	case KindClassNotFound:
		return "ClassNotFound"
	case KindOptionalData:
		return "OptionalData"
	case KindNotActive:
		return "NotActive"
	case KindWriteAborted:
		return "WriteAborted"
	case KindUnexpectedEOF:
		return "UnexpectedEof"
	case KindMalformedUTF8:
		return "MalformedUtf8"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type every decode failure in this package is
// reported as. A wrapped underlying error is stored with
// github.com/pkg/errors.WithStack and exposed through Unwrap, so errors.Is
// and errors.As reach it. Error itself implements neither Cause nor
// fmt.Formatter: pkg/errors.Cause stops at the *Error, and %+v prints the
// same text as Error().
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("javaio: %s: %s: %s", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("javaio: %s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

func newErr(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func wrapErr(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: errors.WithStack(err)}
}

// OptionalDataError is KindOptionalData's payload: primitive bytes were
// available where an object-mode read was attempted.
type OptionalDataError struct {
	base      *Error
	Remaining int
	EOF       bool
}

func (e *OptionalDataError) Error() string { return e.base.Error() }
func (e *OptionalDataError) Unwrap() error { return e.base }

func newOptionalDataError(remaining int, eof bool) *OptionalDataError {
	kind := "bytes remain"
	if eof {
		kind = "end of block data"
	}
	return &OptionalDataError{
		base:      newErr(KindOptionalData, "primitive data in object mode (%s, remaining=%d)", kind, remaining),
		Remaining: remaining,
		EOF:       eof,
	}
}

// WriteAbortedError is KindWriteAborted's payload: an EXCEPTION token was
// processed; Cause is the decoded throwable subgraph.
type WriteAbortedError struct {
	base  *Error
	Cause interface{}
}

func (e *WriteAbortedError) Error() string { return e.base.Error() }
func (e *WriteAbortedError) Unwrap() error { return e.base }

func newWriteAbortedError(cause interface{}) *WriteAbortedError {
	e := &WriteAbortedError{
		base:  newErr(KindWriteAborted, "stream aborted by embedded exception"),
		Cause: cause,
	}
	if causeErr, ok := cause.(error); ok {
		e.base.err = errors.WithStack(causeErr)
	}
	return e
}

var (
	errUnexpectedEOF = newErr(KindUnexpectedEOF, "fewer bytes remain than requested")
	errMalformedUTF8 = newErr(KindMalformedUTF8, "invalid modified-UTF-8 sequence")
)

// asError is a thin errors.As wrapper so callers elsewhere in the package
// don't need to import both this package's Error and the errors package.
func asError(err error, target **Error) bool {
	return errors.As(err, target)
}
