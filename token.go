package javaio

// tokenReader reads, buffers (one-deep pushback), and classifies the
// next type-code byte. Peek is cheap and repeatable; consume after peek
// is mandatory before any byte-level read or subsequent peek. The reader
// keeps at most one cached byte; it does not check that callers follow
// this rule.
type tokenReader struct {
	src    *byteSource
	cached *byte
}

func newTokenReader(src *byteSource) *tokenReader {
	return &tokenReader{src: src}
}

func (t *tokenReader) peek() (byte, error) {
	if t.cached != nil {
		return *t.cached, nil
	}
	b, err := t.src.readByte()
	if err != nil {
		return 0, err
	}
	t.cached = &b
	return b, nil
}

func (t *tokenReader) consume() {
	t.cached = nil
}

func (t *tokenReader) next() (byte, error) {
	tc, err := t.peek()
	if err != nil {
		return 0, err
	}
	t.consume()
	return tc, nil
}

// pushBack re-queues a byte already consumed via next() (or read directly
// off the source) as the next peek/next result. Used by the framer when a
// token it peeked turns out not to be block-data framing.
func (t *tokenReader) pushBack(tc byte) {
	t.cached = &tc
}

func (t *tokenReader) hasPending() bool {
	return t.cached != nil
}
