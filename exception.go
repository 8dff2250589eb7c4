package javaio

// readException implements TC_EXCEPTION: the writer aborted
// mid-graph and serialized the causing exception in its place. The
// exception subgraph is read with its own, isolated handle numbering —
// the handle table is cleared before and after, so neither the aborted
// graph nor anything read afterward can observe or be observed through
// handles assigned while decoding the cause.
func (dec *Decoder) readException() error {
	dec.handles.reset()
	cause, err := dec.readContent(false)
	if err != nil {
		return err
	}
	dec.handles.reset()
	return newWriteAbortedError(cause)
}
