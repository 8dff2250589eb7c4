package javaio

// handleTable is a dense monotonic handle table. Every non-null object,
// class descriptor, string, array, and enum constant consumes exactly
// one handle, assigned in first-appearance order.
//
// unshared entries store unsharedSentinel instead of the value so any
// later REFERENCE to that handle fails InvalidObject.
type handleTable struct {
	next    int32
	entries []interface{}
	max     int
}

type unsharedMarker struct{}

var unsharedSentinel = unsharedMarker{}

func newHandleTable(max int) *handleTable {
	return &handleTable{next: baseWireHandle, max: max}
}

// assign reserves the next handle without binding a value yet, for
// descriptors and objects that must register before their contents are
// read.
func (h *handleTable) assign() (int32, error) {
	if h.max > 0 && len(h.entries) >= h.max {
		return 0, newErr(KindStreamCorrupted, "handle table exceeds configured maximum of %d", h.max)
	}
	handle := h.next
	h.next++
	h.entries = append(h.entries, nil)
	return handle, nil
}

// register binds a value to a handle previously returned by assign (or,
// for simple structurally-atomic items, assigns and binds in one call via
// registerNew).
func (h *handleTable) register(handle int32, value interface{}, unshared bool) {
	idx := handle - baseWireHandle
	if unshared {
		h.entries[idx] = unsharedSentinel
		return
	}
	h.entries[idx] = value
}

// registerNew assigns the next handle and immediately binds value,
// returning the handle.
func (h *handleTable) registerNew(value interface{}, unshared bool) (int32, error) {
	handle, err := h.assign()
	if err != nil {
		return 0, err
	}
	h.register(handle, value, unshared)
	return handle, nil
}

func (h *handleTable) lookup(handle int32) (interface{}, error) {
	idx := handle - baseWireHandle
	if idx < 0 || int(idx) >= len(h.entries) {
		return nil, newErr(KindStreamCorrupted, "invalid handle value: 0x%x", handle)
	}
	v := h.entries[idx]
	if _, unshared := v.(unsharedMarker); unshared {
		return nil, newErr(KindInvalidObject, "handle 0x%x refers to an unshared object", handle)
	}
	return v, nil
}

// reset discards all entries and restarts the counter at the base handle.
func (h *handleTable) reset() {
	h.next = baseWireHandle
	h.entries = h.entries[:0]
}

func (h *handleTable) len() int {
	return len(h.entries)
}
