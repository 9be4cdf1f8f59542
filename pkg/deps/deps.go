// Package deps implements dependency tracking for memoizing hooks.
//
// Dependencies are opaque byte strings compared by length and content.
// A hook keeps one Retained buffer per instance and asks it whether a new
// dependency value differs from the one seen on the previous render.
package deps

import "bytes"

// Retained is a hook-owned copy of the last dependency bytes.
// The zero value is uninitialized: the first Update always reports a change.
type Retained struct {
	buf         []byte
	initialized bool
}

// Update compares next with the retained bytes and reports whether they
// differ. On a change the retained copy is replaced with next; storage is
// reallocated only when the length differs. When nothing changed Update
// does not allocate.
func (r *Retained) Update(next []byte) bool {
	if !r.initialized {
		r.buf = make([]byte, len(next))
		copy(r.buf, next)
		r.initialized = true
		return true
	}
	if len(r.buf) == len(next) {
		if bytes.Equal(r.buf, next) {
			return false
		}
	} else {
		r.buf = make([]byte, len(next))
	}
	copy(r.buf, next)
	return true
}

// Bytes returns the retained dependency bytes. Callers must not modify the
// result.
func (r *Retained) Bytes() []byte {
	return r.buf
}

// Initialized reports whether Update has been called at least once.
func (r *Retained) Initialized() bool {
	return r.initialized
}

// Reset releases the retained bytes and returns r to the uninitialized
// state.
func (r *Retained) Reset() {
	r.buf = nil
	r.initialized = false
}
