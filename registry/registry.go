// Package registry issues and validates the opaque handles that name
// host-side objects across the FFI boundary. Foreign callers never see
// an address; all access goes through validated lookup here.
package registry

import "sync"

// Table maps opaque uint64 handles to live values. Handle values are
// issued from a monotonically increasing counter and never reused, so
// a destroyed handle can never validate again even if its entry slot
// is long gone. Zero is never issued; it is the "no handle" sentinel.
//
// Lookup/insert/remove are safe under concurrent use from multiple
// caller threads. Serializing operations on the value behind one
// handle is the owner's concern, not the table's.
type Table[T any] struct {
	mu      sync.RWMutex
	next    uint64
	entries map[uint64]T
}

// NewTable creates an empty handle table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{entries: make(map[uint64]T)}
}

// Put binds v to a fresh non-zero handle and returns the handle.
func (t *Table[T]) Put(v T) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	h := t.next
	t.entries[h] = v
	return h
}

// Get returns the value bound to h. The second result is false for
// zero, never-issued, or already-removed handles.
func (t *Table[T]) Get(h uint64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[h]
	return v, ok
}

// Remove unbinds h and returns the value it named. Removing an invalid
// handle returns false and leaves the table untouched.
func (t *Table[T]) Remove(h uint64) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.entries[h]
	if ok {
		delete(t.entries, h)
	}
	return v, ok
}

// Len returns the number of live handles.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
