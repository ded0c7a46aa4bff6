// Package lasterror holds the process-wide last-error state of the
// termisu boundary. The calling convention cannot propagate native
// exceptions, so every failing operation records a diagnostic here
// for the caller to drain on demand.
//
// Known limitation: the state is process-wide, not call-scoped.
// Concurrent failing calls from different threads race on the pending
// message; a caller can only attribute the message to its own call if
// it serializes access to this channel itself.
package lasterror

import (
	"fmt"
	"sync"
)

var (
	mu      sync.Mutex
	pending string
)

// Set replaces the pending message. Setting never appends.
func Set(msg string) {
	mu.Lock()
	pending = msg
	mu.Unlock()
}

// Setf formats and replaces the pending message.
func Setf(format string, args ...any) {
	Set(fmt.Sprintf(format, args...))
}

// Length returns the byte length of the pending message, 0 if none.
func Length() uint64 {
	mu.Lock()
	defer mu.Unlock()
	return uint64(len(pending))
}

// CopyInto writes up to len(buf) bytes of the pending message into buf
// (UTF-8, not NUL-terminated) and returns the full message length.
// A return value larger than len(buf) signals truncation. The message
// stays pending; reading is non-destructive.
func CopyInto(buf []byte) uint64 {
	mu.Lock()
	defer mu.Unlock()
	copy(buf, pending)
	return uint64(len(pending))
}

// Clear discards the pending message. Idempotent, never fails.
func Clear() {
	mu.Lock()
	pending = ""
	mu.Unlock()
}
