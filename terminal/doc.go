// Package terminal implements the host-side terminal session behind a
// termisu handle: a tcell screen plus the event plumbing (input,
// resize, tick timers, mode changes) the FFI boundary polls.
//
// Concurrency contract: every operation is safe to call from any
// caller thread. Poll never holds the session lock while blocked, so
// Close during an in-flight Poll is allowed and makes the poll return
// promptly with ErrClosed; Close never waits for pollers.
package terminal
