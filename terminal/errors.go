package terminal

import "errors"

var (
	// ErrClosed reports an operation on a closed session.
	ErrClosed = errors.New("session is closed")

	// ErrTimeout reports that no event arrived within the poll window.
	// Expected steady-state for short-timeout poll loops, not a fault.
	ErrTimeout = errors.New("poll timed out")

	// ErrOutOfRange reports coordinates outside the current screen.
	ErrOutOfRange = errors.New("position out of range")

	// ErrBadCodepoint reports a value that is not a Unicode scalar.
	ErrBadCodepoint = errors.New("invalid codepoint")
)
