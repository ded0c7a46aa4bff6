// Package main builds as a C shared library
// (go build -buildmode=c-shared) exposing the stable termisu ABI
// declared in include/termisu/ffi.h.
//
// Every exported call validates its arguments, reports one of the
// fixed status codes, and records a diagnostic on the process-wide
// error channel when it fails. Panics never cross the boundary. The
// exported functions here only translate C types; the boundary logic
// lives in core.go.
package main

/*
#cgo CFLAGS: -I${SRCDIR}/../include
#include <stdint.h>
#include <termisu/ffi_types.h>
*/
import "C"

import (
	"unsafe"

	"github.com/lixenwraith/termisu/abi"
	"github.com/lixenwraith/termisu/lasterror"
	"github.com/lixenwraith/termisu/terminal"
)

func main() {}

func status(st abi.Status) C.int32_t { return C.int32_t(st) }

/* Version and lifecycle */

//export termisu_abi_version
func termisu_abi_version() C.uint32_t {
	return C.uint32_t(abi.Version)
}

//export termisu_layout_signature
func termisu_layout_signature() C.uint64_t {
	return C.uint64_t(abi.Signature())
}

//export termisu_create
func termisu_create(syncUpdates C.uint8_t) C.termisu_handle_t {
	return C.termisu_handle_t(createSession(syncUpdates != 0))
}

//export termisu_destroy
func termisu_destroy(handle C.termisu_handle_t) C.int32_t {
	return status(destroySession(uint64(handle)))
}

//export termisu_close
func termisu_close(handle C.termisu_handle_t) C.int32_t {
	return status(destroySession(uint64(handle)))
}

/* Terminal state */

//export termisu_size
func termisu_size(handle C.termisu_handle_t, outSize *C.termisu_size_t) C.int32_t {
	if outSize == nil {
		return status(failf(abi.StatusInvalidArgument, "out_size is null"))
	}
	sz, st := sessionSize(uint64(handle))
	if st != abi.StatusOK {
		return status(st)
	}
	outSize.width = C.int32_t(sz.Width)
	outSize.height = C.int32_t(sz.Height)
	return status(abi.StatusOK)
}

//export termisu_set_sync_updates
func termisu_set_sync_updates(handle C.termisu_handle_t, enabled C.uint8_t) C.int32_t {
	return status(withSession(uint64(handle), "set_sync_updates", func(s *terminal.Session) error {
		return s.SetSyncUpdates(enabled != 0)
	}))
}

//export termisu_sync_updates
func termisu_sync_updates(handle C.termisu_handle_t) C.uint8_t {
	return C.uint8_t(syncUpdatesFlag(uint64(handle)))
}

/* Rendering */

//export termisu_clear
func termisu_clear(handle C.termisu_handle_t) C.int32_t {
	return status(withSession(uint64(handle), "clear", (*terminal.Session).Clear))
}

//export termisu_render
func termisu_render(handle C.termisu_handle_t) C.int32_t {
	return status(withSession(uint64(handle), "render", (*terminal.Session).Render))
}

//export termisu_sync
func termisu_sync(handle C.termisu_handle_t) C.int32_t {
	return status(withSession(uint64(handle), "sync", (*terminal.Session).Sync))
}

//export termisu_set_cursor
func termisu_set_cursor(handle C.termisu_handle_t, x, y C.int32_t) C.int32_t {
	return status(withSession(uint64(handle), "set_cursor", func(s *terminal.Session) error {
		return s.SetCursor(int32(x), int32(y))
	}))
}

//export termisu_hide_cursor
func termisu_hide_cursor(handle C.termisu_handle_t) C.int32_t {
	return status(withSession(uint64(handle), "hide_cursor", (*terminal.Session).HideCursor))
}

//export termisu_show_cursor
func termisu_show_cursor(handle C.termisu_handle_t) C.int32_t {
	return status(withSession(uint64(handle), "show_cursor", (*terminal.Session).ShowCursor))
}

//export termisu_set_cell
func termisu_set_cell(handle C.termisu_handle_t, x, y C.int32_t, codepoint C.uint32_t, style *C.termisu_cell_style_t) C.int32_t {
	if style == nil {
		return status(failf(abi.StatusInvalidArgument, "style is null"))
	}
	return status(setCell(uint64(handle), int32(x), int32(y), uint32(codepoint), styleFromC(style)))
}

/* Input and timer */

//export termisu_enable_timer_ms
func termisu_enable_timer_ms(handle C.termisu_handle_t, intervalMs C.int32_t) C.int32_t {
	return status(enableTimer(uint64(handle), int32(intervalMs), terminal.TimerFixedStep))
}

//export termisu_enable_system_timer_ms
func termisu_enable_system_timer_ms(handle C.termisu_handle_t, intervalMs C.int32_t) C.int32_t {
	return status(enableTimer(uint64(handle), int32(intervalMs), terminal.TimerWallClock))
}

//export termisu_disable_timer
func termisu_disable_timer(handle C.termisu_handle_t) C.int32_t {
	return status(withSession(uint64(handle), "disable_timer", (*terminal.Session).DisableTimer))
}

//export termisu_enable_mouse
func termisu_enable_mouse(handle C.termisu_handle_t) C.int32_t {
	return status(withSession(uint64(handle), "enable_mouse", (*terminal.Session).EnableMouse))
}

//export termisu_disable_mouse
func termisu_disable_mouse(handle C.termisu_handle_t) C.int32_t {
	return status(withSession(uint64(handle), "disable_mouse", (*terminal.Session).DisableMouse))
}

//export termisu_enable_enhanced_keyboard
func termisu_enable_enhanced_keyboard(handle C.termisu_handle_t) C.int32_t {
	return status(withSession(uint64(handle), "enable_enhanced_keyboard", (*terminal.Session).EnableEnhancedKeyboard))
}

//export termisu_disable_enhanced_keyboard
func termisu_disable_enhanced_keyboard(handle C.termisu_handle_t) C.int32_t {
	return status(withSession(uint64(handle), "disable_enhanced_keyboard", (*terminal.Session).DisableEnhancedKeyboard))
}

//export termisu_poll_event
func termisu_poll_event(handle C.termisu_handle_t, timeoutMs C.int32_t, outEvent *C.termisu_event_t) C.int32_t {
	if outEvent == nil {
		return status(failf(abi.StatusInvalidArgument, "out_event is null"))
	}
	ev, st := pollEvent(uint64(handle), int32(timeoutMs))
	if st != abi.StatusOK {
		return status(st)
	}
	eventToC(ev, outEvent)
	return status(abi.StatusOK)
}

/* Error handling */

//export termisu_last_error_length
func termisu_last_error_length() C.uint64_t {
	return C.uint64_t(lasterror.Length())
}

//export termisu_last_error_copy
func termisu_last_error_copy(buffer *C.uint8_t, bufferLen C.uint64_t) C.uint64_t {
	if buffer == nil || bufferLen == 0 {
		return C.uint64_t(lasterror.Length())
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(buffer)), int(bufferLen))
	return C.uint64_t(lasterror.CopyInto(buf))
}

//export termisu_clear_error
func termisu_clear_error() {
	lasterror.Clear()
}
