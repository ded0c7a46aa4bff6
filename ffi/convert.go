package main

/*
#cgo CFLAGS: -I${SRCDIR}/../include
#include <termisu/ffi_types.h>
*/
import "C"

import "github.com/lixenwraith/termisu/abi"

func colorFromC(c C.termisu_color_t) abi.Color {
	return abi.Color{
		Mode:  uint8(c.mode),
		Index: int32(c.index),
		R:     uint8(c.r),
		G:     uint8(c.g),
		B:     uint8(c.b),
	}
}

func styleFromC(s *C.termisu_cell_style_t) abi.CellStyle {
	return abi.CellStyle{
		Fg:   colorFromC(s.fg),
		Bg:   colorFromC(s.bg),
		Attr: uint16(s.attr),
	}
}

// eventToC flattens a boundary event into the caller's struct. The
// whole struct is written; inactive variant fields read as zero.
func eventToC(ev abi.Event, out *C.termisu_event_t) {
	*out = C.termisu_event_t{}
	out.event_type = C.uint8_t(ev.Type)
	out.modifiers = C.uint8_t(ev.Modifiers)

	out.key_code = C.int32_t(ev.KeyCode)
	out.key_char = C.int32_t(ev.KeyChar)

	out.mouse_x = C.int32_t(ev.MouseX)
	out.mouse_y = C.int32_t(ev.MouseY)
	out.mouse_button = C.int32_t(ev.MouseButton)
	out.mouse_motion = C.uint8_t(ev.MouseMotion)

	out.resize_width = C.int32_t(ev.ResizeWidth)
	out.resize_height = C.int32_t(ev.ResizeHeight)
	out.resize_old_width = C.int32_t(ev.ResizeOldWidth)
	out.resize_old_height = C.int32_t(ev.ResizeOldHeight)
	out.resize_has_old = C.uint8_t(ev.ResizeHasOld)

	out.tick_frame = C.uint64_t(ev.TickFrame)
	out.tick_elapsed_ns = C.int64_t(ev.TickElapsedNs)
	out.tick_delta_ns = C.int64_t(ev.TickDeltaNs)
	out.tick_missed_ticks = C.uint64_t(ev.TickMissedTicks)

	out.mode_current = C.uint32_t(ev.ModeCurrent)
	out.mode_previous = C.uint32_t(ev.ModePrevious)
	out.mode_has_previous = C.uint8_t(ev.ModeHasPrevious)
}
