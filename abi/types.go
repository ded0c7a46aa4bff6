package abi

// The structs below are Go mirrors of the C structs published in
// include/termisu/ffi.h. Field order and padding reproduce the C
// layout exactly; VerifyLayout fails loudly if the compiler disagrees.

// Color is a tagged color value. Mode determines which payload fields
// are meaningful: Index for Ansi8/Ansi256 (conventionally -1 when
// unused), R/G/B for RGB. Unused fields keep their byte offsets.
type Color struct {
	Mode     uint8
	Reserved [3]uint8
	Index    int32
	R        uint8
	G        uint8
	B        uint8
}

// DefaultColor returns the terminal-default color with the index
// sentinel callers expect for non-indexed modes.
func DefaultColor() Color {
	return Color{Mode: uint8(ColorDefault), Index: -1}
}

// CellStyle pairs foreground and background colors with an attribute
// bitmask (Attr* constants).
type CellStyle struct {
	Fg   Color
	Bg   Color
	Attr uint16
}

// Size holds terminal dimensions in cells. Valid terminal states carry
// non-negative values; negative values may transit during error states.
type Size struct {
	Width  int32
	Height int32
}

// Event is the flattened tagged union crossing the boundary. Type
// identifies the active variant; fields of inactive variants are
// zeroed but keep their reserved offsets.
type Event struct {
	Type      uint8
	Modifiers uint8
	Reserved  uint16

	KeyCode int32
	KeyChar int32

	MouseX      int32
	MouseY      int32
	MouseButton int32
	MouseMotion uint8

	ResizeWidth     int32
	ResizeHeight    int32
	ResizeOldWidth  int32
	ResizeOldHeight int32
	ResizeHasOld    uint8

	TickFrame       uint64
	TickElapsedNs   int64
	TickDeltaNs     int64
	TickMissedTicks uint64

	ModeCurrent     uint32
	ModePrevious    uint32
	ModeHasPrevious uint8
}
