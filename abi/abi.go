// Package abi pins the cross-language contract shared with native
// callers of the termisu shared library: status codes, event and color
// discriminants, the key enumeration, the fixed-layout value structs,
// and the machine-checkable layout table they must all agree on.
//
// Nothing here may change without bumping Version; the struct layouts
// are mirrored by static asserts in include/termisu/ffi.h.
package abi

// Version is the ABI version reported by termisu_abi_version.
// Incremented on any breaking layout or semantic change.
const Version uint32 = 1

// Status is the only cross-boundary success/error signal.
type Status int32

const (
	StatusOK              Status = 0
	StatusTimeout         Status = 1
	StatusInvalidArgument Status = 2
	StatusInvalidHandle   Status = 3
	StatusRejected        Status = 4
	StatusError           Status = 5
)

// EventType discriminates the active variant of Event.
type EventType uint8

const (
	EventNone       EventType = 0
	EventKey        EventType = 1
	EventMouse      EventType = 2
	EventResize     EventType = 3
	EventTick       EventType = 4
	EventModeChange EventType = 5
)

// ColorMode selects which Color payload fields are meaningful.
type ColorMode uint8

const (
	ColorDefault ColorMode = 0
	ColorAnsi8   ColorMode = 1
	ColorAnsi256 ColorMode = 2
	ColorRGB     ColorMode = 3
)

// Attr bits for CellStyle.Attr
type Attr uint16

const (
	AttrNone          Attr = 0
	AttrBold          Attr = 1 << 0
	AttrDim           Attr = 1 << 1
	AttrItalic        Attr = 1 << 2
	AttrUnderline     Attr = 1 << 3
	AttrBlink         Attr = 1 << 4
	AttrReverse       Attr = 1 << 5
	AttrStrikeThrough Attr = 1 << 6
)

// Modifier bits for Event.Modifiers
const (
	ModShift uint8 = 1 << 0
	ModAlt   uint8 = 1 << 1
	ModCtrl  uint8 = 1 << 2
	ModMeta  uint8 = 1 << 3
)

// Session mode flags carried by ModeChange events
// (Event.ModeCurrent / Event.ModePrevious).
const (
	ModeFlagMouse            uint32 = 1 << 0
	ModeFlagEnhancedKeyboard uint32 = 1 << 1
	ModeFlagSyncUpdates      uint32 = 1 << 2
)
