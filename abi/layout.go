package abi

import (
	"fmt"
	"hash/fnv"
	"unsafe"
)

// FieldLayout is one published field offset.
type FieldLayout struct {
	Name   string
	Offset uintptr
}

// StructLayout is the published layout of one shared struct.
type StructLayout struct {
	Name   string
	Size   uintptr
	Fields []FieldLayout
}

// Layouts is the published layout contract. The numbers are the
// contract, not a description of the compiled structs; VerifyLayout
// checks the two against each other.
var Layouts = []StructLayout{
	{
		Name: "termisu_color_t",
		Size: 12,
		Fields: []FieldLayout{
			{"mode", 0},
			{"reserved", 1},
			{"index", 4},
			{"r", 8},
			{"g", 9},
			{"b", 10},
		},
	},
	{
		Name: "termisu_cell_style_t",
		Size: 28,
		Fields: []FieldLayout{
			{"fg", 0},
			{"bg", 12},
			{"attr", 24},
		},
	},
	{
		Name: "termisu_size_t",
		Size: 8,
		Fields: []FieldLayout{
			{"width", 0},
			{"height", 4},
		},
	},
	{
		Name: "termisu_event_t",
		Size: 96,
		Fields: []FieldLayout{
			{"event_type", 0},
			{"modifiers", 1},
			{"key_code", 4},
			{"key_char", 8},
			{"mouse_x", 12},
			{"mouse_y", 16},
			{"mouse_button", 20},
			{"mouse_motion", 24},
			{"resize_width", 28},
			{"resize_height", 32},
			{"resize_old_width", 36},
			{"resize_old_height", 40},
			{"resize_has_old", 44},
			{"tick_frame", 48},
			{"tick_elapsed_ns", 56},
			{"tick_delta_ns", 64},
			{"tick_missed_ticks", 72},
			{"mode_current", 80},
			{"mode_previous", 84},
			{"mode_has_previous", 88},
		},
	},
}

// Signature returns the layout signature reported by
// termisu_layout_signature: FNV-1a over every published struct name,
// size, field name, and field offset. Callers compare it against their
// own compiled expectation to detect ABI drift at load time.
func Signature() uint64 {
	h := fnv.New64a()
	for _, s := range Layouts {
		h.Write([]byte(s.Name))
		writeUint(h, uint64(s.Size))
		for _, f := range s.Fields {
			h.Write([]byte(f.Name))
			writeUint(h, uint64(f.Offset))
		}
	}
	return h.Sum64()
}

func writeUint(h interface{ Write([]byte) (int, error) }, v uint64) {
	var b [8]byte
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
	h.Write(b[:])
}

// VerifyLayout compares the compiled Go mirror structs against the
// published contract and returns an error naming every mismatch.
func VerifyLayout() error {
	var (
		c  Color
		cs CellStyle
		sz Size
		ev Event
	)

	compiled := map[string]map[string]uintptr{
		"termisu_color_t": {
			"":         unsafe.Sizeof(c),
			"mode":     unsafe.Offsetof(c.Mode),
			"reserved": unsafe.Offsetof(c.Reserved),
			"index":    unsafe.Offsetof(c.Index),
			"r":        unsafe.Offsetof(c.R),
			"g":        unsafe.Offsetof(c.G),
			"b":        unsafe.Offsetof(c.B),
		},
		"termisu_cell_style_t": {
			"":     unsafe.Sizeof(cs),
			"fg":   unsafe.Offsetof(cs.Fg),
			"bg":   unsafe.Offsetof(cs.Bg),
			"attr": unsafe.Offsetof(cs.Attr),
		},
		"termisu_size_t": {
			"":       unsafe.Sizeof(sz),
			"width":  unsafe.Offsetof(sz.Width),
			"height": unsafe.Offsetof(sz.Height),
		},
		"termisu_event_t": {
			"":                  unsafe.Sizeof(ev),
			"event_type":        unsafe.Offsetof(ev.Type),
			"modifiers":         unsafe.Offsetof(ev.Modifiers),
			"key_code":          unsafe.Offsetof(ev.KeyCode),
			"key_char":          unsafe.Offsetof(ev.KeyChar),
			"mouse_x":           unsafe.Offsetof(ev.MouseX),
			"mouse_y":           unsafe.Offsetof(ev.MouseY),
			"mouse_button":      unsafe.Offsetof(ev.MouseButton),
			"mouse_motion":      unsafe.Offsetof(ev.MouseMotion),
			"resize_width":      unsafe.Offsetof(ev.ResizeWidth),
			"resize_height":     unsafe.Offsetof(ev.ResizeHeight),
			"resize_old_width":  unsafe.Offsetof(ev.ResizeOldWidth),
			"resize_old_height": unsafe.Offsetof(ev.ResizeOldHeight),
			"resize_has_old":    unsafe.Offsetof(ev.ResizeHasOld),
			"tick_frame":        unsafe.Offsetof(ev.TickFrame),
			"tick_elapsed_ns":   unsafe.Offsetof(ev.TickElapsedNs),
			"tick_delta_ns":     unsafe.Offsetof(ev.TickDeltaNs),
			"tick_missed_ticks": unsafe.Offsetof(ev.TickMissedTicks),
			"mode_current":      unsafe.Offsetof(ev.ModeCurrent),
			"mode_previous":     unsafe.Offsetof(ev.ModePrevious),
			"mode_has_previous": unsafe.Offsetof(ev.ModeHasPrevious),
		},
	}

	var mismatches []string
	for _, s := range Layouts {
		got, ok := compiled[s.Name]
		if !ok {
			mismatches = append(mismatches, fmt.Sprintf("%s: no compiled mirror", s.Name))
			continue
		}
		if got[""] != s.Size {
			mismatches = append(mismatches,
				fmt.Sprintf("%s: size %d, contract %d", s.Name, got[""], s.Size))
		}
		for _, f := range s.Fields {
			off, ok := got[f.Name]
			if !ok {
				mismatches = append(mismatches, fmt.Sprintf("%s.%s: missing field", s.Name, f.Name))
				continue
			}
			if off != f.Offset {
				mismatches = append(mismatches,
					fmt.Sprintf("%s.%s: offset %d, contract %d", s.Name, f.Name, off, f.Offset))
			}
		}
	}
	if len(mismatches) != 0 {
		return fmt.Errorf("abi layout drift: %v", mismatches)
	}
	return nil
}

// The layout check is a correctness gate, not an optional check:
// refuse to start at all on a platform where the mirrors drift.
func init() {
	if err := VerifyLayout(); err != nil {
		panic(err)
	}
}
