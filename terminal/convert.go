package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termisu/abi"
)

// colorToTcell maps a tagged boundary color onto the screen backend.
// Out-of-range palette indexes fall back to the terminal default
// rather than wrapping into an unrelated color.
func colorToTcell(c abi.Color) tcell.Color {
	switch abi.ColorMode(c.Mode) {
	case abi.ColorAnsi8:
		if c.Index < 0 || c.Index > 15 {
			return tcell.ColorDefault
		}
		return tcell.PaletteColor(int(c.Index))
	case abi.ColorAnsi256:
		if c.Index < 0 || c.Index > 255 {
			return tcell.ColorDefault
		}
		return tcell.PaletteColor(int(c.Index))
	case abi.ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	default:
		return tcell.ColorDefault
	}
}

func styleToTcell(cs abi.CellStyle) tcell.Style {
	attr := abi.Attr(cs.Attr)
	var mask tcell.AttrMask
	if attr&abi.AttrBold != 0 {
		mask |= tcell.AttrBold
	}
	if attr&abi.AttrDim != 0 {
		mask |= tcell.AttrDim
	}
	if attr&abi.AttrItalic != 0 {
		mask |= tcell.AttrItalic
	}
	if attr&abi.AttrUnderline != 0 {
		mask |= tcell.AttrUnderline
	}
	if attr&abi.AttrBlink != 0 {
		mask |= tcell.AttrBlink
	}
	if attr&abi.AttrReverse != 0 {
		mask |= tcell.AttrReverse
	}
	if attr&abi.AttrStrikeThrough != 0 {
		mask |= tcell.AttrStrikeThrough
	}
	return tcell.StyleDefault.
		Foreground(colorToTcell(cs.Fg)).
		Background(colorToTcell(cs.Bg)).
		Attributes(mask)
}

func modifiersFromTcell(m tcell.ModMask) uint8 {
	var out uint8
	if m&tcell.ModShift != 0 {
		out |= abi.ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= abi.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= abi.ModCtrl
	}
	if m&tcell.ModMeta != 0 {
		out |= abi.ModMeta
	}
	return out
}

// keyCodeFromTcell maps backend key identifiers onto the stable key
// enum published in abi. Tab/Enter/Backspace alias ctrl letters on the
// wire, so they are matched before the ctrl-letter range.
func keyCodeFromTcell(k tcell.Key) abi.Key {
	switch k {
	case tcell.KeyEnter:
		return abi.KeyEnter
	case tcell.KeyTab:
		return abi.KeyTab
	case tcell.KeyBacktab:
		return abi.KeyBacktab
	case tcell.KeyEscape:
		return abi.KeyEscape
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return abi.KeyBackspace
	case tcell.KeyDelete:
		return abi.KeyDelete
	case tcell.KeyUp:
		return abi.KeyUp
	case tcell.KeyDown:
		return abi.KeyDown
	case tcell.KeyLeft:
		return abi.KeyLeft
	case tcell.KeyRight:
		return abi.KeyRight
	case tcell.KeyHome:
		return abi.KeyHome
	case tcell.KeyEnd:
		return abi.KeyEnd
	case tcell.KeyPgUp:
		return abi.KeyPageUp
	case tcell.KeyPgDn:
		return abi.KeyPageDown
	case tcell.KeyInsert:
		return abi.KeyInsert
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return abi.KeyF1 + abi.Key(k-tcell.KeyF1)
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return abi.KeyCtrlA + abi.Key(k-tcell.KeyCtrlA)
	}
	return abi.KeyNone
}

func keyEvent(ev *tcell.EventKey) abi.Event {
	out := abi.Event{
		Type:      uint8(abi.EventKey),
		Modifiers: modifiersFromTcell(ev.Modifiers()),
	}
	if ev.Key() == tcell.KeyRune {
		out.KeyCode = int32(abi.KeyRune)
		out.KeyChar = int32(ev.Rune())
	} else {
		out.KeyCode = int32(keyCodeFromTcell(ev.Key()))
	}
	return out
}

// buttonNumber reports the lowest pressed button: 1-3 for buttons,
// 4-7 for wheel directions, 0 for none.
func buttonNumber(b tcell.ButtonMask) int32 {
	switch {
	case b&tcell.Button1 != 0:
		return 1
	case b&tcell.Button2 != 0:
		return 2
	case b&tcell.Button3 != 0:
		return 3
	case b&tcell.WheelUp != 0:
		return 4
	case b&tcell.WheelDown != 0:
		return 5
	case b&tcell.WheelLeft != 0:
		return 6
	case b&tcell.WheelRight != 0:
		return 7
	}
	return 0
}

// mouseEvent converts one backend mouse event. Motion is flagged when
// the button state did not change since the previous mouse event.
func mouseEvent(ev *tcell.EventMouse, prev tcell.ButtonMask) abi.Event {
	x, y := ev.Position()
	buttons := ev.Buttons()
	out := abi.Event{
		Type:        uint8(abi.EventMouse),
		Modifiers:   modifiersFromTcell(ev.Modifiers()),
		MouseX:      int32(x),
		MouseY:      int32(y),
		MouseButton: buttonNumber(buttons),
	}
	if buttons == prev {
		out.MouseMotion = 1
	}
	return out
}
