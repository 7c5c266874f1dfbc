package app

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qpad/internal/keycmd"
)

// translateKey maps a terminal key event to the editor's key vocabulary.
// Keys with no meaning to the editor report false.
func translateKey(ev *tcell.EventKey) (keycmd.KeyEvent, bool) {
	mod := ev.Modifiers()
	out := keycmd.KeyEvent{
		Ctrl:  mod&tcell.ModCtrl != 0,
		Meta:  mod&tcell.ModMeta != 0,
		Shift: mod&tcell.ModShift != 0,
		Alt:   mod&tcell.ModAlt != 0,
	}

	// Tab, Backspace, Enter and Escape share codes with Ctrl+I, Ctrl+H,
	// Ctrl+M and Ctrl+[, so they are matched before the control range.
	switch ev.Key() {
	case tcell.KeyBacktab:
		out.Key = keycmd.KeyTab
		out.Shift = true
	case tcell.KeyTab:
		out.Key = keycmd.KeyTab
	case tcell.KeyEnter:
		if out.Ctrl {
			out.Key = "m"
		} else {
			out.Key = keycmd.KeyEnter
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		out.Key = keycmd.KeyBackspace
	case tcell.KeyEscape:
		out.Key = keycmd.KeyEscape
	case tcell.KeyDelete:
		out.Key = keycmd.KeyDelete
	case tcell.KeyLeft:
		out.Key = keycmd.KeyArrowLeft
	case tcell.KeyRight:
		out.Key = keycmd.KeyArrowRight
	case tcell.KeyUp:
		out.Key = keycmd.KeyArrowUp
	case tcell.KeyDown:
		out.Key = keycmd.KeyArrowDown
	case tcell.KeyHome:
		out.Key = keycmd.KeyHome
	case tcell.KeyEnd:
		out.Key = keycmd.KeyEnd
	case tcell.KeyRune:
		r := ev.Rune()
		if out.Ctrl || out.Meta {
			if unicode.IsUpper(r) {
				out.Shift = true
			}
			out.Key = strings.ToLower(string(r))
		} else {
			out.Key = string(r)
		}
	default:
		k := ev.Key()
		if k < tcell.KeyCtrlA || k > tcell.KeyCtrlZ {
			return keycmd.KeyEvent{}, false
		}
		out.Key = string(rune('a' + int(k-tcell.KeyCtrlA)))
		out.Ctrl = true
	}
	return out, true
}
