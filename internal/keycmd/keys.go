package keycmd

import (
	"strings"

	"github.com/kobzarvs/qpad/internal/platform"
)

// Key names follow the DOM KeyboardEvent.key values. Printable keys are
// the character itself.
const (
	KeyEscape     = "Escape"
	KeyTab        = "Tab"
	KeyBackspace  = "Backspace"
	KeyEnter      = "Enter"
	KeyDelete     = "Delete"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyHome       = "Home"
	KeyEnd        = "End"
)

// KeyEvent is a raw key press with its modifier state.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool
}

func (ev KeyEvent) String() string {
	var parts []string
	if ev.Meta {
		parts = append(parts, "meta")
	}
	if ev.Ctrl {
		parts = append(parts, "ctrl")
	}
	if ev.Shift {
		parts = append(parts, "shift")
	}
	if ev.Alt {
		parts = append(parts, "alt")
	}
	return strings.Join(append(parts, ev.Key), "+")
}

func (ev KeyEvent) is(key string) bool {
	return strings.EqualFold(ev.Key, key)
}

// pairs maps each auto-paired opening character to its closing one.
var pairs = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
	`"`: `"`,
	"'": "'",
	"`": "`",
}

func isUndo(ev KeyEvent, p platform.Platform) bool {
	if ev.Shift || ev.Alt || !ev.is("z") {
		return false
	}
	if p == platform.Mac {
		return ev.Meta
	}
	return ev.Ctrl
}

func isRedo(ev KeyEvent, p platform.Platform) bool {
	if ev.Alt {
		return false
	}
	switch p {
	case platform.Mac:
		return ev.Meta && ev.Shift && ev.is("z")
	case platform.Windows:
		return ev.Ctrl && ev.is("y")
	default:
		return ev.Ctrl && ev.Shift && ev.is("z")
	}
}

func isCaptureToggle(ev KeyEvent, p platform.Platform) bool {
	if !ev.Ctrl || !ev.is("m") {
		return false
	}
	if p == platform.Mac {
		return ev.Shift
	}
	return true
}
