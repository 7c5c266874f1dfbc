package app

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qpad/internal/keycmd"
)

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want keycmd.KeyEvent
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), keycmd.KeyEvent{Key: "a"}},
		{"paren", tcell.NewEventKey(tcell.KeyRune, '(', tcell.ModNone), keycmd.KeyEvent{Key: "("}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), keycmd.KeyEvent{Key: keycmd.KeyTab}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), keycmd.KeyEvent{Key: keycmd.KeyTab, Shift: true}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), keycmd.KeyEvent{Key: keycmd.KeyBackspace}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), keycmd.KeyEvent{Key: keycmd.KeyEscape}},
		{"shift left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), keycmd.KeyEvent{Key: keycmd.KeyArrowLeft, Shift: true}},
		{"ctrl z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), keycmd.KeyEvent{Key: "z", Ctrl: true}},
		{"meta shift z", tcell.NewEventKey(tcell.KeyRune, 'Z', tcell.ModMeta), keycmd.KeyEvent{Key: "z", Meta: true, Shift: true}},
		{"meta z", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModMeta), keycmd.KeyEvent{Key: "z", Meta: true}},
	}
	for _, tc := range cases {
		got, ok := translateKey(tc.ev)
		if !ok {
			t.Fatalf("%s: translateKey not ok", tc.name)
		}
		if got != tc.want {
			t.Fatalf("%s: translateKey = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestTranslateKeyIgnoresUnknown(t *testing.T) {
	if _, ok := translateKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)); ok {
		t.Fatalf("translateKey F5 ok, want ignored")
	}
}
