package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qpad/internal/config"
	"github.com/kobzarvs/qpad/internal/editor"
	"github.com/kobzarvs/qpad/internal/highlight"
	"github.com/kobzarvs/qpad/internal/keycmd"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Editor.Platform = "other"
	return cfg
}

func runLoop(t *testing.T, a *App, ed *editor.Editor, keys func(s tcell.SimulationScreen)) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer s.Fini()
	s.SetSize(40, 5)

	keys(s)
	if err := a.Loop(s, ed); err != nil {
		t.Fatalf("Loop error: %v", err)
	}
}

func TestOpenPicksHighlighter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	a := New([]string{path})
	ed, closeHL, err := a.Open(testConfig(), config.DefaultLanguages())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer closeHL()
	if ed.Content() != "package main\n" {
		t.Fatalf("content = %q", ed.Content())
	}
	want := `<span class="token keyword">package</span>`
	if got := ed.Markup(); len(got) < len(want) || got[:len(want)] != want {
		t.Fatalf("markup = %q, want prefix %q", got, want)
	}
}

func TestOpenScratch(t *testing.T) {
	a := New(nil)
	ed, closeHL, err := a.Open(testConfig(), config.DefaultLanguages())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer closeHL()
	if ed.Filename() != "" || ed.Content() != "" {
		t.Fatalf("scratch editor = %q %q", ed.Filename(), ed.Content())
	}
}

func TestLoopTypesSavesAndQuits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	a := New([]string{path})
	ed, closeHL, err := a.Open(testConfig(), config.DefaultLanguages())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer closeHL()

	runLoop(t, a, ed, func(s tcell.SimulationScreen) {
		s.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)
		s.InjectKey(tcell.KeyRune, 'i', tcell.ModNone)
		s.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
		s.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
		s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hi  " {
		t.Fatalf("saved = %q, want %q", string(data), "hi  ")
	}
}

func TestQuitWithUnsavedChangesNeedsConfirmation(t *testing.T) {
	a := New(nil)
	ed, err := editor.New(testConfig(), "", highlight.Plain)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	ed.HandleKey(keycmd.KeyEvent{Key: "x"})

	if !a.command(ed, keycmd.KeyEvent{Key: "q", Ctrl: true}) || a.quit {
		t.Fatalf("first ctrl+q quit with unsaved changes")
	}
	if a.command(ed, keycmd.KeyEvent{Key: "a"}) {
		t.Fatalf("plain key was consumed")
	}
	if a.command(ed, keycmd.KeyEvent{Key: "q", Ctrl: true}); a.quit {
		t.Fatalf("ctrl+q after another key quit without confirmation")
	}
	if a.command(ed, keycmd.KeyEvent{Key: "q", Ctrl: true}); !a.quit {
		t.Fatalf("second ctrl+q did not quit")
	}
}

func TestSaveWithoutPathReportsError(t *testing.T) {
	a := New(nil)
	ed, err := editor.New(testConfig(), "", highlight.Plain)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if !a.command(ed, keycmd.KeyEvent{Key: "s", Ctrl: true}) {
		t.Fatalf("ctrl+s not consumed")
	}
	if ed.StatusMessage() != "no file name" {
		t.Fatalf("status = %q, want %q", ed.StatusMessage(), "no file name")
	}
}

func TestCtrlTTogglesTabCapture(t *testing.T) {
	a := New(nil)
	ed, err := editor.New(testConfig(), "", highlight.Plain)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if !a.command(ed, keycmd.KeyEvent{Key: "t", Ctrl: true}) || ed.Keys().Capture() {
		t.Fatalf("ctrl+t did not release tab capture")
	}
	if ed.StatusMessage() != "tab moves focus" {
		t.Fatalf("status = %q, want %q", ed.StatusMessage(), "tab moves focus")
	}
	a.command(ed, keycmd.KeyEvent{Key: "t", Ctrl: true})
	if !ed.Keys().Capture() {
		t.Fatalf("second ctrl+t did not restore tab capture")
	}
}

func TestLoopCtrlTReleasesTab(t *testing.T) {
	a := New(nil)
	ed, err := editor.New(testConfig(), "", highlight.Plain)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	runLoop(t, a, ed, func(s tcell.SimulationScreen) {
		s.InjectKey(tcell.KeyCtrlT, 0, tcell.ModCtrl)
		s.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
		s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	})
	if ed.Content() != "" || ed.Keys().Capture() {
		t.Fatalf("tab after ctrl+t: content = %q capture = %v", ed.Content(), ed.Keys().Capture())
	}
}
