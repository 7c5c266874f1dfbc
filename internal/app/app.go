package app

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qpad/internal/config"
	"github.com/kobzarvs/qpad/internal/editor"
	"github.com/kobzarvs/qpad/internal/highlight"
	"github.com/kobzarvs/qpad/internal/keycmd"
	"github.com/kobzarvs/qpad/internal/logger"
)

// Files above this size open without syntax highlighting.
const maxHighlightBytes = 8 << 20

// App is the top-level runtime for qpad.
type App struct {
	args []string

	quit      bool
	quitArmed bool
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Debug); err != nil {
		return err
	}
	defer logger.Close()

	langs, err := config.LoadLanguages()
	if err != nil {
		logger.Warn("app: languages.toml ignored", "error", err)
	}

	ed, closeHL, err := a.Open(cfg, langs)
	if err != nil {
		return err
	}
	defer closeHL()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	return a.Loop(s, ed)
}

// Open builds the editor for the first argument, or an unnamed scratch
// buffer. The returned func releases the highlighter.
func (a *App) Open(cfg config.Config, langs config.Languages) (*editor.Editor, func(), error) {
	path := ""
	if len(a.args) > 0 {
		path = a.args[0]
	}

	hl := highlight.Plain
	if path != "" {
		hl = highlight.ForPath(langs, path)
		if info, err := os.Stat(path); err == nil && info.Size() > maxHighlightBytes {
			hl = highlight.Plain
		}
	}
	closeHL := func() {
		if eng, ok := hl.(*highlight.Engine); ok {
			eng.Close()
		}
	}

	ed, err := editor.New(cfg, "", hl)
	if err != nil {
		closeHL()
		return nil, func() {}, err
	}
	if path != "" {
		if err := ed.OpenFile(path); err != nil {
			closeHL()
			return nil, func() {}, err
		}
	}
	return ed, closeHL, nil
}

// Loop renders ed and feeds it key events until quit.
func (a *App) Loop(s tcell.Screen, ed *editor.Editor) error {
	ed.Keys().OnKeyDown(func(ev keycmd.KeyEvent) bool {
		return a.command(ed, ev)
	})

	ed.Render(s)
	for !a.quit {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if kev, ok := translateKey(ev); ok {
				ed.HandleKey(kev)
			}
		case *tcell.EventResize:
			s.Sync()
		}
		if a.quit {
			break
		}
		ed.Render(s)
	}
	return nil
}

// command handles the host's own shortcuts ahead of the editor.
func (a *App) command(ed *editor.Editor, ev keycmd.KeyEvent) bool {
	if !ev.Ctrl || ev.Meta || ev.Alt {
		a.quitArmed = false
		return false
	}
	switch strings.ToLower(ev.Key) {
	case "s":
		a.quitArmed = false
		if err := ed.Save(""); err != nil {
			logger.Error("app: save failed", "error", err)
			ed.SetStatusMessage(err.Error())
			return true
		}
		ed.SetStatusMessage("saved")
		return true
	case "q":
		if ed.Dirty() && !a.quitArmed {
			a.quitArmed = true
			ed.SetStatusMessage("unsaved changes, ctrl+q again to quit")
			return true
		}
		a.quit = true
		return true
	case "t":
		// Terminals send ctrl+m as Enter, so the toggle also lives here.
		a.quitArmed = false
		on := !ed.Keys().Capture()
		ed.Keys().SetCapture(on)
		if on {
			ed.SetStatusMessage("tab indents")
		} else {
			ed.SetStatusMessage("tab moves focus")
		}
		return true
	}
	a.quitArmed = false
	return false
}
