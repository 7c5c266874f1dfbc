package editor

import (
	"errors"
	"os"
	"time"

	"github.com/kobzarvs/qpad/internal/config"
	"github.com/kobzarvs/qpad/internal/highlight"
	"github.com/kobzarvs/qpad/internal/history"
	"github.com/kobzarvs/qpad/internal/keycmd"
	"github.com/kobzarvs/qpad/internal/logger"
	"github.com/kobzarvs/qpad/internal/platform"
)

// Editor owns one buffer with its history, key interpreter and highlighter.
type Editor struct {
	buf    *Buffer
	hist   *history.History
	keys   *keycmd.Interpreter
	hl     highlight.Highlighter
	markup string

	filename string
	saved    string
	status   string
	scroll   int
	styles   styles
}

// KeyOptions converts the editor section of the config into interpreter
// options.
func KeyOptions(opts config.EditorOptions) (keycmd.Options, error) {
	p, err := platform.Parse(opts.Platform)
	if err != nil {
		return keycmd.Options{}, err
	}
	size := opts.TabSize
	if size < 1 {
		size = 1
	}
	return keycmd.Options{
		InsertSpaces: opts.InsertSpaces,
		TabSize:      size,
		IgnoreTabKey: opts.IgnoreTabKey,
		Platform:     p,
	}, nil
}

func New(cfg config.Config, text string, hl highlight.Highlighter) (*Editor, error) {
	return newEditor(cfg, text, hl, time.Now)
}

func newEditor(cfg config.Config, text string, hl highlight.Highlighter, now history.Clock) (*Editor, error) {
	opts, err := KeyOptions(cfg.Editor)
	if err != nil {
		return nil, err
	}
	if hl == nil {
		hl = highlight.Plain
	}
	e := &Editor{
		buf:    NewBuffer(text),
		hist:   history.New(now),
		hl:     hl,
		saved:  text,
		styles: newStyles(cfg.Theme),
	}
	e.keys = keycmd.New(e.hist, e.buf, opts)
	e.keys.OnValueChange(e.valueChanged)
	e.keys.Mount()
	e.markup = hl.Highlight(text)
	return e, nil
}

func (e *Editor) valueChanged(value string) {
	e.markup = e.hl.Highlight(value)
}

// OpenFile loads path into a fresh buffer and history.
func (e *Editor) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	text := string(data)
	e.filename = path
	e.saved = text
	e.scroll = 0
	e.buf.SetState(history.Record{Value: text})
	e.hist.Restore(history.Session{})
	e.keys.Mount()
	e.markup = e.hl.Highlight(text)
	logger.Info("editor: opened", "path", path, "bytes", len(data))
	return nil
}

func (e *Editor) Save(path string) error {
	if path == "" {
		if e.filename == "" {
			return errors.New("no file name")
		}
		path = e.filename
	}
	value := e.buf.Value()
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return err
	}
	e.filename = path
	e.saved = value
	logger.Info("editor: saved", "path", path, "bytes", len(value))
	return nil
}

// HandleKey routes ev through the key interpreter. Keys it does not
// intercept get the buffer's native behaviour, and any resulting text
// change is recorded in history.
func (e *Editor) HandleKey(ev keycmd.KeyEvent) keycmd.Result {
	e.status = ""
	if !e.buf.Focused() {
		e.buf.Focus()
	}
	res := e.keys.HandleKey(ev)
	if res.Handled || res.Blur {
		return res
	}

	before := e.buf.Value()
	if !e.native(ev) {
		return res
	}
	if !e.buf.Focused() {
		res.Blur = true
		return res
	}
	if e.buf.Value() == before {
		return res
	}
	return e.keys.HandleChange(e.state())
}

func (e *Editor) native(ev keycmd.KeyEvent) bool {
	switch ev.Key {
	case keycmd.KeyTab:
		// Uncaptured Tab leaves the editor, like focus traversal.
		e.buf.Blur()
	case keycmd.KeyEnter:
		e.buf.Insert("\n")
	case keycmd.KeyBackspace:
		e.buf.DeleteBackward()
	case keycmd.KeyDelete:
		e.buf.DeleteForward()
	case keycmd.KeyArrowLeft:
		e.buf.MoveLeft(ev.Shift)
	case keycmd.KeyArrowRight:
		e.buf.MoveRight(ev.Shift)
	case keycmd.KeyArrowUp:
		e.buf.MoveVertical(-1, ev.Shift)
	case keycmd.KeyArrowDown:
		e.buf.MoveVertical(1, ev.Shift)
	case keycmd.KeyHome:
		e.buf.MoveLineStart(ev.Shift)
	case keycmd.KeyEnd:
		e.buf.MoveLineEnd(ev.Shift)
	default:
		if ev.Ctrl || ev.Meta || !printable(ev.Key) {
			return false
		}
		e.buf.Insert(ev.Key)
	}
	return true
}

func printable(key string) bool {
	n := 0
	for _, r := range key {
		if r < ' ' || r == 0x7f {
			return false
		}
		n++
	}
	return n == 1
}

func (e *Editor) state() history.Record {
	start, end := e.buf.Selection()
	return history.Record{Value: e.buf.Value(), SelectionStart: start, SelectionEnd: end}
}

func (e *Editor) Buffer() *Buffer { return e.buf }

func (e *Editor) Keys() *keycmd.Interpreter { return e.keys }

func (e *Editor) History() *history.History { return e.hist }

func (e *Editor) Content() string { return e.buf.Value() }

// Markup is the highlighter output for the current value.
func (e *Editor) Markup() string { return e.markup }

func (e *Editor) Filename() string { return e.filename }

func (e *Editor) Dirty() bool { return e.buf.Value() != e.saved }

func (e *Editor) SetStatusMessage(msg string) { e.status = msg }

func (e *Editor) StatusMessage() string { return e.status }
