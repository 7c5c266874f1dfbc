// Package keycmd turns raw key presses and change notifications into
// structural edits and routes them through the edit history.
package keycmd

import (
	"strings"

	"github.com/kobzarvs/qpad/internal/history"
	"github.com/kobzarvs/qpad/internal/logger"
	"github.com/kobzarvs/qpad/internal/platform"
)

// Command names the structural edit a key event resolved to.
type Command string

const (
	CommandNone          Command = ""
	CommandBlur          Command = "blur"
	CommandUnindent      Command = "unindent"
	CommandIndent        Command = "indent"
	CommandInsertTab     Command = "insert_tab"
	CommandDeleteIndent  Command = "delete_indent"
	CommandAutoIndent    Command = "auto_indent"
	CommandWrapSelection Command = "wrap_selection"
	CommandInsertPair    Command = "insert_pair"
	CommandUndo          Command = "undo"
	CommandRedo          Command = "redo"
	CommandToggleCapture Command = "toggle_capture"
	CommandChange        Command = "change"
	CommandVeto          Command = "veto"
)

// Options are read on every event; they are not reconfigured mid-event.
type Options struct {
	InsertSpaces bool
	TabSize      int
	IgnoreTabKey bool
	Platform     platform.Platform
}

func DefaultOptions() Options {
	return Options{
		InsertSpaces: true,
		TabSize:      2,
		Platform:     platform.Current(),
	}
}

// TabCharacter is the indentation unit: TabSize spaces, or the tab
// character repeated TabSize times.
func (o Options) TabCharacter() string {
	size := o.TabSize
	if size < 1 {
		size = 1
	}
	if o.InsertSpaces {
		return strings.Repeat(" ", size)
	}
	return strings.Repeat("\t", size)
}

// Surface is the live editable text the interpreter reads from and writes to.
type Surface interface {
	Value() string
	Selection() (start, end int)
	SetState(rec history.Record)
	Blur()
}

// Result describes what an event did. Handled means the host must not
// apply its own default behaviour for the key.
type Result struct {
	Command Command
	Handled bool
	Blur    bool
	Changed bool
	Record  history.Record
}

// Interpreter owns no text of its own; it reads the surface, computes the
// next record and pushes it into the injected history.
type Interpreter struct {
	hist    *history.History
	surface Surface
	opts    Options
	capture bool

	valueObservers []func(value string)
	keyObservers   []func(ev KeyEvent) bool
}

func New(h *history.History, s Surface, opts Options) *Interpreter {
	return &Interpreter{
		hist:    h,
		surface: s,
		opts:    opts,
		capture: true,
	}
}

// OnValueChange registers fn to run after every applied edit, undo, redo
// and recorded native change.
func (in *Interpreter) OnValueChange(fn func(value string)) {
	in.valueObservers = append(in.valueObservers, fn)
}

// OnKeyDown registers fn to see every key event before interception.
// Returning true marks the event as handled and skips interception.
func (in *Interpreter) OnKeyDown(fn func(ev KeyEvent) bool) {
	in.keyObservers = append(in.keyObservers, fn)
}

// Mount records the surface's current state as the first history entry.
func (in *Interpreter) Mount() {
	in.hist.Record(in.state(), false)
}

func (in *Interpreter) Options() Options { return in.opts }

// Capture reports whether Tab is intercepted for indentation.
func (in *Interpreter) Capture() bool { return in.capture }

func (in *Interpreter) SetCapture(on bool) { in.capture = on }

// Session detaches the history for later SetSession.
func (in *Interpreter) Session() history.Session { return in.hist.Snapshot() }

func (in *Interpreter) SetSession(s history.Session) { in.hist.Restore(s) }

func (in *Interpreter) state() history.Record {
	start, end := in.surface.Selection()
	return history.Record{Value: in.surface.Value(), SelectionStart: start, SelectionEnd: end}
}

func (in *Interpreter) notify(value string) {
	for _, fn := range in.valueObservers {
		fn(value)
	}
}

// HandleKey classifies ev against the live surface and applies at most one
// structural edit.
func (in *Interpreter) HandleKey(ev KeyEvent) Result {
	for _, fn := range in.keyObservers {
		if fn(ev) {
			return Result{Command: CommandVeto, Handled: true}
		}
	}

	res := in.dispatch(ev)
	if res.Command != CommandNone {
		logger.Debug("keycmd: dispatch", "key", ev.String(), "command", string(res.Command), "changed", res.Changed)
	}
	return res
}

func (in *Interpreter) dispatch(ev KeyEvent) Result {
	value := in.surface.Value()
	start, end := in.surface.Selection()
	tab := in.opts.TabCharacter()
	p := in.opts.Platform

	switch {
	case ev.Key == KeyEscape:
		in.surface.Blur()
		return Result{Command: CommandBlur, Blur: true}

	case ev.Key == KeyTab && !in.opts.IgnoreTabKey && in.capture:
		switch {
		case ev.Shift:
			rec, ok := unindentLines(value, start, end, tab)
			if !ok {
				return Result{Command: CommandUnindent, Handled: true}
			}
			return in.apply(CommandUnindent, rec)
		case start != end:
			return in.apply(CommandIndent, indentLines(value, start, end, tab))
		default:
			return in.apply(CommandInsertTab, insertAt(value, start, end, tab))
		}

	case ev.Key == KeyBackspace:
		if rec, ok := deleteIndentUnit(value, start, end, tab); ok {
			return in.apply(CommandDeleteIndent, rec)
		}

	case ev.Key == KeyEnter:
		if rec, ok := autoIndent(value, start, end); ok {
			return in.apply(CommandAutoIndent, rec)
		}

	case pairs[ev.Key] != "":
		if start != end {
			return in.apply(CommandWrapSelection, wrapSelection(value, start, end, ev.Key, pairs[ev.Key]))
		}
		return in.apply(CommandInsertPair, insertPair(value, start, end, ev.Key, pairs[ev.Key]))

	case isUndo(ev, p):
		res := in.Undo()
		res.Handled = true
		return res

	case isRedo(ev, p):
		res := in.Redo()
		res.Handled = true
		return res

	case isCaptureToggle(ev, p):
		in.capture = !in.capture
		return Result{Command: CommandToggleCapture, Handled: true}
	}
	return Result{}
}

func (in *Interpreter) apply(cmd Command, rec history.Record) Result {
	res := in.ApplyEdit(rec)
	res.Command = cmd
	return res
}

// ApplyEdit back-patches the current entry with the live selection, records
// rec as a new step and writes it to the surface.
func (in *Interpreter) ApplyEdit(rec history.Record) Result {
	start, end := in.surface.Selection()
	in.hist.PatchSelection(start, end)
	in.hist.Record(rec, false)
	in.surface.SetState(rec)
	in.notify(rec.Value)
	return Result{Handled: true, Changed: true, Record: rec}
}

// HandleChange records a change the surface already made natively. Typing
// within the same word is merged into the current step.
func (in *Interpreter) HandleChange(rec history.Record) Result {
	in.hist.Record(rec, true)
	in.notify(rec.Value)
	return Result{Command: CommandChange, Changed: true, Record: rec}
}

// Undo restores the previous entry onto the surface.
func (in *Interpreter) Undo() Result {
	rec, ok := in.hist.Undo()
	if !ok {
		return Result{Command: CommandUndo}
	}
	in.surface.SetState(rec)
	in.notify(rec.Value)
	return Result{Command: CommandUndo, Changed: true, Record: rec}
}

// Redo restores the next entry onto the surface.
func (in *Interpreter) Redo() Result {
	rec, ok := in.hist.Redo()
	if !ok {
		return Result{Command: CommandRedo}
	}
	in.surface.SetState(rec)
	in.notify(rec.Value)
	return Result{Command: CommandRedo, Changed: true, Record: rec}
}
