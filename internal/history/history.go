// Package history keeps the bounded undo/redo log of text and selection
// snapshots for one editor instance.
package history

import (
	"strings"
	"time"

	"github.com/kobzarvs/qpad/internal/logger"
	"github.com/kobzarvs/qpad/internal/textscan"
)

const (
	// Limit is the maximum number of entries kept in the log.
	Limit = 100
	// TimeGap is the window within which same-word typing is merged.
	TimeGap = 3000 * time.Millisecond
)

// Record is one coherent state of the text plus its selection.
// 0 <= SelectionStart <= SelectionEnd <= len(Value).
type Record struct {
	Value          string
	SelectionStart int
	SelectionEnd   int
}

// Entry is a Record stamped with the time it entered the log.
type Entry struct {
	Record
	Timestamp time.Time
}

// Clock returns the current time. time.Now carries a monotonic reading,
// so the gap computed between two entries never goes backwards.
type Clock func() time.Time

// Session is a detached copy of the log, used to swap histories in memory.
type Session struct {
	Stack  []Entry
	Offset int
}

// History is the navigable log. Offset points at the entry holding the
// current state; -1 means empty.
type History struct {
	stack  []Entry
	offset int
	now    Clock
}

// New returns an empty history. A nil clock uses time.Now.
func New(now Clock) *History {
	if now == nil {
		now = time.Now
	}
	return &History{offset: -1, now: now}
}

// Record pushes rec onto the log, discarding any redo branch first. With
// coalesce set, rec replaces the current entry instead when it arrives
// within TimeGap and continues the word being typed before the caret.
// It reports whether a new entry was pushed.
func (h *History) Record(rec Record, coalesce bool) bool {
	if len(h.stack) > 0 && h.offset > -1 {
		if h.offset < len(h.stack)-1 {
			logger.Debug("history: drop redo branch", "entries", len(h.stack)-1-h.offset)
		}
		h.stack = h.stack[:h.offset+1]
		h.trim()
	}

	ts := h.now()
	if coalesce && h.offset >= 0 && h.offset < len(h.stack) {
		last := h.stack[h.offset]
		if ts.Sub(last.Timestamp) < TimeGap && continuesWord(last.Record, rec) {
			h.stack[h.offset] = Entry{Record: rec, Timestamp: ts}
			logger.Debug("history: coalesce", "offset", h.offset)
			return false
		}
	}

	h.stack = append(h.stack, Entry{Record: rec, Timestamp: ts})
	h.offset++
	h.trim()
	return true
}

// trim drops the oldest entries above Limit and shifts offset so it keeps
// pointing at the same entry.
func (h *History) trim() {
	extra := len(h.stack) - Limit
	if extra <= 0 {
		return
	}
	h.stack = append([]Entry(nil), h.stack[extra:]...)
	h.offset -= extra
	if h.offset < 0 {
		h.offset = 0
	}
	logger.Debug("history: trimmed", "dropped", extra)
}

func continuesWord(prev, next Record) bool {
	before := textscan.CaretWord(prev.Value, prev.SelectionStart)
	after := textscan.CaretWord(next.Value, next.SelectionStart)
	return before != "" && after != "" && strings.HasPrefix(after, before)
}

// PatchSelection overwrites the selection of the current entry without
// creating a new step.
func (h *History) PatchSelection(start, end int) bool {
	if h.offset < 0 || h.offset >= len(h.stack) {
		return false
	}
	h.stack[h.offset].SelectionStart = start
	h.stack[h.offset].SelectionEnd = end
	return true
}

// Undo moves to the previous entry and returns it.
func (h *History) Undo() (Record, bool) {
	prev := h.offset - 1
	if prev < 0 || prev >= len(h.stack) {
		return Record{}, false
	}
	h.offset = prev
	return h.stack[prev].Record, true
}

// Redo moves to the next entry and returns it.
func (h *History) Redo() (Record, bool) {
	next := h.offset + 1
	if next < 0 || next >= len(h.stack) {
		return Record{}, false
	}
	h.offset = next
	return h.stack[next].Record, true
}

// Current returns the entry at offset.
func (h *History) Current() (Entry, bool) {
	if h.offset < 0 || h.offset >= len(h.stack) {
		return Entry{}, false
	}
	return h.stack[h.offset], true
}

func (h *History) Len() int { return len(h.stack) }

func (h *History) Offset() int { return h.offset }

func (h *History) CanUndo() bool { return h.offset > 0 && h.offset < len(h.stack) }

func (h *History) CanRedo() bool { return h.offset+1 < len(h.stack) }

// Entries returns a copy of the log, oldest first.
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.stack...)
}

// Snapshot detaches a copy of the log.
func (h *History) Snapshot() Session {
	return Session{Stack: h.Entries(), Offset: h.offset}
}

// Restore replaces the log with s. Oversized logs are trimmed from the
// front and an out-of-range offset is clamped.
func (h *History) Restore(s Session) {
	h.stack = append([]Entry(nil), s.Stack...)
	h.offset = s.Offset
	if len(h.stack) == 0 {
		h.offset = -1
		return
	}
	if h.offset < 0 {
		h.offset = 0
	}
	if h.offset > len(h.stack)-1 {
		h.offset = len(h.stack) - 1
	}
	h.trim()
}
