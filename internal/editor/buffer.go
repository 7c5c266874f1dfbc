package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/kobzarvs/qpad/internal/history"
)

// Buffer is the live text surface: one string plus an anchor/head
// selection in byte offsets. It implements the native edits a plain text
// control performs when no key command intercepts a key.
type Buffer struct {
	text    string
	anchor  int
	head    int
	goalCol int
	focused bool
}

func NewBuffer(text string) *Buffer {
	return &Buffer{text: text, focused: true, goalCol: -1}
}

func (b *Buffer) Value() string { return b.text }

// Selection returns the ordered selection bounds.
func (b *Buffer) Selection() (start, end int) {
	if b.anchor <= b.head {
		return b.anchor, b.head
	}
	return b.head, b.anchor
}

// Caret is the moving end of the selection.
func (b *Buffer) Caret() int { return b.head }

func (b *Buffer) HasSelection() bool { return b.anchor != b.head }

func (b *Buffer) SetState(rec history.Record) {
	b.text = rec.Value
	b.anchor = b.clamp(rec.SelectionStart)
	b.head = b.clamp(rec.SelectionEnd)
	b.goalCol = -1
}

func (b *Buffer) Blur() { b.focused = false }
func (b *Buffer) Focus() { b.focused = true }
func (b *Buffer) Focused() bool { return b.focused }

func (b *Buffer) clamp(off int) int {
	if off < 0 {
		return 0
	}
	if off > len(b.text) {
		return len(b.text)
	}
	for off > 0 && off < len(b.text) && !utf8.RuneStart(b.text[off]) {
		off--
	}
	return off
}

func (b *Buffer) setCaret(off int, extend bool) {
	b.head = b.clamp(off)
	if !extend {
		b.anchor = b.head
	}
}

// Select sets anchor and head directly.
func (b *Buffer) Select(anchor, head int) {
	b.anchor = b.clamp(anchor)
	b.head = b.clamp(head)
	b.goalCol = -1
}

func (b *Buffer) SelectAll() { b.Select(0, len(b.text)) }

// Insert replaces the selection with s and collapses the caret after it.
func (b *Buffer) Insert(s string) {
	start, end := b.Selection()
	b.text = b.text[:start] + s + b.text[end:]
	b.anchor = start + len(s)
	b.head = b.anchor
	b.goalCol = -1
}

// DeleteBackward removes the selection, or the rune before the caret.
func (b *Buffer) DeleteBackward() bool {
	start, end := b.Selection()
	if start == end {
		if start == 0 {
			return false
		}
		_, size := utf8.DecodeLastRuneInString(b.text[:start])
		start -= size
	}
	b.cut(start, end)
	return true
}

// DeleteForward removes the selection, or the rune after the caret.
func (b *Buffer) DeleteForward() bool {
	start, end := b.Selection()
	if start == end {
		if end >= len(b.text) {
			return false
		}
		_, size := utf8.DecodeRuneInString(b.text[end:])
		end += size
	}
	b.cut(start, end)
	return true
}

func (b *Buffer) cut(start, end int) {
	b.text = b.text[:start] + b.text[end:]
	b.anchor, b.head = start, start
	b.goalCol = -1
}

func (b *Buffer) MoveLeft(extend bool) {
	b.goalCol = -1
	start, _ := b.Selection()
	if b.HasSelection() && !extend {
		b.setCaret(start, false)
		return
	}
	if b.head == 0 {
		b.setCaret(0, extend)
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.text[:b.head])
	b.setCaret(b.head-size, extend)
}

func (b *Buffer) MoveRight(extend bool) {
	b.goalCol = -1
	_, end := b.Selection()
	if b.HasSelection() && !extend {
		b.setCaret(end, false)
		return
	}
	if b.head >= len(b.text) {
		b.setCaret(len(b.text), extend)
		return
	}
	_, size := utf8.DecodeRuneInString(b.text[b.head:])
	b.setCaret(b.head+size, extend)
}

func (b *Buffer) MoveLineStart(extend bool) {
	b.goalCol = -1
	b.setCaret(lineStart(b.text, b.head), extend)
}

func (b *Buffer) MoveLineEnd(extend bool) {
	b.goalCol = -1
	b.setCaret(lineEnd(b.text, b.head), extend)
}

// MoveVertical moves the caret delta lines, keeping the rune column it
// started from across consecutive vertical moves.
func (b *Buffer) MoveVertical(delta int, extend bool) {
	row, col := b.Position(b.head)
	if b.goalCol < 0 {
		b.goalCol = col
	}
	target := row + delta
	if target < 0 {
		b.setCaret(0, extend)
		return
	}
	lines := strings.Count(b.text, "\n")
	if target > lines {
		b.setCaret(len(b.text), extend)
		return
	}
	b.setCaret(b.Offset(target, b.goalCol), extend)
}

// Position converts a byte offset to a zero-based row and rune column.
func (b *Buffer) Position(off int) (row, col int) {
	off = b.clamp(off)
	prefix := b.text[:off]
	row = strings.Count(prefix, "\n")
	col = utf8.RuneCountInString(prefix[lineStart(b.text, off):])
	return row, col
}

// Offset converts a row and rune column back to a byte offset, clamping
// the column to the line length.
func (b *Buffer) Offset(row, col int) int {
	off := 0
	for i := 0; i < row; i++ {
		nl := strings.IndexByte(b.text[off:], '\n')
		if nl < 0 {
			return len(b.text)
		}
		off += nl + 1
	}
	end := lineEnd(b.text, off)
	for col > 0 && off < end {
		_, size := utf8.DecodeRuneInString(b.text[off:])
		off += size
		col--
	}
	return off
}

func lineStart(text string, off int) int {
	return strings.LastIndexByte(text[:off], '\n') + 1
}

func lineEnd(text string, off int) int {
	if i := strings.IndexByte(text[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(text)
}
