package editor

import (
	"testing"

	"github.com/kobzarvs/qpad/internal/history"
)

func assertBuffer(t *testing.T, b *Buffer, value string, start, end int) {
	t.Helper()
	if b.Value() != value {
		t.Fatalf("value = %q, want %q", b.Value(), value)
	}
	gotStart, gotEnd := b.Selection()
	if gotStart != start || gotEnd != end {
		t.Fatalf("selection = (%d, %d), want (%d, %d)", gotStart, gotEnd, start, end)
	}
}

func TestBufferInsertReplacesSelection(t *testing.T) {
	b := NewBuffer("hello world")
	b.Select(6, 11)
	b.Insert("there")
	assertBuffer(t, b, "hello there", 11, 11)
}

func TestBufferSelectionOrdered(t *testing.T) {
	b := NewBuffer("abcdef")
	b.Select(5, 2)
	assertBuffer(t, b, "abcdef", 2, 5)
	if b.Caret() != 2 {
		t.Fatalf("caret = %d, want 2", b.Caret())
	}
}

func TestBufferDeleteBackwardMultibyte(t *testing.T) {
	b := NewBuffer("añb")
	b.Select(3, 3)
	if !b.DeleteBackward() {
		t.Fatalf("DeleteBackward = false, want true")
	}
	assertBuffer(t, b, "ab", 1, 1)

	b.Select(0, 0)
	if b.DeleteBackward() {
		t.Fatalf("DeleteBackward at start = true, want false")
	}
}

func TestBufferDeleteForward(t *testing.T) {
	b := NewBuffer("abc")
	b.Select(1, 1)
	b.DeleteForward()
	assertBuffer(t, b, "ac", 1, 1)

	b.Select(0, 2)
	b.DeleteForward()
	assertBuffer(t, b, "", 0, 0)
	if b.DeleteForward() {
		t.Fatalf("DeleteForward on empty = true, want false")
	}
}

func TestBufferHorizontalMoves(t *testing.T) {
	b := NewBuffer("héllo")
	b.MoveRight(false)
	b.MoveRight(false)
	assertBuffer(t, b, "héllo", 3, 3)

	b.MoveLeft(true)
	assertBuffer(t, b, "héllo", 1, 3)

	// Without shift a selection collapses to its edge.
	b.MoveRight(false)
	assertBuffer(t, b, "héllo", 3, 3)

	b.MoveLineEnd(true)
	assertBuffer(t, b, "héllo", 3, 6)
	b.MoveLineStart(false)
	assertBuffer(t, b, "héllo", 0, 0)
	b.MoveLeft(false)
	assertBuffer(t, b, "héllo", 0, 0)
}

func TestBufferVerticalKeepsGoalColumn(t *testing.T) {
	b := NewBuffer("abcdef\nab\nabcdef")
	b.Select(5, 5)
	b.MoveVertical(1, false)
	assertBuffer(t, b, "abcdef\nab\nabcdef", 9, 9)
	b.MoveVertical(1, false)
	assertBuffer(t, b, "abcdef\nab\nabcdef", 15, 15)

	b.MoveVertical(1, false)
	assertBuffer(t, b, "abcdef\nab\nabcdef", 16, 16)
	b.MoveVertical(-5, false)
	assertBuffer(t, b, "abcdef\nab\nabcdef", 0, 0)
}

func TestBufferPositionAndOffset(t *testing.T) {
	b := NewBuffer("ab\nçd\n")
	cases := []struct {
		off      int
		row, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{5, 1, 1},
		{7, 2, 0},
	}
	for _, tc := range cases {
		row, col := b.Position(tc.off)
		if row != tc.row || col != tc.col {
			t.Fatalf("Position(%d) = (%d, %d), want (%d, %d)", tc.off, row, col, tc.row, tc.col)
		}
		if got := b.Offset(tc.row, tc.col); got != tc.off {
			t.Fatalf("Offset(%d, %d) = %d, want %d", tc.row, tc.col, got, tc.off)
		}
	}
	if got := b.Offset(0, 99); got != 2 {
		t.Fatalf("Offset past line end = %d, want 2", got)
	}
	if got := b.Offset(9, 0); got != len(b.Value()) {
		t.Fatalf("Offset past last row = %d, want %d", got, len(b.Value()))
	}
}

func TestBufferSetStateClamps(t *testing.T) {
	b := NewBuffer("")
	b.SetState(history.Record{Value: "añ", SelectionStart: 2, SelectionEnd: 40})
	assertBuffer(t, b, "añ", 1, 3)
}

func TestBufferFocus(t *testing.T) {
	b := NewBuffer("")
	if !b.Focused() {
		t.Fatalf("new buffer not focused")
	}
	b.Blur()
	if b.Focused() {
		t.Fatalf("Blur did not clear focus")
	}
	b.Focus()
	if !b.Focused() {
		t.Fatalf("Focus did not set focus")
	}
}
