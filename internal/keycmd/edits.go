package keycmd

import (
	"strings"

	"github.com/kobzarvs/qpad/internal/history"
	"github.com/kobzarvs/qpad/internal/textscan"
)

// lineSpan returns the first and last line indexes touched by [start, end].
func lineSpan(value string, start, end int) (int, int) {
	return textscan.LineIndex(value, start), textscan.LineIndex(value, end)
}

func mapLines(value string, first, last int, fn func(string) string) string {
	lines := strings.Split(value, "\n")
	for i := first; i <= last && i < len(lines); i++ {
		lines[i] = fn(lines[i])
	}
	return strings.Join(lines, "\n")
}

func indentLines(value string, start, end int, tab string) history.Record {
	first, last := lineSpan(value, start, end)
	next := mapLines(value, first, last, func(line string) string {
		return tab + line
	})
	newStart := start
	if textscan.HasNonSpace(textscan.LinePrefix(value, start)) {
		newStart += len(tab)
	}
	return history.Record{
		Value:          next,
		SelectionStart: newStart,
		SelectionEnd:   end + len(tab)*(last-first+1),
	}
}

// unindentLines strips one leading tab from every line in [start, end].
// Each selection endpoint moves back by what was removed before it and
// never past the start of its own line.
func unindentLines(value string, start, end int, tab string) (history.Record, bool) {
	first, last := lineSpan(value, start, end)
	lines := strings.Split(value, "\n")
	removed := make([]int, len(lines))
	changed := false
	for i := first; i <= last && i < len(lines); i++ {
		if strings.HasPrefix(lines[i], tab) {
			lines[i] = lines[i][len(tab):]
			removed[i] = len(tab)
			changed = true
		}
	}
	if !changed {
		return history.Record{}, false
	}
	shift := func(off int) int {
		row := textscan.LineIndex(value, off)
		col := len(textscan.LinePrefix(value, off))
		before := 0
		for i := 0; i < row; i++ {
			before += removed[i]
		}
		return off - before - min(removed[row], col)
	}
	return history.Record{
		Value:          strings.Join(lines, "\n"),
		SelectionStart: shift(start),
		SelectionEnd:   shift(end),
	}, true
}

// insertAt replaces [start, end] with text and collapses the caret after it.
func insertAt(value string, start, end int, text string) history.Record {
	caret := start + len(text)
	return history.Record{
		Value:          value[:start] + text + value[end:],
		SelectionStart: caret,
		SelectionEnd:   caret,
	}
}

func deleteIndentUnit(value string, start, end int, tab string) (history.Record, bool) {
	if start != end || !strings.HasSuffix(value[:start], tab) {
		return history.Record{}, false
	}
	caret := start - len(tab)
	return history.Record{
		Value:          value[:caret] + value[end:],
		SelectionStart: caret,
		SelectionEnd:   caret,
	}, true
}

func autoIndent(value string, start, end int) (history.Record, bool) {
	if start != end {
		return history.Record{}, false
	}
	indent := textscan.LeadingSpace(textscan.LinePrefix(value, start))
	if indent == "" {
		return history.Record{}, false
	}
	return insertAt(value, start, end, "\n"+indent), true
}

func wrapSelection(value string, start, end int, open, shut string) history.Record {
	return history.Record{
		Value:          value[:start] + open + value[start:end] + shut + value[end:],
		SelectionStart: start,
		SelectionEnd:   end + len(open) + len(shut),
	}
}

func insertPair(value string, start, end int, open, shut string) history.Record {
	caret := start + len(open)
	return history.Record{
		Value:          value[:start] + open + shut + value[end:],
		SelectionStart: caret,
		SelectionEnd:   caret,
	}
}
