// Package textscan holds the small line and word scanners shared by the
// history and key command packages. Offsets are byte offsets into UTF-8 text.
package textscan

import (
	"strings"
	"unicode"
)

func clamp(text string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(text) {
		return len(text)
	}
	return offset
}

// LinePrefix returns the text between the last newline before offset and offset.
func LinePrefix(text string, offset int) string {
	head := text[:clamp(text, offset)]
	return head[strings.LastIndexByte(head, '\n')+1:]
}

// LineIndex returns the 0-based index of the line containing offset.
func LineIndex(text string, offset int) int {
	return strings.Count(text[:clamp(text, offset)], "\n")
}

// LeadingSpace returns the run of whitespace at the start of line.
func LeadingSpace(line string) string {
	for i, r := range line {
		if !unicode.IsSpace(r) {
			return line[:i]
		}
	}
	return line
}

// HasNonSpace reports whether s contains any non-whitespace rune.
func HasNonSpace(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
}

// TrailingWord returns the longest [A-Za-z0-9] run that ends s.
func TrailingWord(s string) string {
	i := len(s)
	for i > 0 && isWordByte(s[i-1]) {
		i--
	}
	return s[i:]
}

// CaretWord is TrailingWord applied to the current line before offset.
func CaretWord(text string, offset int) string {
	return TrailingWord(LinePrefix(text, offset))
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
