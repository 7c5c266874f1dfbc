package textscan

import "testing"

func TestLinePrefix(t *testing.T) {
	cases := []struct {
		text   string
		offset int
		want   string
	}{
		{"", 0, ""},
		{"abc", 2, "ab"},
		{"ab\ncd", 5, "cd"},
		{"ab\ncd", 3, ""},
		{"ab\ncd", 2, "ab"},
		{"a\n\n  x", 6, "  x"},
		{"abc", 10, "abc"},
	}
	for _, tt := range cases {
		if got := LinePrefix(tt.text, tt.offset); got != tt.want {
			t.Fatalf("LinePrefix(%q, %d) = %q, want %q", tt.text, tt.offset, got, tt.want)
		}
	}
}

func TestLineIndex(t *testing.T) {
	text := "one\ntwo\nthree"
	cases := map[int]int{0: 0, 3: 0, 4: 1, 7: 1, 8: 2, 13: 2}
	for offset, want := range cases {
		if got := LineIndex(text, offset); got != want {
			t.Fatalf("LineIndex(%d) = %d, want %d", offset, got, want)
		}
	}
}

func TestLeadingSpace(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"foo":      "",
		"  foo":    "  ",
		"\t\tx":    "\t\t",
		" \t ":     " \t ",
		"  y": "  ",
	}
	for line, want := range cases {
		if got := LeadingSpace(line); got != want {
			t.Fatalf("LeadingSpace(%q) = %q, want %q", line, got, want)
		}
	}
}

func TestHasNonSpace(t *testing.T) {
	if HasNonSpace("  \t") {
		t.Fatalf("HasNonSpace(whitespace) = true, want false")
	}
	if !HasNonSpace("  x") {
		t.Fatalf("HasNonSpace(%q) = false, want true", "  x")
	}
}

func TestTrailingWord(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"foo":         "foo",
		"x = foo42":   "foo42",
		"call(":       "",
		"a_b":         "b",
		"héllo":       "llo",
		"line end ":   "",
		"Mixed9Case0": "Mixed9Case0",
	}
	for s, want := range cases {
		if got := TrailingWord(s); got != want {
			t.Fatalf("TrailingWord(%q) = %q, want %q", s, got, want)
		}
	}
}

func TestCaretWordUsesCurrentLineOnly(t *testing.T) {
	if got := CaretWord("foo\nbar", 4); got != "" {
		t.Fatalf("CaretWord at line start = %q, want empty", got)
	}
	if got := CaretWord("foo\nbar", 6); got != "ba" {
		t.Fatalf("CaretWord = %q, want %q", got, "ba")
	}
}
