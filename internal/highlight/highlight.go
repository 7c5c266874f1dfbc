// Package highlight turns a document value into display markup. The editor
// calls it once per value change and never interprets the result.
package highlight

import (
	"html"
	"strings"

	"github.com/kobzarvs/qpad/internal/config"
	"github.com/kobzarvs/qpad/internal/logger"
)

type Highlighter interface {
	Highlight(text string) string
}

// Func adapts a plain function to Highlighter.
type Func func(text string) string

func (f Func) Highlight(text string) string { return f(text) }

// Plain escapes the text and adds no styling.
var Plain Highlighter = Func(html.EscapeString)

// Run is a styled byte range [Start, End) of a document.
type Run struct {
	Start int
	End   int
	Kind  string
}

// Tokenizer exposes styled runs for hosts that paint cells instead of markup.
type Tokenizer interface {
	Runs(text string) []Run
}

// Markup wraps every run in a span carrying its kind. Runs must be sorted
// and must not overlap.
func Markup(text string, runs []Run) string {
	var b strings.Builder
	b.Grow(len(text) + len(runs)*32)
	pos := 0
	for _, r := range runs {
		if r.Start < pos || r.End > len(text) || r.Start >= r.End {
			continue
		}
		b.WriteString(html.EscapeString(text[pos:r.Start]))
		b.WriteString(`<span class="token `)
		b.WriteString(r.Kind)
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(text[r.Start:r.End]))
		b.WriteString(`</span>`)
		pos = r.End
	}
	b.WriteString(html.EscapeString(text[pos:]))
	return b.String()
}

// ForPath picks a highlighter by file name. Unknown or unsupported
// languages fall back to Plain.
func ForPath(langs config.Languages, path string) Highlighter {
	lang := langs.Match(path)
	if lang == nil {
		return Plain
	}
	e, err := New(lang.Name)
	if err != nil {
		logger.Warn("highlight: falling back to plain", "path", path, "language", lang.Name, "error", err)
		return Plain
	}
	return e
}
