package highlight

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	tree_sitter_markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/yaml"
)

var ErrUnsupportedLanguage = errors.New("highlight: unsupported language")

// Engine highlights one language. Tree-sitter grammars cover most of them;
// json uses regular expressions.
type Engine struct {
	name   string
	parser *sitter.Parser
	query  *sitter.Query

	mu       sync.Mutex
	lastText string
	lastRuns []Run
	cached   bool
}

func New(language string) (*Engine, error) {
	name := normalizeLanguage(language)
	if name == "json" {
		return &Engine{name: name}, nil
	}
	tsLang, src := grammar(name)
	if tsLang == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	query, err := sitter.NewQuery([]byte(src), tsLang)
	if err != nil {
		return nil, fmt.Errorf("highlight: %s query: %w", name, err)
	}
	p := sitter.NewParser()
	p.SetLanguage(tsLang)
	return &Engine{name: name, parser: p, query: query}, nil
}

func (e *Engine) Language() string { return e.name }

func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.query != nil {
		e.query.Close()
		e.query = nil
	}
	if e.parser != nil {
		e.parser.Close()
		e.parser = nil
	}
}

func (e *Engine) Highlight(text string) string {
	return Markup(text, e.Runs(text))
}

// Runs returns the styled runs of text, reusing the previous result when
// text is unchanged.
func (e *Engine) Runs(text string) []Run {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cached && e.lastText == text {
		return e.lastRuns
	}

	var caps []capture
	if e.name == "json" {
		caps = jsonCaptures(text)
	} else {
		caps = e.treeCaptures(text)
	}
	runs := flatten(len(text), caps)
	e.lastText, e.lastRuns, e.cached = text, runs, true
	return runs
}

type capture struct {
	start, end int
	pattern    int
	kind       string
}

func (e *Engine) treeCaptures(text string) []capture {
	if e.parser == nil || e.query == nil || text == "" {
		return nil
	}
	source := []byte(text)
	tree, err := e.parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(e.query, tree.RootNode())

	var out []capture
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		if match == nil {
			continue
		}
		for _, c := range match.Captures {
			out = append(out, capture{
				start:   int(c.Node.StartByte()),
				end:     int(c.Node.EndByte()),
				pattern: int(match.PatternIndex),
				kind:    e.query.CaptureNameForId(c.Index),
			})
		}
	}
	return out
}

// flatten resolves overlapping captures into sorted, disjoint runs. Captures
// are ranked by start offset and then by pattern order; the first capture to
// claim a byte keeps it.
func flatten(n int, caps []capture) []Run {
	if n == 0 || len(caps) == 0 {
		return nil
	}
	sort.SliceStable(caps, func(i, j int) bool {
		if caps[i].start != caps[j].start {
			return caps[i].start < caps[j].start
		}
		return caps[i].pattern < caps[j].pattern
	})
	kinds := make([]string, n)
	for _, c := range caps {
		if c.start < 0 || c.end > n {
			continue
		}
		for i := c.start; i < c.end; i++ {
			if kinds[i] == "" {
				kinds[i] = c.kind
			}
		}
	}

	var runs []Run
	for i := 0; i < n; {
		if kinds[i] == "" {
			i++
			continue
		}
		j := i + 1
		for j < n && kinds[j] == kinds[i] {
			j++
		}
		runs = append(runs, Run{Start: i, End: j, Kind: kinds[i]})
		i = j
	}
	return runs
}

func normalizeLanguage(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	switch s {
	case "golang":
		return "go"
	case "yml":
		return "yaml"
	case "shell", "sh", "zsh":
		return "bash"
	case "jsonc":
		return "json"
	case "md":
		return "markdown"
	default:
		return s
	}
}

func grammar(name string) (*sitter.Language, string) {
	switch name {
	case "go":
		return golang.GetLanguage(), goHighlightQuery
	case "yaml":
		return yaml.GetLanguage(), yamlHighlightQuery
	case "toml":
		return toml.GetLanguage(), tomlHighlightQuery
	case "bash":
		return bash.GetLanguage(), bashHighlightQuery
	case "markdown":
		return tree_sitter_markdown.GetLanguage(), markdownHighlightQuery
	default:
		return nil, ""
	}
}

var (
	jsonString  = regexp.MustCompile(`"(?:[^"\\\n]|\\.)*"`)
	jsonKeyTail = regexp.MustCompile(`^[ \t]*:`)
	jsonNumber  = regexp.MustCompile(`-?\b\d+(?:\.\d+)?(?:[eE][+-]?\d+)?\b`)
	jsonLiteral = regexp.MustCompile(`\b(?:true|false|null)\b`)
)

// jsonCaptures lists strings first so that numbers and literals inside a
// string lose to it during flatten.
func jsonCaptures(text string) []capture {
	var out []capture
	for _, loc := range jsonString.FindAllStringIndex(text, -1) {
		kind := "string"
		if jsonKeyTail.MatchString(text[loc[1]:]) {
			kind = "field"
		}
		out = append(out, capture{start: loc[0], end: loc[1], kind: kind})
	}
	for _, loc := range jsonNumber.FindAllStringIndex(text, -1) {
		out = append(out, capture{start: loc[0], end: loc[1], pattern: 1, kind: "number"})
	}
	for _, loc := range jsonLiteral.FindAllStringIndex(text, -1) {
		out = append(out, capture{start: loc[0], end: loc[1], pattern: 2, kind: "constant"})
	}
	return out
}
