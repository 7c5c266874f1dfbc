package editor

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qpad/internal/config"
	"github.com/kobzarvs/qpad/internal/highlight"
)

type styles struct {
	main      tcell.Style
	status    tcell.Style
	selection tcell.Style
	syntax    map[string]tcell.Style
}

func newStyles(theme config.Theme) styles {
	mainFg := parseColor(theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(theme.Background, tcell.ColorBlack)
	statusFg := parseColor(theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(theme.StatuslineBackground, tcell.ColorGray)
	selectionFg := parseColor(theme.SelectionForeground, mainFg)
	selectionBg := parseColor(theme.SelectionBackground, mainBg)

	syntax := make(map[string]tcell.Style)
	for kind, color := range theme.SyntaxColors() {
		syntax[kind] = tcell.StyleDefault.Foreground(parseColor(color, mainFg)).Background(mainBg)
	}
	return styles{
		main:      tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		status:    tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		selection: tcell.StyleDefault.Foreground(selectionFg).Background(selectionBg),
		syntax:    syntax,
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// Render draws the buffer above a one-line status bar.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	viewHeight := h - 1
	if viewHeight < 0 {
		viewHeight = 0
	}

	s.SetStyle(e.styles.main)
	s.Clear()

	text := e.buf.Value()
	caretRow, _ := e.buf.Position(e.buf.Caret())
	e.ensureVisible(caretRow, viewHeight)

	var runs []highlight.Run
	if tk, ok := e.hl.(highlight.Tokenizer); ok {
		runs = tk.Runs(text)
	}
	selStart, selEnd := e.buf.Selection()
	tabSize := e.keys.Options().TabSize

	lastRow := strings.Count(text, "\n")
	off := e.buf.Offset(e.scroll, 0)
	ri := 0
	cx, cy := -1, -1
	for y := 0; y < viewHeight; y++ {
		row := e.scroll + y
		if row > lastRow {
			break
		}
		end := lineEnd(text, off)
		col := 0
		for i := off; ; {
			if i == e.buf.Caret() {
				cx, cy = col, y
			}
			if i >= end {
				break
			}
			r, size := utf8.DecodeRuneInString(text[i:])
			for ri < len(runs) && runs[ri].End <= i {
				ri++
			}
			style := e.styles.main
			if ri < len(runs) && runs[ri].Start <= i {
				if st, ok := e.styles.syntax[runs[ri].Kind]; ok {
					style = st
				}
			}
			if i >= selStart && i < selEnd {
				style = e.styles.selection
			}
			if r == '\t' {
				width := tabSize - col%tabSize
				for k := 0; k < width; k++ {
					if col < w {
						s.SetContent(col, y, ' ', nil, style)
					}
					col++
				}
			} else {
				if col < w {
					s.SetContent(col, y, r, nil, style)
				}
				col++
			}
			i += size
		}
		off = end + 1
	}

	if h >= 1 {
		e.renderStatusline(s, w, h-1)
	}
	if !e.buf.Focused() || cx < 0 || cx >= w {
		s.HideCursor()
		s.Show()
		return
	}
	s.SetCursorStyle(tcell.CursorStyleSteadyBar)
	s.ShowCursor(cx, cy)
	s.Show()
}

func (e *Editor) ensureVisible(row, viewHeight int) {
	if viewHeight <= 0 {
		return
	}
	if row < e.scroll {
		e.scroll = row
	}
	if row >= e.scroll+viewHeight {
		e.scroll = row - viewHeight + 1
	}
}

func (e *Editor) renderStatusline(s tcell.Screen, w, y int) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, e.styles.status)
	}
	name := e.filename
	if name == "" {
		name = "[scratch]"
	}
	if e.Dirty() {
		name += " [+]"
	}
	left := " " + name
	if e.status != "" {
		left += "  " + e.status
	}

	row, col := e.buf.Position(e.buf.Caret())
	tab := "tab:indent"
	if !e.keys.Capture() || e.keys.Options().IgnoreTabKey {
		tab = "tab:focus"
	}
	if !e.buf.Focused() {
		tab = "blurred"
	}
	right := fmt.Sprintf("%s  %d/%d  %d:%d ", tab, e.hist.Offset()+1, e.hist.Len(), row+1, col+1)

	drawText(s, 0, y, w, left, e.styles.status)
	if x := w - utf8.RuneCountInString(right); x > utf8.RuneCountInString(left) {
		drawText(s, x, y, w, right, e.styles.status)
	}
}

func drawText(s tcell.Screen, x, y, w int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
