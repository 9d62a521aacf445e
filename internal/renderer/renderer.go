// Package renderer draws a document and the go-to-line prompt onto a
// terminal backend. The last screen row holds either the prompt or a
// status line; the rows above it show the document from its scroll offset.
package renderer

import (
	"github.com/dshills/caretkit/internal/engine/buffer"
	"github.com/dshills/caretkit/internal/engine/cursor"
	"github.com/dshills/caretkit/internal/location"
	"github.com/dshills/caretkit/internal/renderer/backend"
)

// PromptLabel precedes the query on the prompt row.
const PromptLabel = "Go to line: "

// Document provides the text, selection and scroll state to draw.
type Document interface {
	Snapshot() *buffer.Snapshot
	Selection() cursor.Selection
	ScrollTop() float64
	Metrics() location.Metrics
}

// Prompt provides the state of an open go-to-line prompt.
type Prompt interface {
	Query() string
	Placeholder() string
	Invalid() bool
}

// Frame is everything one Render call draws.
type Frame struct {
	Doc Document

	// Prompt replaces the status line when non-nil.
	Prompt Prompt

	Status string
}

// Renderer draws frames.
type Renderer struct {
	term   *backend.Terminal
	styles backend.Styles
}

// New creates a renderer drawing to term.
func New(term *backend.Terminal, styles backend.Styles) *Renderer {
	return &Renderer{term: term, styles: styles}
}

// SetStyles replaces the styles used from the next frame on.
func (r *Renderer) SetStyles(s backend.Styles) { r.styles = s }

// TextRows is the number of rows available to the document.
func (r *Renderer) TextRows() int {
	_, h := r.term.Size()
	return max(h-1, 0)
}

// TopLine returns the first visible 0-based line of doc.
func TopLine(doc Document) int {
	lh := doc.Metrics().LineHeight
	if lh <= 0 {
		lh = 1
	}
	return max(int(doc.ScrollTop()/lh), 0)
}

// Render draws f and shows the result.
func (r *Renderer) Render(f Frame) {
	w, h := r.term.Size()
	if w <= 0 || h <= 0 {
		return
	}

	snap := f.Doc.Snapshot()
	sel := f.Doc.Selection()
	caret := snap.OffsetToPoint(sel.Head)
	top := TopLine(f.Doc)
	cursorX, cursorY := -1, -1

	for row := 0; row < h-1; row++ {
		r.term.Fill(0, row, w, r.styles.Text)
		line := top + row
		if line >= snap.LineCount() {
			r.term.DrawText(0, row, w, "~", r.styles.Muted)
			continue
		}

		text := snap.LineText(line)
		a, b, selected := lineSelection(snap, sel, line)
		r.drawLine(row, w, text, a, b, selected)
		if line == caret.Line {
			cursorX = r.term.TextWidth(prefix(text, caret.Column))
			cursorY = row
		}
	}

	if f.Prompt != nil {
		cursorX, cursorY = r.drawPrompt(h-1, w, f.Prompt)
	} else {
		r.term.Fill(0, h-1, w, r.styles.Status)
		r.term.DrawText(0, h-1, w, f.Status, r.styles.Status)
	}

	if cursorY >= 0 && cursorX < w {
		r.term.ShowCursor(cursorX, cursorY)
	} else {
		r.term.HideCursor()
	}
	r.term.Show()
}

func (r *Renderer) drawLine(row, w int, text string, a, b int, selected bool) {
	if !selected {
		r.term.DrawText(0, row, w, text, r.styles.Text)
		return
	}
	runes := []rune(text)
	x := r.term.DrawText(0, row, w, string(runes[:a]), r.styles.Text)
	x += r.term.DrawText(x, row, w-x, string(runes[a:b]), r.styles.Selection)
	r.term.DrawText(x, row, w-x, string(runes[b:]), r.styles.Text)
}

// drawPrompt draws p on row y and returns where the cursor belongs.
func (r *Renderer) drawPrompt(y, w int, p Prompt) (int, int) {
	style, label, hint := r.styles.Text, r.styles.Prompt, r.styles.Placeholder
	if p.Invalid() {
		style = r.styles.Invalid
		label = r.styles.Invalid.Bold(true)
		hint = r.styles.Invalid
	}

	r.term.Fill(0, y, w, style)
	x := r.term.DrawText(0, y, w, PromptLabel, label)

	q := p.Query()
	if q == "" {
		r.term.DrawText(x, y, w-x, p.Placeholder(), hint)
		return x, y
	}
	return x + r.term.DrawText(x, y, w-x, q, style), y
}

// lineSelection returns the selected rune columns [a, b) of line, if any.
func lineSelection(snap *buffer.Snapshot, sel cursor.Selection, line int) (a, b int, ok bool) {
	if sel.IsEmpty() {
		return 0, 0, false
	}
	start := snap.LineStart(line)
	n := snap.LineLen(line)
	if sel.End() <= start || sel.Start() >= start+n {
		return 0, 0, false
	}
	a = min(max(sel.Start()-start, 0), n)
	b = min(max(sel.End()-start, 0), n)
	return a, b, a < b
}

func prefix(text string, column int) string {
	runes := []rune(text)
	return string(runes[:min(max(column, 0), len(runes))])
}
